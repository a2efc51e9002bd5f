// Package modal implementa el núcleo del modal de segmentación: estado de
// asignación por tienda/talla, cliente HTTP hacia el backend, coordinación de
// refetch con descarte de respuestas viejas y render del grid. No depende de
// ninguna superficie de UI; los efectos (red, render, notificación) se
// inyectan desde afuera.
package modal

import "encoding/json"

// ReferenciaDescriptor: datos del SKU que la página entrega al abrir el
// modal. Inmutable durante la sesión.
type ReferenciaDescriptor struct {
	Sku            string
	Descripcion    string
	Categoria      string
	Estado         string
	TipoPortafolio string
	LineaRaw       string // ej: "12 - Hombre Exterior"
	LineaTexto     string
	Color          string
	Cuento         string
	CodigoBarras   string
	TipoInventario string
	PrecioUnitario float64

	// Curva de tallas en el orden que manda el llamador; nunca se reordena
	Tallas []string

	// Asignación sugerida talla -> cantidad (opcional)
	Preset map[string]int
}

// Tienda: fila del listado de tiendas activas. Solo lectura en la sesión;
// lo único que muta localmente es la asignación asociada a su llave.
type Tienda struct {
	LlaveNaval      string  `json:"llave_naval"`
	Dependencia     string  `json:"dependencia"`
	DescDependencia string  `json:"desc_dependencia"`
	Ciudad          string  `json:"ciudad"`
	Zona            string  `json:"zona"`
	Clima           string  `json:"clima"`
	Testeo          string  `json:"testeo_fnl"`
	RankinLinea     string  `json:"rankin_linea"`
	VentaPromedio   float64 `json:"venta_promedio"`
	CPD             float64 `json:"cpd"`
	IndiceRotacion  float64 `json:"indice_rotacion"`
}

// Nombre visible de la tienda en el grid.
func (t Tienda) Nombre() string {
	if t.DescDependencia != "" {
		return t.DescDependencia
	}
	return t.Dependencia
}

// DetalleItem: una celda tienda+talla con cantidad, tal como viaja al backend.
type DetalleItem struct {
	LlaveNaval string `json:"llave_naval"`
	Talla      string `json:"talla"`
	Cantidad   int    `json:"cantidad"`
}

// GuardarRequest: payload del POST de guardado. Derivado, nunca almacenado.
type GuardarRequest struct {
	ReferenciaSku  string        `json:"referenciaSku"`
	Descripcion    string        `json:"descripcion"`
	Categoria      string        `json:"categoria"`
	Linea          string        `json:"linea"`
	TipoPortafolio string        `json:"tipo_portafolio"`
	PrecioUnitario float64       `json:"precio_unitario"`
	EstadoSku      string        `json:"estado_sku"`
	Cuento         string        `json:"cuento"`
	CodigoBarras   string        `json:"codigo_barras"`
	TipoInventario string        `json:"tipo_inventario"`
	Detalle        []DetalleItem `json:"detalle"`
}

// Filtros de la lista de tiendas. Valores vacíos no viajan en el query.
type Filtros struct {
	Dependencia   string
	Zona          string
	Ciudad        string
	Clima         string
	Testeo        string
	Clasificacion string
}

// GuardadaEvent: notificación de dominio que se emite tras un guardado
// exitoso, para que la página refresque sus conteos sin acoplarse al modal.
type GuardadaEvent struct {
	ReferenciaSku string
	Respuesta     json.RawMessage
}
