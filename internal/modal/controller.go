package modal

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fase del ciclo de carga del listado.
type Fase int

const (
	FaseIdle Fase = iota
	FaseCargando
	FaseRenderizada
	FaseError
)

// PeriodoQuieto: espera tras el último keystroke de filtro antes de
// disparar el refetch. Abrir y limpiar filtros no esperan.
const PeriodoQuieto = 250 * time.Millisecond

// Cmd: efecto asíncrono que produce un Evento. La UI lo corre donde quiera
// (goroutine de bubbletea, síncrono en tests) y entrega el Evento a Aplicar.
type Cmd func(ctx context.Context) Evento

// Evento: resultado de un efecto, aplicado siempre en el hilo de la UI.
type Evento interface{ esEvento() }

// EvTiendas: resolvió un fetch del listado. Seq identifica el intento.
type EvTiendas struct {
	Seq     uint64
	Tiendas []Tienda
	Err     error
}

// EvPrevia: resolvió la carga de la segmentación previa del SKU.
type EvPrevia struct {
	Sku     string
	Detalle []DetalleItem
}

// EvGuardado: resolvió el POST de guardado.
type EvGuardado struct {
	Sku       string
	Respuesta json.RawMessage
	Err       error
}

func (EvTiendas) esEvento()  {}
func (EvPrevia) esEvento()   {}
func (EvGuardado) esEvento() {}

// Controller es el dueño del estado del modal: referencia abierta, filtros,
// listado, asignación y la máquina Idle -> Cargando -> {Renderizada, Error}.
// Cada refetch lleva un número de secuencia; un resultado cuya secuencia ya
// no es la última se descarta, así una respuesta lenta nunca pisa una nueva.
type Controller struct {
	api        API
	logger     *zap.Logger
	onGuardada func(GuardadaEvent)

	ref         ReferenciaDescriptor
	filtros     Filtros
	tiendas     []Tienda
	asig        *Asignacion
	sugerencias Sugerencias

	fase         Fase
	seq          uint64
	renderizada  bool // hubo al menos un render exitoso en esta sesión
	previaPedida bool
	guardando    bool
	errMsg       string
}

func NewController(api API, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		api:    api,
		logger: logger.Named("modal"),
		asig:   NewAsignacion(),
		fase:   FaseIdle,
	}
}

// SetOnGuardada registra el listener de la notificación "segmentación
// guardada" que consume la página.
func (c *Controller) SetOnGuardada(fn func(GuardadaEvent)) {
	c.onGuardada = fn
}

// Abrir inicia una sesión nueva para la referencia: descarta todo estado
// anterior y dispara el fetch del listado sin debounce.
func (c *Controller) Abrir(ref ReferenciaDescriptor) Cmd {
	c.ref = ref
	c.filtros = Filtros{}
	c.tiendas = nil
	c.asig = NewAsignacion()
	c.sugerencias = Sugerencias{}
	c.renderizada = false
	c.previaPedida = false
	c.guardando = false
	c.errMsg = ""
	return c.refetch()
}

// Refetch dispara una recarga inmediata del listado (refresh explícito o
// fin del periodo quieto de un filtro).
func (c *Controller) Refetch() Cmd {
	return c.refetch()
}

// SetFiltro actualiza un filtro sin disparar nada: el debounce y el Refetch
// posterior son responsabilidad de la capa de UI.
func (c *Controller) SetFiltro(f Filtros) {
	c.filtros = f
}

// LimpiarFiltros resetea solo los inputs de filtro y recarga de inmediato.
// Las cantidades ya digitadas no se tocan.
func (c *Controller) LimpiarFiltros() Cmd {
	c.filtros = Filtros{}
	return c.refetch()
}

func (c *Controller) refetch() Cmd {
	c.seq++
	c.fase = FaseCargando
	seq := c.seq
	linea := c.lineaConsulta()
	filtros := c.filtros
	return func(ctx context.Context) Evento {
		tiendas, err := c.api.TiendasActivas(ctx, linea, filtros)
		return EvTiendas{Seq: seq, Tiendas: tiendas, Err: err}
	}
}

func (c *Controller) cargarPrevia() Cmd {
	sku := c.ref.Sku
	return func(ctx context.Context) Evento {
		detalle, err := c.api.UltimaSegmentacion(ctx, sku)
		if err != nil {
			// sin previa no hay nada que mezclar; no es un error de sesión
			return EvPrevia{Sku: sku}
		}
		return EvPrevia{Sku: sku, Detalle: detalle}
	}
}

// Aplicar ejecuta la transición para un evento resuelto y retorna el efecto
// de seguimiento si lo hay (la previa se pide tras el primer listado).
func (c *Controller) Aplicar(ev Evento) Cmd {
	switch e := ev.(type) {
	case EvTiendas:
		return c.aplicarTiendas(e)
	case EvPrevia:
		if e.Sku == c.ref.Sku {
			c.asig.MergeDetalle(e.Detalle)
		}
	case EvGuardado:
		c.aplicarGuardado(e)
	}
	return nil
}

func (c *Controller) aplicarTiendas(e EvTiendas) Cmd {
	if e.Seq != c.seq {
		c.logger.Debug("respuesta vieja descartada", zap.Uint64("seq", e.Seq), zap.Uint64("actual", c.seq))
		return nil
	}

	if e.Err != nil {
		c.fase = FaseError
		c.errMsg = e.Err.Error()
		if !c.renderizada {
			// error en la carga inicial: grid vacío
			c.tiendas = nil
		}
		// en refetch se conserva el último grid bueno
		return nil
	}

	c.tiendas = e.Tiendas
	c.fase = FaseRenderizada
	c.renderizada = true
	c.errMsg = ""
	c.sugerencias = calcularSugerencias(e.Tiendas)

	if !c.previaPedida && c.ref.Sku != "" {
		c.previaPedida = true
		return c.cargarPrevia()
	}
	return nil
}

func (c *Controller) aplicarGuardado(e EvGuardado) {
	c.guardando = false
	if e.Err != nil {
		c.errMsg = e.Err.Error()
		return
	}
	c.errMsg = ""
	if c.onGuardada != nil {
		c.onGuardada(GuardadaEvent{ReferenciaSku: e.Sku, Respuesta: e.Respuesta})
	}
}

// Guardar valida localmente, arma el payload y retorna el efecto del POST.
// Si ya hay un guardado en vuelo retorna nil: los dobles clicks se ignoran.
func (c *Controller) Guardar() (Cmd, error) {
	if strings.TrimSpace(c.ref.Sku) == "" {
		return nil, &ValidacionError{Campo: "referenciaSku"}
	}
	if strings.TrimSpace(c.lineaConsulta()) == "" {
		return nil, &ValidacionError{Campo: "linea"}
	}
	if c.guardando {
		return nil, nil
	}

	c.guardando = true
	req := c.ConstruirGuardado()
	sku := c.ref.Sku
	return func(ctx context.Context) Evento {
		respuesta, err := c.api.Guardar(ctx, req)
		return EvGuardado{Sku: sku, Respuesta: respuesta, Err: err}
	}, nil
}

// ConstruirGuardado arma el payload con el detalle de tiendas activas y
// cantidad > 0. Derivado del estado actual, nunca se almacena.
func (c *Controller) ConstruirGuardado() GuardarRequest {
	return GuardarRequest{
		ReferenciaSku:  c.ref.Sku,
		Descripcion:    c.ref.Descripcion,
		Categoria:      c.ref.Categoria,
		Linea:          c.lineaConsulta(),
		TipoPortafolio: c.ref.TipoPortafolio,
		PrecioUnitario: c.ref.PrecioUnitario,
		EstadoSku:      c.ref.Estado,
		Cuento:         c.ref.Cuento,
		CodigoBarras:   c.ref.CodigoBarras,
		TipoInventario: c.ref.TipoInventario,
		Detalle:        c.asig.Detalle(),
	}
}

// ----------------------------------------
// Mutaciones de asignación
// ----------------------------------------

func (c *Controller) ToggleTienda(llave string, limpiarCantidades bool) {
	c.asig.SetTiendaActiva(llave, !c.asig.Activa(llave), limpiarCantidades)
}

func (c *Controller) SetTiendaActiva(llave string, activa, limpiarCantidades bool) {
	c.asig.SetTiendaActiva(llave, activa, limpiarCantidades)
}

func (c *Controller) SetTodasActivas(activa, limpiarCantidades bool) {
	c.asig.SetTodasActivas(c.tiendas, activa, limpiarCantidades)
}

func (c *Controller) AplicarPreset() {
	c.asig.AplicarPreset(c.tiendas, c.ref.Preset, c.ref.Tallas)
}

func (c *Controller) SetCantidad(llave, talla string, valor int) bool {
	return c.asig.SetCantidad(llave, talla, valor)
}

func (c *Controller) Incrementar(llave, talla string, delta int) bool {
	return c.asig.Incrementar(llave, talla, delta)
}

// ----------------------------------------
// Lecturas para la UI
// ----------------------------------------

func (c *Controller) Referencia() ReferenciaDescriptor { return c.ref }
func (c *Controller) Filtros() Filtros                 { return c.filtros }
func (c *Controller) Tiendas() []Tienda                { return c.tiendas }
func (c *Controller) Asignacion() *Asignacion          { return c.asig }
func (c *Controller) Sugerencias() Sugerencias         { return c.sugerencias }
func (c *Controller) Fase() Fase                       { return c.fase }
func (c *Controller) Guardando() bool                  { return c.guardando }
func (c *Controller) ErrMsg() string                   { return c.errMsg }

// Render produce el markup del grid con el estado actual.
func (c *Controller) Render(ancho int) string {
	return RenderGrid(c.tiendas, c.ref.Tallas, c.asig, ancho)
}

func (c *Controller) lineaConsulta() string {
	if strings.TrimSpace(c.ref.LineaTexto) != "" {
		return c.ref.LineaTexto
	}
	return c.ref.LineaRaw
}
