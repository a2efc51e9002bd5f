package modal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiFalsa: doble de API programable. Los Cmd leen sus campos al ejecutarse,
// así los tests controlan qué "respondió la red" y en qué orden.
type apiFalsa struct {
	tiendas    []Tienda
	errTiendas error

	previa []DetalleItem

	respuestaGuardar json.RawMessage
	errGuardar       error

	llamadasTiendas int
	llamadasPrevia  int
	guardados       []GuardarRequest
}

func (f *apiFalsa) TiendasActivas(_ context.Context, _ string, _ Filtros) ([]Tienda, error) {
	f.llamadasTiendas++
	return f.tiendas, f.errTiendas
}

func (f *apiFalsa) UltimaSegmentacion(_ context.Context, _ string) ([]DetalleItem, error) {
	f.llamadasPrevia++
	return f.previa, nil
}

func (f *apiFalsa) Guardar(_ context.Context, req GuardarRequest) (json.RawMessage, error) {
	f.guardados = append(f.guardados, req)
	if f.errGuardar != nil {
		return nil, f.errGuardar
	}
	return f.respuestaGuardar, nil
}

func referenciaTest() ReferenciaDescriptor {
	return ReferenciaDescriptor{
		Sku:        "103834-01 | 857",
		LineaRaw:   "12 - Hombre Exterior",
		LineaTexto: "Hombre Exterior",
		Tallas:     []string{"S", "M", "L"},
	}
}

// abre la sesión y resuelve listado + previa, como haría el loop de UI
func abrirYResolver(t *testing.T, c *Controller, ref ReferenciaDescriptor) {
	t.Helper()
	ctx := context.Background()

	cmd := c.Abrir(ref)
	require.NotNil(t, cmd)

	siguiente := c.Aplicar(cmd(ctx))
	if siguiente != nil {
		c.Aplicar(siguiente(ctx))
	}
}

func TestAbrirCargaListadoYLuegoPrevia(t *testing.T) {
	api := &apiFalsa{
		tiendas: []Tienda{{LlaveNaval: "S1", DescDependencia: "Tienda Centro"}},
		previa:  []DetalleItem{{LlaveNaval: "S1", Talla: "M", Cantidad: 3}},
	}
	c := NewController(api, nil)

	abrirYResolver(t, c, referenciaTest())

	assert.Equal(t, FaseRenderizada, c.Fase())
	assert.Equal(t, 1, api.llamadasTiendas)
	assert.Equal(t, 1, api.llamadasPrevia, "la previa se pide después del primer listado")
	assert.True(t, c.Asignacion().Activa("S1"))
	assert.Equal(t, 3, c.Asignacion().Cantidad("S1", "M"))
}

func TestAperturaSinPrevia(t *testing.T) {
	// escenario completo: tallas S/M/L, sin preset, una tienda, sin previa
	api := &apiFalsa{tiendas: []Tienda{{LlaveNaval: "S1", DescDependencia: "Tienda Centro"}}}
	c := NewController(api, nil)

	abrirYResolver(t, c, referenciaTest())

	assert.False(t, c.Asignacion().Activa("S1"), "el toggle arranca inactivo")
	activas, unidades := c.Asignacion().Resumen()
	assert.Equal(t, 0, activas)
	assert.Equal(t, 0, unidades)

	grid := c.Render(0)
	assert.Contains(t, grid, "Tienda Centro")
	assert.Contains(t, grid, "Tiendas activas: 0")
	assert.Contains(t, grid, "Unidades asignadas: 0")
}

func TestRespuestaViejaNoPisaLaNueva(t *testing.T) {
	api := &apiFalsa{}
	c := NewController(api, nil)
	ctx := context.Background()

	c.Abrir(referenciaTest()) // el cmd de apertura se deja sin resolver

	// se despacha A, luego B; B resuelve primero
	api.tiendas = []Tienda{{LlaveNaval: "VIEJA"}}
	cmdA := c.Refetch()
	evA := cmdA(ctx)

	api.tiendas = []Tienda{{LlaveNaval: "NUEVA"}}
	cmdB := c.Refetch()
	evB := cmdB(ctx)

	c.Aplicar(evB)
	require.Len(t, c.Tiendas(), 1)
	assert.Equal(t, "NUEVA", c.Tiendas()[0].LlaveNaval)

	// A llega tarde: se descarta sin tocar el estado
	c.Aplicar(evA)
	require.Len(t, c.Tiendas(), 1)
	assert.Equal(t, "NUEVA", c.Tiendas()[0].LlaveNaval)
	assert.Equal(t, FaseRenderizada, c.Fase())
}

func TestErrorEnCargaInicialDejaGridVacio(t *testing.T) {
	api := &apiFalsa{errTiendas: errors.New("se cayó la red")}
	c := NewController(api, nil)
	ctx := context.Background()

	cmd := c.Abrir(referenciaTest())
	c.Aplicar(cmd(ctx))

	assert.Equal(t, FaseError, c.Fase())
	assert.Empty(t, c.Tiendas())
	assert.Contains(t, c.ErrMsg(), "se cayó la red")
}

func TestErrorDeRefetchConservaElUltimoGrid(t *testing.T) {
	api := &apiFalsa{tiendas: []Tienda{{LlaveNaval: "S1"}}}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	api.errTiendas = errors.New("timeout")
	cmd := c.Refetch()
	c.Aplicar(cmd(context.Background()))

	assert.Equal(t, FaseError, c.Fase())
	// política no destructiva: el listado anterior sigue visible
	require.Len(t, c.Tiendas(), 1)
	assert.Equal(t, "S1", c.Tiendas()[0].LlaveNaval)
}

func TestLimpiarFiltrosNoTocaCantidades(t *testing.T) {
	api := &apiFalsa{tiendas: []Tienda{{LlaveNaval: "S1"}}}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	c.SetTiendaActiva("S1", true, false)
	c.SetCantidad("S1", "M", 5)
	c.SetFiltro(Filtros{Zona: "norte"})

	cmd := c.LimpiarFiltros()
	c.Aplicar(cmd(context.Background()))

	assert.Equal(t, Filtros{}, c.Filtros())
	assert.Equal(t, 5, c.Asignacion().Cantidad("S1", "M"))
}

func TestGuardarValidaAntesDeLaRed(t *testing.T) {
	api := &apiFalsa{}
	c := NewController(api, nil)

	// sin SKU
	c.Abrir(ReferenciaDescriptor{LineaTexto: "Hombre Exterior"})
	_, err := c.Guardar()
	var ve *ValidacionError
	require.ErrorAs(t, err, &ve)

	// sin línea
	c.Abrir(ReferenciaDescriptor{Sku: "103834-01"})
	_, err = c.Guardar()
	require.ErrorAs(t, err, &ve)

	assert.Empty(t, api.guardados, "la validación local no debe llegar a la red")
}

func TestGuardarArmaElPayloadCorrecto(t *testing.T) {
	// escenario completo: activar S1, M=5, guardar
	api := &apiFalsa{
		tiendas:          []Tienda{{LlaveNaval: "S1"}},
		respuestaGuardar: json.RawMessage(`{"ok":true}`),
	}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	c.ToggleTienda("S1", false)
	require.True(t, c.SetCantidad("S1", "M", 5))

	cmd, err := c.Guardar()
	require.NoError(t, err)
	c.Aplicar(cmd(context.Background()))

	require.Len(t, api.guardados, 1)
	req := api.guardados[0]
	assert.Equal(t, "103834-01 | 857", req.ReferenciaSku)
	assert.Equal(t, "Hombre Exterior", req.Linea)
	assert.Equal(t, []DetalleItem{{LlaveNaval: "S1", Talla: "M", Cantidad: 5}}, req.Detalle)
}

func TestGuardarIgnoraDobleClick(t *testing.T) {
	api := &apiFalsa{respuestaGuardar: json.RawMessage(`{"ok":true}`)}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	cmd1, err := c.Guardar()
	require.NoError(t, err)
	require.NotNil(t, cmd1)

	// segundo click mientras el primero está en vuelo
	cmd2, err := c.Guardar()
	require.NoError(t, err)
	assert.Nil(t, cmd2)

	c.Aplicar(cmd1(context.Background()))
	assert.False(t, c.Guardando())

	// resuelto el primero, se puede guardar otra vez
	cmd3, err := c.Guardar()
	require.NoError(t, err)
	assert.NotNil(t, cmd3)
}

func TestGuardarNotificaALaPagina(t *testing.T) {
	api := &apiFalsa{respuestaGuardar: json.RawMessage(`{"ok":true,"id_segmentacion":9}`)}
	c := NewController(api, nil)

	var evento GuardadaEvent
	c.SetOnGuardada(func(e GuardadaEvent) { evento = e })

	abrirYResolver(t, c, referenciaTest())

	cmd, err := c.Guardar()
	require.NoError(t, err)
	c.Aplicar(cmd(context.Background()))

	assert.Equal(t, "103834-01 | 857", evento.ReferenciaSku)
	assert.Contains(t, string(evento.Respuesta), "id_segmentacion")
}

func TestGuardarFallidoMuestraElMensaje(t *testing.T) {
	api := &apiFalsa{errGuardar: &GuardadoError{Status: 500, Mensaje: "No se pudo guardar la segmentación"}}
	c := NewController(api, nil)

	notificado := false
	c.SetOnGuardada(func(GuardadaEvent) { notificado = true })

	abrirYResolver(t, c, referenciaTest())

	cmd, err := c.Guardar()
	require.NoError(t, err)
	c.Aplicar(cmd(context.Background()))

	assert.False(t, notificado)
	assert.Contains(t, c.ErrMsg(), "No se pudo guardar")
	assert.False(t, c.Guardando())
}

func TestPreviaDeOtroSkuSeIgnora(t *testing.T) {
	api := &apiFalsa{tiendas: []Tienda{{LlaveNaval: "S1"}}}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	c.Aplicar(EvPrevia{Sku: "OTRO-SKU", Detalle: []DetalleItem{{LlaveNaval: "S1", Talla: "M", Cantidad: 9}}})
	assert.Equal(t, 0, c.Asignacion().Cantidad("S1", "M"))
}

func TestAbrirDescartaLaSesionAnterior(t *testing.T) {
	api := &apiFalsa{tiendas: []Tienda{{LlaveNaval: "S1"}}}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	c.SetTiendaActiva("S1", true, false)
	c.SetCantidad("S1", "M", 5)

	otra := referenciaTest()
	otra.Sku = "999999-01"
	abrirYResolver(t, c, otra)

	assert.Equal(t, 0, c.Asignacion().Cantidad("S1", "M"))
	assert.False(t, c.Asignacion().Activa("S1"))
}

func TestSugerenciasDistintasOrdenadas(t *testing.T) {
	api := &apiFalsa{tiendas: []Tienda{
		{LlaveNaval: "S1", Zona: "Norte", Ciudad: "Bogotá"},
		{LlaveNaval: "S2", Zona: "norte", Ciudad: "Cali"},
		{LlaveNaval: "S3", Zona: "Sur", Ciudad: ""},
	}}
	c := NewController(api, nil)
	abrirYResolver(t, c, referenciaTest())

	s := c.Sugerencias()
	assert.Equal(t, []string{"Norte", "Sur"}, s.Zonas, "dedup sin distinguir mayúsculas")
	assert.Equal(t, []string{"Bogotá", "Cali"}, s.Ciudades)
}
