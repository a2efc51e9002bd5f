package modal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNivelClasificacion(t *testing.T) {
	casos := map[string]Nivel{
		"AA":   NivelBueno,
		"a":    NivelBueno,
		" B ":  NivelAlerta,
		"C":    NivelPobre,
		"NA":   NivelPobre,
		"":     NivelPobre,
		"otro": NivelPobre,
	}
	for rankin, esperado := range casos {
		assert.Equal(t, esperado, NivelClasificacion(rankin), "rankin %q", rankin)
	}
}

func TestRenderGridVacio(t *testing.T) {
	out := RenderGrid(nil, []string{"S", "M"}, NewAsignacion(), 0)
	assert.Contains(t, out, "Sin tiendas")
}

func TestRenderGridFilaYFooter(t *testing.T) {
	tiendas := []Tienda{{LlaveNaval: "S1", DescDependencia: "Tienda Centro", Ciudad: "Bogotá"}}
	a := NewAsignacion()
	a.SetTiendaActiva("S1", true, false)
	a.SetCantidad("S1", "M", 5)

	out := RenderGrid(tiendas, []string{"S", "M", "L"}, a, 0)

	assert.Contains(t, out, "Tienda Centro")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "Tiendas activas: 1")
	assert.Contains(t, out, "Unidades asignadas: 5")
}

func TestRenderGridInactivaConservaCantidadVisible(t *testing.T) {
	tiendas := []Tienda{{LlaveNaval: "S1", Dependencia: "Norte"}}
	a := NewAsignacion()
	a.SetTiendaActiva("S1", true, false)
	a.SetCantidad("S1", "M", 7)
	a.SetTiendaActiva("S1", false, false)

	out := RenderGrid(tiendas, []string{"M"}, a, 0)

	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "7", "la celda deshabilitada sigue mostrando su valor")
	assert.Contains(t, out, "Unidades asignadas: 0")
}

func TestRenderGridOrdenDelBackend(t *testing.T) {
	tiendas := []Tienda{
		{LlaveNaval: "S2", Dependencia: "Zeta"},
		{LlaveNaval: "S1", Dependencia: "Alfa"},
	}
	out := RenderGrid(tiendas, []string{"S"}, NewAsignacion(), 0)

	// el grid respeta el orden que mandó el backend, no reordena
	assert.Less(t, strings.Index(out, "Zeta"), strings.Index(out, "Alfa"))
}

func TestRellenarPorRunas(t *testing.T) {
	assert.Equal(t, "Chía ", rellenar("Chía", 5))
	assert.Equal(t, "Bogot", rellenar("Bogotá", 5))
	assert.Equal(t, "Medellín", rellenar("Medellín", 8))
}
