package modal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Nivel del badge de clasificación de la tienda según su rankin de línea.
type Nivel string

const (
	NivelBueno  Nivel = "good"
	NivelAlerta Nivel = "warning"
	NivelPobre  Nivel = "poor"
)

// NivelClasificacion clasifica el rankin: AA/A buenas, B en alerta y el
// resto (C, NA, vacío o cualquier valor desconocido) pobres.
func NivelClasificacion(rankin string) Nivel {
	switch strings.ToUpper(strings.TrimSpace(rankin)) {
	case "AA", "A":
		return NivelBueno
	case "B":
		return NivelAlerta
	default:
		return NivelPobre
	}
}

var (
	estiloHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	estiloFila   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	estiloMuerta = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // tienda inactiva
	estiloVacio  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243")).Padding(1, 2)
	estiloFooter = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginTop(1)

	estiloBadge = map[Nivel]lipgloss.Style{
		NivelBueno:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		NivelAlerta: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		NivelPobre:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
)

const (
	anchoNombre = 24
	anchoCiudad = 12
	anchoZona   = 10
	anchoClima  = 8
	anchoBadge  = 6
	anchoCelda  = 5
)

// RenderGrid produce el markup del grid de tiendas x tallas. Función pura del
// estado: tiendas en el orden del backend, tallas en el orden del llamador.
func RenderGrid(tiendas []Tienda, tallas []string, a *Asignacion, ancho int) string {
	if len(tiendas) == 0 {
		return estiloVacio.Render("Sin tiendas para la línea y los filtros actuales.")
	}

	var b strings.Builder

	b.WriteString(renderHeader(tallas))
	b.WriteString("\n")

	for _, t := range tiendas {
		b.WriteString(renderFila(t, tallas, a))
		b.WriteString("\n")
	}

	activas, unidades := a.Resumen()
	b.WriteString(estiloFooter.Render(
		fmt.Sprintf("Tiendas activas: %d · Unidades asignadas: %d", activas, unidades),
	))

	if ancho > 0 {
		return lipgloss.NewStyle().MaxWidth(ancho).Render(b.String())
	}
	return b.String()
}

func renderHeader(tallas []string) string {
	cols := []string{
		"  ", // columna del toggle
		rellenar("TIENDA", anchoNombre),
		rellenar("CIUDAD", anchoCiudad),
		rellenar("ZONA", anchoZona),
		rellenar("CLIMA", anchoClima),
		rellenar("CLASIF", anchoBadge),
	}
	for _, talla := range tallas {
		cols = append(cols, rellenar(talla, anchoCelda))
	}
	return estiloHeader.Render(strings.Join(cols, " "))
}

func renderFila(t Tienda, tallas []string, a *Asignacion) string {
	activa := a.Activa(t.LlaveNaval)

	toggle := "[ ]"
	if activa {
		toggle = "[x]"
	}

	cols := []string{
		toggle,
		rellenar(t.Nombre(), anchoNombre),
		rellenar(t.Ciudad, anchoCiudad),
		rellenar(t.Zona, anchoZona),
		rellenar(t.Clima, anchoClima),
	}

	nivel := NivelClasificacion(t.RankinLinea)
	badge := estiloBadge[nivel].Render(rellenar(t.RankinLinea, anchoBadge))

	// los inputs de cantidad se muestran siempre; inactiva = deshabilitados
	// (fila atenuada), conservando su valor visible
	celdas := make([]string, 0, len(tallas))
	for _, talla := range tallas {
		celdas = append(celdas, rellenar(fmt.Sprintf("%d", a.Cantidad(t.LlaveNaval, talla)), anchoCelda))
	}

	estilo := estiloFila
	if !activa {
		estilo = estiloMuerta
	}

	fila := strings.Join(cols, " ")
	resto := strings.Join(celdas, " ")
	return estilo.Render(fila) + " " + badge + " " + estilo.Render(resto)
}

func rellenar(v string, ancho int) string {
	// por runas: los nombres traen acentos
	r := []rune(v)
	if len(r) > ancho {
		return string(r[:ancho])
	}
	return v + strings.Repeat(" ", ancho-len(r))
}
