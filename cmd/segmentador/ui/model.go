// Package ui es la superficie bubbletea del modal de segmentación. Toda la
// lógica vive en el Controller; acá solo se traducen teclas a mutaciones y
// eventos resueltos a mensajes.
package ui

import (
	"context"
	"fmt"
	"strings"

	"segmentacion-backend/internal/modal"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type eventoMsg struct{ ev modal.Evento }

// refetchMsg lo envía el debouncer cuando pasa el periodo quieto de filtros.
type refetchMsg struct{}

var etiquetasFiltro = []string{"dependencia", "zona", "ciudad", "clima", "testeo", "clasificación"}

type Model struct {
	ctrl   *modal.Controller
	ref    modal.ReferenciaDescriptor
	enviar func(tea.Msg)

	debounce *modal.Debouncer

	filtros    []textinput.Model
	modoFiltro bool
	filtroIdx  int

	fila int
	col  int

	ancho  int
	status string
}

func NewModel(ctrl *modal.Controller, ref modal.ReferenciaDescriptor, enviar func(tea.Msg)) Model {
	filtros := make([]textinput.Model, len(etiquetasFiltro))
	for i, etiqueta := range etiquetasFiltro {
		ti := textinput.New()
		ti.Placeholder = etiqueta
		ti.CharLimit = 40
		ti.Width = 14
		filtros[i] = ti
	}

	return Model{
		ctrl:     ctrl,
		ref:      ref,
		enviar:   enviar,
		debounce: modal.NewDebouncer(modal.PeriodoQuieto),
		filtros:  filtros,
	}
}

func (m Model) Init() tea.Cmd {
	return correr(m.ctrl.Abrir(m.ref))
}

// correr convierte un efecto del controlador en un tea.Cmd.
func correr(c modal.Cmd) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		return eventoMsg{ev: c(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ancho = msg.Width
		return m, nil

	case refetchMsg:
		return m, correr(m.ctrl.Refetch())

	case eventoMsg:
		seguimiento := m.ctrl.Aplicar(msg.ev)
		if ev, ok := msg.ev.(modal.EvGuardado); ok && ev.Err == nil {
			m.status = "Segmentación guardada"
		}
		m.ajustarCursor()
		return m, correr(seguimiento)

	case tea.KeyMsg:
		if m.modoFiltro {
			return m.updateFiltro(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.debounce.Cancelar()
		return m, tea.Quit

	case "/":
		m.modoFiltro = true
		m.filtros[m.filtroIdx].Focus()
		return m, nil

	case "c":
		for i := range m.filtros {
			m.filtros[i].SetValue("")
		}
		m.debounce.Cancelar()
		return m, correr(m.ctrl.LimpiarFiltros())

	case "r":
		return m, correr(m.ctrl.Refetch())

	case "up", "k":
		m.fila--
	case "down", "j":
		m.fila++
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++

	case " ":
		if t, ok := m.tiendaActual(); ok {
			m.ctrl.ToggleTienda(t.LlaveNaval, false)
		}
	case "x":
		// desactivar limpiando cantidades
		if t, ok := m.tiendaActual(); ok {
			m.ctrl.SetTiendaActiva(t.LlaveNaval, false, true)
		}
	case "a":
		m.ctrl.SetTodasActivas(true, false)
	case "n":
		m.ctrl.SetTodasActivas(false, false)
	case "p":
		m.ctrl.AplicarPreset()

	case "+", "=":
		m.incrementar(1)
	case "-", "_":
		m.incrementar(-1)
	case "backspace":
		if t, ok := m.tiendaActual(); ok {
			talla := m.tallaActual()
			actual := m.ctrl.Asignacion().Cantidad(t.LlaveNaval, talla)
			m.ctrl.SetCantidad(t.LlaveNaval, talla, actual/10)
		}
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.digitarCantidad(int(msg.String()[0] - '0'))

	case "s", "ctrl+s":
		cmd, err := m.ctrl.Guardar()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if cmd == nil {
			// guardado en vuelo, el segundo enter se ignora
			return m, nil
		}
		m.status = "Guardando..."
		return m, correr(cmd)
	}

	m.ajustarCursor()
	return m, nil
}

func (m *Model) updateFiltro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtros[m.filtroIdx].Blur()
		m.modoFiltro = false
		return *m, nil

	case "tab", "shift+tab":
		m.filtros[m.filtroIdx].Blur()
		if msg.String() == "tab" {
			m.filtroIdx = (m.filtroIdx + 1) % len(m.filtros)
		} else {
			m.filtroIdx = (m.filtroIdx + len(m.filtros) - 1) % len(m.filtros)
		}
		m.filtros[m.filtroIdx].Focus()
		return *m, nil

	case "enter":
		m.filtros[m.filtroIdx].Blur()
		m.modoFiltro = false
		m.ctrl.SetFiltro(m.filtrosActuales())
		m.debounce.Cancelar()
		return *m, correr(m.ctrl.Refetch())
	}

	var cmd tea.Cmd
	m.filtros[m.filtroIdx], cmd = m.filtros[m.filtroIdx].Update(msg)

	// cada keystroke reinicia el periodo quieto; el refetch llega como
	// refetchMsg cuando el usuario deja de escribir
	m.ctrl.SetFiltro(m.filtrosActuales())
	m.debounce.Programar(func() { m.enviar(refetchMsg{}) })
	return *m, cmd
}

func (m *Model) incrementar(delta int) {
	if t, ok := m.tiendaActual(); ok {
		if !m.ctrl.Incrementar(t.LlaveNaval, m.tallaActual(), delta) {
			m.status = "Active la tienda para editar cantidades"
		}
	}
}

func (m *Model) digitarCantidad(d int) {
	t, ok := m.tiendaActual()
	if !ok {
		return
	}
	talla := m.tallaActual()
	actual := m.ctrl.Asignacion().Cantidad(t.LlaveNaval, talla)
	if !m.ctrl.SetCantidad(t.LlaveNaval, talla, actual*10+d) {
		m.status = "Active la tienda para editar cantidades"
	}
}

func (m *Model) ajustarCursor() {
	tiendas := m.ctrl.Tiendas()
	if m.fila >= len(tiendas) {
		m.fila = len(tiendas) - 1
	}
	if m.fila < 0 {
		m.fila = 0
	}
	if m.col >= len(m.ref.Tallas) {
		m.col = len(m.ref.Tallas) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m *Model) tiendaActual() (modal.Tienda, bool) {
	tiendas := m.ctrl.Tiendas()
	if m.fila < 0 || m.fila >= len(tiendas) {
		return modal.Tienda{}, false
	}
	return tiendas[m.fila], true
}

func (m *Model) tallaActual() string {
	if m.col < 0 || m.col >= len(m.ref.Tallas) {
		return ""
	}
	return m.ref.Tallas[m.col]
}

func (m *Model) filtrosActuales() modal.Filtros {
	return modal.Filtros{
		Dependencia:   m.filtros[0].Value(),
		Zona:          m.filtros[1].Value(),
		Ciudad:        m.filtros[2].Value(),
		Clima:         m.filtros[3].Value(),
		Testeo:        m.filtros[4].Value(),
		Clasificacion: m.filtros[5].Value(),
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(estiloTitulo.Render(m.ref.Sku))
	if m.ref.Descripcion != "" {
		b.WriteString(" " + estiloLinea.Render(m.ref.Descripcion))
	}
	b.WriteString(" " + estiloLinea.Render("· "+m.ref.LineaRaw))
	b.WriteString("\n\n")

	b.WriteString(m.renderFiltros())
	b.WriteString("\n\n")

	if m.ctrl.Fase() == modal.FaseCargando {
		b.WriteString(estiloLinea.Render("Cargando tiendas..."))
		b.WriteString("\n")
	}
	b.WriteString(m.ctrl.Render(m.ancho))
	b.WriteString("\n")

	if t, ok := m.tiendaActual(); ok {
		b.WriteString(estiloCursor.Render(fmt.Sprintf("> %s · talla %s", t.Nombre(), m.tallaActual())))
		b.WriteString("\n")
	}

	if msg := m.ctrl.ErrMsg(); msg != "" {
		b.WriteString(estiloError.Render("Error: " + msg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(estiloStatus.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(estiloAyuda.Render(
		"↑↓←→ mover · espacio activar · x desactivar y limpiar · 0-9/+/- cantidad · p preset · a/n todas · / filtros · c limpiar filtros · r recargar · s guardar · q salir",
	))
	return b.String()
}

func (m Model) renderFiltros() string {
	vistas := make([]string, len(m.filtros))
	for i, f := range m.filtros {
		vistas[i] = estiloFiltro.Render(etiquetasFiltro[i]+": ") + f.View()
	}
	return strings.Join(vistas, "  ")
}
