package ui

import "github.com/charmbracelet/lipgloss"

var (
	estiloTitulo = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	estiloLinea  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	estiloCursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	estiloError  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	estiloStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	estiloAyuda  = lipgloss.NewStyle().Faint(true)
	estiloFiltro = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)
