package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"segmentacion-backend/cmd/segmentador/ui"
	"segmentacion-backend/internal/logging"
	"segmentacion-backend/internal/modal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagBackend string
	flagToken   string
	flagLogFile string
	flagDebug   bool

	flagSku         string
	flagDescripcion string
	flagCategoria   string
	flagLinea       string
	flagTallas      string
	flagPreset      string
)

func main() {
	root := &cobra.Command{
		Use:          "segmentador",
		Short:        "Modal de segmentación de tiendas en la terminal",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVar(&flagBackend, "backend", "http://localhost:3000", "URL base del backend")
	root.Flags().StringVar(&flagToken, "token", os.Getenv("SEGMENTACION_TOKEN"), "token Bearer (o variable SEGMENTACION_TOKEN)")
	root.Flags().StringVar(&flagLogFile, "log-file", "", "archivo de log (stdout es de la UI)")
	root.Flags().BoolVar(&flagDebug, "debug", false, "log en nivel debug")

	root.Flags().StringVar(&flagSku, "sku", "", "referencia SKU a segmentar")
	root.Flags().StringVar(&flagDescripcion, "descripcion", "", "descripción del SKU")
	root.Flags().StringVar(&flagCategoria, "categoria", "", "categoría del SKU")
	root.Flags().StringVar(&flagLinea, "linea", "", `línea, ej: "12 - Hombre Exterior"`)
	root.Flags().StringVar(&flagTallas, "tallas", "S,M,L,XL", "curva de tallas separada por comas")
	root.Flags().StringVar(&flagPreset, "preset", "", `asignación sugerida, ej: "S=1,M=2"`)

	_ = root.MarkFlagRequired("sku")
	_ = root.MarkFlagRequired("linea")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	archivo, err := logging.AbrirArchivo(flagLogFile)
	if err != nil {
		return err
	}
	if archivo != nil {
		defer archivo.Close()
	}
	logger := logging.ConArchivo(zap.NewNop(), archivo, flagDebug)
	defer func() { _ = logger.Sync() }()

	preset, err := parsePreset(flagPreset)
	if err != nil {
		return err
	}

	ref := modal.ReferenciaDescriptor{
		Sku:         strings.TrimSpace(flagSku),
		Descripcion: strings.TrimSpace(flagDescripcion),
		Categoria:   strings.TrimSpace(flagCategoria),
		LineaRaw:    strings.TrimSpace(flagLinea),
		Tallas:      splitTallas(flagTallas),
		Preset:      preset,
	}

	cliente := modal.NewCliente(flagBackend, flagToken, logger)
	ctrl := modal.NewController(cliente, logger)
	ctrl.SetOnGuardada(func(ev modal.GuardadaEvent) {
		logger.Info("segmentación guardada", zap.String("referenciaSku", ev.ReferenciaSku))
	})

	// p.Send llega al modelo desde el debouncer de filtros; la variable se
	// captura antes de crear el programa
	var p *tea.Program
	m := ui.NewModel(ctrl, ref, func(msg tea.Msg) { p.Send(msg) })
	p = tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func splitTallas(v string) []string {
	partes := strings.Split(v, ",")
	out := make([]string, 0, len(partes))
	for _, p := range partes {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parsePreset interpreta "S=1,M=2" como mapa talla -> cantidad.
func parsePreset(v string) (map[string]int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}

	preset := make(map[string]int)
	for _, par := range strings.Split(v, ",") {
		talla, cant, ok := strings.Cut(par, "=")
		if !ok {
			return nil, fmt.Errorf("preset inválido: %q", par)
		}
		n, err := strconv.Atoi(strings.TrimSpace(cant))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("cantidad inválida en preset: %q", par)
		}
		preset[strings.TrimSpace(talla)] = n
	}
	return preset, nil
}
