package segmentacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarLinea(t *testing.T) {
	casos := map[string]string{
		"17 - Bebito":              "bebito",
		"Bebito":                   "bebito",
		"  12 - Hombre Exterior  ": "hombre exterior",
		"HOMBRE EXTERIOR":          "hombre exterior",
		"":                         "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, NormalizarLinea(entrada), "entrada %q", entrada)
	}
}

func TestNormalizarClasificacion(t *testing.T) {
	casos := []struct {
		entrada  string
		exacta   string
		esExacta bool
	}{
		{"AA", "AA", true},
		{"aa", "AA", true},
		{" b ", "B", true},
		{"N/A", "NA", true},
		{"na", "NA", true},
		{"buena", "BUENA", false},
		{"", "", false},
	}
	for _, c := range casos {
		exacta, esExacta := normalizarClasificacion(c.entrada)
		assert.Equal(t, c.exacta, exacta, "entrada %q", c.entrada)
		assert.Equal(t, c.esExacta, esExacta, "entrada %q", c.entrada)
	}
}

func TestGuardarSegmentacionSinReferencia(t *testing.T) {
	// la validación corre antes de cualquier acceso a datos
	_, err := GuardarSegmentacion(nil, GuardarRequest{ReferenciaSku: "   "}, 1)
	require.ErrorIs(t, err, ErrFaltaReferencia)
}
