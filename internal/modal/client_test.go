package modal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func nuevoClienteTest(t *testing.T, handler http.HandlerFunc) *Cliente {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCliente(srv.URL, "", zap.NewNop())
}

func TestTiendasActivasOmiteFiltrosVacios(t *testing.T) {
	var query map[string][]string
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": []any{}})
	})

	_, err := c.TiendasActivas(context.Background(), "12 - Hombre Exterior", Filtros{
		Zona:   "  norte ",
		Ciudad: "   ", // solo espacios: no debe viajar
		Clima:  "",
	})
	require.NoError(t, err)

	assert.Equal(t, "12 - Hombre Exterior", query["linea"][0])
	assert.Equal(t, "norte", query["zona"][0])
	_, hayCiudad := query["ciudad"]
	assert.False(t, hayCiudad)
	_, hayClima := query["clima"]
	assert.False(t, hayClima)
}

func TestTiendasActivasDesenvuelveFormas(t *testing.T) {
	casos := []string{
		`{"ok":true,"data":[{"llave_naval":"S1"}]}`,
		`{"ok":true,"data":{"tiendas":[{"llave_naval":"S1"}]}}`,
		`{"ok":true,"data":{"rows":[{"llave_naval":"S1"}]}}`,
	}
	for _, cuerpo := range casos {
		cuerpo := cuerpo
		c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(cuerpo))
		})

		tiendas, err := c.TiendasActivas(context.Background(), "linea", Filtros{})
		require.NoError(t, err, "cuerpo %s", cuerpo)
		require.Len(t, tiendas, 1)
		assert.Equal(t, "S1", tiendas[0].LlaveNaval)
	}
}

func TestTiendasActivasOkFalseEsConsultaError(t *testing.T) {
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Falta query param: linea"})
	})

	_, err := c.TiendasActivas(context.Background(), "", Filtros{})
	var ce *ConsultaError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "Falta query param: linea")
}

func TestTiendasActivasStatusNo2xx(t *testing.T) {
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "upstream caído"})
	})

	_, err := c.TiendasActivas(context.Background(), "linea", Filtros{})
	var ce *ConsultaError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadGateway, ce.Status)
	assert.Contains(t, ce.Error(), "upstream caído")
}

func TestUltimaSegmentacionOkFalseEsSilenciosa(t *testing.T) {
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "sin datos"})
	})

	detalle, err := c.UltimaSegmentacion(context.Background(), "103834-01")
	require.NoError(t, err)
	assert.Nil(t, detalle)
}

func TestUltimaSegmentacionDosFormasDeAnidado(t *testing.T) {
	casos := []string{
		`{"ok":true,"data":{"existe":true,"segmentacion":{"detalle":[{"llave_naval":"S1","talla":"M","cantidad":3}]}}}`,
		`{"ok":true,"data":{"detalle":[{"llave_naval":"S1","talla":"M","cantidad":3}]}}`,
	}
	for _, cuerpo := range casos {
		cuerpo := cuerpo
		c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(cuerpo))
		})

		detalle, err := c.UltimaSegmentacion(context.Background(), "103834-01")
		require.NoError(t, err, "cuerpo %s", cuerpo)
		require.Len(t, detalle, 1)
		assert.Equal(t, DetalleItem{LlaveNaval: "S1", Talla: "M", Cantidad: 3}, detalle[0])
	}
}

func TestGuardarEnviaDetalleYRetornaRespuesta(t *testing.T) {
	var recibido GuardarRequest
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&recibido)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "id_segmentacion": 7})
	})

	respuesta, err := c.Guardar(context.Background(), GuardarRequest{
		ReferenciaSku: "103834-01",
		Linea:         "Hombre Exterior",
		Detalle:       []DetalleItem{{LlaveNaval: "S1", Talla: "M", Cantidad: 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, []DetalleItem{{LlaveNaval: "S1", Talla: "M", Cantidad: 5}}, recibido.Detalle)
	assert.Contains(t, string(respuesta), `"id_segmentacion":7`)
}

func TestGuardarOkFalseEsGuardadoError(t *testing.T) {
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "falta referenciaSku para guardar"})
	})

	_, err := c.Guardar(context.Background(), GuardarRequest{ReferenciaSku: "x"})
	var ge *GuardadoError
	require.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Error(), "falta referenciaSku")
}

func TestGuardarStatusNo2xx(t *testing.T) {
	c := nuevoClienteTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false,"error":"No se pudo guardar la segmentación"}`))
	})

	_, err := c.Guardar(context.Background(), GuardarRequest{ReferenciaSku: "x"})
	var ge *GuardadoError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusInternalServerError, ge.Status)
}
