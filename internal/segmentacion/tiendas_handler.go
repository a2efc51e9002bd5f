package segmentacion

import (
	"strings"

	"segmentacion-backend/internal/database"
	"segmentacion-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TiendaResponse struct {
	LlaveNaval      string  `json:"llave_naval"`
	CodBodega       string  `json:"cod_bodega"`
	CodDependencia  string  `json:"cod_dependencia"`
	Dependencia     string  `json:"dependencia"`
	DescDependencia string  `json:"desc_dependencia"`
	Ciudad          string  `json:"ciudad"`
	Zona            string  `json:"zona"`
	Clima           string  `json:"clima"`
	Linea           string  `json:"linea"`
	EstadoLinea     string  `json:"estado_linea"`
	EstadoTienda    string  `json:"estado_tienda"`
	Testeo          string  `json:"testeo_fnl"`
	RankinLinea     string  `json:"rankin_linea"`
	VentaPromedio   float64 `json:"venta_promedio"`
	CPD             float64 `json:"cpd"`
	IndiceRotacion  float64 `json:"indice_rotacion"`
}

func toTiendaResponse(t models.Tienda) TiendaResponse {
	return TiendaResponse{
		LlaveNaval:      t.LlaveNaval,
		CodBodega:       t.CodBodega,
		CodDependencia:  t.CodDependencia,
		Dependencia:     t.Dependencia,
		DescDependencia: t.DescDependencia,
		Ciudad:          t.Ciudad,
		Zona:            t.Zona,
		Clima:           t.Clima,
		Linea:           t.Linea,
		EstadoLinea:     t.EstadoLinea,
		EstadoTienda:    t.EstadoTienda,
		Testeo:          t.TesteoFnl,
		RankinLinea:     t.RankinLinea,
		VentaPromedio:   t.VentaPromedio,
		CPD:             t.CPD,
		IndiceRotacion:  t.IndiceRotacion,
	}
}

// GET /api/segmentacion/tiendas/activas?linea=&dependencia=&zona=&ciudad=&clima=&testeo=&clasificacion=
// El modal consume este endpoint; responde siempre con envelope {ok, data|error}.
func TiendasActivasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		linea := strings.TrimSpace(c.Query("linea"))
		if linea == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":    false,
				"error": "Falta query param: linea",
			})
		}

		filtros := FiltrosTiendas{
			Dependencia:   strings.TrimSpace(c.Query("dependencia")),
			Zona:          strings.TrimSpace(c.Query("zona")),
			Ciudad:        strings.TrimSpace(c.Query("ciudad")),
			Clima:         strings.TrimSpace(c.Query("clima")),
			Testeo:        strings.TrimSpace(c.Query("testeo")),
			Clasificacion: strings.TrimSpace(c.Query("clasificacion")),
		}

		tiendas, err := TiendasActivasPorLinea(database.DB, linea, filtros)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": "No se pudieron consultar las tiendas",
			})
		}

		res := make([]TiendaResponse, 0, len(tiendas))
		for _, t := range tiendas {
			res = append(res, toTiendaResponse(t))
		}

		return c.JSON(fiber.Map{
			"ok": true,
			"data": fiber.Map{
				"linea": NormalizarLinea(linea),
				"filtros_aplicados": fiber.Map{
					"dependencia":   nilSiVacio(filtros.Dependencia),
					"zona":          nilSiVacio(filtros.Zona),
					"ciudad":        nilSiVacio(filtros.Ciudad),
					"clima":         nilSiVacio(filtros.Clima),
					"testeo":        nilSiVacio(filtros.Testeo),
					"clasificacion": nilSiVacio(filtros.Clasificacion),
				},
				"tiendas": res,
			},
		})
	}
}

func nilSiVacio(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
