package segmentacion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"segmentacion-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type exportRow struct {
	FechaActualizacion time.Time
	IDSegmentacion     uint
	FechaCreacion      time.Time
	IDUsuario          uint
	EstadoSegmentacion string
	Referencia         string
	CodigoBarras       string
	Descripcion        string
	Categoria          string
	Linea              string
	TipoPortafolio     string
	EstadoSku          string
	Cuento             string
	TipoInventario     string
	LlaveNaval         string
	Talla              string
	Cantidad           int
	EstadoDetalle      string
	CodBodega          string
	CodDependencia     string
	Dependencia        string
	DescDependencia    string
	Ciudad             string
	Zona               string
	Clima              string
	RankinLinea        string
	Testeo             string
}

// GET /api/segmentacion/export/csv
// Exporta el detalle completo (o solo un día con ?fecha=YYYY-MM-DD) cruzado
// con la maestra de tiendas. BOM utf-8 para que Excel abra bien los acentos.
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Table("segmentacion_detalles d").
			Select(`d.fecha_actualizacion, d.llave_naval, d.talla, d.cantidad, d.estado AS estado_detalle,
				s.id AS id_segmentacion, s.fecha_creacion, s.id_usuario, s.estado AS estado_segmentacion,
				s.referencia, s.codigo_barras, s.descripcion, s.categoria, s.linea,
				s.tipo_portafolio, s.estado_sku, s.cuento, s.tipo_inventario,
				t.cod_bodega, t.cod_dependencia, t.dependencia, t.desc_dependencia,
				t.ciudad, t.zona, t.clima, t.rankin_linea, t.testeo_fnl AS testeo`).
			Joins("JOIN segmentacions s ON s.id = d.segmentacion_id").
			Joins("LEFT JOIN tiendas t ON t.llave_naval = d.llave_naval").
			Order("d.fecha_actualizacion ASC, s.id ASC")

		if fecha := c.Query("fecha"); fecha != "" {
			desde, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Formato de fecha inválido, usa YYYY-MM-DD")
			}
			q = q.Where("d.fecha_actualizacion >= ? AND d.fecha_actualizacion < ?", desde, desde.AddDate(0, 0, 1))
		}

		var rows []exportRow
		if err := q.Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el export")
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // BOM

		w := csv.NewWriter(&buf)
		_ = w.Write([]string{
			"fecha_actualizacion", "id_segmentacion", "fecha_creacion", "id_usuario", "estado_segmentacion",
			"referenciaSku", "codigo_barras", "descripcion", "categoria", "linea",
			"tipo_portafolio", "estado_sku", "cuento", "tipo_inventario",
			"llave_naval", "talla", "cantidad", "estado_detalle",
			"cod_bodega", "cod_dependencia", "dependencia", "desc_dependencia",
			"ciudad", "zona", "clima", "rankin_linea", "testeo",
		})
		for _, r := range rows {
			_ = w.Write([]string{
				r.FechaActualizacion.Format(time.RFC3339),
				strconv.FormatUint(uint64(r.IDSegmentacion), 10),
				r.FechaCreacion.Format(time.RFC3339),
				strconv.FormatUint(uint64(r.IDUsuario), 10),
				r.EstadoSegmentacion,
				r.Referencia, r.CodigoBarras, r.Descripcion, r.Categoria, r.Linea,
				r.TipoPortafolio, r.EstadoSku, r.Cuento, r.TipoInventario,
				r.LlaveNaval, r.Talla, strconv.Itoa(r.Cantidad), r.EstadoDetalle,
				r.CodBodega, r.CodDependencia, r.Dependencia, r.DescDependencia,
				r.Ciudad, r.Zona, r.Clima, r.RankinLinea, r.Testeo,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo escribir el CSV")
		}

		filename := fmt.Sprintf("segmentaciones_%s.csv", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}
