package segmentacion

import (
	"errors"
	"sort"
	"strings"
	"time"

	"segmentacion-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Clasificaciones que se comparan exactas; cualquier otro texto busca parcial.
var clasificacionesExactas = map[string]bool{
	"AA": true, "A": true, "B": true, "C": true, "NA": true,
}

var ErrFaltaReferencia = errors.New("falta referenciaSku para guardar")

// NormalizarLinea convierte "17 - Bebito" -> "bebito" y "Bebito" -> "bebito".
func NormalizarLinea(lineaRaw string) string {
	v := strings.TrimSpace(lineaRaw)
	if idx := strings.Index(v, " - "); idx >= 0 {
		v = v[idx+len(" - "):]
	}
	return strings.ToLower(strings.TrimSpace(v))
}

// normalizarClasificacion decide si el filtro de clasificación se compara
// exacto (AA/A/B/C/NA, aceptando "N/A") o parcial.
func normalizarClasificacion(v string) (exacta string, esExacta bool) {
	up := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
	if up == "N/A" {
		up = "NA"
	}
	return up, clasificacionesExactas[up]
}

type FiltrosTiendas struct {
	Dependencia   string
	Zona          string
	Ciudad        string
	Clima         string
	Testeo        string
	Clasificacion string
}

// TiendasActivasPorLinea retorna las tiendas con tienda y línea activas para
// la línea normalizada, aplicando filtros parciales tipo buscador.
func TiendasActivasPorLinea(db *gorm.DB, lineaRaw string, f FiltrosTiendas) ([]models.Tienda, error) {
	lineaNorm := NormalizarLinea(lineaRaw)

	q := db.Model(&models.Tienda{}).
		Where("linea_norm = ?", lineaNorm).
		Where("LOWER(estado_tienda) = ?", "activo").
		Where("LOWER(estado_linea) = ?", "activo")

	if v := strings.TrimSpace(f.Dependencia); v != "" {
		q = q.Where("dependencia ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(f.Zona); v != "" {
		q = q.Where("zona ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(f.Ciudad); v != "" {
		q = q.Where("ciudad ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(f.Clima); v != "" {
		q = q.Where("clima ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(f.Testeo); v != "" {
		q = q.Where("COALESCE(testeo_fnl,'') ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(f.Clasificacion); v != "" {
		exacta, esExacta := normalizarClasificacion(v)
		if esExacta {
			q = q.Where("UPPER(COALESCE(rankin_linea,'')) = ?", exacta)
		} else {
			q = q.Where("COALESCE(rankin_linea,'') ILIKE ?", "%"+v+"%")
		}
	}

	var tiendas []models.Tienda
	err := q.Order("COALESCE(NULLIF(desc_dependencia,''), dependencia)").Find(&tiendas).Error
	return tiendas, err
}

type DetalleItem struct {
	LlaveNaval string `json:"llave_naval"`
	Talla      string `json:"talla"`
	Cantidad   int    `json:"cantidad"`
}

type UltimaSegmentacionData struct {
	Existe       bool                 `json:"existe"`
	Segmentacion *SegmentacionPayload `json:"segmentacion"`
}

type SegmentacionPayload struct {
	IDSegmentacion uint          `json:"id_segmentacion"`
	IDUsuario      uint          `json:"id_usuario"`
	FechaCreacion  time.Time     `json:"fecha_creacion"`
	Estado         string        `json:"estado_segmentacion"`
	ReferenciaSku  string        `json:"referenciaSku"`
	CodigoBarras   string        `json:"codigo_barras"`
	Descripcion    string        `json:"descripcion"`
	Categoria      string        `json:"categoria"`
	Linea          string        `json:"linea"`
	TipoPortafolio string        `json:"tipo_portafolio"`
	PrecioUnitario float64       `json:"precio_unitario"`
	EstadoSku      string        `json:"estado_sku"`
	Cuento         string        `json:"cuento"`
	TipoInventario string        `json:"tipo_inventario"`
	Detalle        []DetalleItem `json:"detalle"`
}

// UltimaSegmentacion busca la cabecera más reciente para la referencia y su
// detalle activo. Una referencia sin historial no es un error: existe=false.
func UltimaSegmentacion(db *gorm.DB, referenciaSku string) (UltimaSegmentacionData, error) {
	ref := strings.TrimSpace(referenciaSku)
	if ref == "" {
		return UltimaSegmentacionData{Existe: false}, nil
	}

	var head models.Segmentacion
	err := db.Where("referencia = ?", ref).
		Order("fecha_creacion DESC").
		First(&head).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UltimaSegmentacionData{Existe: false}, nil
	}
	if err != nil {
		return UltimaSegmentacionData{}, err
	}

	var detalle []models.SegmentacionDetalle
	err = db.Where("segmentacion_id = ? AND estado = ?", head.ID, models.EstadoDetalleActivo).
		Find(&detalle).Error
	if err != nil {
		return UltimaSegmentacionData{}, err
	}

	items := make([]DetalleItem, 0, len(detalle))
	for _, d := range detalle {
		items = append(items, DetalleItem{LlaveNaval: d.LlaveNaval, Talla: d.Talla, Cantidad: d.Cantidad})
	}

	return UltimaSegmentacionData{
		Existe: true,
		Segmentacion: &SegmentacionPayload{
			IDSegmentacion: head.ID,
			IDUsuario:      head.IDUsuario,
			FechaCreacion:  head.FechaCreacion,
			Estado:         head.Estado,
			ReferenciaSku:  head.Referencia,
			CodigoBarras:   head.CodigoBarras,
			Descripcion:    head.Descripcion,
			Categoria:      head.Categoria,
			Linea:          head.Linea,
			TipoPortafolio: head.TipoPortafolio,
			PrecioUnitario: head.PrecioUnitario,
			EstadoSku:      head.EstadoSku,
			Cuento:         head.Cuento,
			TipoInventario: head.TipoInventario,
			Detalle:        items,
		},
	}, nil
}

type GuardarRequest struct {
	ReferenciaSku  string        `json:"referenciaSku"`
	CodigoBarras   string        `json:"codigo_barras"`
	Descripcion    string        `json:"descripcion"`
	Categoria      string        `json:"categoria"`
	Linea          string        `json:"linea"`
	TipoPortafolio string        `json:"tipo_portafolio"`
	PrecioUnitario float64       `json:"precio_unitario"`
	EstadoSku      string        `json:"estado_sku"`
	Cuento         string        `json:"cuento"`
	TipoInventario string        `json:"tipo_inventario"`
	IDUsuario      uint          `json:"id_usuario"`
	Detalle        []DetalleItem `json:"detalle"`
}

type ResumenGuardado struct {
	TiendasConCantidad int      `json:"tiendas_con_cantidad"`
	TotalUnidades      int      `json:"total_unidades"`
	TallasUsadas       []string `json:"tallas_usadas"`
	Desactivadas       int      `json:"desactivadas"`
	IsSegmented        bool     `json:"is_segmented"`
}

type GuardarResult struct {
	IDSegmentacion uint            `json:"id_segmentacion"`
	Mensaje        string          `json:"mensaje"`
	Resumen        ResumenGuardado `json:"resumen"`
}

type llaveTalla struct {
	llave string
	talla string
}

// GuardarSegmentacion crea una cabecera nueva con su detalle y deja la
// anterior Inactiva. Las combinaciones llave+talla que tenían cantidad y ya
// no aparecen se insertan con cantidad 0 / Inactivo para que el export las
// reporte como desactivadas.
func GuardarSegmentacion(db *gorm.DB, req GuardarRequest, defaultUserID uint) (GuardarResult, error) {
	now := time.Now()

	ref := strings.TrimSpace(req.ReferenciaSku)
	if ref == "" {
		return GuardarResult{}, ErrFaltaReferencia
	}

	// Solo cuentan las filas con cantidad > 0
	filasActivo := make([]DetalleItem, 0, len(req.Detalle))
	newKeys := make(map[llaveTalla]bool)
	tiendasConCantidad := make(map[string]bool)
	tallasUsadas := make(map[string]bool)
	totalUnidades := 0

	for _, d := range req.Detalle {
		llave := strings.TrimSpace(d.LlaveNaval)
		talla := strings.TrimSpace(d.Talla)
		if llave == "" || talla == "" || d.Cantidad <= 0 {
			continue
		}
		filasActivo = append(filasActivo, DetalleItem{LlaveNaval: llave, Talla: talla, Cantidad: d.Cantidad})
		newKeys[llaveTalla{llave, talla}] = true
		tiendasConCantidad[llave] = true
		tallasUsadas[talla] = true
		totalUnidades += d.Cantidad
	}

	nuevaActiva := len(newKeys) > 0

	idUsuario := req.IDUsuario
	if idUsuario == 0 {
		idUsuario = defaultUserID
	}

	var result GuardarResult

	err := db.Transaction(func(tx *gorm.DB) error {
		// Última cabecera activa, bloqueada para evitar carreras entre guardados
		var last models.Segmentacion
		var lastID uint
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("referencia = ? AND estado = ?", ref, models.EstadoSegmentacionActiva).
			Order("fecha_creacion DESC").
			First(&last).Error
		switch {
		case err == nil:
			lastID = last.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			// primera segmentación de la referencia
		default:
			return err
		}

		// Combinaciones previas con cantidad, para detectar desactivadas
		prevKeys := make(map[llaveTalla]bool)
		if lastID != 0 {
			var prev []models.SegmentacionDetalle
			if err := tx.Where("segmentacion_id = ? AND estado = ? AND cantidad > 0", lastID, models.EstadoDetalleActivo).
				Find(&prev).Error; err != nil {
				return err
			}
			for _, p := range prev {
				prevKeys[llaveTalla{p.LlaveNaval, p.Talla}] = true
			}

			if err := tx.Model(&models.Segmentacion{}).
				Where("id = ?", lastID).
				Update("estado", models.EstadoSegmentacionInactiva).Error; err != nil {
				return err
			}
		}

		desactivadas := make([]llaveTalla, 0)
		for k := range prevKeys {
			if !newKeys[k] {
				desactivadas = append(desactivadas, k)
			}
		}

		estado := models.EstadoSegmentacionInactiva
		if nuevaActiva {
			estado = models.EstadoSegmentacionActiva
		}

		head := models.Segmentacion{
			IDUsuario:      idUsuario,
			FechaCreacion:  now,
			Estado:         estado,
			Referencia:     ref,
			CodigoBarras:   strings.TrimSpace(req.CodigoBarras),
			Descripcion:    strings.TrimSpace(req.Descripcion),
			Categoria:      strings.TrimSpace(req.Categoria),
			Linea:          strings.TrimSpace(req.Linea),
			TipoPortafolio: strings.TrimSpace(req.TipoPortafolio),
			PrecioUnitario: req.PrecioUnitario,
			EstadoSku:      strings.TrimSpace(req.EstadoSku),
			Cuento:         strings.TrimSpace(req.Cuento),
			TipoInventario: strings.TrimSpace(req.TipoInventario),
		}
		if err := tx.Create(&head).Error; err != nil {
			return err
		}

		filas := make([]models.SegmentacionDetalle, 0, len(filasActivo)+len(desactivadas))
		for _, r := range filasActivo {
			filas = append(filas, models.SegmentacionDetalle{
				SegmentacionID:     head.ID,
				LlaveNaval:         r.LlaveNaval,
				Talla:              r.Talla,
				Cantidad:           r.Cantidad,
				Estado:             models.EstadoDetalleActivo,
				FechaActualizacion: now,
			})
		}
		for _, k := range desactivadas {
			filas = append(filas, models.SegmentacionDetalle{
				SegmentacionID:     head.ID,
				LlaveNaval:         k.llave,
				Talla:              k.talla,
				Cantidad:           0,
				Estado:             models.EstadoDetalleInactivo,
				FechaActualizacion: now,
			})
		}
		if len(filas) > 0 {
			if err := tx.Create(&filas).Error; err != nil {
				return err
			}
		}

		// Badge "segmentada": segmented_at queda NULL si no hay filas activas
		var segmentedAt *time.Time
		if nuevaActiva {
			segmentedAt = &now
		}
		vista := models.ReferenciaVista{
			ReferenciaSku: ref,
			FirstSeen:     now,
			LastSeen:      now,
			SegmentedAt:   segmentedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "referencia_sku"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"last_seen": now, "segmented_at": segmentedAt}),
		}).Create(&vista).Error; err != nil {
			return err
		}

		tallas := make([]string, 0, len(tallasUsadas))
		for t := range tallasUsadas {
			tallas = append(tallas, t)
		}
		sort.Strings(tallas)

		result = GuardarResult{
			IDSegmentacion: head.ID,
			Mensaje:        "Segmentación guardada",
			Resumen: ResumenGuardado{
				TiendasConCantidad: len(tiendasConCantidad),
				TotalUnidades:      totalUnidades,
				TallasUsadas:       tallas,
				Desactivadas:       len(desactivadas),
				IsSegmented:        nuevaActiva,
			},
		}
		return nil
	})
	if err != nil {
		return GuardarResult{}, err
	}

	return result, nil
}
