package modal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	rutaTiendas = "/api/segmentacion/tiendas/activas"
	rutaUltima  = "/api/segmentacion/segmentaciones/ultima"
	rutaGuardar = "/api/segmentacion/segmentaciones"
)

// API: lo que el controlador necesita de la red. El Cliente resty la
// implementa; los tests inyectan dobles.
type API interface {
	TiendasActivas(ctx context.Context, linea string, f Filtros) ([]Tienda, error)
	UltimaSegmentacion(ctx context.Context, referenciaSku string) ([]DetalleItem, error)
	Guardar(ctx context.Context, req GuardarRequest) (json.RawMessage, error)
}

type Cliente struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewCliente(baseURL, token string, logger *zap.Logger) *Cliente {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if token != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(token)
	}

	return &Cliente{
		http:   httpClient,
		logger: logger.Named("cliente"),
	}
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// TiendasActivas consulta el listado para la línea. Solo los filtros con
// texto (después de trim) viajan en el query string.
func (c *Cliente) TiendasActivas(ctx context.Context, linea string, f Filtros) ([]Tienda, error) {
	params := map[string]string{"linea": strings.TrimSpace(linea)}
	agregarSiNoVacio(params, "dependencia", f.Dependencia)
	agregarSiNoVacio(params, "zona", f.Zona)
	agregarSiNoVacio(params, "ciudad", f.Ciudad)
	agregarSiNoVacio(params, "clima", f.Clima)
	agregarSiNoVacio(params, "testeo", f.Testeo)
	agregarSiNoVacio(params, "clasificacion", f.Clasificacion)

	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&env).
		SetError(&env).
		Get(rutaTiendas)
	if err != nil {
		return nil, fmt.Errorf("tiendas activas: %w", err)
	}
	if resp.IsError() {
		return nil, &ConsultaError{Status: resp.StatusCode(), Mensaje: env.Error}
	}
	if !env.Ok {
		return nil, &ConsultaError{Status: resp.StatusCode(), Mensaje: mensajeOFallback(env.Error, "respuesta sin ok")}
	}

	lista, ok := ExtraerLista(env.Data)
	if !ok {
		return nil, &ConsultaError{Status: resp.StatusCode(), Mensaje: "no se encontró la lista de tiendas en la respuesta"}
	}

	var tiendas []Tienda
	if err := json.Unmarshal(lista, &tiendas); err != nil {
		return nil, &ConsultaError{Status: resp.StatusCode(), Mensaje: "lista de tiendas con formato inesperado"}
	}

	c.logger.Debug("tiendas cargadas", zap.Int("total", len(tiendas)))
	return tiendas, nil
}

// UltimaSegmentacion trae el detalle guardado más reciente para el SKU.
// Un ok:false no es error: simplemente no hay segmentación previa (nil).
// Soporta las dos formas de anidado observadas: {segmentacion:{detalle}} y
// {detalle} directo.
func (c *Cliente) UltimaSegmentacion(ctx context.Context, referenciaSku string) ([]DetalleItem, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("referenciaSku", strings.TrimSpace(referenciaSku)).
		SetResult(&env).
		SetError(&env).
		Get(rutaUltima)
	if err != nil {
		return nil, fmt.Errorf("última segmentación: %w", err)
	}
	if resp.IsError() || !env.Ok {
		return nil, nil
	}

	var data struct {
		Segmentacion *struct {
			Detalle []DetalleItem `json:"detalle"`
		} `json:"segmentacion"`
		Detalle []DetalleItem `json:"detalle"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, nil
	}

	if data.Segmentacion != nil {
		return data.Segmentacion.Detalle, nil
	}
	return data.Detalle, nil
}

// Guardar envía el payload de persistencia y retorna el cuerpo crudo de la
// respuesta para que el interesado lo propague en la notificación.
func (c *Cliente) Guardar(ctx context.Context, req GuardarRequest) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(rutaGuardar)
	if err != nil {
		return nil, fmt.Errorf("guardar segmentación: %w", err)
	}

	var env envelope
	_ = json.Unmarshal(resp.Body(), &env)

	if resp.IsError() {
		return nil, &GuardadoError{Status: resp.StatusCode(), Mensaje: env.Error}
	}
	if !env.Ok {
		return nil, &GuardadoError{Status: resp.StatusCode(), Mensaje: mensajeOFallback(env.Error, "respuesta sin ok")}
	}

	c.logger.Info("segmentación guardada", zap.String("referenciaSku", req.ReferenciaSku))
	return json.RawMessage(resp.Body()), nil
}

func agregarSiNoVacio(params map[string]string, llave, valor string) {
	if v := strings.TrimSpace(valor); v != "" {
		params[llave] = v
	}
}

func mensajeOFallback(mensaje, fallback string) string {
	if strings.TrimSpace(mensaje) != "" {
		return mensaje
	}
	return fallback
}
