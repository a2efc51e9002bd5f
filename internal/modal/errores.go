package modal

import "fmt"

// ConsultaError: el GET de tiendas o de segmentación previa falló, sea por
// transporte (status no-2xx) o por protocolo (ok:false en un 200).
type ConsultaError struct {
	Status  int
	Mensaje string
}

func (e *ConsultaError) Error() string {
	if e.Mensaje != "" {
		return fmt.Sprintf("consulta fallida: %s", e.Mensaje)
	}
	return fmt.Sprintf("consulta fallida: HTTP %d", e.Status)
}

// ValidacionError: falta un campo obligatorio antes de intentar el guardado.
// Nunca llega a la red.
type ValidacionError struct {
	Campo string
}

func (e *ValidacionError) Error() string {
	return fmt.Sprintf("falta %s para guardar", e.Campo)
}

// GuardadoError: el POST de guardado falló (status no-2xx u ok:false).
type GuardadoError struct {
	Status  int
	Mensaje string
}

func (e *GuardadoError) Error() string {
	if e.Mensaje != "" {
		return fmt.Sprintf("guardado fallido: %s", e.Mensaje)
	}
	return fmt.Sprintf("guardado fallido: HTTP %d", e.Status)
}
