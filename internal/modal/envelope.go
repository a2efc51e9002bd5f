package modal

import (
	"bytes"
	"encoding/json"
)

// Los backends han respondido el listado de tiendas con varias formas de
// envelope. En vez de adivinar llaves recursivamente sin límite, se prueba
// una lista explícita de estrategias en orden; gana la primera que encuentra
// una lista.

// profundidad máxima de contenedores anidados que se exploran
const maxProfundidadEnvelope = 3

// llaves contenedoras conocidas, en orden de prioridad
var llavesContenedoras = []string{"data", "rows", "tiendas", "items", "result"}

// ExtraerLista localiza la lista JSON dentro de un payload de forma variable:
// si ya es un arreglo lo retorna tal cual; si es un objeto, prueba las llaves
// contenedoras conocidas en orden, descendiendo hasta maxProfundidadEnvelope.
func ExtraerLista(raw json.RawMessage) (json.RawMessage, bool) {
	return extraerLista(raw, maxProfundidadEnvelope)
}

func extraerLista(raw json.RawMessage, profundidad int) (json.RawMessage, bool) {
	if esArregloJSON(raw) {
		return raw, true
	}
	if profundidad <= 0 {
		return nil, false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}

	for _, llave := range llavesContenedoras {
		inner, ok := obj[llave]
		if !ok {
			continue
		}
		if lista, ok := extraerLista(inner, profundidad-1); ok {
			return lista, true
		}
	}
	return nil, false
}

func esArregloJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
