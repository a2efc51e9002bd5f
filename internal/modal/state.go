package modal

import (
	"sort"
	"strconv"
	"strings"
)

// Asignacion: estado en memoria llave -> talla -> cantidad más el set de
// tiendas activas. Pertenece a un Controller concreto, nunca es global, así
// pueden convivir varios modales (o tests) sin pisarse.
type Asignacion struct {
	cantidades map[string]map[string]int
	activas    map[string]bool
}

func NewAsignacion() *Asignacion {
	return &Asignacion{
		cantidades: make(map[string]map[string]int),
		activas:    make(map[string]bool),
	}
}

func (a *Asignacion) Reset() {
	a.cantidades = make(map[string]map[string]int)
	a.activas = make(map[string]bool)
}

func (a *Asignacion) Activa(llave string) bool {
	return a.activas[llave]
}

func (a *Asignacion) Cantidad(llave, talla string) int {
	return a.cantidades[llave][talla]
}

// SetTiendaActiva marca/desmarca la tienda. Al desactivar con
// limpiarCantidades se ponen en 0 todas las tallas registradas de esa llave.
func (a *Asignacion) SetTiendaActiva(llave string, activa, limpiarCantidades bool) {
	if activa {
		a.activas[llave] = true
		return
	}
	delete(a.activas, llave)
	if limpiarCantidades {
		for talla := range a.cantidades[llave] {
			a.cantidades[llave][talla] = 0
		}
	}
}

// SetCantidad fija la cantidad de una celda. Valores negativos se llevan a 0.
// Si la tienda está inactiva el cambio se rechaza y retorna false.
func (a *Asignacion) SetCantidad(llave, talla string, valor int) bool {
	if !a.activas[llave] {
		return false
	}
	if valor < 0 {
		valor = 0
	}
	if a.cantidades[llave] == nil {
		a.cantidades[llave] = make(map[string]int)
	}
	a.cantidades[llave][talla] = valor
	return true
}

// Incrementar suma delta (puede ser negativo) respetando el piso en 0.
func (a *Asignacion) Incrementar(llave, talla string, delta int) bool {
	return a.SetCantidad(llave, talla, a.Cantidad(llave, talla)+delta)
}

// ParseCantidad interpreta texto de un input de cantidad: cualquier cosa que
// no sea un entero no negativo se coacciona a 0.
func ParseCantidad(texto string) int {
	n, err := strconv.Atoi(strings.TrimSpace(texto))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MergeDetalle incorpora una segmentación previa: fija cantidades y activa
// las tiendas con cantidad positiva. Acepta llaves que no están en el listado
// actual (merge tolerante, no un join).
func (a *Asignacion) MergeDetalle(items []DetalleItem) {
	for _, it := range items {
		if it.LlaveNaval == "" || it.Talla == "" {
			continue
		}
		cantidad := it.Cantidad
		if cantidad < 0 {
			cantidad = 0
		}
		if a.cantidades[it.LlaveNaval] == nil {
			a.cantidades[it.LlaveNaval] = make(map[string]int)
		}
		a.cantidades[it.LlaveNaval][it.Talla] = cantidad
		if cantidad > 0 {
			a.activas[it.LlaveNaval] = true
		}
	}
}

// AplicarPreset copia la curva sugerida a todas las tiendas listadas
// (sobreescribe por talla, no suma). Solo activa tiendas cuyo preset tiene
// alguna cantidad positiva. Sin preset es un no-op.
func (a *Asignacion) AplicarPreset(tiendas []Tienda, preset map[string]int, tallas []string) {
	if len(preset) == 0 {
		return
	}
	for _, t := range tiendas {
		total := 0
		if a.cantidades[t.LlaveNaval] == nil {
			a.cantidades[t.LlaveNaval] = make(map[string]int)
		}
		for _, talla := range tallas {
			cantidad, ok := preset[talla]
			if !ok {
				continue
			}
			if cantidad < 0 {
				cantidad = 0
			}
			a.cantidades[t.LlaveNaval][talla] = cantidad
			total += cantidad
		}
		if total > 0 {
			a.activas[t.LlaveNaval] = true
		}
	}
}

// SetTodasActivas aplica SetTiendaActiva a todas las tiendas listadas.
func (a *Asignacion) SetTodasActivas(tiendas []Tienda, activa, limpiarCantidades bool) {
	for _, t := range tiendas {
		a.SetTiendaActiva(t.LlaveNaval, activa, limpiarCantidades)
	}
}

// Resumen del footer: tiendas activas y unidades totales sobre activas.
func (a *Asignacion) Resumen() (tiendasActivas, totalUnidades int) {
	for llave := range a.activas {
		tiendasActivas++
		for _, cantidad := range a.cantidades[llave] {
			totalUnidades += cantidad
		}
	}
	return tiendasActivas, totalUnidades
}

// Detalle arma la lista a persistir: solo tiendas activas y cantidad > 0.
// Orden determinista (llave, talla) para que el payload sea estable.
func (a *Asignacion) Detalle() []DetalleItem {
	out := make([]DetalleItem, 0)
	for llave, porTalla := range a.cantidades {
		if !a.activas[llave] {
			continue
		}
		for talla, cantidad := range porTalla {
			if cantidad > 0 {
				out = append(out, DetalleItem{LlaveNaval: llave, Talla: talla, Cantidad: cantidad})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LlaveNaval != out[j].LlaveNaval {
			return out[i].LlaveNaval < out[j].LlaveNaval
		}
		return out[i].Talla < out[j].Talla
	})
	return out
}
