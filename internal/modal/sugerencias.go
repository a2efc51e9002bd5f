package modal

import (
	"sort"
	"strings"
)

// Sugerencias: valores distintos observados en el último listado, para
// autocompletar los inputs de filtro. Se recalculan en cada refetch exitoso.
type Sugerencias struct {
	Dependencias    []string
	Zonas           []string
	Ciudades        []string
	Climas          []string
	Testeos         []string
	Clasificaciones []string
}

func calcularSugerencias(tiendas []Tienda) Sugerencias {
	return Sugerencias{
		Dependencias:    valoresDistintos(tiendas, func(t Tienda) string { return t.Dependencia }),
		Zonas:           valoresDistintos(tiendas, func(t Tienda) string { return t.Zona }),
		Ciudades:        valoresDistintos(tiendas, func(t Tienda) string { return t.Ciudad }),
		Climas:          valoresDistintos(tiendas, func(t Tienda) string { return t.Clima }),
		Testeos:         valoresDistintos(tiendas, func(t Tienda) string { return t.Testeo }),
		Clasificaciones: valoresDistintos(tiendas, func(t Tienda) string { return t.RankinLinea }),
	}
}

// valoresDistintos: dedup sin distinguir mayúsculas (gana la primera forma
// vista), ordenado alfabéticamente.
func valoresDistintos(tiendas []Tienda, campo func(Tienda) string) []string {
	vistos := make(map[string]string)
	for _, t := range tiendas {
		v := strings.TrimSpace(campo(t))
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := vistos[k]; !ok {
			vistos[k] = v
		}
	}

	out := make([]string, 0, len(vistos))
	for _, v := range vistos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
