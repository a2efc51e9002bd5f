package modal

import (
	"sync"
	"time"
)

// Debouncer agrupa la ráfaga de keystrokes de los filtros: el refetch solo
// se dispara cuando pasa el periodo quieto sin ediciones nuevas. Abrir y
// limpiar filtros usan Inmediato.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duracion time.Duration
}

func NewDebouncer(duracion time.Duration) *Debouncer {
	return &Debouncer{duracion: duracion}
}

// Programar agenda fn tras el periodo quieto; una llamada nueva reinicia el
// conteo y descarta la anterior.
func (d *Debouncer) Programar(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duracion, fn)
}

// Cancelar descarta cualquier llamada pendiente.
func (d *Debouncer) Cancelar() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Inmediato cancela lo pendiente y ejecuta fn ya.
func (d *Debouncer) Inmediato(fn func()) {
	d.Cancelar()
	fn()
}
