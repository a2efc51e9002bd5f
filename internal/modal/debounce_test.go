package modal

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerColapsaRafaga(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var llamadas int32

	for i := 0; i < 5; i++ {
		d.Programar(func() { atomic.AddInt32(&llamadas, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&llamadas))
}

func TestDebouncerCancelar(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var llamadas int32

	d.Programar(func() { atomic.AddInt32(&llamadas, 1) })
	d.Cancelar()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&llamadas))
}

func TestDebouncerInmediato(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var llamadas int32

	d.Programar(func() { atomic.AddInt32(&llamadas, 100) }) // queda pendiente
	d.Inmediato(func() { atomic.AddInt32(&llamadas, 1) })

	assert.Equal(t, int32(1), atomic.LoadInt32(&llamadas), "lo pendiente se descarta")
}
