package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{ s string }

func TestBusDeliversAfterSwap(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.n) })

	Emit(b, ping{1})
	Emit(b, ping{2})
	b.DispatchAll()
	assert.Empty(t, got, "events must not be visible before the swap")
	assert.Equal(t, 2, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
	assert.Zero(t, b.Pending())

	// A second swap with nothing emitted delivers nothing new.
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
}

func TestBusTypedRouting(t *testing.T) {
	b := NewBus()
	var pings, pongs int
	Subscribe(b, func(ping) { pings++ })
	Subscribe(b, func(pong) { pongs++ })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, pong{"a"})
	Emit(b, ping{1})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 1, pings)
	assert.Equal(t, 2, pongs)
}

func TestBusEmitDuringDispatchWaitsOneTick(t *testing.T) {
	b := NewBus()
	var seen []string
	Subscribe(b, func(p ping) {
		seen = append(seen, "ping")
		Emit(b, pong{"reply"})
	})
	Subscribe(b, func(p pong) { seen = append(seen, p.s) })

	Emit(b, ping{1})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"ping"}, seen)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"ping", "reply"}, seen)
}
