package world

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputDrainResetsDeltas(t *testing.T) {
	in := NewInputState()
	in.SetHeld(ActionForward, true)
	in.AddPointerDelta(3, -1)
	in.AddPointerDelta(2, 4)
	in.SetButtons(0b101)
	in.PushAction(event.Action{Name: ActionAttack, Phase: event.ActionStart})

	f := in.Drain()
	assert.True(t, f.IsHeld(ActionForward))
	assert.Equal(t, 5.0, f.DX)
	assert.Equal(t, 3.0, f.DY)
	assert.Equal(t, uint32(0b101), f.Buttons)
	require.Len(t, f.Actions, 1)

	f = in.Drain()
	assert.True(t, f.IsHeld(ActionForward), "held state persists across drains")
	assert.Zero(t, f.DX)
	assert.Zero(t, f.DY)
	assert.Equal(t, uint32(0b101), f.Buttons)
	assert.Empty(t, f.Actions)
}

func TestInputFrameIsolatedFromLaterWrites(t *testing.T) {
	in := NewInputState()
	in.SetHeld(ActionLeft, true)
	f := in.Drain()
	in.SetHeld(ActionLeft, false)
	assert.True(t, f.IsHeld(ActionLeft))
}

func TestInputAxis(t *testing.T) {
	f := InputFrame{Held: map[string]bool{ActionForward: true, ActionBackward: true, ActionRight: true}}
	assert.Zero(t, f.Axis(ActionForward, ActionBackward))
	assert.Equal(t, 1.0, f.Axis(ActionRight, ActionLeft))
	assert.Equal(t, -1.0, f.Axis(ActionLeft, ActionRight))
}

func TestInputConcurrentWriters(t *testing.T) {
	in := NewInputState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				in.AddPointerDelta(1, 0)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, in.Drain().DX)
}

func TestCameraBasis(t *testing.T) {
	var c Camera
	assertNear(t, mgl64.Vec3{0, 0, -1}, c.Forward())
	assertNear(t, mgl64.Vec3{1, 0, 0}, c.Right())

	c.Yaw = math.Pi / 2
	assertNear(t, mgl64.Vec3{-1, 0, 0}, c.Forward())
	assertNear(t, mgl64.Vec3{0, 0, -1}, c.Right())
	assertNear(t, c.Forward(), c.Orientation().Rotate(mgl64.Vec3{0, 0, -1}))
}

func TestCameraPitchClampAndHorizontalForward(t *testing.T) {
	c := Camera{Sensitivity: 0.01}
	c.Apply(0, -10000)
	assert.InDelta(t, maxPitch, c.Pitch, 1e-12)
	assert.Zero(t, c.Forward().Y())
	assert.InDelta(t, 1, c.Forward().Len(), 1e-12)
	assert.InDelta(t, 1, c.Look().Len(), 1e-12)
	assert.Greater(t, c.Look().Y(), 0.99)
}

func assertNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}
