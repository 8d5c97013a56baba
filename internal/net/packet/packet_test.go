package packet

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSyncPacketLayout(t *testing.T) {
	data := BuildSync(9, mgl64.Vec3{1.5, -2, 3}, mgl64.QuatIdent())
	require.Len(t, data, 1+4+7*8)

	r := NewReader(data)
	assert.Equal(t, S_OPCODE_SYNC, r.Opcode())
	assert.Equal(t, uint32(9), r.ReadDU())
	assert.Equal(t, 1.5, r.ReadF())
	assert.Equal(t, -2.0, r.ReadF())
	assert.Equal(t, 3.0, r.ReadF())
	assert.Equal(t, 1.0, r.ReadF())
	assert.Equal(t, 3*8, r.Remaining())
}

func TestReaderPastEndReturnsZero(t *testing.T) {
	r := NewReader([]byte{C_OPCODE_HOLD, 'j', 'u', 'm', 'p'})
	assert.Equal(t, "jump", r.ReadS())
	assert.Zero(t, r.ReadC())
	assert.Zero(t, r.ReadDU())
	assert.Zero(t, r.ReadF())
	assert.Equal(t, "", r.ReadS())
	assert.Zero(t, r.Remaining())
}

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got string
	reg.Register(C_OPCODE_HOLD, []SessionState{StateReady}, func(sess any, r *Reader) {
		got = sess.(string) + ":" + r.ReadS()
	})
	reg.Register(C_OPCODE_LOOK, []SessionState{StateReady}, func(any, *Reader) {
		panic("boom")
	})

	w := NewWriterWithOpcode(C_OPCODE_HOLD)
	w.WriteS("forward")
	w.WriteC(1)

	require.NoError(t, reg.Dispatch("s1", StateReady, w.Bytes()))
	assert.Equal(t, "s1:forward", got)

	assert.Error(t, reg.Dispatch("s1", StateHandshake, w.Bytes()))
	assert.ErrorIs(t, reg.Dispatch("s1", StateReady, nil), ErrEmptyPacket)
	assert.NoError(t, reg.Dispatch("s1", StateReady, []byte{200}))
	assert.Error(t, reg.Dispatch("s1", StateReady, []byte{C_OPCODE_LOOK}))
}
