package system

import (
	gonet "net"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/handler"
	"github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"github.com/l1jgo/arena/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemoteClientDrivesInputAndReceivesFrames(t *testing.T) {
	log := zap.NewNop()
	server, client := gonet.Pipe()
	sess := net.NewSession(server, 1, net.SessionConfig{InQueueSize: 8, OutQueueSize: 32}, log)
	sess.Start()
	t.Cleanup(func() {
		sess.Close()
		client.Close()
	})

	hub := net.NewHub(nil, log)
	hub.Add(sess)
	input := world.NewInputState()
	reg := packet.NewRegistry(log)
	handler.RegisterAll(reg, &handler.Deps{Input: input, Hub: hub, TickRate: testDT, Log: log})

	hello := packet.NewWriterWithOpcode(packet.C_OPCODE_HELLO)
	hello.WriteC(packet.ProtocolVersion)
	hello.WriteS("viewer")
	hold := packet.NewWriterWithOpcode(packet.C_OPCODE_HOLD)
	hold.WriteS(world.ActionJump)
	hold.WriteC(1)
	go func() {
		_ = net.WriteFrame(client, hello.Bytes())
		_ = net.WriteFrame(client, hold.Bytes())
	}()
	require.Eventually(t, func() bool { return len(sess.InQueue) == 2 }, 2*time.Second, 5*time.Millisecond)

	NewNetInputSystem(hub, reg, 8, log).Update(testDT)
	assert.Equal(t, packet.StateReady, sess.State())
	assert.True(t, input.Drain().IsHeld(world.ActionJump))

	store := ecs.NewStore(log)
	e := box(store, "crate", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, 0.5, 0.5}, true)
	ecs.Set(e, component.Presentation{Handle: 5, Visual: "crate"})
	store.Flush()

	NewPresentSystem(store, Presenters{hub}).Update(testDT)
	NewNetOutputSystem(hub).Update(testDT)

	var opcodes []byte
	for i := 0; i < 3; i++ {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
		data, err := net.ReadFrame(client)
		require.NoError(t, err)
		opcodes = append(opcodes, data[0])
	}
	assert.Equal(t, []byte{packet.S_OPCODE_WELCOME, packet.S_OPCODE_ATTACH, packet.S_OPCODE_SYNC}, opcodes)
}

func TestNetInputClosesMisbehavingClient(t *testing.T) {
	log := zap.NewNop()
	server, client := gonet.Pipe()
	sess := net.NewSession(server, 1, net.SessionConfig{InQueueSize: 8, OutQueueSize: 8}, log)
	t.Cleanup(func() {
		sess.Close()
		client.Close()
	})
	hub := net.NewHub(nil, log)
	hub.Add(sess)
	reg := packet.NewRegistry(log)
	handler.RegisterAll(reg, &handler.Deps{Input: world.NewInputState(), Hub: hub, TickRate: testDT, Log: log})

	// Input before hello is a protocol violation.
	sess.InQueue <- []byte{packet.C_OPCODE_BUTTONS, 1, 0, 0, 0}
	NewNetInputSystem(hub, reg, 8, log).Update(testDT)

	assert.True(t, sess.IsClosed())
	hub.Flush()
	assert.Zero(t, hub.Len())
}
