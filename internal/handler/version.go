package handler

import (
	"github.com/l1jgo/arena/internal/net"
	"github.com/l1jgo/arena/internal/net/packet"
	"go.uber.org/zap"
)

// HandleHello processes C_HELLO. A matching protocol version moves the
// session to Ready, answers with S_WELCOME and replays the current
// presentation handles; anything else is rejected and closed.
func HandleHello(sess *net.Session, r *packet.Reader, deps *Deps) {
	version := r.ReadC()
	sess.Client = r.ReadS()

	if version != packet.ProtocolVersion {
		deps.Log.Warn("client protocol mismatch",
			zap.Uint64("session", sess.ID),
			zap.Uint8("version", version),
		)
		sess.Send(packet.BuildReject("protocol version mismatch"))
		sess.FlushOutput()
		sess.Close()
		return
	}

	sess.SetState(packet.StateReady)
	sess.Send(packet.BuildWelcome(sess.ID, uint16(deps.TickRate.Milliseconds())))
	if deps.Hub != nil {
		deps.Hub.Replay(sess)
	}
	deps.Log.Info("client ready", zap.Uint64("session", sess.ID), zap.String("client", sess.Client))
}
