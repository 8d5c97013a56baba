package net

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/net/packet"
	"go.uber.org/zap"
)

// Hub owns the connected sessions on the game loop side and mirrors the
// presentation stream to every ready client. It satisfies the simulation's
// Presenter interface.
//
// Accessed only from the game loop goroutine; no locks.
type Hub struct {
	server   *Server
	sessions map[uint64]*Session
	order    []uint64 // ascending session ids
	visuals  map[uint32]string
	log      *zap.Logger
}

// NewHub wraps server. A nil server gives a hub that only tracks sessions
// added with Add, which is what tests use.
func NewHub(server *Server, log *zap.Logger) *Hub {
	return &Hub{
		server:   server,
		sessions: make(map[uint64]*Session, 8),
		visuals:  make(map[uint32]string, 64),
		log:      log,
	}
}

// Accept moves newly connected sessions into the hub.
func (h *Hub) Accept() {
	if h.server == nil {
		return
	}
	for {
		select {
		case sess := <-h.server.NewSessions():
			h.Add(sess)
		default:
			return
		}
	}
}

func (h *Hub) Add(sess *Session) {
	if _, ok := h.sessions[sess.ID]; ok {
		return
	}
	h.sessions[sess.ID] = sess
	i, _ := slices.BinarySearch(h.order, sess.ID)
	h.order = slices.Insert(h.order, i, sess.ID)
}

func (h *Hub) Remove(id uint64) {
	if _, ok := h.sessions[id]; !ok {
		return
	}
	delete(h.sessions, id)
	if i, ok := slices.BinarySearch(h.order, id); ok {
		h.order = slices.Delete(h.order, i, i+1)
	}
}

// Each visits sessions in id order.
func (h *Hub) Each(fn func(*Session)) {
	for _, id := range h.order {
		fn(h.sessions[id])
	}
}

func (h *Hub) Len() int { return len(h.sessions) }

// Replay sends an attach for every live handle, bringing a client that
// just became ready up to date.
func (h *Hub) Replay(sess *Session) {
	handles := make([]uint32, 0, len(h.visuals))
	for handle := range h.visuals {
		handles = append(handles, handle)
	}
	slices.Sort(handles)
	for _, handle := range handles {
		sess.Send(packet.BuildAttach(handle, h.visuals[handle]))
	}
}

func (h *Hub) Attach(handle uint32, visual string) {
	h.visuals[handle] = visual
	h.broadcast(packet.BuildAttach(handle, visual))
}

func (h *Hub) Sync(handle uint32, pos mgl64.Vec3, orient mgl64.Quat) {
	h.broadcast(packet.BuildSync(handle, pos, orient))
}

func (h *Hub) Detach(handle uint32) {
	delete(h.visuals, handle)
	h.broadcast(packet.BuildDetach(handle))
}

func (h *Hub) broadcast(data []byte) {
	for _, id := range h.order {
		if sess := h.sessions[id]; sess.State() == packet.StateReady {
			sess.Send(data)
		}
	}
}

// Flush pushes every session's buffered output to its writer and drops
// sessions that have closed.
func (h *Hub) Flush() {
	var dead []uint64
	for _, id := range h.order {
		sess := h.sessions[id]
		if sess.IsClosed() {
			dead = append(dead, id)
			continue
		}
		sess.FlushOutput()
	}
	for _, id := range dead {
		h.log.Info("client disconnected", zap.Uint64("session", id))
		h.Remove(id)
	}
}

// Shutdown closes the listener and every session.
func (h *Hub) Shutdown() {
	if h.server != nil {
		h.server.Shutdown()
	}
	h.Each(func(s *Session) {
		s.FlushOutput()
		s.Close()
	})
}
