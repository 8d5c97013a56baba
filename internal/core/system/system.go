package system

import "time"

// Phase defines execution ordering within a single tick. Later phases read
// state mutated by earlier ones, so the order is a hard contract.
type Phase int

const (
	PhaseFlush     Phase = iota // 0: commit buffered creations, prune destroyed entities
	PhaseInput                  // 1: drain input bucket, update camera
	PhaseDispatch               // 2: deliver bus events (actions → spawn requests)
	PhaseSpawn                  // 3: drain spawn queue
	PhaseMovement               // 4: reset grounded, integrate movement
	PhaseGravity                // 5: gravity integration
	PhaseCollision              // 6: broad phase rebuild + narrow phase resolution
	PhaseLifespan               // 7: lifespan/health culling
	PhaseOutput                 // 8: presentation sync
	PhasePersist                // 9: combat log flush
)

var phaseNames = [...]string{
	"flush", "input", "dispatch", "spawn", "movement",
	"gravity", "collision", "lifespan", "output", "persist",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
