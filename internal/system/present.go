package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/arena/internal/component"
	"github.com/l1jgo/arena/internal/core/ecs"
	coresys "github.com/l1jgo/arena/internal/core/system"
)

// Presenter is the external renderer. Handles are opaque; the simulation
// never reads anything back.
type Presenter interface {
	Attach(handle uint32, visual string)
	Sync(handle uint32, pos mgl64.Vec3, orient mgl64.Quat)
	Detach(handle uint32)
}

// PresentSystem pushes every presented entity's transform to the presenter.
// Phase 8 (Output). Handles are attached on first sight and detached when
// the entity is pruned.
type PresentSystem struct {
	store     *ecs.Store
	presenter Presenter
	attached  map[uint32]struct{}
}

func NewPresentSystem(store *ecs.Store, presenter Presenter) *PresentSystem {
	s := &PresentSystem{
		store:     store,
		presenter: presenter,
		attached:  make(map[uint32]struct{}, 64),
	}
	store.OnPrune(s.detach)
	return s
}

func (s *PresentSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *PresentSystem) Update(_ time.Duration) {
	ecs.Each2(s.store, func(e *ecs.Entity, pres *component.Presentation, pos *component.Position) {
		if !e.Alive() {
			return
		}
		if _, ok := s.attached[pres.Handle]; !ok {
			s.presenter.Attach(pres.Handle, pres.Visual)
			s.attached[pres.Handle] = struct{}{}
		}
		orient := mgl64.QuatIdent()
		if b, ok := ecs.Get[component.Bounds](e); ok {
			orient = b.Orientation
		}
		s.presenter.Sync(pres.Handle, pos.Vec, orient)
	})
}

func (s *PresentSystem) detach(e *ecs.Entity) {
	pres, ok := ecs.Get[component.Presentation](e)
	if !ok {
		return
	}
	if _, ok := s.attached[pres.Handle]; !ok {
		return
	}
	delete(s.attached, pres.Handle)
	s.presenter.Detach(pres.Handle)
}

// Attached returns how many handles the presenter currently holds.
func (s *PresentSystem) Attached() int { return len(s.attached) }

// Presenters fans every call out to each presenter in order.
type Presenters []Presenter

func (ps Presenters) Attach(handle uint32, visual string) {
	for _, p := range ps {
		p.Attach(handle, visual)
	}
}

func (ps Presenters) Sync(handle uint32, pos mgl64.Vec3, orient mgl64.Quat) {
	for _, p := range ps {
		p.Sync(handle, pos, orient)
	}
}

func (ps Presenters) Detach(handle uint32) {
	for _, p := range ps {
		p.Detach(handle)
	}
}
