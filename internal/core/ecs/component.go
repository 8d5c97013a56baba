package ecs

import "github.com/TheBitDrifter/mask"

// Kind identifies a component type. Values are owned by the component package.
type Kind uint32

// MaxKinds bounds the number of distinct component kinds an entity can carry.
const MaxKinds = 32

// Component is implemented (on the value receiver) by every attachable data aggregate.
type Component interface {
	Kind() Kind
}

func kindOf[T Component]() Kind {
	var zero T
	return zero.Kind()
}

// MaskOf builds the presence mask for a set of kinds.
func MaskOf(kinds ...Kind) mask.Mask {
	var m mask.Mask
	for _, k := range kinds {
		m.Mark(uint32(k))
	}
	return m
}

// Set attaches c to e, replacing any component of the same kind, and returns
// the stored copy so callers can keep mutating it in place.
func Set[T Component](e *Entity, c T) *T {
	k := c.Kind()
	p := new(T)
	*p = c
	e.comps[k] = p
	e.mask.Mark(uint32(k))
	return p
}

// Get returns the component of type T attached to e, or (nil, false).
func Get[T Component](e *Entity) (*T, bool) {
	c, ok := e.comps[kindOf[T]()].(*T)
	return c, ok
}

// Remove detaches the component of type T from e. No-op if absent.
func Remove[T Component](e *Entity) {
	k := kindOf[T]()
	e.comps[k] = nil
	e.mask.Unmark(uint32(k))
}

// Has reports whether e carries every listed kind.
func Has(e *Entity, kinds ...Kind) bool {
	return e.mask.ContainsAll(MaskOf(kinds...))
}
