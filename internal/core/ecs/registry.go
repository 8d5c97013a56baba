package ecs

import "slices"

// TagIndex groups live entities by tag, preserving insertion order within a tag.
type TagIndex struct {
	groups map[string][]*Entity
}

func NewTagIndex() *TagIndex {
	return &TagIndex{
		groups: make(map[string][]*Entity, 16),
	}
}

// Add appends e to its tag group.
func (t *TagIndex) Add(e *Entity) {
	t.groups[e.tag] = append(t.groups[e.tag], e)
}

// Remove drops e from its tag group, keeping the order of the rest.
func (t *TagIndex) Remove(e *Entity) {
	group := t.groups[e.tag]
	i := slices.Index(group, e)
	if i < 0 {
		return
	}
	group = slices.Delete(group, i, i+1)
	if len(group) == 0 {
		delete(t.groups, e.tag)
		return
	}
	t.groups[e.tag] = group
}

// Get returns a copy of the group for tag.
func (t *TagIndex) Get(tag string) []*Entity {
	return slices.Clone(t.groups[tag])
}

// Len returns the number of distinct tags with at least one live entity.
func (t *TagIndex) Len() int {
	return len(t.groups)
}
