package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/kinds.yaml
var defaultKinds []byte

// ErrUnknownKind is returned for a spawn kind missing from the table.
var ErrUnknownKind = errors.New("unknown spawn kind")

// KindTemplate holds the component recipe for one spawnable kind.
type KindTemplate struct {
	Name        string  `yaml:"name"`
	Tag         string  `yaml:"tag"`
	HalfExtents Vec3    `yaml:"half_extents"`
	Yaw         float64 `yaml:"yaw"`          // degrees about +Y
	Speed       float64 `yaml:"speed"`        // initial speed along the request direction
	SpawnOffset float64 `yaml:"spawn_offset"` // distance from origin along direction
	Lifespan    float64 `yaml:"lifespan"`     // seconds, 0 = immortal
	Health      int     `yaml:"health"`       // 0 = no Health component
	Dynamic     bool    `yaml:"dynamic"`      // gets Velocity
	Gravity     bool    `yaml:"gravity"`
	Combustible bool    `yaml:"combustible"`
	Visual      string  `yaml:"visual"` // presenter resource name, empty = not drawn
}

type kindListFile struct {
	Kinds []KindTemplate `yaml:"kinds"`
}

// KindTable holds all spawn templates indexed by name.
type KindTable struct {
	kinds map[string]*KindTemplate
}

// LoadKindTable loads spawn kinds from a YAML file. An empty path or a
// missing file falls back to the built-in table.
func LoadKindTable(path string) (*KindTable, error) {
	if path == "" {
		return ParseKindTable(defaultKinds)
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ParseKindTable(defaultKinds)
	}
	if err != nil {
		return nil, fmt.Errorf("read kind list: %w", err)
	}
	return ParseKindTable(raw)
}

// ParseKindTable decodes and validates a kind list document.
func ParseKindTable(raw []byte) (*KindTable, error) {
	var f kindListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse kind list: %w", err)
	}
	t := &KindTable{kinds: make(map[string]*KindTemplate, len(f.Kinds))}
	for i := range f.Kinds {
		k := &f.Kinds[i]
		if k.Name == "" {
			return nil, fmt.Errorf("kind #%d: missing name", i)
		}
		if _, dup := t.kinds[k.Name]; dup {
			return nil, fmt.Errorf("kind %q: duplicate", k.Name)
		}
		if !k.HalfExtents.positive() {
			return nil, fmt.Errorf("kind %q: half_extents must be positive", k.Name)
		}
		if k.Tag == "" {
			k.Tag = k.Name
		}
		t.kinds[k.Name] = k
	}
	return t, nil
}

// Get returns the template for name.
func (t *KindTable) Get(name string) (*KindTemplate, error) {
	k, ok := t.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Names returns all kind names, sorted.
func (t *KindTable) Names() []string {
	names := make([]string, 0, len(t.kinds))
	for n := range t.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of kinds loaded.
func (t *KindTable) Count() int {
	return len(t.kinds)
}
