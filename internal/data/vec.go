package data

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Vec3 decodes a three-element YAML sequence such as [1, 0.5, 1].
type Vec3 [3]float64

func (v *Vec3) UnmarshalYAML(n *yaml.Node) error {
	var xs []float64
	if err := n.Decode(&xs); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: want 3 components, got %d", n.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

func (v Vec3) positive() bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}
