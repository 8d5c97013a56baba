package data

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/arena.yaml
var defaultArena []byte

// Arena describes the static layout and initial population of a match.
type Arena struct {
	Name   string      `yaml:"name"`
	Player PlayerSpawn `yaml:"player"`
	Blocks []Block     `yaml:"blocks"`
	Props  []Prop      `yaml:"props"`
}

// PlayerSpawn configures the player-controlled entity.
type PlayerSpawn struct {
	Origin      Vec3   `yaml:"origin"`
	HalfExtents Vec3   `yaml:"half_extents"`
	Health      int    `yaml:"health"`
	Visual      string `yaml:"visual"`
}

// Block is a static oriented box: floor, wall, ramp.
type Block struct {
	Tag         string  `yaml:"tag"`
	Center      Vec3    `yaml:"center"`
	HalfExtents Vec3    `yaml:"half_extents"`
	Yaw         float64 `yaml:"yaw"` // degrees about +Y
	Visual      string  `yaml:"visual"`
}

// Prop is a spawn request issued when the arena loads.
type Prop struct {
	Kind      string `yaml:"kind"`
	Origin    Vec3   `yaml:"origin"`
	Direction Vec3   `yaml:"direction"`
}

// LoadArena loads an arena layout. An empty path or a missing file falls
// back to the built-in arena.
func LoadArena(path string) (*Arena, error) {
	if path == "" {
		return ParseArena(defaultArena)
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ParseArena(defaultArena)
	}
	if err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	return ParseArena(raw)
}

// ParseArena decodes and validates an arena document.
func ParseArena(raw []byte) (*Arena, error) {
	var a Arena
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse arena: %w", err)
	}
	if !a.Player.HalfExtents.positive() {
		return nil, fmt.Errorf("arena %q: player half_extents must be positive", a.Name)
	}
	if a.Player.Health <= 0 {
		a.Player.Health = 100
	}
	for i, b := range a.Blocks {
		if !b.HalfExtents.positive() {
			return nil, fmt.Errorf("arena %q: block #%d half_extents must be positive", a.Name, i)
		}
		if b.Tag == "" {
			a.Blocks[i].Tag = "block"
		}
	}
	for i, p := range a.Props {
		if p.Kind == "" {
			return nil, fmt.Errorf("arena %q: prop #%d missing kind", a.Name, i)
		}
	}
	return &a, nil
}
