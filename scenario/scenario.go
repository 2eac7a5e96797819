// Copyright © 2026 Orrery contributors.

// Package scenario loads YAML-authored initial-condition presets (e.g.
// a two-body Kepler orbit, a thousand-body cluster) into a fresh World
// and Viewport. This is a separate, additive format from the JSON
// runtime save format in package state (§6).
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orrery-sim/orrery"
)

// presetDoc mirrors the YAML shape of a preset file.
type presetDoc struct {
	Name              string      `yaml:"name"`
	ElasticCollisions bool        `yaml:"elastic_collisions"`
	ClosedBoundaries  bool        `yaml:"closed_boundaries"`
	Timescale         float64     `yaml:"timescale"`
	Viewport          viewportDoc `yaml:"viewport"`
	Bodies            []bodyDoc   `yaml:"bodies"`
}

type viewportDoc struct {
	TopLeft     [3]float64 `yaml:"top_left"`
	BottomRight [3]float64 `yaml:"bottom_right"`
	Scale       float64    `yaml:"scale"`
	Autocenter  bool       `yaml:"autocenter"`
}

type bodyDoc struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Radius   float64    `yaml:"radius"`
	Mass     float64    `yaml:"mass"`
	Color    string     `yaml:"color"`
}

// LoadPreset reads a YAML preset at path and builds a fresh World and
// Viewport from it. Unlike package state's JSON format, this is not the
// runtime save format: it is a convenience for seeding a new simulation
// from a named initial condition.
func LoadPreset(path string) (*orrery.World, *orrery.Viewport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}

	var doc presetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("scenario: parsing %s: %w", path, err)
	}

	world := orrery.NewWorld()
	world.ElasticCollisions = doc.ElasticCollisions
	world.ClosedBoundaries = doc.ClosedBoundaries
	if doc.Timescale > 0 {
		world.Timescale = doc.Timescale
	}

	for _, bd := range doc.Bodies {
		body, err := orrery.NewBody(
			world.NextBodyID(),
			vec3(bd.Position),
			vec3(bd.Velocity),
			bd.Radius,
			bd.Mass,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario: %s: body %q: %w", doc.Name, bd.Name, err)
		}
		if bd.Color != "" {
			color, err := orrery.ParseColor(bd.Color)
			if err != nil {
				return nil, nil, fmt.Errorf("scenario: %s: body %q: %w", doc.Name, bd.Name, err)
			}
			body.Color = color
		}
		if bd.Name != "" {
			name := bd.Name
			body.Name = &name
		}
		world.AddBody(&body)
	}

	viewport := &orrery.Viewport{
		TopLeft:     vec3(doc.Viewport.TopLeft),
		BottomRight: vec3(doc.Viewport.BottomRight),
		Scale:       doc.Viewport.Scale,
		Autocenter:  doc.Viewport.Autocenter,
	}

	return world, viewport, nil
}

func vec3(a [3]float64) orrery.Vector3D {
	return orrery.NewVector3D(a[0], a[1], a[2])
}
