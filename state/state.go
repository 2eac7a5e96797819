// Copyright © 2026 Orrery contributors.

// Package state implements the versionless JSON (de)serialization
// format for a persisted simulation, per §6. Field names, the
// "#AARRGGBB" color strings, and the ISO-8601 Runtime duration are all
// implemented verbatim; unknown fields are tolerated and missing
// optional fields take the defaults named in §6.
package state

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/orrery-sim/orrery"
)

// Document is the top-level persisted shape described in §6.
type Document struct {
	Viewport orrery.Viewport `json:"Viewport"`
	World    worldDoc        `json:"World"`

	// SelectedBodyPresetId and RespawnerId are GUIDs the enclosing
	// application owns; the core only passes them through (§6).
	SelectedBodyPresetId *uuid.UUID `json:"SelectedBodyPresetId,omitempty"`
	RespawnerId          *uuid.UUID `json:"RespawnerId,omitempty"`

	// RngState is an opaque seed blob; the core never interprets it.
	RngState string `json:"RngState,omitempty"`

	// Runtime is the elapsed simulated time, accepted and emitted as an
	// ISO-8601 duration (§6).
	Runtime Runtime `json:"Runtime"`
}

type worldDoc struct {
	ElasticCollisions bool          `json:"ElasticCollisions"`
	ClosedBoundaries  bool          `json:"ClosedBoundaries"`
	Timescale         float64       `json:"Timescale"`
	Bodies            []orrery.Body `json:"Bodies"`
}

// FromWorld builds a Document snapshot of world and viewport, ready to
// be written with Write. The supplied Runtime/RngState/preset ids are
// copied through untouched.
func FromWorld(world *orrery.World, viewport orrery.Viewport, runtime Runtime, rngState string, selectedBodyPresetId, respawnerId *uuid.UUID) Document {
	bodies := world.Bodies()
	out := make([]orrery.Body, len(bodies))
	for i, b := range bodies {
		out[i] = *b
	}
	return Document{
		Viewport: viewport,
		World: worldDoc{
			ElasticCollisions: world.ElasticCollisions,
			ClosedBoundaries:  world.ClosedBoundaries,
			Timescale:         world.Timescale,
			Bodies:            out,
		},
		SelectedBodyPresetId: selectedBodyPresetId,
		RespawnerId:          respawnerId,
		RngState:             rngState,
		Runtime:              runtime,
	}
}

// Write marshals doc as indented JSON to w.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Read parses a persisted Document from r, tolerating unknown fields.
// It returns CorruptPersistedState if the JSON is malformed or fails
// the semantic checks in §3's body invariants.
func Read(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, NewCorruptPersistedState("malformed JSON: " + err.Error())
	}
	for i := range doc.World.Bodies {
		b := &doc.World.Bodies[i]
		if b.Mass <= 0 {
			return Document{}, NewCorruptPersistedState("body has non-positive mass")
		}
		if b.Radius < 0 {
			return Document{}, NewCorruptPersistedState("body has negative radius")
		}
		b.RadiusSquared = b.Radius * b.Radius
	}
	return doc, nil
}

// ToWorld builds a fresh *orrery.World and *orrery.Viewport from doc.
// Bodies are appended in persisted order, preserving their persisted Id
// rather than reassigning new ones.
func ToWorld(doc Document) (*orrery.World, *orrery.Viewport) {
	world := orrery.NewWorld()
	world.ElasticCollisions = doc.World.ElasticCollisions
	world.ClosedBoundaries = doc.World.ClosedBoundaries
	world.Timescale = doc.World.Timescale
	for i := range doc.World.Bodies {
		b := doc.World.Bodies[i]
		world.AddBody(&b)
	}
	viewport := doc.Viewport
	return world, &viewport
}
