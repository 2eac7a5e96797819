// Copyright © 2026 Orrery contributors.

package oversample

import (
	"testing"

	"github.com/orrery-sim/orrery"
)

func newTestBody(id uint64, radius, speed float64) *orrery.Body {
	b, err := orrery.NewBody(id, orrery.Zero3, orrery.NewVector3D(speed, 0, 0), radius, 1)
	if err != nil {
		panic(err)
	}
	return &b
}

func TestStaticCallsStepKTimesWithEqualSubDt(t *testing.T) {
	world := orrery.NewWorld()
	bodies := []*orrery.Body{newTestBody(1, 1, 1)}

	var calls []float64
	step := func(bs []*orrery.Body, subDt float64) { calls = append(calls, subDt) }

	steps := Static{K: 4}.Oversample(world, bodies, 8.0, step, nil)

	if steps != 4 {
		t.Fatalf("steps = %d, want 4", steps)
	}
	for _, dt := range calls {
		if dt != 2.0 {
			t.Errorf("substep dt = %v, want 2.0", dt)
		}
	}
}

func TestStaticTreatsNonPositiveKAsOne(t *testing.T) {
	world := orrery.NewWorld()
	bodies := []*orrery.Body{newTestBody(1, 1, 1)}
	calls := 0
	step := func(bs []*orrery.Body, subDt float64) { calls++ }

	Static{K: 0}.Oversample(world, bodies, 5.0, step, nil)

	if calls != 1 {
		t.Errorf("K=0 should behave as K=1, got %d calls", calls)
	}
}

func TestMinDiameterCrossingTimeConsumesTargetDt(t *testing.T) {
	world := orrery.NewWorld()
	bodies := []*orrery.Body{newTestBody(1, 1, 10)} // crossing time = 0.2

	var total float64
	step := func(bs []*orrery.Body, subDt float64) { total += subDt }

	m := MinDiameterCrossingTime{MaxSteps: 100, MinDt: 1e-6, Safety: 0.5}
	steps := m.Oversample(world, bodies, 1.0, step, nil)

	if steps == 0 {
		t.Fatal("expected at least one substep")
	}
	if diff := total - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("substeps should sum to targetDt, got %v", total)
	}
}

func TestMinDiameterCrossingTimeFallsBackWhenNoFiniteTau(t *testing.T) {
	world := orrery.NewWorld()
	// Zero velocity means no body supplies a finite crossing time.
	bodies := []*orrery.Body{newTestBody(1, 1, 0)}

	calls := 0
	var lastDt float64
	step := func(bs []*orrery.Body, subDt float64) { calls++; lastDt = subDt }

	m := MinDiameterCrossingTime{MaxSteps: 10, MinDt: 1e-6, Safety: 0.5}
	steps := m.Oversample(world, bodies, 2.0, step, nil)

	if steps != 1 || calls != 1 {
		t.Fatalf("expected a single full-dt substep, got steps=%d calls=%d", steps, calls)
	}
	if lastDt != 2.0 {
		t.Errorf("fallback substep should consume all of targetDt, got %v", lastDt)
	}
}

func TestMinDiameterCrossingTimeRespectsHardStepCap(t *testing.T) {
	world := orrery.NewWorld()
	bodies := []*orrery.Body{newTestBody(1, 1e-12, 1e12)} // tiny crossing time

	step := func(bs []*orrery.Body, subDt float64) {}

	m := MinDiameterCrossingTime{MaxSteps: 100000, MinDt: 0, Safety: 1}
	steps := m.Oversample(world, bodies, 1.0, step, nil)

	if steps > hardStepCap {
		t.Errorf("steps = %d, exceeds hard cap %d", steps, hardStepCap)
	}
}
