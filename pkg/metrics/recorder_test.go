package metrics

import (
	"testing"

	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := NewRecorder(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	return r
}

func TestRecorder_Observe(t *testing.T) {
	r := newTestRecorder(t)

	prev := &game.GameState{World: 1, Level: 2, ZombiesSpawned: 3, Score: 20, Resources: 50}
	next := prev.Clone()
	next.ZombiesSpawned = 4
	next.Score = 45
	next.Resources = 75
	next.Zombies = make([]game.Zombie, 2)
	next.Plants = make([]game.Plant, 3)

	r.Observe(prev, next)

	if got := testutil.ToFloat64(r.ticks); got != 1 {
		t.Errorf("Expected 1 tick, got %v", got)
	}
	if got := testutil.ToFloat64(r.spawned); got != 1 {
		t.Errorf("Expected 1 spawned, got %v", got)
	}
	if got := testutil.ToFloat64(r.scored); got != 25 {
		t.Errorf("Expected score delta 25, got %v", got)
	}
	if got := testutil.ToFloat64(r.resources); got != 75 {
		t.Errorf("Expected resources 75, got %v", got)
	}
	if got := testutil.ToFloat64(r.entities.WithLabelValues("zombie")); got != 2 {
		t.Errorf("Expected 2 zombies, got %v", got)
	}
	if got := testutil.ToFloat64(r.entities.WithLabelValues("plant")); got != 3 {
		t.Errorf("Expected 3 plants, got %v", got)
	}
}

func TestRecorder_Outcome(t *testing.T) {
	r := newTestRecorder(t)

	prev := &game.GameState{World: 1, Level: 1}
	lost := prev.Clone()
	lost.Lost = true

	r.Observe(prev, lost)
	// 终局状态原样返回，不会重复计数
	r.Observe(lost, lost)
	again := lost.Clone()
	r.Observe(lost, again)

	if got := testutil.ToFloat64(r.levels.WithLabelValues("lost")); got != 1 {
		t.Errorf("Expected 1 lost level, got %v", got)
	}
	if got := testutil.ToFloat64(r.levels.WithLabelValues("won")); got != 0 {
		t.Errorf("Expected 0 won levels, got %v", got)
	}
}

func TestRecorder_LevelChangeResetsBaseline(t *testing.T) {
	r := newTestRecorder(t)

	prev := &game.GameState{World: 1, Level: 1, ZombiesSpawned: 8, TotalZombies: 8, Score: 100, Won: true}
	next := &game.GameState{World: 1, Level: 2, ZombiesSpawned: 1, TotalZombies: 11, Score: 100}

	r.Observe(prev, next)
	if got := testutil.ToFloat64(r.spawned); got != 1 {
		t.Errorf("Expected spawned counted from the new level, got %v", got)
	}
	if got := testutil.ToFloat64(r.scored); got != 0 {
		t.Errorf("Carried-over score should not count again, got %v", got)
	}
}

func TestRecorder_ObservePlacement(t *testing.T) {
	r := newTestRecorder(t)

	r.ObservePlacement(types.PlantShooter, true)
	r.ObservePlacement(types.PlantShooter, false)
	r.ObservePlacement(types.PlantShooter, false)

	if got := testutil.ToFloat64(r.placements.WithLabelValues("shooter", "accepted")); got != 1 {
		t.Errorf("Expected 1 accepted, got %v", got)
	}
	if got := testutil.ToFloat64(r.placements.WithLabelValues("shooter", "rejected")); got != 2 {
		t.Errorf("Expected 2 rejected, got %v", got)
	}
}

func TestNewRecorder_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("First NewRecorder failed: %v", err)
	}
	b, err := NewRecorder(reg)
	if err != nil {
		t.Fatalf("Second NewRecorder failed: %v", err)
	}

	a.Observe(&game.GameState{}, &game.GameState{Time: 0.03})
	if got := testutil.ToFloat64(b.ticks); got != 1 {
		t.Errorf("Expected recorders to share collectors, got %v", got)
	}
}
