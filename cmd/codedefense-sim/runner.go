package main

import (
	"log"

	"github.com/decker502/codedefense/pkg/autopilot"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/metrics"
	"github.com/decker502/codedefense/pkg/systems"
	"github.com/decker502/codedefense/pkg/types"
)

// logInterval 进度日志间隔（帧）
const logInterval = 10000

// levelResult 单关运行结果
type levelResult struct {
	ID         string
	World      int
	Level      int
	Won        bool
	Lost       bool
	Ticks      int
	SimTime    float64
	Score      int
	Spawned    int
	Placements int
	Rejected   int
}

// Outcome 结果标签
func (r levelResult) Outcome() string {
	switch {
	case r.Won:
		return "won"
	case r.Lost:
		return "lost"
	default:
		return "timeout"
	}
}

// runner 用自动种植策略无人值守地跑关卡
type runner struct {
	sim      *systems.Simulation
	director *game.LevelDirector
	pilot    *autopilot.Autopilot
	recorder *metrics.Recorder
	dt       float64
	maxTicks int
}

func newRunner(sim *systems.Simulation, recorder *metrics.Recorder, dt float64, maxTicks int) *runner {
	rules := sim.Rules()
	return &runner{
		sim:      sim,
		director: game.NewLevelDirector(sim.Levels(), rules.InitialResources),
		pilot:    autopilot.New(sim, rules.Grid.Rows, rules.Grid.Cols),
		recorder: recorder,
		dt:       dt,
		maxTicks: maxTicks,
	}
}

// runLevel 运行一关直到终局或达到最大帧数
func (r *runner) runLevel(s *game.GameState) (levelResult, *game.GameState) {
	r.pilot.Reset()
	cfg := r.sim.Levels().LevelFor(s.World, s.Level)
	res := levelResult{ID: cfg.ID, World: s.World, Level: s.Level}

	for res.Ticks < r.maxTicks && !s.IsTerminal() {
		next, m, ok := r.pilot.Act(s)
		switch {
		case ok:
			res.Placements++
			r.observePlacement(m.Plant, true)
		case m.Plant != types.PlantUnknown:
			res.Rejected++
			r.observePlacement(m.Plant, false)
		}

		stepped := r.sim.Step(next, r.dt)
		if r.recorder != nil {
			r.recorder.Observe(next, stepped)
		}
		s = stepped
		res.Ticks++

		if res.Ticks%logInterval == 0 {
			log.Printf("[Runner] %s: tick %d, spawned %d/%d, zombies %d, RAM %d",
				cfg.ID, res.Ticks, s.ZombiesSpawned, s.TotalZombies, len(s.Zombies), s.Resources)
		}
	}

	res.Won, res.Lost = s.Won, s.Lost
	res.SimTime = s.Time
	res.Score = s.Score
	res.Spawned = s.ZombiesSpawned
	return res, s
}

func (r *runner) observePlacement(pt types.PlantType, accepted bool) {
	if r.recorder != nil {
		r.recorder.ObservePlacement(pt, accepted)
	}
}

// run 从 (world, level) 开始连续运行 count 关
// 输掉的关卡不重试，直接进入下一关，累计得分继续保留
func (r *runner) run(world, level, count int) []levelResult {
	results := make([]levelResult, 0, count)
	s := r.director.StartLevel(world, level, 0)

	for i := 0; i < count; i++ {
		res, final := r.runLevel(s)
		results = append(results, res)
		log.Printf("[Runner] %s finished: %s after %d ticks (%.1fs), score %d",
			res.ID, res.Outcome(), res.Ticks, res.SimTime, res.Score)

		if i+1 < count {
			s = r.director.NextLevel(final)
		}
	}
	return results
}
