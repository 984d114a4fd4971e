// Package metrics 把模拟的状态转移导出为 Prometheus 指标
package metrics

import (
	"errors"
	"fmt"

	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "codedefense"

// Recorder 观察相邻两帧快照并更新指标
// 计数器只按差值递增，快照本身不会被修改
type Recorder struct {
	ticks      prometheus.Counter
	spawned    prometheus.Counter
	scored     prometheus.Counter
	resources  prometheus.Gauge
	entities   *prometheus.GaugeVec
	levels     *prometheus.CounterVec
	placements *prometheus.CounterVec
}

// NewRecorder 创建并注册指标
// 传入 nil 时注册到 prometheus.DefaultRegisterer；重复注册时复用已有的收集器
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks executed.",
		}),
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zombies_spawned_total",
			Help:      "Attackers spawned by the spawn controller (summoned helpers excluded).",
		}),
		scored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_total",
			Help:      "Score earned from destroyed attackers.",
		}),
		resources: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resources",
			Help:      "Current RAM.",
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Live entities by kind.",
		}, []string{"kind"}),
		levels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_finished_total",
			Help:      "Finished levels by outcome.",
		}, []string{"outcome"}),
		placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_total",
			Help:      "Placement commands by plant type and result.",
		}, []string{"plant", "result"}),
	}

	if err := errors.Join(
		register(reg, &r.ticks),
		register(reg, &r.spawned),
		register(reg, &r.scored),
		register(reg, &r.resources),
		register(reg, &r.entities),
		register(reg, &r.levels),
		register(reg, &r.placements),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// Observe 记录一次状态转移
// prev 为 nil 或关卡发生切换时，计数器以 next 的初始值为基准
func (r *Recorder) Observe(prev, next *game.GameState) {
	if next == nil || prev == next {
		return
	}
	r.ticks.Inc()

	var prevSpawned, prevScore int
	var wasLost, wasWon bool
	if prev != nil && prev.World == next.World && prev.Level == next.Level {
		prevSpawned = prev.ZombiesSpawned
		prevScore = prev.Score
		wasLost, wasWon = prev.Lost, prev.Won
	} else if prev != nil {
		prevScore = prev.Score
	}

	if d := next.ZombiesSpawned - prevSpawned; d > 0 {
		r.spawned.Add(float64(d))
	}
	if d := next.Score - prevScore; d > 0 {
		r.scored.Add(float64(d))
	}
	if next.Lost && !wasLost {
		r.levels.WithLabelValues("lost").Inc()
	}
	if next.Won && !wasWon {
		r.levels.WithLabelValues("won").Inc()
	}

	r.resources.Set(float64(next.Resources))
	r.entities.WithLabelValues("plant").Set(float64(len(next.Plants)))
	r.entities.WithLabelValues("zombie").Set(float64(len(next.Zombies)))
	r.entities.WithLabelValues("projectile").Set(float64(len(next.Projectiles)))
	r.entities.WithLabelValues("particle").Set(float64(len(next.Particles)))
}

// ObservePlacement 记录一次种植命令
func (r *Recorder) ObservePlacement(pt types.PlantType, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	r.placements.WithLabelValues(pt.String(), result).Inc()
}

// register 注册收集器，已注册时改用已有的实例
func register[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("collector already registered with a different type: %w", err)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("failed to register collector: %w", err)
	}
	return nil
}
