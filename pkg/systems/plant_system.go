package systems

import (
	"math"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
)

// plantActionFunc 植物每帧行为
// 返回 false 表示植物在本帧自行移除（一次性植物）
type plantActionFunc func(t *tick, p *game.Plant, stats *config.PlantStats) bool

// defaultPlantActions 行为分发表，按行为类型而不是植物类型分发
func defaultPlantActions() map[config.PlantAction]plantActionFunc {
	return map[config.PlantAction]plantActionFunc{
		config.ActionProduce:   produceResource,
		config.ActionShoot:     shootProjectiles,
		config.ActionDetonate:  detonateArea,
		config.ActionClearLane: clearLane,
		config.ActionMine:      passive, // 布设状态由 Age 决定，触发在攻击者阶段
		config.ActionBuff:      passive, // 由子弹阶段读取
		config.ActionNone:      passive,
	}
}

// updatePlants 植物阶段
// 推进计时器并执行每个植物的行为；血量归零的植物在帧末统一清理
func (t *tick) updatePlants() {
	plants := t.state.Plants
	kept := plants[:0]
	for i := range plants {
		p := plants[i]
		p.Age += t.dt
		p.SinceAction += t.dt

		stats := t.sim.plants.MustGet(p.Type)
		action, ok := t.sim.plantActions[stats.Action]
		if !ok {
			panic("no action handler for plant action " + string(stats.Action))
		}
		if action(t, &p, stats) {
			kept = append(kept, p)
		}
	}
	t.state.Plants = kept
}

func passive(*tick, *game.Plant, *config.PlantStats) bool {
	return true
}

// produceResource 定期产出 RAM
func produceResource(t *tick, p *game.Plant, stats *config.PlantStats) bool {
	if p.SinceAction < stats.Cooldown {
		return true
	}
	p.SinceAction = 0
	t.state.Resources += t.sim.rules.ResourceAmount
	t.play(types.SoundCollect)
	t.emit(float64(p.Row), t.colPercent(p.Col), "+RAM", 1.0, -10, "")
	return true
}

// shootProjectiles 射手家族
// 本行射程内有存活攻击者且冷却结束时，一次发射 shots 发子弹
func shootProjectiles(t *tick, p *game.Plant, stats *config.PlantStats) bool {
	if p.SinceAction < stats.Cooldown || !t.targetInRange(p, stats) {
		return true
	}

	rules := t.sim.rules
	origin := utils.ColumnCenterLane(p.Col, rules.Grid.Cols)
	for i := 0; i < stats.Shots; i++ {
		stop := false
		if stats.StopChance > 0 {
			stop = t.sim.rng.Float64() < stats.StopChance
		}
		t.state.Projectiles = append(t.state.Projectiles, game.Projectile{
			ID:       t.sim.newID(),
			Row:      p.Row,
			X:        origin - float64(i)*rules.Projectile.ShotSpacing, // 错开，避免多发完全重叠
			Damage:   stats.Damage,
			Speed:    rules.Projectile.Speed,
			Ice:      stats.Ice,
			Splash:   stats.Splash,
			Piercing: stats.Piercing,
			Stop:     stop,
		})
	}

	p.SinceAction = 0
	t.play(types.SoundShoot)
	return true
}

// targetInRange 本行 (col, col+range] 内是否有存活攻击者，range 为 0 表示到车道尽头
func (t *tick) targetInRange(p *game.Plant, stats *config.PlantStats) bool {
	cols := t.sim.rules.Grid.Cols
	from := utils.ColumnToLane(p.Col, cols)
	to := 100.0
	if stats.Range > 0 {
		to = utils.ColumnToLane(p.Col+stats.Range, cols)
	}
	for i := range t.state.Zombies {
		z := &t.state.Zombies[i]
		if z.Row == p.Row && z.Health > 0 && z.X > from && z.X <= to {
			return true
		}
	}
	return false
}

// detonateArea 范围炸弹：延迟后对 3 行窄带内的攻击者造成大量伤害，然后移除自己
func detonateArea(t *tick, p *game.Plant, stats *config.PlantStats) bool {
	if p.Age < stats.TriggerDelay {
		return true
	}

	bomb := t.sim.rules.Bomb
	center := t.colPercent(p.Col)
	for i := range t.state.Zombies {
		z := &t.state.Zombies[i]
		if absInt(z.Row-p.Row) <= bomb.RowRadius && math.Abs(z.X-center) < bomb.LateralRange {
			z.Health -= bomb.Damage
		}
	}

	t.play(types.SoundExplode)
	t.emit(float64(p.Row), center, "rm -rf", 1.0, 0, "#ef4444")
	return false
}

// clearLane 清行：延迟后本行所有攻击者直接写入必死血量，然后移除自己
func clearLane(t *tick, p *game.Plant, stats *config.PlantStats) bool {
	if p.Age < stats.TriggerDelay {
		return true
	}

	terminal := t.sim.rules.LaneClear.TerminalHealth
	for i := range t.state.Zombies {
		z := &t.state.Zombies[i]
		if z.Row == p.Row {
			z.Health = terminal
		}
	}

	t.play(types.SoundExplode)
	for c := 0; c < t.sim.rules.Grid.Cols; c++ {
		t.emit(float64(p.Row), t.colPercent(c), "EXIT", 1.0, -2, "#ef4444")
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
