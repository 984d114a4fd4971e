package systems

import (
	"log"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
)

// zombieBehavior 攻击者特殊行为的钩子，未设置的钩子表示无特殊行为
type zombieBehavior struct {
	// preMove 移动前行为（召唤）
	preMove func(t *tick, z *game.Zombie, stats *config.ZombieStats)
	// speed 修正基础速度（狂暴）
	speed func(t *tick, z *game.Zombie, stats *config.ZombieStats, base float64) float64
	// onBlocked 被植物挡住时的行为，返回 true 表示已处理、本帧不再啃食（跳跃）
	onBlocked func(t *tick, z *game.Zombie, stats *config.ZombieStats) bool
}

// defaultZombieBehaviors 行为分发表
func defaultZombieBehaviors() map[config.ZombieBehavior]zombieBehavior {
	return map[config.ZombieBehavior]zombieBehavior{
		config.BehaviorWalk:   {},
		config.BehaviorRage:   {speed: rageSpeed},
		config.BehaviorJump:   {onBlocked: jumpOver},
		config.BehaviorSummon: {preMove: summonHelpers},
	}
}

// updateZombies 攻击者阶段
//
// 顺序：移除已死亡（计分）→ 召唤 → 状态衰减 → 速度 → 阻挡/啃食 → 移动 → 突破判定。
// 召唤出的攻击者暂存在 t.summoned，本帧不参与结算。
func (t *tick) updateZombies() {
	zombies := t.state.Zombies
	kept := zombies[:0]
	for i := range zombies {
		z := zombies[i]
		stats := t.sim.zombies.MustGet(z.Type)

		if z.Health <= 0 {
			t.score += stats.Score
			continue
		}

		behavior, ok := t.sim.zombieBehaviors[stats.Behavior]
		if !ok {
			panic("no behavior handler for zombie behavior " + string(stats.Behavior))
		}

		if behavior.preMove != nil {
			behavior.preMove(t, &z, stats)
		}

		t.decayStatus(&z)

		speed := z.Speed
		if behavior.speed != nil {
			speed = behavior.speed(t, &z, stats, speed)
		}
		if z.Frozen {
			speed *= t.sim.rules.Status.FrozenMultiplier
		}
		if z.Stopped {
			speed = 0
		}

		if !t.resolveBlocking(&z, stats, behavior) {
			z.X -= speed * t.dt
		}

		if z.X <= t.sim.rules.Zombie.BreachX && !t.state.Lost {
			t.state.Lost = true
			t.play(types.SoundGameOver)
			log.Printf("[Simulation] Level %d-%d lost: %s breached row %d", t.state.World, t.state.Level, z.Type, z.Row)
		}

		kept = append(kept, z)
	}
	t.state.Zombies = kept
}

// decayStatus 冰冻/定身到期自动解除
// 先判定再累加：施加状态的那一帧计时为 0
func (t *tick) decayStatus(z *game.Zombie) {
	status := t.sim.rules.Status
	if z.Frozen {
		if z.FrozenFor >= status.FrozenDuration {
			z.Frozen = false
			z.FrozenFor = 0
		} else {
			z.FrozenFor += t.dt
		}
	}
	if z.Stopped {
		if z.StoppedFor >= status.StoppedDuration {
			z.Stopped = false
			z.StoppedFor = 0
		} else {
			z.StoppedFor += t.dt
		}
	}
}

// resolveBlocking 阻挡判定，返回 true 表示本帧被挡住（不移动）
func (t *tick) resolveBlocking(z *game.Zombie, stats *config.ZombieStats, behavior zombieBehavior) bool {
	blocker, ok := t.findBlocker(z)
	if !ok {
		return false
	}

	blockerStats := t.sim.plants.MustGet(blocker.Type)
	switch {
	case isArmedMine(blocker, blockerStats):
		t.detonateMine(blocker, z)
	case blockerStats.Action == config.ActionMine:
		// 未布设的地雷不会反击，直接被吃
		t.eat(z, stats, blocker)
	case behavior.onBlocked != nil && behavior.onBlocked(t, z, stats):
	default:
		t.eat(z, stats, blocker)
	}
	return true
}

// rageSpeed 血量第一次低于阈值后永久狂暴
func rageSpeed(t *tick, z *game.Zombie, stats *config.ZombieStats, base float64) float64 {
	if !z.Enraged && z.Health < stats.RageThreshold {
		z.Enraged = true
		t.emit(float64(z.Row), z.X, "!!!", 1.0, -10, "#ff0000")
	}
	if z.Enraged {
		return base * stats.RageMultiplier
	}
	return base
}

// jumpOver 跳过第一个障碍（每个攻击者只跳一次）
func jumpOver(t *tick, z *game.Zombie, stats *config.ZombieStats) bool {
	if z.HasJumped {
		return false
	}
	z.X -= stats.JumpOffset
	z.HasJumped = true
	t.play(types.SoundPlace)
	t.emit(float64(z.Row), z.X, "JUMP", 0.5, 10, "")
	return true
}

// summonHelpers 出场时立即召唤一次，之后每隔 summonInterval 召唤一次
// 落在网格外的行直接跳过；召唤物不计入关卡生成数
func summonHelpers(t *tick, z *game.Zombie, stats *config.ZombieStats) {
	if z.HasSummoned && z.SinceSummon < stats.SummonInterval {
		z.SinceSummon += t.dt
		return
	}
	z.HasSummoned = true
	z.SinceSummon = 0

	rows := t.sim.rules.Grid.Rows
	helperType := stats.SummonZombieType()
	for _, off := range t.sim.rules.Zombie.SummonOffsets {
		row := z.Row + off.DY
		if row < 0 || row >= rows {
			continue
		}
		x := z.X + off.DX
		t.summoned = append(t.summoned, t.sim.newZombie(helperType, row, x))
		t.emit(float64(row), x, "NEW", 0.5, -5, "")
	}
}
