package systems

import (
	"math"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
)

// 子弹、攻击者两个阶段共用的战斗规则

// findTarget 查找子弹的命中目标
// 按集合顺序遍历同一行的攻击者，返回第一个横向距离在容差内且血量为正的目标
func (t *tick) findTarget(p *game.Projectile) (int, bool) {
	tolerance := t.sim.rules.Projectile.HitTolerance
	for i := range t.state.Zombies {
		z := &t.state.Zombies[i]
		if z.Row == p.Row && z.Health > 0 && math.Abs(z.X-p.X) < tolerance {
			return i, true
		}
	}
	return -1, false
}

// applyHit 结算一次命中
// 主目标受到子弹全额伤害；溅射子弹额外对周围攻击者造成固定溅射伤害（主目标按 ID 排除）
func (t *tick) applyHit(p *game.Projectile, targetIdx int) {
	target := &t.state.Zombies[targetIdx]
	target.Health -= p.Damage

	if p.Splash {
		t.applySplash(p, target)
	}

	// 火焰子弹不再附带冰冻
	if p.Ice && !p.Fire {
		target.Freeze()
	}

	if p.Stop {
		target.Stop()
		t.emit(float64(target.Row), target.X, "STOP", 1.0, 5, "#facc15")
	}

	t.play(types.SoundHit)
	t.emit(float64(target.Row), target.X, "{}", 0.3, -10, "")
}

// applySplash 溅射：主目标上下各 rowRadius 行、横向 radius 内的其他攻击者
func (t *tick) applySplash(p *game.Projectile, primary *game.Zombie) {
	splash := t.sim.rules.Splash
	for i := range t.state.Zombies {
		other := &t.state.Zombies[i]
		if other.ID == primary.ID {
			continue
		}
		if absInt(other.Row-primary.Row) > splash.RowRadius || math.Abs(other.X-primary.X) >= splash.Radius {
			continue
		}
		other.Health -= splash.Damage
		if p.Ice {
			other.Freeze()
		}
		t.emit(float64(other.Row), other.X, "*", 0.3, -5, "#10b981")
	}
}

// findBlocker 查找挡住攻击者的植物
// 同一行、列坐标与攻击者位置的距离在阻挡容差内、且仍然存活的第一个植物
func (t *tick) findBlocker(z *game.Zombie) (*game.Plant, bool) {
	tolerance := t.sim.rules.Zombie.BlockTolerance
	for i := range t.state.Plants {
		p := &t.state.Plants[i]
		if p.Row == z.Row && p.Health > 0 && math.Abs(t.colPercent(p.Col)-z.X) < tolerance {
			return p, true
		}
	}
	return nil, false
}

// isArmedMine 植物是否为已布设的地雷
func isArmedMine(p *game.Plant, stats *config.PlantStats) bool {
	return stats.Action == config.ActionMine && p.Age >= stats.ArmingTime
}

// detonateMine 已布设的地雷被触碰：只对触碰者造成伤害，地雷随即销毁
func (t *tick) detonateMine(mine *game.Plant, z *game.Zombie) {
	z.Health -= t.sim.rules.Mine.Damage
	mine.Health = 0
	t.play(types.SoundExplode)
	t.emit(float64(z.Row), z.X, "ASSERT ERROR", 1.0, -10, "#ef4444")
}

// eat 啃食：按每秒伤害乘以 dt 扣除植物血量
func (t *tick) eat(z *game.Zombie, stats *config.ZombieStats, victim *game.Plant) {
	victim.Health -= stats.EatRate() * t.dt
	if t.sim.rng.Float64() < t.sim.rules.Zombie.ErrorParticleChance {
		t.emit(float64(z.Row), z.X-2, "ERR", 0.5, -5, "#ef4444")
	}
}
