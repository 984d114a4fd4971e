package systems

import (
	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/utils"
)

// updateProjectiles 子弹阶段
//
// 每发子弹依次：前进 → 火焰增益检查 → 碰撞结算 → 保留判定。
// 每发子弹每帧最多命中一个目标；穿透子弹命中后保留，下一帧继续命中后面的目标。
func (t *tick) updateProjectiles() {
	exit := t.sim.rules.Projectile.ExitBoundary
	projectiles := t.state.Projectiles
	kept := projectiles[:0]
	for i := range projectiles {
		p := projectiles[i]
		p.X += p.Speed * t.dt

		t.applyFireBuff(&p)

		hit := false
		if idx, ok := t.findTarget(&p); ok {
			hit = true
			t.applyHit(&p, idx)
		}

		if (!hit || p.Piercing) && p.X < exit {
			kept = append(kept, p)
		}
	}
	t.state.Projectiles = kept
}

// applyFireBuff 经过 @wrapper 所在格子的普通子弹伤害翻倍并标记为火焰
// 冰冻、溅射和已经是火焰的子弹不受影响
func (t *tick) applyFireBuff(p *game.Projectile) {
	if p.Fire || p.Ice || p.Splash {
		return
	}
	col := utils.LaneToColumn(p.X, t.sim.rules.Grid.Cols)
	plant, ok := t.state.PlantAt(p.Row, col)
	if !ok || plant.Health <= 0 {
		return
	}
	if t.sim.plants.MustGet(plant.Type).Action != config.ActionBuff {
		return
	}
	p.Fire = true
	p.Damage *= 2
}
