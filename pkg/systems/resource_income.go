package systems

import (
	"math"

	"github.com/decker502/codedefense/pkg/types"
)

// resourceIncome 天降 RAM
// 开启 fallingResource 的世界，模拟时间每跨过一个间隔的整数倍就掉落一次
func (t *tick) resourceIncome() {
	rules := t.sim.rules
	if !t.state.Environment.FallingResource || rules.FallingResourceInterval <= 0 {
		return
	}

	before := math.Floor(t.state.Time / rules.FallingResourceInterval)
	after := math.Floor((t.state.Time + t.dt) / rules.FallingResourceInterval)
	if after <= before {
		return
	}

	t.state.Resources += rules.ResourceAmount
	t.play(types.SoundCollect)

	// 掉落位置只用于展示
	row := t.sim.rng.Intn(rules.Grid.Rows)
	col := t.sim.rng.Intn(rules.Grid.Cols)
	t.emit(float64(row), t.colPercent(col), "+RAM", 1.5, -5, "#fcd34d")
}
