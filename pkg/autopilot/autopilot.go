// Package autopilot 提供一个确定性的种植策略
// 无头批量运行和前端的演示模式用它代替玩家下命令
package autopilot

import (
	"math"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
)

// Placer 种植命令的执行方（由 systems.Simulation 实现）
type Placer interface {
	Place(state *game.GameState, row, col int, plantType types.PlantType) (*game.GameState, bool)
	PlantStats(pt types.PlantType) *config.PlantStats
}

// Move 一次种植决策
type Move struct {
	Row   int
	Col   int
	Plant types.PlantType
}

// 阈值（车道百分比）
const (
	emergencyX = 25 // 攻击者越过这里时优先放炸弹
	wallX      = 60 // 攻击者越过这里时在本行补墙
	wallCol    = 6
)

// Autopilot 按固定优先级下种植命令
//
// 优先级：紧急炸弹 → 每行一个产出植物 → 受威胁的行补射手 → 补墙 → 升级火力。
// 同一局面总是得到同一决策。
type Autopilot struct {
	placer        Placer
	rows          int
	cols          int
	producersPer  int
	minInterval   float64 // 两次种植之间的最小模拟时间间隔（秒）
	lastPlacement float64
	placed        bool
}

// New 创建策略
func New(placer Placer, rows, cols int) *Autopilot {
	return &Autopilot{
		placer:       placer,
		rows:         rows,
		cols:         cols,
		producersPer: 1,
		minInterval:  0.5,
	}
}

// Decide 只做决策，不修改任何状态
func (a *Autopilot) Decide(s *game.GameState) (Move, bool) {
	if s.IsTerminal() {
		return Move{}, false
	}
	if a.placed && s.Time-a.lastPlacement < a.minInterval {
		return Move{}, false
	}

	threat := a.rowThreats(s)

	// 紧急：离防线最近的攻击者
	if row, x, ok := closestZombie(s); ok && x < emergencyX {
		col := utils.LaneToColumn(x, a.cols)
		if m, ok := a.try(s, row, col, types.PlantBomb); ok {
			return m, true
		}
		if m, ok := a.try(s, row, col, types.PlantLambda); ok {
			return m, true
		}
	}

	// 经济
	for row := 0; row < a.rows; row++ {
		if a.count(s, row, types.PlantProducer) < a.producersPer && threat[row].nearest > wallX {
			if m, ok := a.firstFree(s, row, 0, types.PlantProducer); ok {
				return m, true
			}
		}
	}

	// 受威胁的行补射手
	for _, row := range byThreat(threat) {
		if threat[row].count == 0 {
			continue
		}
		if a.shooters(s, row) < threat[row].count {
			if m, ok := a.firstFree(s, row, 1, a.bestShooter(s)); ok {
				return m, true
			}
		}
		if threat[row].nearest < wallX {
			if _, occupied := s.PlantAt(row, wallCol); !occupied {
				if m, ok := a.try(s, row, wallCol, types.PlantWall); ok {
					return m, true
				}
			}
		}
	}

	// 富余时给每行补火力
	for row := 0; row < a.rows; row++ {
		if a.shooters(s, row) < 2 {
			if m, ok := a.firstFree(s, row, 1, a.bestShooter(s)); ok {
				return m, true
			}
		}
	}
	return Move{}, false
}

// Act 决策并执行，返回新的快照
func (a *Autopilot) Act(s *game.GameState) (*game.GameState, Move, bool) {
	m, ok := a.Decide(s)
	if !ok {
		return s, Move{}, false
	}
	next, ok := a.placer.Place(s, m.Row, m.Col, m.Plant)
	if !ok {
		return s, m, false
	}
	a.placed = true
	a.lastPlacement = s.Time
	return next, m, true
}

// Reset 切换关卡时清空节流状态
func (a *Autopilot) Reset() {
	a.placed = false
	a.lastPlacement = 0
}

type rowThreat struct {
	count   int
	nearest float64
	health  float64
}

func (a *Autopilot) rowThreats(s *game.GameState) []rowThreat {
	threats := make([]rowThreat, a.rows)
	for i := range threats {
		threats[i].nearest = math.Inf(1)
	}
	for _, z := range s.Zombies {
		if z.Row < 0 || z.Row >= a.rows {
			continue
		}
		t := &threats[z.Row]
		t.count++
		t.health += z.Health
		t.nearest = math.Min(t.nearest, z.X)
	}
	return threats
}

// byThreat 按威胁排序的行号：先比最近距离，再比总血量，最后按行号
func byThreat(threats []rowThreat) []int {
	rows := make([]int, len(threats))
	for i := range rows {
		rows[i] = i
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && moreUrgent(threats[rows[j]], threats[rows[j-1]]); j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
	return rows
}

func moreUrgent(a, b rowThreat) bool {
	if a.nearest != b.nearest {
		return a.nearest < b.nearest
	}
	return a.health > b.health
}

func closestZombie(s *game.GameState) (int, float64, bool) {
	row, x, found := 0, math.Inf(1), false
	for _, z := range s.Zombies {
		if z.X < x {
			row, x, found = z.Row, z.X, true
		}
	}
	return row, x, found
}

func (a *Autopilot) bestShooter(s *game.GameState) types.PlantType {
	for _, pt := range []types.PlantType{types.PlantRepeater, types.PlantShooter} {
		if a.placer.PlantStats(pt).Cost <= s.Resources {
			return pt
		}
	}
	return types.PlantShooter
}

func (a *Autopilot) count(s *game.GameState, row int, pt types.PlantType) int {
	n := 0
	for _, p := range s.Plants {
		if p.Row == row && p.Type == pt {
			n++
		}
	}
	return n
}

func (a *Autopilot) shooters(s *game.GameState, row int) int {
	n := 0
	for _, p := range s.Plants {
		if p.Row == row && a.placer.PlantStats(p.Type).Action == config.ActionShoot {
			n++
		}
	}
	return n
}

// firstFree 本行从 fromCol 开始第一个空格
func (a *Autopilot) firstFree(s *game.GameState, row, fromCol int, pt types.PlantType) (Move, bool) {
	for col := fromCol; col < a.cols; col++ {
		if _, occupied := s.PlantAt(row, col); occupied {
			continue
		}
		return a.try(s, row, col, pt)
	}
	return Move{}, false
}

// try 检查格子是否可用且买得起
func (a *Autopilot) try(s *game.GameState, row, col int, pt types.PlantType) (Move, bool) {
	if !utils.InBounds(row, col, a.rows, a.cols) {
		return Move{}, false
	}
	if _, occupied := s.PlantAt(row, col); occupied {
		return Move{}, false
	}
	if a.placer.PlantStats(pt).Cost > s.Resources {
		return Move{}, false
	}
	return Move{Row: row, Col: col, Plant: pt}, true
}
