package game

import (
	"slices"

	"github.com/decker502/codedefense/pkg/config"
)

// GameState 一局游戏的完整快照
// 模拟以 (state, dt) → state' 的方式推进，调用方持有的快照不会被修改
type GameState struct {
	Resources int // 当前 RAM
	Score     int // 累计得分，跨关卡保留

	Plants      []Plant
	Zombies     []Zombie
	Projectiles []Projectile
	Particles   []Particle

	Time float64 // 本关已进行的模拟时间（秒）

	World          int
	Level          int
	ZombiesSpawned int // 本关已生成的攻击者数量（不含召唤物）
	TotalZombies   int // 本关需要生成的攻击者总数

	Environment config.Environment

	Lost bool
	Won  bool
}

// Clone 深拷贝快照
// 实体都是值类型，复制切片即可
func (s *GameState) Clone() *GameState {
	c := *s
	c.Plants = slices.Clone(s.Plants)
	c.Zombies = slices.Clone(s.Zombies)
	c.Projectiles = slices.Clone(s.Projectiles)
	c.Particles = slices.Clone(s.Particles)
	return &c
}

// IsTerminal 是否已经胜利或失败
func (s *GameState) IsTerminal() bool {
	return s.Lost || s.Won
}

// PlantAt 查找占据 (row, col) 的植物
// 返回的指针指向快照内部，只在当前帧内有效
func (s *GameState) PlantAt(row, col int) (*Plant, bool) {
	for i := range s.Plants {
		if s.Plants[i].Row == row && s.Plants[i].Col == col {
			return &s.Plants[i], true
		}
	}
	return nil, false
}

// Remaining 返回本关还需生成的攻击者数量
func (s *GameState) Remaining() int {
	return max(s.TotalZombies-s.ZombiesSpawned, 0)
}

// Progress 返回关卡进度 (0~1)，用于 HUD 进度条
func (s *GameState) Progress() float64 {
	if s.TotalZombies <= 0 {
		return 1
	}
	return min(1, float64(s.ZombiesSpawned)/float64(s.TotalZombies))
}
