package game

import (
	"log"

	"github.com/decker502/codedefense/pkg/config"
)

// LevelSource 关卡配置来源（由 config.LevelProvider 实现）
type LevelSource interface {
	LevelFor(world, level int) config.LevelConfig
	Next(world, level int) (int, int)
}

// LevelDirector 负责关卡切换命令
// 关卡切换是终局状态下唯一被接受的命令
type LevelDirector struct {
	levels           LevelSource
	initialResources int
}

// NewLevelDirector 创建关卡切换器
func NewLevelDirector(levels LevelSource, initialResources int) *LevelDirector {
	return &LevelDirector{
		levels:           levels,
		initialResources: initialResources,
	}
}

// StartLevel 开始 (world, level)
// 清空所有实体和计数器，只保留累计得分
func (d *LevelDirector) StartLevel(world, level, score int) *GameState {
	cfg := d.levels.LevelFor(world, level)
	log.Printf("[LevelDirector] Starting level %s (%s): %d attackers, types=%v",
		cfg.ID, cfg.WorldName, cfg.TotalZombies, cfg.AttackerTypes)

	return &GameState{
		Resources:    d.initialResources,
		Score:        max(score, 0),
		World:        cfg.World,
		Level:        cfg.Level,
		TotalZombies: cfg.TotalZombies,
		Environment:  cfg.Environment,
	}
}

// NextLevel 进入下一关
// 超过最后一关回到下一个世界，超过最后一个世界回到 1-1
func (d *LevelDirector) NextLevel(s *GameState) *GameState {
	world, level := d.levels.Next(s.World, s.Level)
	return d.StartLevel(world, level, s.Score)
}

// Restart 从头重玩当前关卡
func (d *LevelDirector) Restart(s *GameState) *GameState {
	return d.StartLevel(s.World, s.Level, s.Score)
}
