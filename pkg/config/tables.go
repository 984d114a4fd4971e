package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Tables 模拟所需的全部静态配置表
type Tables struct {
	Rules   *GameRules
	Plants  PlantTable
	Zombies ZombieTable
	Spawn   *SpawnRulesConfig
	Levels  *LevelProvider
}

// DefaultTables 返回内置的全部配置表
func DefaultTables() *Tables {
	return &Tables{
		Rules:   DefaultGameRules(),
		Plants:  DefaultPlantStats(),
		Zombies: DefaultZombieStats(),
		Spawn:   DefaultSpawnRules(),
		Levels:  DefaultLevels(),
	}
}

// LoadTables 从目录加载配置表
// 目录中存在的文件（rules.yaml、plants.yaml 等）覆盖内置配置，缺失的文件使用内置配置
// dir 为空时直接返回内置配置
func LoadTables(dir string) (*Tables, error) {
	tables := DefaultTables()
	if dir == "" {
		return tables, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config path %s is not a directory", dir)
	}

	if err := overrideFrom(dir, RulesFile, func(path string) error {
		rules, err := LoadGameRules(path)
		tables.Rules = rules
		return err
	}); err != nil {
		return nil, err
	}
	if err := overrideFrom(dir, PlantStatsFile, func(path string) error {
		plants, err := LoadPlantStats(path)
		tables.Plants = plants
		return err
	}); err != nil {
		return nil, err
	}
	if err := overrideFrom(dir, ZombieStatsFile, func(path string) error {
		zombies, err := LoadZombieStats(path)
		tables.Zombies = zombies
		return err
	}); err != nil {
		return nil, err
	}
	if err := overrideFrom(dir, SpawnRulesFile, func(path string) error {
		spawn, err := LoadSpawnRules(path)
		tables.Spawn = spawn
		return err
	}); err != nil {
		return nil, err
	}
	if err := overrideFrom(dir, LevelsFile, func(path string) error {
		levels, err := LoadLevels(path)
		tables.Levels = levels
		return err
	}); err != nil {
		return nil, err
	}

	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// overrideFrom 如果目录中存在同名文件，调用 load 加载
func overrideFrom(dir, embeddedPath string, load func(path string) error) error {
	path := filepath.Join(dir, filepath.Base(embeddedPath))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat config file %s: %w", path, err)
	}
	return load(path)
}

// Validate 检查配置表之间的交叉引用
// 关卡中出现的攻击者类型、召唤目标和稀有类型都必须有属性表条目
func (t *Tables) Validate() error {
	for w := 1; w <= t.Levels.MaxWorld(); w++ {
		for l := 1; l <= t.Levels.MaxLevel(); l++ {
			for _, zt := range t.Levels.LevelFor(w, l).AttackerTypes {
				if _, ok := t.Zombies[zt]; !ok {
					return fmt.Errorf("level %d-%d uses zombie type %v without stats", w, l, zt)
				}
			}
		}
	}
	if rare := t.Spawn.RareZombieType(); t.Spawn.RareType != "" {
		if _, ok := t.Zombies[rare]; !ok {
			return fmt.Errorf("spawn rare type %v has no stats", rare)
		}
	}
	return nil
}
