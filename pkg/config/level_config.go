package config

import (
	"fmt"
	"math"

	"github.com/decker502/codedefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// Environment 世界环境标记
type Environment struct {
	FallingResource bool `yaml:"fallingResource"` // 天降 RAM（白天类世界）
	Night           bool `yaml:"night"`
	Pool            bool `yaml:"pool"`
	Roof            bool `yaml:"roof"`
}

// AttackerUnlock 攻击者解锁规则
// 列表中第一个类型视为该世界的常见类型（稀有类型未被接受时用它替代）
type AttackerUnlock struct {
	Type      string `yaml:"type"`
	FromLevel int    `yaml:"fromLevel"` // 从第几关开始出现，0 表示第 1 关
}

// WorldConfig 单个世界的配置
type WorldConfig struct {
	World       int              `yaml:"world"`
	Name        string           `yaml:"name"`
	Environment Environment      `yaml:"environment"`
	Attackers   []AttackerUnlock `yaml:"attackers"`
}

// LevelCountRules 关卡攻击者总数公式
// count = base + perLevel*level + perWorld*(world-1)，最后一关乘以 finalLevelMultiplier 后向下取整
type LevelCountRules struct {
	Base                 int     `yaml:"base"`
	PerLevel             int     `yaml:"perLevel"`
	PerWorld             int     `yaml:"perWorld"`
	FinalLevelMultiplier float64 `yaml:"finalLevelMultiplier"`
}

// LevelsConfig 世界/关卡进度配置文件结构
type LevelsConfig struct {
	MaxWorld int             `yaml:"maxWorld"`
	MaxLevel int             `yaml:"maxLevel"`
	Count    LevelCountRules `yaml:"count"`
	Worlds   []WorldConfig   `yaml:"worlds"`
}

// LevelConfig 单个关卡的查询结果
type LevelConfig struct {
	ID            string             // 关卡ID，如 "1-1"
	World         int                // 世界编号（从 1 开始）
	Level         int                // 关卡编号（从 1 开始）
	WorldName     string             // 世界名称，如 "Day"
	AttackerTypes []types.ZombieType // 本关允许出现的攻击者类型（第一个为常见类型）
	TotalZombies  int                // 本关需要生成的攻击者总数
	Environment   Environment        // 环境标记
}

// LevelProvider 关卡配置提供者
// (world, level) → LevelConfig 的纯函数，不持有可变状态
type LevelProvider struct {
	config *LevelsConfig
	worlds map[int]*WorldConfig
}

// LoadLevels 从YAML文件加载世界/关卡进度配置
// 参数：
//
//	filepath - 配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelProvider - 关卡配置提供者
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadLevels(filepath string) (*LevelProvider, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, err
	}
	return parseLevels(data, filepath)
}

// DefaultLevels 返回内置的世界/关卡进度
func DefaultLevels() *LevelProvider {
	return mustParse(LevelsFile, parseLevels)
}

func parseLevels(data []byte, source string) (*LevelProvider, error) {
	var config LevelsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse levels YAML from %s: %w", source, err)
	}

	applyDefaults(&config)

	if err := validateLevelsConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid levels config in %s: %w", source, err)
	}

	provider := &LevelProvider{
		config: &config,
		worlds: make(map[int]*WorldConfig, len(config.Worlds)),
	}
	for i := range config.Worlds {
		provider.worlds[config.Worlds[i].World] = &config.Worlds[i]
	}
	return provider, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(config *LevelsConfig) {
	if config.MaxWorld == 0 {
		config.MaxWorld = len(config.Worlds)
	}
	if config.MaxLevel == 0 {
		config.MaxLevel = 10
	}
	if config.Count.FinalLevelMultiplier == 0 {
		config.Count.FinalLevelMultiplier = 1
	}
	for i := range config.Worlds {
		for j := range config.Worlds[i].Attackers {
			if config.Worlds[i].Attackers[j].FromLevel == 0 {
				config.Worlds[i].Attackers[j].FromLevel = 1
			}
		}
	}
}

// validateLevelsConfig 验证配置的完整性和合法性
func validateLevelsConfig(config *LevelsConfig) error {
	if config.MaxWorld < 1 {
		return fmt.Errorf("maxWorld must be at least 1, got %d", config.MaxWorld)
	}
	if config.MaxLevel < 1 {
		return fmt.Errorf("maxLevel must be at least 1, got %d", config.MaxLevel)
	}
	if config.Count.Base < 1 {
		return fmt.Errorf("count.base must be at least 1, got %d", config.Count.Base)
	}
	if config.Count.PerLevel < 0 || config.Count.PerWorld < 0 {
		return fmt.Errorf("count.perLevel and count.perWorld cannot be negative")
	}
	if config.Count.FinalLevelMultiplier < 1 {
		return fmt.Errorf("count.finalLevelMultiplier must be >= 1, got %.2f", config.Count.FinalLevelMultiplier)
	}

	seen := make(map[int]bool, len(config.Worlds))
	for i, world := range config.Worlds {
		if world.World < 1 || world.World > config.MaxWorld {
			return fmt.Errorf("worlds[%d]: world must be within [1, %d], got %d", i, config.MaxWorld, world.World)
		}
		if seen[world.World] {
			return fmt.Errorf("worlds[%d]: duplicate world %d", i, world.World)
		}
		seen[world.World] = true

		if len(world.Attackers) == 0 {
			return fmt.Errorf("world %d: at least one attacker type is required", world.World)
		}
		// 第一个类型必须从第 1 关开始出现，保证每关至少有一个可生成类型
		if world.Attackers[0].FromLevel != 1 {
			return fmt.Errorf("world %d: first attacker %s must be available from level 1", world.World, world.Attackers[0].Type)
		}
		for j, attacker := range world.Attackers {
			if types.ZombieTypeFromString(attacker.Type) == types.ZombieUnknown {
				return fmt.Errorf("world %d attackers[%d]: unknown zombie type %q", world.World, j, attacker.Type)
			}
			if attacker.FromLevel < 1 || attacker.FromLevel > config.MaxLevel {
				return fmt.Errorf("world %d attackers[%d]: fromLevel must be within [1, %d], got %d",
					world.World, j, config.MaxLevel, attacker.FromLevel)
			}
		}
	}

	for w := 1; w <= config.MaxWorld; w++ {
		if !seen[w] {
			return fmt.Errorf("world %d is not configured", w)
		}
	}
	return nil
}

// MaxWorld 返回世界数量
func (p *LevelProvider) MaxWorld() int {
	return p.config.MaxWorld
}

// MaxLevel 返回每个世界的关卡数量
func (p *LevelProvider) MaxLevel() int {
	return p.config.MaxLevel
}

// Clamp 将世界/关卡编号限制在有效范围内
func (p *LevelProvider) Clamp(world, level int) (int, int) {
	world = min(max(world, 1), p.config.MaxWorld)
	level = min(max(level, 1), p.config.MaxLevel)
	return world, level
}

// Next 返回下一关的 (world, level)
// 超过最后一关回到下一个世界的第 1 关，超过最后一个世界回到 1-1
func (p *LevelProvider) Next(world, level int) (int, int) {
	world, level = p.Clamp(world, level)
	level++
	if level > p.config.MaxLevel {
		level = 1
		world++
	}
	if world > p.config.MaxWorld {
		world = 1
		level = 1
	}
	return world, level
}

// LevelFor 查询关卡配置
// 超出范围的编号会被限制到有效范围
func (p *LevelProvider) LevelFor(world, level int) LevelConfig {
	world, level = p.Clamp(world, level)
	wc := p.worlds[world]

	attackers := make([]types.ZombieType, 0, len(wc.Attackers))
	for _, attacker := range wc.Attackers {
		if level >= attacker.FromLevel {
			attackers = append(attackers, types.ZombieTypeFromString(attacker.Type))
		}
	}

	return LevelConfig{
		ID:            fmt.Sprintf("%d-%d", world, level),
		World:         world,
		Level:         level,
		WorldName:     wc.Name,
		AttackerTypes: attackers,
		TotalZombies:  p.totalZombies(world, level),
		Environment:   wc.Environment,
	}
}

func (p *LevelProvider) totalZombies(world, level int) int {
	c := p.config.Count
	count := float64(c.Base + c.PerLevel*level + c.PerWorld*(world-1))
	if level == p.config.MaxLevel {
		count *= c.FinalLevelMultiplier
	}
	return int(math.Floor(count))
}
