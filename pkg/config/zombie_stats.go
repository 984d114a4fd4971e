package config

import (
	"fmt"

	"github.com/decker502/codedefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// ZombieBehavior 攻击者的特殊行为类型
type ZombieBehavior string

const (
	BehaviorWalk   ZombieBehavior = "walk"   // 普通行走/啃食
	BehaviorJump   ZombieBehavior = "jump"   // 跳过第一个障碍
	BehaviorRage   ZombieBehavior = "rage"   // 血量低于阈值后永久加速
	BehaviorSummon ZombieBehavior = "summon" // 定期召唤伴舞
)

var validZombieBehaviors = map[ZombieBehavior]bool{
	BehaviorWalk:   true,
	BehaviorJump:   true,
	BehaviorRage:   true,
	BehaviorSummon: true,
}

// ZombieStats 单个僵尸类型的属性配置
type ZombieStats struct {
	Name           string         `yaml:"name"`           // 显示名称
	Color          string         `yaml:"color"`          // 显示颜色（#rrggbb）
	Health         float64        `yaml:"health"`         // 血量（含护盾）
	Speed          float64        `yaml:"speed"`          // 移动速度（%/秒）
	Damage         float64        `yaml:"damage"`         // 名义啃食伤害（每秒）
	EatDamage      float64        `yaml:"eatDamage"`      // 实际啃食伤害覆盖值，0 表示使用 Damage
	Score          int            `yaml:"score"`          // 击杀得分
	Scale          float64        `yaml:"scale"`          // 显示缩放
	Behavior       ZombieBehavior `yaml:"behavior"`       // 特殊行为
	JumpOffset     float64        `yaml:"jumpOffset"`     // 跳跃距离
	RageThreshold  float64        `yaml:"rageThreshold"`  // 狂暴血量阈值
	RageMultiplier float64        `yaml:"rageMultiplier"` // 狂暴速度倍率
	SummonType     string         `yaml:"summonType"`     // 召唤的僵尸类型
	SummonInterval float64        `yaml:"summonInterval"` // 召唤间隔（秒）
}

// ZombieTable 僵尸属性表
type ZombieTable map[types.ZombieType]*ZombieStats

// zombieStatsFile 僵尸属性配置文件结构
type zombieStatsFile struct {
	Zombies map[string]*ZombieStats `yaml:"zombies"`
}

// LoadZombieStats 从 YAML 文件加载僵尸属性配置
// 参数：
//
//	path - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	ZombieTable - 解析后的属性表
//	error - 如果文件读取或解析失败，返回错误信息
func LoadZombieStats(path string) (ZombieTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	table, err := parseZombieStats(data, path)
	if err != nil {
		return nil, err
	}
	return *table, nil
}

// DefaultZombieStats 返回内置的僵尸属性表
func DefaultZombieStats() ZombieTable {
	return *mustParse(ZombieStatsFile, parseZombieStats)
}

func parseZombieStats(data []byte, source string) (*ZombieTable, error) {
	var file zombieStatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse zombie stats YAML from %s: %w", source, err)
	}

	if len(file.Zombies) == 0 {
		return nil, fmt.Errorf("invalid zombie stats in %s: at least one zombie type is required", source)
	}

	table := make(ZombieTable, len(file.Zombies))
	for name, stats := range file.Zombies {
		zombieType := types.ZombieTypeFromString(name)
		if zombieType == types.ZombieUnknown {
			return nil, fmt.Errorf("invalid zombie stats in %s: unknown zombie type %q", source, name)
		}
		if stats == nil {
			return nil, fmt.Errorf("invalid zombie stats in %s: zombie %s has no stats", source, name)
		}
		if stats.Behavior == "" {
			stats.Behavior = BehaviorWalk
		}
		if err := validateZombieStats(name, stats); err != nil {
			return nil, fmt.Errorf("invalid zombie stats in %s: %w", source, err)
		}
		table[zombieType] = stats
	}

	// 召唤目标必须也在表内
	for name, stats := range file.Zombies {
		if stats.Behavior != BehaviorSummon {
			continue
		}
		if _, ok := table[types.ZombieTypeFromString(stats.SummonType)]; !ok {
			return nil, fmt.Errorf("invalid zombie stats in %s: zombie %s summons unknown type %q", source, name, stats.SummonType)
		}
	}
	return &table, nil
}

// validateZombieStats 验证僵尸属性配置的完整性和合法性
func validateZombieStats(name string, stats *ZombieStats) error {
	if !validZombieBehaviors[stats.Behavior] {
		return fmt.Errorf("zombie %s: unknown behavior %q", name, stats.Behavior)
	}
	if stats.Health <= 0 {
		return fmt.Errorf("zombie %s: health must be positive, got %.1f", name, stats.Health)
	}
	if stats.Speed < 0 {
		return fmt.Errorf("zombie %s: speed cannot be negative, got %.2f", name, stats.Speed)
	}
	if stats.Damage < 0 || stats.EatDamage < 0 {
		return fmt.Errorf("zombie %s: damage cannot be negative", name)
	}
	if stats.Score < 0 {
		return fmt.Errorf("zombie %s: score cannot be negative, got %d", name, stats.Score)
	}

	switch stats.Behavior {
	case BehaviorJump:
		if stats.JumpOffset <= 0 {
			return fmt.Errorf("zombie %s: jump behavior requires positive jumpOffset", name)
		}
	case BehaviorRage:
		if stats.RageMultiplier <= 0 {
			return fmt.Errorf("zombie %s: rage behavior requires positive rageMultiplier", name)
		}
	case BehaviorSummon:
		if stats.SummonInterval <= 0 {
			return fmt.Errorf("zombie %s: summon behavior requires positive summonInterval", name)
		}
	}
	return nil
}

// Get 获取僵尸属性
// 如果僵尸类型不存在，返回 nil 和 false
func (t ZombieTable) Get(zombieType types.ZombieType) (*ZombieStats, bool) {
	stats, ok := t[zombieType]
	return stats, ok
}

// MustGet 获取僵尸属性
// 僵尸类型是封闭枚举，查不到说明调用方违反约定，直接 panic
func (t ZombieTable) MustGet(zombieType types.ZombieType) *ZombieStats {
	stats, ok := t[zombieType]
	if !ok {
		panic(fmt.Sprintf("no stats for zombie type %v", zombieType))
	}
	return stats
}

// EatRate 返回啃食时的实际每秒伤害
func (s *ZombieStats) EatRate() float64 {
	if s.EatDamage > 0 {
		return s.EatDamage
	}
	return s.Damage
}

// SummonZombieType 返回召唤目标的僵尸类型
func (s *ZombieStats) SummonZombieType() types.ZombieType {
	return types.ZombieTypeFromString(s.SummonType)
}
