package config

import (
	"fmt"

	"github.com/decker502/codedefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// PlantAction 植物每帧行为类型
// 行为分发表以此为键，而不是按植物类型逐个判断
type PlantAction string

const (
	ActionNone      PlantAction = "none"       // 无主动行为（墙）
	ActionProduce   PlantAction = "produce"    // 定期产出 RAM
	ActionShoot     PlantAction = "shoot"      // 射手家族
	ActionDetonate  PlantAction = "detonate"   // 一次性范围爆炸
	ActionClearLane PlantAction = "clear_lane" // 一次性清行
	ActionMine      PlantAction = "mine"       // 被动地雷
	ActionBuff      PlantAction = "buff"       // 被动增益（火焰）
)

var validPlantActions = map[PlantAction]bool{
	ActionNone:      true,
	ActionProduce:   true,
	ActionShoot:     true,
	ActionDetonate:  true,
	ActionClearLane: true,
	ActionMine:      true,
	ActionBuff:      true,
}

// PlantStats 单个植物类型的静态属性
type PlantStats struct {
	Name         string      `yaml:"name"`         // 卡片名称，如 "def shoot():"
	Symbol       string      `yaml:"symbol"`       // 网格中显示的短符号
	Description  string      `yaml:"description"`  // 提示文本
	Color        string      `yaml:"color"`        // 显示颜色（#rrggbb）
	Cost         int         `yaml:"cost"`         // 种植消耗的 RAM
	Health       float64     `yaml:"health"`       // 最大血量
	Cooldown     float64     `yaml:"cooldown"`     // 行为冷却（秒）
	Action       PlantAction `yaml:"action"`       // 行为类型
	Shots        int         `yaml:"shots"`        // 每次触发发射的子弹数
	Damage       float64     `yaml:"damage"`       // 单发伤害
	Splash       bool        `yaml:"splash"`       // 溅射
	Piercing     bool        `yaml:"piercing"`     // 穿透
	Ice          bool        `yaml:"ice"`          // 冰冻（减速）
	Range        int         `yaml:"range"`        // 射程（格），0 表示无限
	ArmingTime   float64     `yaml:"armingTime"`   // 地雷布设时间（秒）
	TriggerDelay float64     `yaml:"triggerDelay"` // 一次性植物的触发延迟（秒）
	StopChance   float64     `yaml:"stopChance"`   // 每发子弹附带定身的概率
	ReadyOnPlace bool        `yaml:"readyOnPlace"` // 种下即可开火（投掷类需等待完整冷却）
}

// PlantTable 植物属性表
type PlantTable map[types.PlantType]*PlantStats

// plantStatsFile 植物属性配置文件结构
type plantStatsFile struct {
	Plants map[string]*PlantStats `yaml:"plants"`
}

// LoadPlantStats 从 YAML 文件加载植物属性表
//
// 参数：
//
//	path - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	PlantTable - 解析后的属性表
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadPlantStats(path string) (PlantTable, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	table, err := parsePlantStats(data, path)
	if err != nil {
		return nil, err
	}
	return *table, nil
}

// DefaultPlantStats 返回内置的植物属性表
func DefaultPlantStats() PlantTable {
	return *mustParse(PlantStatsFile, parsePlantStats)
}

func parsePlantStats(data []byte, source string) (*PlantTable, error) {
	var file plantStatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plant stats YAML from %s: %w", source, err)
	}

	if len(file.Plants) == 0 {
		return nil, fmt.Errorf("invalid plant stats in %s: at least one plant type is required", source)
	}

	table := make(PlantTable, len(file.Plants))
	for name, stats := range file.Plants {
		plantType := types.PlantTypeFromString(name)
		if plantType == types.PlantUnknown {
			return nil, fmt.Errorf("invalid plant stats in %s: unknown plant type %q", source, name)
		}
		if stats == nil {
			return nil, fmt.Errorf("invalid plant stats in %s: plant %s has no stats", source, name)
		}
		applyPlantDefaults(stats)
		if err := validatePlantStats(name, stats); err != nil {
			return nil, fmt.Errorf("invalid plant stats in %s: %w", source, err)
		}
		table[plantType] = stats
	}
	return &table, nil
}

// applyPlantDefaults 为缺失的可选字段设置默认值
func applyPlantDefaults(stats *PlantStats) {
	if stats.Action == "" {
		stats.Action = ActionNone
	}
	if stats.Action == ActionShoot && stats.Shots == 0 {
		stats.Shots = 1
	}
}

// validatePlantStats 验证单个植物属性的合法性
func validatePlantStats(name string, stats *PlantStats) error {
	if !validPlantActions[stats.Action] {
		return fmt.Errorf("plant %s: unknown action %q", name, stats.Action)
	}
	if stats.Cost < 0 {
		return fmt.Errorf("plant %s: cost cannot be negative, got %d", name, stats.Cost)
	}
	if stats.Health <= 0 {
		return fmt.Errorf("plant %s: health must be positive, got %.1f", name, stats.Health)
	}
	if stats.Cooldown < 0 {
		return fmt.Errorf("plant %s: cooldown cannot be negative, got %.2f", name, stats.Cooldown)
	}
	if stats.Range < 0 {
		return fmt.Errorf("plant %s: range cannot be negative, got %d", name, stats.Range)
	}
	if stats.StopChance < 0 || stats.StopChance > 1 {
		return fmt.Errorf("plant %s: stopChance must be within [0, 1], got %.2f", name, stats.StopChance)
	}
	if stats.Action == ActionShoot && stats.Damage <= 0 {
		return fmt.Errorf("plant %s: shooters require positive damage", name)
	}
	return nil
}

// Get 获取植物属性
// 如果植物类型不存在，返回 nil 和 false
func (t PlantTable) Get(plantType types.PlantType) (*PlantStats, bool) {
	stats, ok := t[plantType]
	return stats, ok
}

// MustGet 获取植物属性
// 植物类型是封闭枚举，查不到说明调用方违反约定，直接 panic
func (t PlantTable) MustGet(plantType types.PlantType) *PlantStats {
	stats, ok := t[plantType]
	if !ok {
		panic(fmt.Sprintf("no stats for plant type %v", plantType))
	}
	return stats
}
