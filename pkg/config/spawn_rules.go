package config

import (
	"fmt"

	"github.com/decker502/codedefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// SpawnRulesConfig 僵尸生成规则配置
type SpawnRulesConfig struct {
	BaseChance     float64 `yaml:"baseChance"`     // 每帧基础生成概率
	WorldFactor    float64 `yaml:"worldFactor"`    // 世界难度系数：chance = base * (1 + world * factor)
	RushThreshold  int     `yaml:"rushThreshold"`  // 剩余待生成数低于该值时加速
	RushMultiplier float64 `yaml:"rushMultiplier"` // 加速倍率
	RareType       string  `yaml:"rareType"`       // 稀有精英类型
	RareAcceptance float64 `yaml:"rareAcceptance"` // 抽中稀有类型时的接受概率
}

// LoadSpawnRules 从 YAML 文件加载僵尸生成规则配置
func LoadSpawnRules(filePath string) (*SpawnRulesConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}
	return parseSpawnRules(data, filePath)
}

// DefaultSpawnRules 返回内置的生成规则
func DefaultSpawnRules() *SpawnRulesConfig {
	return mustParse(SpawnRulesFile, parseSpawnRules)
}

func parseSpawnRules(data []byte, source string) (*SpawnRulesConfig, error) {
	var config SpawnRulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse spawn rules YAML from %s: %w", source, err)
	}

	if config.RushMultiplier == 0 {
		config.RushMultiplier = 1
	}

	if err := validateSpawnRules(&config); err != nil {
		return nil, fmt.Errorf("invalid spawn rules config in %s: %w", source, err)
	}

	return &config, nil
}

// validateSpawnRules 验证配置的有效性
func validateSpawnRules(config *SpawnRulesConfig) error {
	if config.BaseChance <= 0 || config.BaseChance > 1 {
		return fmt.Errorf("baseChance must be within (0, 1], got %f", config.BaseChance)
	}
	if config.WorldFactor < 0 {
		return fmt.Errorf("worldFactor cannot be negative, got %f", config.WorldFactor)
	}
	if config.RushThreshold < 0 {
		return fmt.Errorf("rushThreshold cannot be negative, got %d", config.RushThreshold)
	}
	if config.RushMultiplier < 1 {
		return fmt.Errorf("rushMultiplier must be >= 1, got %f", config.RushMultiplier)
	}
	if config.RareType != "" && types.ZombieTypeFromString(config.RareType) == types.ZombieUnknown {
		return fmt.Errorf("rareType %q is not a known zombie type", config.RareType)
	}
	if config.RareAcceptance < 0 || config.RareAcceptance > 1 {
		return fmt.Errorf("rareAcceptance must be within [0, 1], got %f", config.RareAcceptance)
	}
	return nil
}

// RareZombieType 返回稀有精英类型，未配置时返回 ZombieUnknown
func (c *SpawnRulesConfig) RareZombieType() types.ZombieType {
	return types.ZombieTypeFromString(c.RareType)
}

// ChanceFor 返回指定世界、剩余待生成数下的每帧生成概率
func (c *SpawnRulesConfig) ChanceFor(world, remaining int) float64 {
	chance := c.BaseChance * (1 + float64(world)*c.WorldFactor)
	if remaining < c.RushThreshold {
		chance *= c.RushMultiplier
	}
	return chance
}
