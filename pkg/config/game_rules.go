package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GameRules 全局规则常量
// 时间单位为秒，位置单位为车道宽度百分比（0 = 防守边界，100 = 进攻起点）
type GameRules struct {
	Grid                    GridRules       `yaml:"grid"`
	TickMillis              int             `yaml:"tickMillis"`              // 固定步长（毫秒）
	InitialResources        int             `yaml:"initialResources"`        // 开局 RAM
	ResourceAmount          int             `yaml:"resourceAmount"`          // 单次产出/掉落 RAM
	FallingResourceInterval float64         `yaml:"fallingResourceInterval"` // 天降 RAM 间隔
	Projectile              ProjectileRules `yaml:"projectile"`
	Splash                  SplashRules     `yaml:"splash"`
	Status                  StatusRules     `yaml:"status"`
	Bomb                    BombRules       `yaml:"bomb"`
	LaneClear               LaneClearRules  `yaml:"laneClear"`
	Mine                    MineRules       `yaml:"mine"`
	Zombie                  ZombieRules     `yaml:"zombie"`
	Particle                ParticleRules   `yaml:"particle"`
}

// GridRules 网格尺寸
type GridRules struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// ProjectileRules 子弹规则
type ProjectileRules struct {
	Speed        float64 `yaml:"speed"`        // 飞行速度（%/秒）
	HitTolerance float64 `yaml:"hitTolerance"` // 命中判定的横向容差
	ExitBoundary float64 `yaml:"exitBoundary"` // 超出该位置即销毁
	ShotSpacing  float64 `yaml:"shotSpacing"`  // 同时发射多发时的横向错开距离
}

// SplashRules 溅射规则
type SplashRules struct {
	Damage    float64 `yaml:"damage"`    // 次要目标的固定溅射伤害
	Radius    float64 `yaml:"radius"`    // 横向溅射半径
	RowRadius int     `yaml:"rowRadius"` // 纵向溅射行数
}

// StatusRules 状态效果规则
type StatusRules struct {
	FrozenDuration   float64 `yaml:"frozenDuration"`
	StoppedDuration  float64 `yaml:"stoppedDuration"`
	FrozenMultiplier float64 `yaml:"frozenMultiplier"`
}

// BombRules 范围炸弹规则
type BombRules struct {
	Damage       float64 `yaml:"damage"`
	LateralRange float64 `yaml:"lateralRange"`
	RowRadius    int     `yaml:"rowRadius"`
}

// LaneClearRules 清行规则
type LaneClearRules struct {
	TerminalHealth float64 `yaml:"terminalHealth"` // 清行后直接写入的血量（必死）
}

// MineRules 地雷规则
type MineRules struct {
	Damage float64 `yaml:"damage"`
}

// SummonOffset 召唤偏移（dx 为车道百分比，dy 为行）
type SummonOffset struct {
	DX float64 `yaml:"dx"`
	DY int     `yaml:"dy"`
}

// ZombieRules 攻击者通用规则
type ZombieRules struct {
	StartX              float64        `yaml:"startX"`
	BreachX             float64        `yaml:"breachX"`
	BlockTolerance      float64        `yaml:"blockTolerance"`
	ErrorParticleChance float64        `yaml:"errorParticleChance"`
	SummonOffsets       []SummonOffset `yaml:"summonOffsets"`
}

// ParticleRules 粒子衰减规则
type ParticleRules struct {
	DecayRate   float64 `yaml:"decayRate"`
	DriftFactor float64 `yaml:"driftFactor"`
}

// LoadGameRules 从 YAML 文件加载全局规则
func LoadGameRules(path string) (*GameRules, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	return parseGameRules(data, path)
}

// DefaultGameRules 返回内置的全局规则
func DefaultGameRules() *GameRules {
	return mustParse(RulesFile, parseGameRules)
}

func parseGameRules(data []byte, source string) (*GameRules, error) {
	var rules GameRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse game rules YAML from %s: %w", source, err)
	}

	applyRuleDefaults(&rules)

	if err := validateGameRules(&rules); err != nil {
		return nil, fmt.Errorf("invalid game rules in %s: %w", source, err)
	}
	return &rules, nil
}

// applyRuleDefaults 为缺失的可选字段设置默认值
func applyRuleDefaults(rules *GameRules) {
	if rules.Grid.Rows == 0 {
		rules.Grid.Rows = 5
	}
	if rules.Grid.Cols == 0 {
		rules.Grid.Cols = 9
	}
	if rules.TickMillis == 0 {
		rules.TickMillis = 30
	}
	if rules.Zombie.StartX == 0 {
		rules.Zombie.StartX = 100
	}
	if rules.Projectile.ExitBoundary == 0 {
		rules.Projectile.ExitBoundary = 105
	}
	if rules.Status.FrozenMultiplier == 0 {
		rules.Status.FrozenMultiplier = 0.5
	}
}

// validateGameRules 验证全局规则的合法性
func validateGameRules(rules *GameRules) error {
	if rules.Grid.Rows < 1 || rules.Grid.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", rules.Grid.Rows, rules.Grid.Cols)
	}
	if rules.TickMillis < 1 {
		return fmt.Errorf("tickMillis must be positive, got %d", rules.TickMillis)
	}
	if rules.InitialResources < 0 {
		return fmt.Errorf("initialResources cannot be negative, got %d", rules.InitialResources)
	}
	if rules.ResourceAmount < 0 {
		return fmt.Errorf("resourceAmount cannot be negative, got %d", rules.ResourceAmount)
	}
	if rules.Projectile.Speed <= 0 {
		return fmt.Errorf("projectile.speed must be positive, got %.2f", rules.Projectile.Speed)
	}
	if rules.Projectile.HitTolerance <= 0 {
		return fmt.Errorf("projectile.hitTolerance must be positive, got %.2f", rules.Projectile.HitTolerance)
	}
	if rules.Status.FrozenDuration < 0 || rules.Status.StoppedDuration < 0 {
		return fmt.Errorf("status durations cannot be negative")
	}
	if rules.Zombie.StartX <= rules.Zombie.BreachX {
		return fmt.Errorf("zombie.startX (%.1f) must be greater than zombie.breachX (%.1f)", rules.Zombie.StartX, rules.Zombie.BreachX)
	}
	if rules.Zombie.ErrorParticleChance < 0 || rules.Zombie.ErrorParticleChance > 1 {
		return fmt.Errorf("zombie.errorParticleChance must be within [0, 1], got %.2f", rules.Zombie.ErrorParticleChance)
	}
	if rules.Particle.DecayRate <= 0 {
		return fmt.Errorf("particle.decayRate must be positive, got %.2f", rules.Particle.DecayRate)
	}
	return nil
}

// TickSeconds 返回固定步长（秒）
func (r *GameRules) TickSeconds() float64 {
	return float64(r.TickMillis) / 1000.0
}
