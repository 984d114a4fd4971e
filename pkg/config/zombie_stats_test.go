package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/codedefense/pkg/types"
)

func TestLoadZombieStats(t *testing.T) {
	// 创建临时目录
	tempDir := t.TempDir()

	t.Run("加载有效配置文件", func(t *testing.T) {
		configContent := `
zombies:
  syntax_error:
    health: 270
    speed: 2.5
    damage: 100
    score: 10
  recursion:
    health: 500
    speed: 2.2
    damage: 100
    score: 75
    behavior: summon
    summonType: stack_overflow
    summonInterval: 8
  stack_overflow:
    health: 270
    speed: 2.2
    damage: 100
    score: 10
`
		configPath := filepath.Join(tempDir, "valid_config.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		table, err := LoadZombieStats(configPath)
		if err != nil {
			t.Fatalf("LoadZombieStats failed: %v", err)
		}

		if len(table) != 3 {
			t.Errorf("Expected 3 zombie types, got %d", len(table))
		}

		basic := table.MustGet(types.ZombieSyntaxError)
		if basic.Health != 270 {
			t.Errorf("syntax_error health: expected 270, got %.1f", basic.Health)
		}
		if basic.Behavior != BehaviorWalk {
			t.Errorf("syntax_error behavior: expected default %q, got %q", BehaviorWalk, basic.Behavior)
		}

		summoner := table.MustGet(types.ZombieRecursion)
		if summoner.SummonZombieType() != types.ZombieStackOverflow {
			t.Errorf("recursion summon type: expected stack_overflow, got %v", summoner.SummonZombieType())
		}
	})

	t.Run("召唤目标缺失", func(t *testing.T) {
		configContent := `
zombies:
  recursion:
    health: 500
    speed: 2.2
    behavior: summon
    summonType: stack_overflow
    summonInterval: 8
`
		configPath := filepath.Join(tempDir, "missing_summon.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		_, err := LoadZombieStats(configPath)
		if err == nil || !strings.Contains(err.Error(), "summons unknown type") {
			t.Errorf("expected summon target error, got %v", err)
		}
	})

	t.Run("未知僵尸类型", func(t *testing.T) {
		configContent := `
zombies:
  gargantuar:
    health: 3000
    speed: 1
`
		configPath := filepath.Join(tempDir, "unknown.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		_, err := LoadZombieStats(configPath)
		if err == nil || !strings.Contains(err.Error(), "unknown zombie type") {
			t.Errorf("expected unknown type error, got %v", err)
		}
	})

	t.Run("跳跃距离非法", func(t *testing.T) {
		configContent := `
zombies:
  goto:
    health: 500
    speed: 4.5
    behavior: jump
`
		configPath := filepath.Join(tempDir, "jump.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		_, err := LoadZombieStats(configPath)
		if err == nil || !strings.Contains(err.Error(), "jumpOffset") {
			t.Errorf("expected jumpOffset error, got %v", err)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadZombieStats(filepath.Join(tempDir, "missing.yaml"))
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestDefaultZombieStats(t *testing.T) {
	table := DefaultZombieStats()

	for _, zt := range []types.ZombieType{
		types.ZombieSyntaxError, types.ZombieBug, types.ZombieLegacyCode, types.ZombieSpaghetti,
		types.ZombieMonolith, types.ZombieGoto, types.ZombieDeprecated, types.ZombieRecursion,
		types.ZombieStackOverflow,
	} {
		if _, ok := table.Get(zt); !ok {
			t.Errorf("default table missing %v", zt)
		}
	}

	if got := table.MustGet(types.ZombieMonolith).EatRate(); got != 5000 {
		t.Errorf("monolith eat rate: expected 5000, got %.1f", got)
	}
	if got := table.MustGet(types.ZombieSyntaxError).EatRate(); got != 100 {
		t.Errorf("syntax_error eat rate: expected 100, got %.1f", got)
	}

	deprecated := table.MustGet(types.ZombieDeprecated)
	if deprecated.Behavior != BehaviorRage || deprecated.RageThreshold != 270 || deprecated.RageMultiplier != 2.5 {
		t.Errorf("deprecated rage config unexpected: %+v", deprecated)
	}

	jumper := table.MustGet(types.ZombieGoto)
	if jumper.Behavior != BehaviorJump || jumper.JumpOffset != 12 {
		t.Errorf("goto jump config unexpected: %+v", jumper)
	}
}

func TestZombieTableMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic for unknown zombie type")
		}
	}()
	ZombieTable{}.MustGet(types.ZombieBug)
}
