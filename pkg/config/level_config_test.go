package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/codedefense/pkg/types"
)

func TestLevelForDefaults(t *testing.T) {
	levels := DefaultLevels()

	tests := []struct {
		name      string
		world     int
		level     int
		wantID    string
		wantTotal int
		wantTypes []types.ZombieType
		wantEnv   Environment
	}{
		{
			name:      "1-1 只有语法错误",
			world:     1,
			level:     1,
			wantID:    "1-1",
			wantTotal: 8,
			wantTypes: []types.ZombieType{types.ZombieSyntaxError},
			wantEnv:   Environment{FallingResource: true},
		},
		{
			name:      "1-6 解锁 legacy",
			world:     1,
			level:     6,
			wantID:    "1-6",
			wantTotal: 23,
			wantTypes: []types.ZombieType{types.ZombieSyntaxError, types.ZombieBug, types.ZombieLegacyCode},
			wantEnv:   Environment{FallingResource: true},
		},
		{
			name:      "1-10 最终关乘以 1.5",
			world:     1,
			level:     10,
			wantID:    "1-10",
			wantTotal: 52,
			wantTypes: []types.ZombieType{
				types.ZombieSyntaxError, types.ZombieBug, types.ZombieLegacyCode,
				types.ZombieDeprecated, types.ZombieSpaghetti,
			},
			wantEnv: Environment{FallingResource: true},
		},
		{
			name:      "2-1 夜晚没有天降资源",
			world:     2,
			level:     1,
			wantID:    "2-1",
			wantTotal: 23,
			wantTypes: []types.ZombieType{
				types.ZombieSyntaxError, types.ZombieBug, types.ZombieLegacyCode, types.ZombieDeprecated,
			},
			wantEnv: Environment{Night: true},
		},
		{
			name:      "5-10 屋顶",
			world:     5,
			level:     10,
			wantID:    "5-10",
			wantTotal: 142,
			wantTypes: []types.ZombieType{
				types.ZombieSyntaxError, types.ZombieBug, types.ZombieLegacyCode, types.ZombieDeprecated,
				types.ZombieSpaghetti, types.ZombieGoto, types.ZombieRecursion, types.ZombieMonolith,
			},
			wantEnv: Environment{Roof: true, FallingResource: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := levels.LevelFor(tt.world, tt.level)
			if cfg.ID != tt.wantID {
				t.Errorf("ID: expected %s, got %s", tt.wantID, cfg.ID)
			}
			if cfg.TotalZombies != tt.wantTotal {
				t.Errorf("TotalZombies: expected %d, got %d", tt.wantTotal, cfg.TotalZombies)
			}
			if !reflect.DeepEqual(cfg.AttackerTypes, tt.wantTypes) {
				t.Errorf("AttackerTypes: expected %v, got %v", tt.wantTypes, cfg.AttackerTypes)
			}
			if cfg.Environment != tt.wantEnv {
				t.Errorf("Environment: expected %+v, got %+v", tt.wantEnv, cfg.Environment)
			}
		})
	}
}

func TestLevelForIsPure(t *testing.T) {
	levels := DefaultLevels()
	a := levels.LevelFor(3, 4)
	a.AttackerTypes[0] = types.ZombieMonolith
	b := levels.LevelFor(3, 4)
	if b.AttackerTypes[0] != types.ZombieSyntaxError {
		t.Errorf("LevelFor results must not share state, got %v", b.AttackerTypes[0])
	}
}

func TestLevelForClampsOutOfRange(t *testing.T) {
	levels := DefaultLevels()

	cfg := levels.LevelFor(0, 99)
	if cfg.World != 1 || cfg.Level != 10 {
		t.Errorf("expected clamp to 1-10, got %d-%d", cfg.World, cfg.Level)
	}

	cfg = levels.LevelFor(9, -3)
	if cfg.World != 5 || cfg.Level != 1 {
		t.Errorf("expected clamp to 5-1, got %d-%d", cfg.World, cfg.Level)
	}
}

func TestLevelProviderNext(t *testing.T) {
	levels := DefaultLevels()

	tests := []struct {
		world, level         int
		wantWorld, wantLevel int
	}{
		{1, 1, 1, 2},
		{1, 10, 2, 1},
		{4, 10, 5, 1},
		{5, 10, 1, 1},
	}

	for _, tt := range tests {
		w, l := levels.Next(tt.world, tt.level)
		if w != tt.wantWorld || l != tt.wantLevel {
			t.Errorf("Next(%d, %d) = (%d, %d), want (%d, %d)", tt.world, tt.level, w, l, tt.wantWorld, tt.wantLevel)
		}
	}
}

func TestLoadLevels(t *testing.T) {
	tempDir := t.TempDir()

	write := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(tempDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		return path
	}

	t.Run("valid config", func(t *testing.T) {
		path := write(t, "levels.yaml", `
maxWorld: 1
maxLevel: 2
count: {base: 3, perLevel: 1, perWorld: 0, finalLevelMultiplier: 2}
worlds:
  - world: 1
    name: Test
    attackers:
      - {type: bug}
      - {type: goto, fromLevel: 2}
`)
		levels, err := LoadLevels(path)
		if err != nil {
			t.Fatalf("LoadLevels() failed: %v", err)
		}
		first := levels.LevelFor(1, 1)
		if first.TotalZombies != 4 || len(first.AttackerTypes) != 1 {
			t.Errorf("1-1 unexpected: %+v", first)
		}
		last := levels.LevelFor(1, 2)
		if last.TotalZombies != 10 || len(last.AttackerTypes) != 2 {
			t.Errorf("1-2 unexpected: %+v", last)
		}
	})

	t.Run("missing world", func(t *testing.T) {
		path := write(t, "missing.yaml", `
maxWorld: 2
count: {base: 5}
worlds:
  - world: 1
    attackers: [{type: bug}]
`)
		_, err := LoadLevels(path)
		if err == nil || !strings.Contains(err.Error(), "world 2 is not configured") {
			t.Errorf("expected missing world error, got %v", err)
		}
	})

	t.Run("first attacker locked", func(t *testing.T) {
		path := write(t, "locked.yaml", `
maxWorld: 1
count: {base: 5}
worlds:
  - world: 1
    attackers: [{type: bug, fromLevel: 3}]
`)
		_, err := LoadLevels(path)
		if err == nil || !strings.Contains(err.Error(), "must be available from level 1") {
			t.Errorf("expected first attacker error, got %v", err)
		}
	})

	t.Run("unknown attacker", func(t *testing.T) {
		path := write(t, "unknown.yaml", `
maxWorld: 1
count: {base: 5}
worlds:
  - world: 1
    attackers: [{type: basic}]
`)
		_, err := LoadLevels(path)
		if err == nil || !strings.Contains(err.Error(), "unknown zombie type") {
			t.Errorf("expected unknown zombie type error, got %v", err)
		}
	})
}
