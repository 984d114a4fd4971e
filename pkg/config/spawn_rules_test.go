package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/codedefense/pkg/types"
)

func TestLoadSpawnRules(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SpawnRulesConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
baseChance: 0.01
worldFactor: 1
rushThreshold: 3
rushMultiplier: 4
rareType: monolith
rareAcceptance: 0.5
`,
			validate: func(t *testing.T, cfg *SpawnRulesConfig) {
				if cfg.BaseChance != 0.01 {
					t.Errorf("expected baseChance = 0.01, got %f", cfg.BaseChance)
				}
				if cfg.RareZombieType() != types.ZombieMonolith {
					t.Errorf("expected rare type monolith, got %v", cfg.RareZombieType())
				}
			},
		},
		{
			name: "rush multiplier defaults to 1",
			yamlContent: `
baseChance: 0.01
`,
			validate: func(t *testing.T, cfg *SpawnRulesConfig) {
				if cfg.RushMultiplier != 1 {
					t.Errorf("expected rushMultiplier = 1, got %f", cfg.RushMultiplier)
				}
				if cfg.RareZombieType() != types.ZombieUnknown {
					t.Errorf("expected no rare type, got %v", cfg.RareZombieType())
				}
			},
		},
		{
			name:        "zero base chance",
			yamlContent: `baseChance: 0`,
			wantErr:     true,
			errContains: "baseChance must be within",
		},
		{
			name: "unknown rare type",
			yamlContent: `
baseChance: 0.01
rareType: gargantuar
`,
			wantErr:     true,
			errContains: "is not a known zombie type",
		},
		{
			name: "rare acceptance out of range",
			yamlContent: `
baseChance: 0.01
rareAcceptance: 1.5
`,
			wantErr:     true,
			errContains: "rareAcceptance must be within",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 创建临时 YAML 文件
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "spawn_rules.yaml")
			if err := os.WriteFile(tmpFile, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to create temp file: %v", err)
			}

			cfg, err := LoadSpawnRules(tmpFile)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errContains)
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSpawnRules_FileNotFound(t *testing.T) {
	_, err := LoadSpawnRules("/nonexistent/path.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected error about reading file, got: %v", err)
	}
}

func TestSpawnRulesChanceFor(t *testing.T) {
	cfg := DefaultSpawnRules()

	tests := []struct {
		world     int
		remaining int
		want      float64
	}{
		{world: 1, remaining: 10, want: 0.003},
		{world: 1, remaining: 4, want: 0.006},
		{world: 5, remaining: 5, want: 0.007},
		{world: 5, remaining: 1, want: 0.014},
	}

	for _, tt := range tests {
		got := cfg.ChanceFor(tt.world, tt.remaining)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ChanceFor(%d, %d) = %f, want %f", tt.world, tt.remaining, got, tt.want)
		}
	}
}
