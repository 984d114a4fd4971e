package config

import (
	"embed"
	"fmt"
	"os"
)

// defaultsFS 内置的默认配置表
// 运行时可通过 LoadXxx(path) 使用外部文件覆盖
//
//go:embed data/*.yaml
var defaultsFS embed.FS

// 内置配置文件路径
const (
	RulesFile       = "data/rules.yaml"
	PlantStatsFile  = "data/plants.yaml"
	ZombieStatsFile = "data/zombies.yaml"
	SpawnRulesFile  = "data/spawn_rules.yaml"
	LevelsFile      = "data/levels.yaml"
)

// readConfigFile 读取外部配置文件
func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return data, nil
}

// readEmbedded 读取内置配置文件
// 内置文件缺失属于构建错误，直接 panic
func readEmbedded(path string) []byte {
	data, err := defaultsFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("embedded config %s missing: %v", path, err))
	}
	return data
}

// mustParse 解析内置配置，失败时 panic
// 内置配置在测试中覆盖校验，运行时不应失败
func mustParse[T any](path string, parse func([]byte, string) (*T, error)) *T {
	cfg, err := parse(readEmbedded(path), path)
	if err != nil {
		panic(fmt.Sprintf("embedded config %s invalid: %v", path, err))
	}
	return cfg
}
