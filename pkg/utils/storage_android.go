//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 上 gdata 使用的设置目录存在并可写
// gdata 在 Android 上写入 /data/data/{package}/，但不会预先创建子目录
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	settingsDir := filepath.Join(dir, "settings")
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", settingsDir, err)
	}

	probe := filepath.Join(settingsDir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", settingsDir, err)
	}
	_ = os.Remove(probe)
	return nil
}

// GetStoragePath 返回应用私有存储目录，无法识别包名时返回空字符串
// 包名取自 /proc/self/cmdline
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg := string(bytes.TrimSpace(bytes.ReplaceAll(data, []byte{0}, nil)))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
