package game

import (
	"testing"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.TickMillis != 0 {
		t.Errorf("TickMillis: got %d, want 0 (use rules)", settings.TickMillis)
	}
	if settings.LastWorld != 1 || settings.LastLevel != 1 {
		t.Errorf("LastLevel: got %d-%d, want 1-1", settings.LastWorld, settings.LastLevel)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("Degraded mode SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}

	// 降级模式下 Save() 应该返回 nil（不报错）
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	gdataManager, err := OpenSettingsStorage("codedefense_test_settings")
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	sm1 := NewSettingsManager(gdataManager)
	sm1.SetSoundVolume(0.6)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetLastLevel(3, 7)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 创建新的设置管理器，验证加载
	sm2 := NewSettingsManager(gdataManager)
	settings := sm2.GetSettings()

	if settings.SoundVolume != 0.6 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.LastWorld != 3 || settings.LastLevel != 7 {
		t.Errorf("Loaded LastLevel: got %d-%d, want 3-7", settings.LastWorld, settings.LastLevel)
	}
}

// TestSettingsLoadPartial 测试旧版本数据缺失字段时保留默认值
func TestSettingsLoadPartial(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	gdataManager, err := OpenSettingsStorage("codedefense_test_partial")
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: 3\ntickMillis: -5\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()

	if settings.SoundVolume != 1.0 {
		t.Errorf("SoundVolume should be clamped to 1.0, got %v", settings.SoundVolume)
	}
	if settings.TickMillis != 0 {
		t.Errorf("negative TickMillis should reset to 0, got %d", settings.TickMillis)
	}
	if !settings.SoundEnabled {
		t.Error("missing soundEnabled should keep default true")
	}
}

// TestSetSoundVolumeClamp 测试 SetSoundVolume 范围校验
func TestSetSoundVolumeClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},  // 正常值
		{0.0, 0.0},  // 下限
		{1.0, 1.0},  // 上限
		{-0.5, 0.0}, // 低于下限
		{1.5, 1.0},  // 高于上限
	}

	for _, tt := range tests {
		sm.SetSoundVolume(tt.input)
		if sm.GetSettings().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, sm.GetSettings().SoundVolume, tt.expected)
		}
	}
}

// TestLoadNilGdataManager 测试降级模式下 Load() 使用默认设置
func TestLoadNilGdataManager(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.3)

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("After Load() in degraded mode, SoundVolume: got %v, want 0.8",
			sm.GetSettings().SoundVolume)
	}
}
