package audio

import (
	"log"

	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 图形前端的音效管理器
// 职责：
//   - 把合成的音效预渲染为 PCM，缓存为 ebiten 播放器
//   - 播放时应用 SettingsManager 中的音量和开关设置
type AudioManager struct {
	context         *ebaudio.Context
	settingsManager *game.SettingsManager
	soundPlayers    map[types.SoundEvent]*ebaudio.Player
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（进程内只能创建一个）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *ebaudio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[types.SoundEvent]*ebaudio.Player),
	}
}

// Play 实现模拟的音效输出接口
func (am *AudioManager) Play(event types.SoundEvent) {
	am.PlaySound(event)
}

// PlaySound 播放音效，返回是否成功播放
func (am *AudioManager) PlaySound(event types.SoundEvent) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(event)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", event, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// SetSoundEnabled 开关音效
func (am *AudioManager) SetSoundEnabled(enabled bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundEnabled(enabled)
	}
	if enabled {
		return
	}
	for _, player := range am.soundPlayers {
		player.Pause()
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// PreloadSounds 预渲染音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(events []types.SoundEvent) {
	for _, event := range events {
		am.getSoundPlayer(event)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(events))
}

// getSoundPlayer 获取或渲染音效播放器
func (am *AudioManager) getSoundPlayer(event types.SoundEvent) *ebaudio.Player {
	if player, exists := am.soundPlayers[event]; exists {
		return player
	}

	pcm, err := RenderPCM(event, beep.SampleRate(am.context.SampleRate()))
	if err != nil {
		log.Printf("[AudioManager] Warning: %v", err)
		return nil
	}
	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[event] = player
	return player
}
