package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate 默认采样率
const DefaultSampleRate = beep.SampleRate(48000)

// SpeakerPlayer 通过系统扬声器播放音效
// 所有音效加入同一个混音器，多个事件可以同时发声
type SpeakerPlayer struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volume  float64
	enabled bool
}

// NewSpeakerPlayer 初始化扬声器并开始播放混音器
// speaker 是进程级单例，一个进程只应创建一个 SpeakerPlayer
func NewSpeakerPlayer(rate beep.SampleRate, volume float64) (*SpeakerPlayer, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	p := &SpeakerPlayer{
		rate:    rate,
		mixer:   &beep.Mixer{},
		volume:  volume,
		enabled: true,
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)

	log.Printf("[SpeakerPlayer] Initialized: rate=%d volume=%.2f", rate, volume)
	return p, nil
}

// Play 播放音效事件（不阻塞）
func (p *SpeakerPlayer) Play(event types.SoundEvent) {
	p.mu.Lock()
	enabled, volume := p.enabled, p.volume
	p.mu.Unlock()
	if !enabled {
		return
	}

	streamer, ok := Effect(event, p.rate)
	if !ok {
		log.Printf("[SpeakerPlayer] Warning: unknown sound event %s", event)
		return
	}

	speaker.Lock()
	p.mixer.Add(withVolume(streamer, volume))
	speaker.Unlock()
}

// SetVolume 设置音量 (0.0 ~ 1.0)，影响之后播放的音效
func (p *SpeakerPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
}

// SetEnabled 开关音效
func (p *SpeakerPlayer) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Close 停止所有正在播放的音效
// beep 的 speaker 没有真正的关闭，这里只清空混音器
func (p *SpeakerPlayer) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
