// Package audio 合成并播放模拟发出的音效事件
//
// 音效没有外部素材，全部由振荡器实时合成：
// 每个事件对应一个波形、一段频率扫描和一段音量包络。
// 同一份合成结果有两个出口：
//   - SpeakerPlayer: 通过 beep/speaker 直接混音输出（终端前端）
//   - AudioManager: 预渲染为 PCM，交给 ebiten 的音频上下文播放（图形前端）
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// ramp 参数从起始值到结束值的变化方式
type ramp int

const (
	rampHold        ramp = iota // 保持起始值
	rampLinear                  // 线性
	rampExponential             // 指数
)

// voice 一个音效的合成参数
type voice struct {
	wave      Wave
	freqFrom  float64
	freqTo    float64
	freqRamp  ramp
	gainFrom  float64
	gainTo    float64
	gainRamp  ramp
	duration  time.Duration
}

var voices = map[types.SoundEvent]voice{
	types.SoundShoot: {
		wave: WaveSquare, freqFrom: 440, freqTo: 110, freqRamp: rampExponential,
		gainFrom: 0.1, gainTo: 0.01, gainRamp: rampExponential, duration: 100 * time.Millisecond,
	},
	types.SoundHit: {
		wave: WaveSaw, freqFrom: 100, freqTo: 100, freqRamp: rampHold,
		gainFrom: 0.1, gainTo: 0, gainRamp: rampLinear, duration: 50 * time.Millisecond,
	},
	types.SoundCollect: {
		wave: WaveSine, freqFrom: 600, freqTo: 1200, freqRamp: rampLinear,
		gainFrom: 0.1, gainTo: 0, gainRamp: rampLinear, duration: 100 * time.Millisecond,
	},
	types.SoundPlace: {
		wave: WaveSine, freqFrom: 200, freqTo: 200, freqRamp: rampHold,
		gainFrom: 0.1, gainTo: 0, gainRamp: rampLinear, duration: 100 * time.Millisecond,
	},
	types.SoundExplode: {
		wave: WaveSaw, freqFrom: 100, freqTo: 10, freqRamp: rampExponential,
		gainFrom: 0.3, gainTo: 0.01, gainRamp: rampExponential, duration: 500 * time.Millisecond,
	},
	types.SoundGameOver: {
		wave: WaveSaw, freqFrom: 300, freqTo: 50, freqRamp: rampLinear,
		gainFrom: 0.2, gainTo: 0, gainRamp: rampLinear, duration: 2 * time.Second,
	},
}

func (r ramp) at(from, to, progress float64) float64 {
	switch r {
	case rampLinear:
		return from + (to-from)*progress
	case rampExponential:
		if from <= 0 || to <= 0 {
			return from + (to-from)*progress
		}
		return from * math.Pow(to/from, progress)
	default:
		return from
	}
}

// sweepOscillator 带频率扫描和音量包络的振荡器
type sweepOscillator struct {
	v        voice
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newSweepOscillator(v voice, rate beep.SampleRate) *sweepOscillator {
	return &sweepOscillator{
		v:     v,
		rate:  rate,
		total: rate.N(v.duration),
	}
}

func (o *sweepOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		progress := float64(o.position) / float64(o.total)
		freq := o.v.freqRamp.at(o.v.freqFrom, o.v.freqTo, progress)
		gain := o.v.gainRamp.at(o.v.gainFrom, o.v.gainTo, progress)

		var val float64
		switch o.v.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}
		val *= gain

		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweepOscillator) Err() error { return nil }

// Effect 返回事件对应的音效流，未知事件返回 false
func Effect(event types.SoundEvent, rate beep.SampleRate) (beep.Streamer, bool) {
	v, ok := voices[event]
	if !ok {
		return nil, false
	}
	return newSweepOscillator(v, rate), true
}

// Duration 返回音效时长
func Duration(event types.SoundEvent) time.Duration {
	return voices[event].duration
}

// withVolume 按线性音量 (0~1) 包装音效流
// math.Log2(0) 是 -Inf，音量为 0 时直接静音
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// RenderPCM 把音效渲染为 16 位有符号小端立体声 PCM
func RenderPCM(event types.SoundEvent, rate beep.SampleRate) ([]byte, error) {
	streamer, ok := Effect(event, rate)
	if !ok {
		return nil, fmt.Errorf("unknown sound event %q", event)
	}

	total := rate.N(Duration(event))
	pcm := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(toInt16(buf[i][0])))
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(toInt16(buf[i][1])))
		}
		if !ok || n < len(buf) {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to render sound %s: %w", event, err)
	}
	return pcm, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
