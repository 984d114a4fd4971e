package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func TestEffect_AllEvents(t *testing.T) {
	for _, event := range types.AllSoundEvents {
		t.Run(string(event), func(t *testing.T) {
			streamer, ok := Effect(event, testRate)
			if !ok {
				t.Fatalf("No effect for %s", event)
			}

			expected := testRate.N(Duration(event))
			total := 0
			buf := make([][2]float64, 1000)
			for {
				n, ok := streamer.Stream(buf)
				total += n
				if !ok {
					break
				}
			}
			if total != expected {
				t.Errorf("Expected %d samples, got %d", expected, total)
			}
		})
	}
}

func TestEffect_Unknown(t *testing.T) {
	if _, ok := Effect(types.SoundEvent("laser"), testRate); ok {
		t.Error("Expected unknown event to have no effect")
	}
	if _, err := RenderPCM(types.SoundEvent("laser"), testRate); err == nil {
		t.Error("Expected error rendering unknown event")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		event    types.SoundEvent
		expected time.Duration
	}{
		{types.SoundShoot, 100 * time.Millisecond},
		{types.SoundHit, 50 * time.Millisecond},
		{types.SoundExplode, 500 * time.Millisecond},
		{types.SoundGameOver, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := Duration(tt.event); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.event, tt.expected, got)
		}
	}
}

func TestRenderPCM(t *testing.T) {
	pcm, err := RenderPCM(types.SoundShoot, testRate)
	if err != nil {
		t.Fatalf("RenderPCM failed: %v", err)
	}

	// 16 位立体声，每个采样 4 字节
	if len(pcm) != testRate.N(100*time.Millisecond)*4 {
		t.Fatalf("Unexpected PCM length %d", len(pcm))
	}

	// 方波第一个采样为 +1 × 起始音量 0.1
	startGain := 0.1
	first := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	expected := int16(startGain * math.MaxInt16)
	if first != expected {
		t.Errorf("Expected first sample %d, got %d", expected, first)
	}

	// 左右声道相同，且音量不超过起始音量
	limit := expected + 1
	for i := 0; i < len(pcm); i += 4 {
		left := int16(binary.LittleEndian.Uint16(pcm[i : i+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[i+2 : i+4]))
		if left != right {
			t.Fatalf("Channels differ at sample %d", i/4)
		}
		if left > limit || left < -limit {
			t.Fatalf("Sample %d exceeds start gain: %d", i/4, left)
		}
	}
}

func TestRenderPCM_Decays(t *testing.T) {
	pcm, err := RenderPCM(types.SoundGameOver, testRate)
	if err != nil {
		t.Fatalf("RenderPCM failed: %v", err)
	}

	peak := func(from, to int) int {
		m := 0
		for i := from; i < to; i += 4 {
			v := int(int16(binary.LittleEndian.Uint16(pcm[i : i+2])))
			if v < 0 {
				v = -v
			}
			m = max(m, v)
		}
		return m
	}

	quarter := len(pcm) / 4 / 4 * 4
	head := peak(0, quarter)
	tail := peak(len(pcm)-quarter, len(pcm))
	if tail >= head {
		t.Errorf("Expected linear fade-out, head peak %d tail peak %d", head, tail)
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		name     string
		r        ramp
		from     float64
		to       float64
		progress float64
		expected float64
	}{
		{"hold", rampHold, 200, 400, 0.5, 200},
		{"linear", rampLinear, 600, 1200, 0.5, 900},
		{"exponential", rampExponential, 440, 110, 0.5, 220},
		{"exponential to zero falls back to linear", rampExponential, 0.1, 0, 0.5, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.at(tt.from, tt.to, tt.progress)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
