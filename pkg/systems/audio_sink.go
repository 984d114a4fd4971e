package systems

import "github.com/decker502/codedefense/pkg/types"

// AudioSink 音效输出接口
// 模拟只负责发出事件，不等待播放结果，也不关心是否播放成功
type AudioSink interface {
	Play(event types.SoundEvent)
}

// NopAudio 丢弃所有音效事件（无头运行和测试使用）
type NopAudio struct{}

// Play 实现 AudioSink
func (NopAudio) Play(types.SoundEvent) {}

// SoundRecorder 记录收到的音效事件（测试和统计使用）
type SoundRecorder struct {
	Events []types.SoundEvent
}

// Play 实现 AudioSink
func (r *SoundRecorder) Play(event types.SoundEvent) {
	r.Events = append(r.Events, event)
}

// Count 返回某个事件出现的次数
func (r *SoundRecorder) Count(event types.SoundEvent) int {
	n := 0
	for _, e := range r.Events {
		if e == event {
			n++
		}
	}
	return n
}

// Reset 清空记录
func (r *SoundRecorder) Reset() {
	r.Events = r.Events[:0]
}
