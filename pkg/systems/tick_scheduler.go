package systems

import (
	"time"

	"github.com/decker502/codedefense/pkg/game"
)

// TickScheduler 把真实时间转换为固定步长的模拟帧
//
// 累加真实经过的时间，累计达到一个步长时执行一帧。
// 一个真实帧内最多执行一帧，多出的时间直接丢弃而不是排队补帧，
// 所以模拟速度有上限，卡顿后不会快进追赶。
type TickScheduler struct {
	step        time.Duration
	accumulated time.Duration
	ticks       uint64
}

// NewTickScheduler 创建调度器
// step 不大于 0 时使用 30ms
func NewTickScheduler(step time.Duration) *TickScheduler {
	if step <= 0 {
		step = 30 * time.Millisecond
	}
	return &TickScheduler{step: step}
}

// Step 返回固定步长
func (s *TickScheduler) Step() time.Duration {
	return s.step
}

// StepSeconds 返回固定步长（秒）
func (s *TickScheduler) StepSeconds() float64 {
	return s.step.Seconds()
}

// Ticks 返回已执行的帧数
func (s *TickScheduler) Ticks() uint64 {
	return s.ticks
}

// Advance 累加真实时间，返回本次是否应该执行一帧
func (s *TickScheduler) Advance(elapsed time.Duration) bool {
	if elapsed > 0 {
		s.accumulated += elapsed
	}
	if s.accumulated < s.step {
		return false
	}
	s.accumulated = 0
	s.ticks++
	return true
}

// Reset 清空累计时间（暂停恢复、切换关卡时调用）
func (s *TickScheduler) Reset() {
	s.accumulated = 0
}

// Update 累加真实时间，需要时推进一帧
// 返回推进后的快照；未到步长时原样返回
func (s *TickScheduler) Update(sim *Simulation, state *game.GameState, elapsed time.Duration) *game.GameState {
	if !s.Advance(elapsed) {
		return state
	}
	return sim.Step(state, s.StepSeconds())
}
