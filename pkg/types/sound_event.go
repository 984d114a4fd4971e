package types

// SoundEvent 音效事件名称
// 核心逻辑只负责发出事件，不关心播放结果
type SoundEvent string

const (
	SoundShoot    SoundEvent = "shoot"
	SoundHit      SoundEvent = "hit"
	SoundPlace    SoundEvent = "place"
	SoundCollect  SoundEvent = "collect"
	SoundExplode  SoundEvent = "explode"
	SoundGameOver SoundEvent = "gameover"
)

// AllSoundEvents 所有音效事件（用于预生成音效缓存）
var AllSoundEvents = []SoundEvent{
	SoundShoot,
	SoundHit,
	SoundPlace,
	SoundCollect,
	SoundExplode,
	SoundGameOver,
}
