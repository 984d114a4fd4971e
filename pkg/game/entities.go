package game

import (
	"github.com/decker502/codedefense/pkg/types"
	"github.com/google/uuid"
)

// Plant 防御者
// 计时使用本地累计时间（秒），只由模拟步长推进，不读取外部时钟
type Plant struct {
	ID          uuid.UUID
	Type        types.PlantType
	Row         int
	Col         int
	Health      float64
	MaxHealth   float64
	Age         float64 // 种下后经过的时间，用于地雷布设和一次性植物的触发延迟
	SinceAction float64 // 距上次行动（产出/射击）经过的时间
}

// Zombie 攻击者
type Zombie struct {
	ID        uuid.UUID
	Type      types.ZombieType
	Row       int
	X         float64 // 车道坐标，100 为出发点，0 为防守边界
	Health    float64
	MaxHealth float64
	Speed     float64
	Damage    float64

	Frozen     bool
	FrozenFor  float64 // 冰冻已持续时间
	Stopped    bool
	StoppedFor float64 // 定身已持续时间

	HasJumped   bool
	Enraged     bool
	HasSummoned bool
	SinceSummon float64 // 距上次召唤经过的时间，HasSummoned 为 false 时无意义
}

// Freeze 施加冰冻（重新计时）
func (z *Zombie) Freeze() {
	z.Frozen = true
	z.FrozenFor = 0
}

// Stop 施加定身（重新计时）
func (z *Zombie) Stop() {
	z.Stopped = true
	z.StoppedFor = 0
}

// Projectile 子弹
type Projectile struct {
	ID       uuid.UUID
	Row      int
	X        float64
	Damage   float64
	Speed    float64
	Ice      bool
	Splash   bool
	Piercing bool
	Fire     bool // 已被 @wrapper 增益，防止重复翻倍
	Stop     bool // 命中时必定定身
}

// Particle 纯展示用的粒子，对玩法没有影响
type Particle struct {
	ID     uuid.UUID
	Row    float64 // 显示行，会随 VY 漂移
	X      float64
	Symbol string
	Life   float64 // 剩余寿命，同时用作透明度
	VY     float64
	Color  string // 空字符串表示使用前端默认颜色
}
