package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
	"github.com/google/uuid"
)

// LogOutputFrameInterval 日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 100

// Simulation 模拟核心
//
// Step 是一个状态转移函数：输入快照不会被修改，返回新的快照。
// 每帧的阶段顺序固定：
//
//	资源掉落 → 植物 → 子弹 → 攻击者 → 生成 → 清理死亡实体 → 粒子 → 胜负判定
//
// 所有随机数都来自注入的 rng，固定种子即可复现整局。
// Simulation 不是并发安全的，同一时刻只能由一个调用方驱动。
type Simulation struct {
	rules   *config.GameRules
	plants  config.PlantTable
	zombies config.ZombieTable
	spawn   *config.SpawnRulesConfig
	levels  *config.LevelProvider

	rng   *rand.Rand
	audio AudioSink

	plantActions    map[config.PlantAction]plantActionFunc
	zombieBehaviors map[config.ZombieBehavior]zombieBehavior

	logFrameCounter int
}

// NewSimulation 创建模拟核心
// 参数:
//   - tables: 静态配置表
//   - rng: 随机数来源（生成、定身判定、实体 ID 等）
//   - audio: 音效输出，可为 nil
func NewSimulation(tables *config.Tables, rng *rand.Rand, audio AudioSink) *Simulation {
	if audio == nil {
		audio = NopAudio{}
	}
	return &Simulation{
		rules:           tables.Rules,
		plants:          tables.Plants,
		zombies:         tables.Zombies,
		spawn:           tables.Spawn,
		levels:          tables.Levels,
		rng:             rng,
		audio:           audio,
		plantActions:    defaultPlantActions(),
		zombieBehaviors: defaultZombieBehaviors(),
	}
}

// Rules 返回全局规则
func (s *Simulation) Rules() *config.GameRules {
	return s.rules
}

// Levels 返回关卡配置
func (s *Simulation) Levels() *config.LevelProvider {
	return s.levels
}

// PlantStats 返回植物属性（前端显示卡片用）
func (s *Simulation) PlantStats(pt types.PlantType) *config.PlantStats {
	return s.plants.MustGet(pt)
}

// ZombieStats 返回攻击者属性（前端显示用）
func (s *Simulation) ZombieStats(zt types.ZombieType) *config.ZombieStats {
	return s.zombies.MustGet(zt)
}

// SetAudio 替换音效输出
func (s *Simulation) SetAudio(audio AudioSink) {
	if audio == nil {
		audio = NopAudio{}
	}
	s.audio = audio
}

// tick 单帧的工作上下文
type tick struct {
	sim      *Simulation
	state    *game.GameState // 本帧的工作副本
	dt       float64
	summoned []game.Zombie // 本帧召唤出的攻击者，在生成之后加入
	score    int           // 本帧得分
}

// Step 推进一帧
// 终局状态直接返回原快照；否则返回新的快照，输入快照保持不变
func (s *Simulation) Step(state *game.GameState, dt float64) *game.GameState {
	if state.IsTerminal() {
		return state
	}

	t := &tick{
		sim:   s,
		state: state.Clone(),
		dt:    dt,
	}

	t.resourceIncome()
	t.updatePlants()
	t.updateProjectiles()
	t.updateZombies()
	t.spawnZombie()
	t.removeDead()
	t.updateParticles()
	t.checkLevelComplete()

	t.state.Time += dt

	s.logFrameCounter++
	if s.logFrameCounter%LogOutputFrameInterval == 1 {
		log.Printf("[Simulation] Level %d-%d t=%.1fs: RAM=%d plants=%d zombies=%d projectiles=%d spawned=%d/%d score=%d",
			t.state.World, t.state.Level, t.state.Time, t.state.Resources,
			len(t.state.Plants), len(t.state.Zombies), len(t.state.Projectiles),
			t.state.ZombiesSpawned, t.state.TotalZombies, t.state.Score)
	}

	return t.state
}

// Place 种植命令
//
// 终局、越界、格子已占用或 RAM 不足时拒绝（返回原快照和 false）。
// 成功时返回扣除费用并加入植物后的新快照。
func (s *Simulation) Place(state *game.GameState, row, col int, plantType types.PlantType) (*game.GameState, bool) {
	if state.IsTerminal() {
		return state, false
	}
	if !utils.InBounds(row, col, s.rules.Grid.Rows, s.rules.Grid.Cols) {
		return state, false
	}
	if _, occupied := state.PlantAt(row, col); occupied {
		return state, false
	}

	stats := s.plants.MustGet(plantType)
	if state.Resources < stats.Cost {
		return state, false
	}

	next := state.Clone()
	next.Resources -= stats.Cost

	plant := game.Plant{
		ID:        s.newID(),
		Type:      plantType,
		Row:       row,
		Col:       col,
		Health:    stats.Health,
		MaxHealth: stats.Health,
	}
	// 直射类种下即可开火，投掷类需要等待完整冷却
	if stats.Action == config.ActionShoot && stats.ReadyOnPlace {
		plant.SinceAction = stats.Cooldown
	}
	next.Plants = append(next.Plants, plant)

	s.audio.Play(types.SoundPlace)
	return next, true
}

// newID 从注入的随机源生成实体 ID
func (s *Simulation) newID() uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(s.rng))
}

// newZombie 按属性表创建攻击者
// 普通生成和召唤共用这一条创建路径
func (s *Simulation) newZombie(zt types.ZombieType, row int, x float64) game.Zombie {
	stats := s.zombies.MustGet(zt)
	return game.Zombie{
		ID:        s.newID(),
		Type:      zt,
		Row:       row,
		X:         x,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		Speed:     stats.Speed,
		Damage:    stats.Damage,
	}
}

// emit 添加一个粒子
func (t *tick) emit(row, x float64, symbol string, life, vy float64, color string) {
	t.state.Particles = append(t.state.Particles, game.Particle{
		ID:     t.sim.newID(),
		Row:    row,
		X:      x,
		Symbol: symbol,
		Life:   life,
		VY:     vy,
		Color:  color,
	})
}

// play 发出音效事件
func (t *tick) play(event types.SoundEvent) {
	t.sim.audio.Play(event)
}

// colPercent 返回列的车道坐标
func (t *tick) colPercent(col int) float64 {
	return utils.ColumnToLane(col, t.sim.rules.Grid.Cols)
}
