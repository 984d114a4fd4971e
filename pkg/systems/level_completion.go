package systems

import "log"

// removeDead 帧末清理
//
// 召唤物在生成之后加入集合。
// 攻击者阶段中途死亡的攻击者（例如踩到地雷）在这里移除并计分，
// 血量归零的植物也在这里移除，保证返回的快照中所有实体血量为正。
func (t *tick) removeDead() {
	s := t.state
	s.Zombies = append(s.Zombies, t.summoned...)

	zombies := s.Zombies[:0]
	for _, z := range s.Zombies {
		if z.Health <= 0 {
			t.score += t.sim.zombies.MustGet(z.Type).Score
			continue
		}
		zombies = append(zombies, z)
	}
	s.Zombies = zombies

	plants := s.Plants[:0]
	for _, p := range s.Plants {
		if p.Health > 0 {
			plants = append(plants, p)
		}
	}
	s.Plants = plants

	s.Score += t.score
}

// checkLevelComplete 胜利判定
// 生成数已达总数、没有存活攻击者、且本帧没有召唤出新的攻击者
func (t *tick) checkLevelComplete() {
	s := t.state
	if s.Lost || s.Won {
		return
	}
	if s.ZombiesSpawned >= s.TotalZombies && len(s.Zombies) == 0 && len(t.summoned) == 0 {
		s.Won = true
		log.Printf("[Simulation] Level %d-%d won at t=%.1fs, score=%d", s.World, s.Level, s.Time+t.dt, s.Score)
	}
}
