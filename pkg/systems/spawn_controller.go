package systems

// spawnZombie 生成控制
//
// 每帧至多生成一个攻击者，达到关卡总数后不再生成。
// 概率 = base × (1 + world × factor)，剩余数少于 rushThreshold 时加倍。
// 类型从本关允许列表中均匀抽取；稀有类型只有 rareAcceptance 的概率被接受，否则替换为列表第一个类型。
func (t *tick) spawnZombie() {
	s := t.state
	if s.ZombiesSpawned >= s.TotalZombies {
		return
	}

	spawn := t.sim.spawn
	rng := t.sim.rng
	if rng.Float64() >= spawn.ChanceFor(s.World, s.Remaining()) {
		return
	}

	level := t.sim.levels.LevelFor(s.World, s.Level)
	row := rng.Intn(t.sim.rules.Grid.Rows)
	zt := level.AttackerTypes[rng.Intn(len(level.AttackerTypes))]
	if spawn.RareType != "" && zt == spawn.RareZombieType() && rng.Float64() >= spawn.RareAcceptance {
		zt = level.AttackerTypes[0]
	}

	s.Zombies = append(s.Zombies, t.sim.newZombie(zt, row, t.sim.rules.Zombie.StartX))
	s.ZombiesSpawned++
}
