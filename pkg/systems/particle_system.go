package systems

// updateParticles 粒子衰减
// 寿命按 decayRate 递减，显示行按 VY 漂移；粒子对玩法没有任何影响
func (t *tick) updateParticles() {
	rules := t.sim.rules.Particle
	particles := t.state.Particles
	kept := particles[:0]
	for i := range particles {
		p := particles[i]
		p.Life -= t.dt * rules.DecayRate
		p.Row -= p.VY * t.dt * rules.DriftFactor
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	t.state.Particles = kept
}
