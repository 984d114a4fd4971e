package systems

import (
	"testing"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
	"github.com/google/uuid"
)

// TestPlantSystem_ProducerEconomy 产出植物冷却结束后恰好产出一次
func TestPlantSystem_ProducerEconomy(t *testing.T) {
	sim, rec := newTestSimulation(t, noSpawnTables(), 10)

	s, ok := sim.Place(newQuietState(50), 0, 0, types.PlantProducer)
	if !ok {
		t.Fatal("Expected producer placement to succeed")
	}
	if s.Resources != 0 {
		t.Fatalf("Expected 0 RAM after placement, got %d", s.Resources)
	}

	// 0.5 秒步长，第 24 帧时 sinceAction 恰好达到 12 秒冷却
	for i := 1; i < 24; i++ {
		s = sim.Step(s, 0.5)
		if s.Resources != 0 {
			t.Fatalf("Produced RAM too early at step %d", i)
		}
	}

	rec.Reset()
	s = sim.Step(s, 0.5)
	if s.Resources != 25 {
		t.Errorf("Expected 25 RAM after cooldown, got %d", s.Resources)
	}
	if s.Plants[0].SinceAction != 0 {
		t.Errorf("Expected sinceAction reset to 0, got %v", s.Plants[0].SinceAction)
	}
	if rec.Count(types.SoundCollect) != 1 {
		t.Errorf("Expected one collect sound, got %d", rec.Count(types.SoundCollect))
	}
}

func TestPlantSystem_ShooterNeedsTarget(t *testing.T) {
	sim, rec := newTestSimulation(t, noSpawnTables(), 11)

	t.Run("本行无攻击者不开火", func(t *testing.T) {
		rec.Reset()
		s, _ := sim.Place(newQuietState(100), 1, 0, types.PlantShooter)
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieSyntaxError, 2, 80))
		s = sim.Step(s, 0.03)
		if len(s.Projectiles) != 0 {
			t.Errorf("Expected no projectiles, got %d", len(s.Projectiles))
		}
		if rec.Count(types.SoundShoot) != 0 {
			t.Error("Expected no shoot sound")
		}
	})

	t.Run("攻击者在身后不开火", func(t *testing.T) {
		s, _ := sim.Place(newQuietState(100), 1, 5, types.PlantShooter)
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieSyntaxError, 1, 20))
		s = sim.Step(s, 0.03)
		if len(s.Projectiles) != 0 {
			t.Errorf("Expected no projectiles, got %d", len(s.Projectiles))
		}
	})

	t.Run("有目标时开火并重置冷却", func(t *testing.T) {
		rec.Reset()
		s, _ := sim.Place(newQuietState(100), 1, 0, types.PlantShooter)
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieSyntaxError, 1, 80))
		s = sim.Step(s, 0.03)
		if len(s.Projectiles) != 1 {
			t.Fatalf("Expected 1 projectile, got %d", len(s.Projectiles))
		}
		if s.Plants[0].SinceAction != 0 {
			t.Errorf("Expected sinceAction reset, got %v", s.Plants[0].SinceAction)
		}
		if rec.Count(types.SoundShoot) != 1 {
			t.Errorf("Expected one shoot sound, got %d", rec.Count(types.SoundShoot))
		}

		// 冷却期间不再开火
		s = sim.Step(s, 0.03)
		if len(s.Projectiles) != 1 {
			t.Errorf("Expected no new projectile during cooldown, got %d", len(s.Projectiles))
		}
	})
}

func TestPlantSystem_LambdaRange(t *testing.T) {
	sim, _ := newTestSimulation(t, noSpawnTables(), 12)

	tests := []struct {
		name   string
		x      float64
		shoots bool
	}{
		{"射程内", 30, true},
		{"射程边缘外", 40, false},
		{"远处", 90, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := sim.Place(newQuietState(0), 3, 0, types.PlantLambda)
			s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieLegacyCode, 3, tt.x))
			s = sim.Step(s, 0.03)
			if got := len(s.Projectiles) > 0; got != tt.shoots {
				t.Errorf("x=%v: expected shoot=%v, got %v", tt.x, tt.shoots, got)
			}
		})
	}
}

func TestPlantSystem_MultiShot(t *testing.T) {
	sim, _ := newTestSimulation(t, noSpawnTables(), 13)

	s, _ := sim.Place(newQuietState(250), 0, 0, types.PlantGatling)
	s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieLegacyCode, 0, 90))
	s = sim.Step(s, 0.03)

	if len(s.Projectiles) != 4 {
		t.Fatalf("Expected 4 projectiles, got %d", len(s.Projectiles))
	}
	for i := 1; i < len(s.Projectiles); i++ {
		gap := s.Projectiles[i-1].X - s.Projectiles[i].X
		if !approxEqual(gap, 2) {
			t.Errorf("Expected projectiles staggered by 2, got %v", gap)
		}
	}
}

func TestPlantSystem_KernelStopChance(t *testing.T) {
	sim, _ := newTestSimulation(t, noSpawnTables(), 14)

	stops, total := 0, 0
	for i := 0; i < 400; i++ {
		s, _ := sim.Place(newQuietState(100), 0, 0, types.PlantKernel)
		s.Plants[0].SinceAction = 3
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieLegacyCode, 0, 90))
		s = sim.Step(s, 0.03)
		for _, p := range s.Projectiles {
			total++
			if p.Stop {
				stops++
			}
		}
	}
	if total != 400 {
		t.Fatalf("Expected 400 projectiles, got %d", total)
	}
	// 0.25 概率，400 次的期望为 100
	if stops < 60 || stops > 140 {
		t.Errorf("Stop chance looks wrong: %d/%d", stops, total)
	}
}

// TestPlantSystem_LaneClear 清行植物只影响本行
func TestPlantSystem_LaneClear(t *testing.T) {
	sim, rec := newTestSimulation(t, noSpawnTables(), 15)

	s, ok := sim.Place(newQuietState(200), 2, 0, types.PlantExit)
	if !ok {
		t.Fatal("Expected exit placement to succeed")
	}
	for _, x := range []float64{50, 70, 90} {
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieSyntaxError, 2, x))
	}
	other1 := testZombie(sim, types.ZombieSyntaxError, 1, 60)
	other3 := testZombie(sim, types.ZombieSyntaxError, 3, 60)
	s.Zombies = append(s.Zombies, other1, other3)

	// 0.5 秒时还没到 0.8 秒的延迟
	s = sim.Step(s, 0.5)
	if len(s.Zombies) != 5 || len(s.Plants) != 1 {
		t.Fatalf("Lane clear triggered too early: zombies=%d plants=%d", len(s.Zombies), len(s.Plants))
	}

	t.Run("植物阶段写入必死血量", func(t *testing.T) {
		work := &tick{sim: sim, state: s.Clone(), dt: 0.5}
		work.updatePlants()
		for _, z := range work.state.Zombies {
			if z.Row == 2 && z.Health != -9999 {
				t.Errorf("Expected row 2 zombie health -9999, got %v", z.Health)
			}
			if z.Row != 2 && z.Health != 270 {
				t.Errorf("Expected row %d zombie untouched, got %v", z.Row, z.Health)
			}
		}
		if len(work.state.Plants) != 0 {
			t.Error("Exit should remove itself")
		}
	})

	rec.Reset()
	s = sim.Step(s, 0.5)
	if len(s.Zombies) != 2 {
		t.Fatalf("Expected 2 zombies left, got %d", len(s.Zombies))
	}
	for _, z := range s.Zombies {
		if z.Row == 2 {
			t.Error("Row 2 zombie survived lane clear")
		}
		if z.Health != 270 {
			t.Errorf("Other rows should be unaffected, got health %v", z.Health)
		}
	}
	if s.Score != 30 {
		t.Errorf("Expected score 30, got %d", s.Score)
	}
	if len(s.Plants) != 0 {
		t.Error("Exit should be gone after triggering")
	}
	if rec.Count(types.SoundExplode) != 1 {
		t.Errorf("Expected one explode sound, got %d", rec.Count(types.SoundExplode))
	}
}

func TestPlantSystem_Bomb(t *testing.T) {
	sim, _ := newTestSimulation(t, noSpawnTables(), 16)

	s, _ := sim.Place(newQuietState(150), 2, 4, types.PlantBomb)
	center := utils.ColumnToLane(4, 9)

	inBand := []struct {
		row int
		x   float64
	}{
		{1, center + 10},
		{2, center},
		{3, center - 10},
	}
	outOfBand := []struct {
		row int
		x   float64
	}{
		{0, center},
		{4, center},
		{2, center + 20},
	}
	for _, z := range inBand {
		s.Zombies = append(s.Zombies, testZombie(sim, types.ZombieLegacyCode, z.row, z.x))
	}
	var survivors []uuid.UUID
	for _, z := range outOfBand {
		zz := testZombie(sim, types.ZombieLegacyCode, z.row, z.x)
		survivors = append(survivors, zz.ID)
		s.Zombies = append(s.Zombies, zz)
	}

	// 延迟 1 秒
	s = sim.Step(s, 0.5)
	if len(s.Plants) != 1 {
		t.Fatal("Bomb detonated too early")
	}
	s = sim.Step(s, 0.5)
	if len(s.Plants) != 0 {
		t.Fatal("Expected bomb to remove itself")
	}
	if len(s.Zombies) != len(outOfBand) {
		t.Fatalf("Expected %d survivors, got %d", len(outOfBand), len(s.Zombies))
	}
	for i, z := range s.Zombies {
		if z.ID != survivors[i] {
			t.Errorf("Unexpected survivor %v", z)
		}
	}
	if s.Score != 150 {
		t.Errorf("Expected score 150, got %d", s.Score)
	}
}
