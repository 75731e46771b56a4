package stage

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/ecs/system"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	return tuning
}

func difficulty(t *testing.T, tuning *prefabs.Tuning, key string) prefabs.Difficulty {
	t.Helper()
	for _, d := range tuning.Difficulties {
		if d.Key == key {
			return d
		}
	}
	t.Fatalf("no difficulty %q", key)
	return prefabs.Difficulty{}
}

func basicWaves() []prefabs.Wave {
	return []prefabs.Wave{
		{Delay: 0, Enemies: []prefabs.EnemyGroup{{Type: "basic", Count: 3}}},
		{Delay: 10, Enemies: []prefabs.EnemyGroup{{Type: "basic", Count: 4}}},
		{Delay: 20, Enemies: []prefabs.EnemyGroup{{Type: "basic", Count: 5}}},
	}
}

func newScheduler(t *testing.T, st prefabs.StageConfig, diff string) *Scheduler {
	t.Helper()
	tuning := loadTuning(t)
	return New(Config{
		Tuning:     tuning,
		Stage:      st,
		Difficulty: difficulty(t, tuning, diff),
		Events:     &ecs.EventQueue[component.Event]{},
		Rand:       rand.New(rand.NewPCG(7, 11)),
	})
}

func enemyTypes(w *system.World) []string {
	var out []string
	w.Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
		out = append(out, a.Enemy.Type)
	})
	return out
}

func TestWavesSpawnOnceWhenDue(t *testing.T) {
	s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: basicWaves()}, "normal")

	s.Update(9.9)
	assert.Equal(t, 3, s.Spawned())
	assert.Equal(t, 0, s.CurrentWave())

	s.Update(0.1)
	assert.Equal(t, 7, s.Spawned())
	assert.Equal(t, 1, s.CurrentWave())

	s.Update(5)
	assert.Equal(t, 7, s.Spawned())

	s.Update(5)
	s.Update(5)
	assert.Equal(t, 12, s.Spawned())
	assert.True(t, s.AllWavesSpawned())
}

func TestSpawnPlacement(t *testing.T) {
	t.Run("off the right edge", func(t *testing.T) {
		s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: basicWaves()[:1]}, "normal")
		s.Update(0)
		tuning := s.cfg.Tuning
		var xs []float64
		s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
			xs = append(xs, a.Pos.X)
			assert.Equal(t, s.House().Bounds().Right(), a.Enemy.TargetX)
			assert.Equal(t, s.World().GroundY()-a.H, a.Pos.Y)
		})
		w := tuning.Playfield.Width
		assert.Equal(t, []float64{w + 30, w + 90, w + 150}, xs)
	})

	t.Run("from the castle", func(t *testing.T) {
		s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, CastleHP: 30, Waves: basicWaves()[:1]}, "normal")
		s.Update(0)
		castle := s.World().CastleActor()
		require.NotNil(t, castle)
		s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
			assert.GreaterOrEqual(t, a.Pos.X, castle.Pos.X)
			assert.Less(t, a.Pos.X, castle.Pos.X+s.cfg.Tuning.Enemies.Spawn.CastleJitter)
		})
	})

	t.Run("flying band", func(t *testing.T) {
		waves := []prefabs.Wave{{Enemies: []prefabs.EnemyGroup{{Type: "flying", Count: 4}}}}
		s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: waves}, "normal")
		s.Update(0)
		fs := s.cfg.Tuning.Enemies.Flying
		ground := s.World().GroundY()
		s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
			assert.True(t, a.Enemy.Flying)
			assert.LessOrEqual(t, a.Enemy.BaseY, ground-fs.MinAltitude)
			assert.Greater(t, a.Enemy.BaseY, ground-fs.MinAltitude-fs.AltitudeBand)
		})
	})
}

func TestEqualDelaysKeepDeclarationOrder(t *testing.T) {
	st := prefabs.StageConfig{
		HouseHP: 100,
		Waves: []prefabs.Wave{
			{Delay: 5, Enemies: []prefabs.EnemyGroup{{Type: "fast", Count: 1}}},
			{Delay: 5, Enemies: []prefabs.EnemyGroup{{Type: "tank", Count: 1}}},
			{Delay: 1, Enemies: []prefabs.EnemyGroup{{Type: "basic", Count: 1}}},
		},
		ExtraWaves: []prefabs.Wave{
			{Delay: 5, Enemies: []prefabs.EnemyGroup{{Type: "flying", Count: 1}}},
		},
	}
	s := newScheduler(t, st, "hard")
	s.Update(5)
	assert.Equal(t, []string{"basic", "fast", "tank", "flying"}, enemyTypes(s.World()))

	normal := newScheduler(t, st, "normal")
	normal.Update(5)
	assert.Equal(t, []string{"basic", "fast", "tank"}, enemyTypes(normal.World()), "extra waves only on hard")
}

func TestUnknownEnemyTypeUsesDefault(t *testing.T) {
	waves := []prefabs.Wave{{Enemies: []prefabs.EnemyGroup{{Type: "lava_golem", Count: 1}}}}
	s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: waves}, "normal")
	s.Update(0)
	assert.Equal(t, []string{"basic"}, enemyTypes(s.World()))
}

func TestCastleStageClearsOnlyWhenCastleFalls(t *testing.T) {
	s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, CastleHP: 30, Waves: basicWaves()[:1]}, "normal")
	s.Update(0)
	castle := s.World().CastleActor()
	require.Equal(t, 30, castle.HP)
	assert.False(t, s.Evaluate())

	s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) { a.Active = false })
	assert.False(t, s.Evaluate(), "no enemies left but the castle stands")

	s.Update(0)
	_, e := spawnOne(s)
	system.TakeDamage(s.cfg.Tuning, castle, 30)
	assert.True(t, s.Evaluate())
	assert.True(t, e.Active, "clears with enemies still alive")
}

func spawnOne(s *Scheduler) (ecs.Entity, *component.Actor) {
	s.spawnWave(prefabs.Wave{Enemies: []prefabs.EnemyGroup{{Type: "basic", Count: 1}}})
	var last ecs.Entity
	var actor *component.Actor
	s.World().Each(component.KindEnemy, func(e ecs.Entity, a *component.Actor) {
		last, actor = e, a
	})
	return last, actor
}

func TestPlainStageClearsWhenWavesDoneAndEnemiesGone(t *testing.T) {
	s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: basicWaves()[:2]}, "normal")
	s.Update(0)
	s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) { a.Active = false })
	assert.False(t, s.Evaluate(), "second wave still pending")

	s.Update(10)
	assert.False(t, s.Evaluate())
	s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) { a.Active = false })
	assert.True(t, s.Evaluate())

	spawnOne(s)
	assert.True(t, s.Evaluate(), "clear is sticky")
}

func TestBossStageClearsOnKill(t *testing.T) {
	st := prefabs.StageConfig{HouseHP: 150, Boss: true, BossDelay: 20, CastleHP: 50, Waves: basicWaves()[:1]}
	s := newScheduler(t, st, "normal")
	assert.Nil(t, s.World().CastleActor(), "boss stages have no castle")

	s.Update(19)
	assert.False(t, s.BossSpawned())
	s.Update(1)
	require.True(t, s.BossSpawned())

	boss := s.World().BossActor()
	s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) { a.Active = false })
	assert.False(t, s.Evaluate())

	system.TakeDamage(s.cfg.Tuning, boss, boss.HP)
	s.BossKilled(boss)
	s.Update(0.01)
	assert.Nil(t, s.World().BossActor(), "dead boss is swept")
	assert.True(t, s.Evaluate())

	s.Update(30)
	assert.Nil(t, s.World().BossActor(), "boss spawns once")
}

func TestPowerUpDropGating(t *testing.T) {
	base := loadTuning(t)
	tuning := *base
	tuning.PowerUp.DropChance = 1

	drops := 0
	newStage := func(diff string) *Scheduler {
		return New(Config{
			Tuning:     &tuning,
			Stage:      prefabs.StageConfig{HouseHP: 100},
			Difficulty: difficulty(t, &tuning, diff),
			Rand:       rand.New(rand.NewPCG(1, 1)),
			Drops:      &drops,
		})
	}

	normal := newStage("normal")
	_, e := spawnOne(normal)
	normal.EnemyKilled(e)
	assert.Equal(t, 0, normal.World().CountActive(component.KindPowerUp))

	hard := newStage("hard")
	for range 4 {
		_, e := spawnOne(hard)
		hard.EnemyKilled(e)
	}
	assert.Equal(t, tuning.PowerUp.MaxPerSession, hard.World().CountActive(component.KindPowerUp))
	assert.Equal(t, tuning.PowerUp.MaxPerSession, drops)

	next := newStage("hard")
	_, e = spawnOne(next)
	next.EnemyKilled(e)
	assert.Equal(t, 0, next.World().CountActive(component.KindPowerUp), "cap spans the session")
}

func TestPowerUpDropChance(t *testing.T) {
	base := loadTuning(t)
	tuning := *base
	tuning.PowerUp.DropChance = 0
	s := New(Config{
		Tuning:     &tuning,
		Stage:      prefabs.StageConfig{HouseHP: 100},
		Difficulty: difficulty(t, &tuning, "hard"),
	})
	_, e := spawnOne(s)
	s.EnemyKilled(e)
	assert.Equal(t, 0, s.World().CountActive(component.KindPowerUp))
}

func TestDifficultyScaledStats(t *testing.T) {
	cases := []struct {
		diff      string
		basic     int
		fast      int
		tank      int
		houseHP   int
		castleHP  int
		tankSpeed float64
	}{
		{"easy", 3, 2, 5, 156, 21, 36},
		{"normal", 3, 2, 7, 120, 30, 45},
		{"hard", 5, 3, 11, 96, 45, 58.5},
	}
	for _, tc := range cases {
		t.Run(tc.diff, func(t *testing.T) {
			waves := []prefabs.Wave{{Enemies: []prefabs.EnemyGroup{
				{Type: "basic", Count: 1}, {Type: "fast", Count: 1}, {Type: "tank", Count: 1},
			}}}
			s := newScheduler(t, prefabs.StageConfig{HouseHP: 120, Waves: waves}, tc.diff)
			s.Update(0)

			hp := map[string]int{}
			s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
				hp[a.Enemy.Type] = a.MaxHP
				if a.Enemy.Type == "tank" {
					assert.InDelta(t, tc.tankSpeed, a.Enemy.Speed, 1e-9)
				}
			})
			assert.Equal(t, map[string]int{"basic": tc.basic, "fast": tc.fast, "tank": tc.tank}, hp)
			assert.Equal(t, tc.houseHP, s.House().MaxHP)

			withCastle := newScheduler(t, prefabs.StageConfig{HouseHP: 120, CastleHP: 30}, tc.diff)
			assert.Equal(t, tc.castleHP, withCastle.World().CastleActor().MaxHP)
		})
	}
}

func TestFreezeAll(t *testing.T) {
	s := newScheduler(t, prefabs.StageConfig{HouseHP: 100, Waves: basicWaves()[:1]}, "hard")
	s.Update(0)
	assert.Equal(t, 3, s.FreezeAll(3))
	s.World().Each(component.KindEnemy, func(_ ecs.Entity, a *component.Actor) {
		assert.True(t, a.Enemy.Frozen)
	})
}

func TestPlayerHealthCarriesIn(t *testing.T) {
	tuning := loadTuning(t)
	s := New(Config{Tuning: tuning, Stage: prefabs.StageConfig{HouseHP: 100}, Difficulty: difficulty(t, tuning, "normal"), PlayerHP: 2})
	assert.Equal(t, 2, s.Player().HP)
	assert.Equal(t, tuning.Player.HP, s.Player().MaxHP)
}
