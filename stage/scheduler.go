// Package stage runs one level: wave timing, spawn placement, power-up
// drops and the clear condition.
package stage

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/ecs/system"
	"github.com/milk9111/waterguard/prefabs"
)

// Config is everything a Scheduler needs for one stage load.
type Config struct {
	Tuning     *prefabs.Tuning
	Stage      prefabs.StageConfig
	Difficulty prefabs.Difficulty
	Volleys    *system.Volleys
	Events     *ecs.EventQueue[component.Event]
	Rand       *rand.Rand

	// PlayerHP carries the player's health into the stage; zero means full.
	PlayerHP int

	// Drops counts power-ups dropped this session. Nil counts per stage.
	Drops *int
}

// Scheduler owns the world of one stage load.
type Scheduler struct {
	cfg    Config
	world  *system.World
	combat *system.CombatSystem

	waves       []prefabs.Wave
	nextWave    int
	currentWave int
	elapsed     float64
	spawned     int

	bossSpawned bool
	bossKilled  bool
	cleared     bool

	drops *int
}

func New(cfg Config) *Scheduler {
	t := cfg.Tuning
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if cfg.Drops == nil {
		cfg.Drops = new(int)
	}

	w := system.NewWorld(t, cfg.Difficulty, cfg.Events)
	if cfg.Volleys != nil {
		w.Volleys = cfg.Volleys
	}

	houseHP := cfg.Stage.HouseHP
	if houseHP <= 0 {
		houseHP = t.House.DefaultHP
	}
	w.House = w.Spawn(system.NewHouse(t, cfg.Difficulty.ScaleStructureHP(houseHP)))
	if cfg.Stage.HasCastle() {
		w.Castle = w.Spawn(system.NewCastle(t, cfg.Difficulty.ScaleHP(cfg.Stage.CastleHP)))
	}
	w.Player = w.Spawn(system.NewPlayer(t, cfg.PlayerHP))

	return &Scheduler{
		cfg:         cfg,
		world:       w,
		combat:      system.NewCombatSystem(),
		waves:       cfg.Stage.Schedule(cfg.Difficulty.ExtraWaves),
		currentWave: -1,
		drops:       cfg.Drops,
	}
}

func (s *Scheduler) World() *system.World { return s.world }

// Player returns the stage's player actor.
func (s *Scheduler) Player() *component.Actor { return s.world.PlayerActor() }

func (s *Scheduler) House() *component.Actor { return s.world.HouseActor() }

// Update sweeps dead actors, spawns every wave (and the boss) that is due,
// then steps every actor the player does not own.
func (s *Scheduler) Update(dt float64) {
	if s == nil {
		return
	}
	w := s.world
	w.Sweep()
	s.elapsed += dt

	for s.nextWave < len(s.waves) && s.elapsed >= s.waves[s.nextWave].Delay {
		s.spawnWave(s.waves[s.nextWave])
		s.currentWave = s.nextWave
		s.nextWave++
	}

	if s.IsBossStage() && !s.bossSpawned && s.elapsed >= s.bossDelay() {
		s.spawnBoss()
	}

	w.Each(component.KindNone, func(e ecs.Entity, a *component.Actor) {
		switch a.Kind {
		case component.KindPlayer, component.KindProjectile:
			return
		}
		system.Step(w, e, a, dt)
	})
}

// Resolve runs combat for the frame with this scheduler as kill listener.
func (s *Scheduler) Resolve() {
	if s == nil {
		return
	}
	s.combat.Check(s.world, s)
}

// Evaluate recomputes the clear condition. Once true it stays true.
func (s *Scheduler) Evaluate() bool {
	if s == nil {
		return false
	}
	if s.cleared {
		return true
	}
	switch {
	case s.IsBossStage():
		s.cleared = s.bossKilled
	case s.cfg.Stage.HasCastle():
		castle := s.world.CastleActor()
		s.cleared = castle == nil || !castle.Active
	default:
		s.cleared = s.AllWavesSpawned() && s.world.CountActive(component.KindEnemy) == 0
	}
	return s.cleared
}

func (s *Scheduler) Cleared() bool { return s != nil && s.cleared }

// FreezeAll freezes every active enemy and the boss for d seconds and
// returns how many were frozen.
func (s *Scheduler) FreezeAll(d float64) int {
	n := 0
	s.world.Each(component.KindNone, func(_ ecs.Entity, a *component.Actor) {
		if a.Kind != component.KindEnemy && a.Kind != component.KindBoss {
			return
		}
		if system.Freeze(a, d) {
			n++
		}
	})
	return n
}

// EnemyKilled drops a power-up when the difficulty allows it.
func (s *Scheduler) EnemyKilled(enemy *component.Actor) {
	s.tryDropPowerUp(enemy.Center())
}

// BossKilled latches the boss kill; the boss actor may be swept later.
func (s *Scheduler) BossKilled(*component.Actor) {
	s.bossKilled = true
}

func (s *Scheduler) CastleDestroyed(*component.Actor) {}

func (s *Scheduler) tryDropPowerUp(at cp.Vector) bool {
	ps := s.cfg.Tuning.PowerUp
	if !s.cfg.Difficulty.PowerUps || *s.drops >= ps.MaxPerSession {
		return false
	}
	if s.cfg.Rand.Float64() > ps.DropChance {
		return false
	}
	*s.drops++
	center := cp.Vector{X: at.X, Y: at.Y - ps.DropLift}
	s.world.Spawn(system.NewPowerUp(s.cfg.Tuning, center))
	s.world.Emit(component.CuePowerUpDropped, center)
	return true
}

func (s *Scheduler) spawnWave(wave prefabs.Wave) {
	t := s.cfg.Tuning
	w := s.world
	house := w.HouseActor()
	targetX := house.Bounds().Right()
	es := t.Enemies

	w.Emit(component.CueWaveIncoming, cp.Vector{X: t.Playfield.Width, Y: w.GroundY()})
	for _, group := range wave.Enemies {
		_, info := t.Enemy(group.Type)
		for i := 0; i < group.Count; i++ {
			var pos cp.Vector
			if castle := w.CastleActor(); castle != nil && castle.Active {
				pos.X = castle.Pos.X + s.cfg.Rand.Float64()*es.Spawn.CastleJitter
			} else {
				pos.X = t.Playfield.Width + es.Spawn.OffsetX + float64(i)*es.Spawn.Spacing
			}

			phase := 0.0
			if info.Flying {
				pos.Y = w.GroundY() - es.Flying.MinAltitude - s.cfg.Rand.Float64()*es.Flying.AltitudeBand
				phase = s.cfg.Rand.Float64() * 2 * math.Pi
			} else {
				pos.Y = w.GroundY() - info.Height
			}

			w.Spawn(system.NewEnemy(t, s.cfg.Difficulty, group.Type, pos, targetX, phase))
			s.spawned++
		}
	}
}

func (s *Scheduler) spawnBoss() {
	w := s.world
	target := w.HouseActor().Bounds().Right()
	boss := system.NewBoss(s.cfg.Tuning, s.cfg.Difficulty, target)
	w.Boss = w.Spawn(boss)
	s.bossSpawned = true
	w.Emit(component.CueBossAppeared, boss.Center())
}

func (s *Scheduler) bossDelay() float64 {
	if s.cfg.Stage.BossDelay > 0 {
		return s.cfg.Stage.BossDelay
	}
	return 999
}

func (s *Scheduler) IsBossStage() bool { return s.cfg.Stage.Boss }

func (s *Scheduler) Background() string { return s.cfg.Stage.Background }

func (s *Scheduler) Stage() prefabs.StageConfig { return s.cfg.Stage }

// Elapsed is seconds since the stage started.
func (s *Scheduler) Elapsed() float64 { return s.elapsed }

// Spawned is the cumulative number of enemies spawned this stage.
func (s *Scheduler) Spawned() int { return s.spawned }

// CurrentWave is the index of the most recently spawned wave, -1 before the first.
func (s *Scheduler) CurrentWave() int { return s.currentWave }

func (s *Scheduler) TotalWaves() int { return len(s.waves) }

func (s *Scheduler) AllWavesSpawned() bool { return s.nextWave >= len(s.waves) }

func (s *Scheduler) BossSpawned() bool { return s.bossSpawned }

func (s *Scheduler) BossDefeated() bool { return s.bossKilled }
