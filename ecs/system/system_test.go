package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type killLog struct {
	enemies int
	boss    int
	castle  int
}

func (k *killLog) EnemyKilled(*component.Actor)     { k.enemies++ }
func (k *killLog) BossKilled(*component.Actor)      { k.boss++ }
func (k *killLog) CastleDestroyed(*component.Actor) { k.castle++ }

func loadTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	return tuning
}

// newTestWorld builds a world on the normal preset with a player and house.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	tuning := loadTuning(t)
	_, normal := tuning.DifficultyAt(1)
	w := NewWorld(tuning, normal, nil)
	w.Player = w.Spawn(NewPlayer(tuning, 0))
	w.House = w.Spawn(NewHouse(tuning, 100))
	return w
}

func spawnEnemy(w *World, x float64) (ecs.Entity, *component.Actor) {
	a := NewEnemy(w.Tuning, w.Difficulty, "basic", cp.Vector{X: x, Y: w.GroundY() - 40}, w.HouseActor().Bounds().Right(), 0)
	e := w.Spawn(a)
	return e, a
}

func fireAt(w *World, center cp.Vector) *component.Actor {
	shot := NewProjectile(w.Tuning, component.TierBasic, center, 1)
	e := w.Spawn(shot)
	p := w.PlayerActor().Player
	p.Projectiles = append(p.Projectiles, e)
	return shot
}

func TestPlayerInvulnerabilityWindow(t *testing.T) {
	w := newTestWorld(t)
	player := w.PlayerActor()
	require.Equal(t, 5, player.HP)

	TakeDamage(w.Tuning, player, 1)
	UpdatePlayer(w, component.Input{}, PlayerOptions{}, 0.5)
	TakeDamage(w.Tuning, player, 1)
	assert.Equal(t, 4, player.HP)

	UpdatePlayer(w, component.Input{}, PlayerOptions{}, 0.75)
	UpdatePlayer(w, component.Input{}, PlayerOptions{}, 0.75)
	TakeDamage(w.Tuning, player, 1)
	assert.Equal(t, 3, player.HP)
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	w := newTestWorld(t)
	tuning := w.Tuning

	cases := []struct {
		name       string
		actor      *component.Actor
		wantActive bool
	}{
		{"enemy", NewEnemy(tuning, w.Difficulty, "basic", cp.Vector{}, 0, 0), false},
		{"boss", NewBoss(tuning, w.Difficulty, 0), false},
		{"castle", NewCastle(tuning, 30), false},
		{"player", NewPlayer(tuning, 0), false},
		{"house never deactivates", NewHouse(tuning, 100), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			killed := TakeDamage(tuning, tc.actor, tc.actor.HP+10)
			assert.Equal(t, 0, tc.actor.HP)
			assert.Equal(t, tc.wantActive, tc.actor.Active)
			assert.Equal(t, !tc.wantActive, killed)
		})
	}
}

func TestEnemyHitStuns(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 400)

	assert.False(t, TakeDamage(w.Tuning, enemy, 1))
	assert.Equal(t, 2, enemy.HP)
	assert.Equal(t, component.EnemyStunned, enemy.Enemy.State)
	assert.Greater(t, enemy.HitFlash, 0.0)

	Step(w, 0, enemy, 0.3)
	assert.Equal(t, component.EnemyApproaching, enemy.Enemy.State)
}

func TestEnemyApproachesThenAttacks(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 300)
	startX := enemy.Pos.X

	Step(w, 0, enemy, 0.5)
	assert.Less(t, enemy.Pos.X, startX)
	assert.Equal(t, component.EnemyApproaching, enemy.Enemy.State)

	enemy.Pos.X = enemy.Enemy.TargetX + w.Tuning.Enemies.AttackRange
	Step(w, 0, enemy, 0.1)
	assert.Equal(t, component.EnemyAttacking, enemy.Enemy.State)

	assert.True(t, EnemyCanAttack(w.Tuning, enemy))
	assert.False(t, EnemyCanAttack(w.Tuning, enemy), "cooldown restarts on a landed attack")
}

func TestEnemyFreezeResumesState(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 300)
	enemy.Enemy.State = component.EnemyAttacking
	x := enemy.Pos.X

	require.True(t, Freeze(enemy, 3))
	assert.False(t, EnemyCanAttack(w.Tuning, enemy))

	Step(w, 0, enemy, 1)
	Step(w, 0, enemy, 1)
	assert.True(t, enemy.Enemy.Frozen)
	assert.Equal(t, x, enemy.Pos.X)

	Step(w, 0, enemy, 1)
	assert.False(t, enemy.Enemy.Frozen)
	assert.Equal(t, component.EnemyAttacking, enemy.Enemy.State)
	assert.True(t, EnemyCanAttack(w.Tuning, enemy))
}

func TestFrozenEnemyKeepsStunTimer(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 300)
	TakeDamage(w.Tuning, enemy, 1)
	require.Equal(t, component.EnemyStunned, enemy.Enemy.State)
	stun := enemy.Enemy.StunTimer

	Freeze(enemy, 1)
	Step(w, 0, enemy, 0.5)
	assert.Equal(t, stun, enemy.Enemy.StunTimer)

	TakeDamage(w.Tuning, enemy, 1)
	assert.Equal(t, stun, enemy.Enemy.StunTimer, "frozen enemies are not re-stunned")
}

func TestBossPhase(t *testing.T) {
	cases := []struct {
		hp, max, want int
	}{
		{40, 40, 1},
		{27, 40, 1},
		{26, 40, 2},
		{20, 40, 2},
		{14, 40, 2},
		{13, 40, 3},
		{0, 40, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BossPhase(tc.hp, tc.max), "hp %d/%d", tc.hp, tc.max)
	}
}

func TestBossHalfHealthFiresThreeWaySpread(t *testing.T) {
	w := newTestWorld(t)
	boss := NewBoss(w.Tuning, w.Difficulty, w.HouseActor().Bounds().Right())
	boss.HP = boss.MaxHP / 2
	boss.Boss.State = component.BossFighting
	boss.Pos.X = 500
	w.Boss = w.Spawn(boss)

	Step(w, w.Boss, boss, 0.01)

	assert.Len(t, boss.Boss.Fireballs, 3)
	assert.Equal(t, 3, w.CountActive(component.KindFireball))
	assert.InDelta(t, w.Tuning.Boss.AttackRate/2, boss.Boss.AttackTimer, 1e-9)

	boss.HP = boss.MaxHP
	assert.Equal(t, 1, BossPhase(boss.HP, boss.MaxHP), "phase follows HP with no stored state")
}

func TestBossEntersThenFights(t *testing.T) {
	w := newTestWorld(t)
	boss := NewBoss(w.Tuning, w.Difficulty, 100)
	w.Boss = w.Spawn(boss)
	for i := 0; i < 200 && boss.Boss.State == component.BossEntering; i++ {
		Step(w, w.Boss, boss, 0.05)
	}
	assert.Equal(t, component.BossFighting, boss.Boss.State)
	assert.LessOrEqual(t, boss.Pos.X, w.Tuning.Playfield.Width-boss.W-w.Tuning.Boss.EngageMargin)
}

func TestFrozenBossKeepsFireballsMoving(t *testing.T) {
	w := newTestWorld(t)
	boss := NewBoss(w.Tuning, w.Difficulty, 100)
	boss.Boss.State = component.BossFighting
	boss.Pos.X = 400
	w.Boss = w.Spawn(boss)
	Step(w, w.Boss, boss, 0.01)
	require.Len(t, boss.Boss.Fireballs, 1)
	fb := w.Actor(boss.Boss.Fireballs[0])
	fbX := fb.Pos.X
	bossX := boss.Pos.X

	Freeze(boss, 2)
	Step(w, w.Boss, boss, 0.5)
	Step(w, boss.Boss.Fireballs[0], fb, 0.5)

	assert.Equal(t, bossX, boss.Pos.X)
	assert.Less(t, fb.Pos.X, fbX)
	assert.False(t, BossCanAttack(w.Tuning, boss))
}

func TestShotHitsOnlyFirstOverlappingEnemy(t *testing.T) {
	w := newTestWorld(t)
	_, first := spawnEnemy(w, 300)
	_, second := spawnEnemy(w, 300)
	shot := fireAt(w, cp.Vector{X: 310, Y: w.GroundY() - 28})

	NewCombatSystem().Check(w, &killLog{})

	assert.False(t, shot.Active)
	assert.Equal(t, 2, first.HP)
	assert.Equal(t, 3, second.HP)
}

func TestEnemyKillNotifiesListener(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 300)
	enemy.HP = 1
	fireAt(w, cp.Vector{X: 310, Y: w.GroundY() - 28})
	kills := &killLog{}

	NewCombatSystem().Check(w, kills)

	assert.False(t, enemy.Active)
	assert.Equal(t, 1, kills.enemies)
	cues := cuesOf(w.Events.Drain())
	assert.Contains(t, cues, component.CueEnemyHit)
	assert.Contains(t, cues, component.CueEnemyKilled)
}

func TestEveryReadyEnemyHitsHouse(t *testing.T) {
	w := newTestWorld(t)
	for _, x := range []float64{160, 170, 180} {
		_, e := spawnEnemy(w, x)
		e.Enemy.State = component.EnemyAttacking
	}
	house := w.HouseActor()
	combat := NewCombatSystem()

	combat.Check(w, nil)
	assert.Equal(t, 97, house.HP)

	combat.Check(w, nil)
	assert.Equal(t, 97, house.HP, "attack cooldown gates the next hit")
}

func TestCastleDestroyedByShot(t *testing.T) {
	w := newTestWorld(t)
	castle := NewCastle(w.Tuning, 1)
	w.Castle = w.Spawn(castle)
	fireAt(w, castle.Center())
	fireAt(w, castle.Center())
	kills := &killLog{}

	NewCombatSystem().Check(w, kills)

	assert.False(t, castle.Active)
	assert.Equal(t, 1, kills.castle)
	assert.Len(t, NewCombatSystem().shots(w), 1, "the castle takes one shot per frame")
}

func TestFireballHurtsPlayerOnce(t *testing.T) {
	w := newTestWorld(t)
	player := w.PlayerActor()
	w.Spawn(NewFireball(w.Tuning, player.Center(), cp.Vector{}))
	w.Spawn(NewFireball(w.Tuning, player.Center(), cp.Vector{}))

	NewCombatSystem().Check(w, nil)

	assert.Equal(t, 4, player.HP)
	assert.Equal(t, 0, w.CountActive(component.KindFireball))
}

func TestPowerUpPickupRefreshes(t *testing.T) {
	w := newTestWorld(t)
	player := w.PlayerActor()
	pu := NewPowerUp(w.Tuning, player.Center())
	w.Spawn(pu)

	NewCombatSystem().Check(w, nil)
	assert.False(t, pu.Active)
	assert.True(t, player.Player.PoweredUp)

	player.Player.PowerUpTimer = 1
	w.Spawn(NewPowerUp(w.Tuning, player.Center()))
	NewCombatSystem().Check(w, nil)
	assert.Equal(t, w.Tuning.Player.PowerUpDuration, player.Player.PowerUpTimer)
	assert.Equal(t, component.TierPowerShot, CurrentTier(player.Player, true))
}

func TestProjectileExpires(t *testing.T) {
	w := newTestWorld(t)

	shot := NewProjectile(w.Tuning, component.TierBasic, cp.Vector{X: 400, Y: 300}, 1)
	shot.Vel = cp.Vector{}
	Step(w, 0, shot, 1)
	assert.True(t, shot.Active)
	Step(w, 0, shot, 1)
	assert.False(t, shot.Active, "lifetime elapsed")

	away := NewProjectile(w.Tuning, component.TierBasic, cp.Vector{X: 900, Y: 300}, 1)
	Step(w, 0, away, 0.01)
	assert.False(t, away.Active, "left the stage")
}

func TestPlayerShootCooldownByTier(t *testing.T) {
	cases := []struct {
		name    string
		cannon  bool
		powered bool
		tier    component.Tier
	}{
		{"basic", false, false, component.TierBasic},
		{"cannon", true, false, component.TierCannon},
		{"power shot", true, true, component.TierPowerShot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			p := w.PlayerActor().Player
			if tc.powered {
				ActivatePowerUp(w.Tuning, w.PlayerActor())
			}

			UpdatePlayer(w, component.Input{Shoot: true}, PlayerOptions{Cannon: tc.cannon}, 0.01)

			require.Len(t, p.Projectiles, 1)
			shot := w.Actor(p.Projectiles[0])
			assert.Equal(t, tc.tier, shot.Projectile.Tier)
			assert.Equal(t, WeaponFor(w.Tuning, tc.tier).Cooldown, p.ShootCooldown)

			UpdatePlayer(w, component.Input{Shoot: true}, PlayerOptions{Cannon: tc.cannon}, 0.01)
			assert.Len(t, p.Projectiles, 1, "cooldown blocks the next shot")
		})
	}
}

func TestPlayerJumpAndLand(t *testing.T) {
	w := newTestWorld(t)
	player := w.PlayerActor()
	groundTop := player.Pos.Y

	UpdatePlayer(w, component.Input{Jump: true}, PlayerOptions{}, 0.05)
	assert.False(t, player.Player.OnGround)
	assert.Less(t, player.Pos.Y, groundTop)

	for i := 0; i < 100 && !player.Player.OnGround; i++ {
		UpdatePlayer(w, component.Input{}, PlayerOptions{}, 0.05)
	}
	assert.True(t, player.Player.OnGround)
	assert.Equal(t, groundTop, player.Pos.Y)
	assert.Contains(t, cuesOf(w.Events.Drain()), component.CueLand)
}

func TestPlayerClampedToStage(t *testing.T) {
	w := newTestWorld(t)
	player := w.PlayerActor()
	for i := 0; i < 20; i++ {
		UpdatePlayer(w, component.Input{Left: true}, PlayerOptions{}, 0.1)
	}
	assert.Equal(t, 0.0, player.Pos.X)
	assert.Equal(t, -1.0, player.Player.Facing)

	for i := 0; i < 60; i++ {
		UpdatePlayer(w, component.Input{Right: true}, PlayerOptions{}, 0.1)
	}
	assert.Equal(t, w.Tuning.Playfield.Width-player.W, player.Pos.X)
}

func TestFreezeRequestNeedsAbility(t *testing.T) {
	w := newTestWorld(t)

	UpdatePlayer(w, component.Input{Freeze: true}, PlayerOptions{}, 0.01)
	assert.False(t, ConsumeFreeze(w))

	UpdatePlayer(w, component.Input{Freeze: true}, PlayerOptions{FreezeEnabled: true}, 0.01)
	assert.True(t, ConsumeFreeze(w))
	assert.False(t, ConsumeFreeze(w), "request is consumed once")
	assert.Equal(t, w.Tuning.Player.FreezeCooldown, w.PlayerActor().Player.FreezeCooldown)

	UpdatePlayer(w, component.Input{Freeze: true}, PlayerOptions{FreezeEnabled: true}, 0.01)
	assert.False(t, ConsumeFreeze(w), "cooldown still running")
}

func TestSweepKeepsStructures(t *testing.T) {
	w := newTestWorld(t)
	_, enemy := spawnEnemy(w, 300)
	enemy.Active = false
	castle := NewCastle(w.Tuning, 10)
	castle.Active = false
	w.Castle = w.Spawn(castle)

	assert.Equal(t, 1, w.Sweep())
	assert.NotNil(t, w.CastleActor())
	assert.NotNil(t, w.HouseActor())
}

func TestVolleyScriptMatchesBuiltinPattern(t *testing.T) {
	tuning := loadTuning(t)
	v, err := LoadVolleys(tuning.Boss.Script)
	require.NoError(t, err)

	def := DefaultVolleys()
	for phase := 1; phase <= 3; phase++ {
		assert.Equal(t, def.For(phase), v.For(phase), "phase %d", phase)
	}
	assert.Len(t, v.For(9).Offsets, 5)
}

func TestCompileVolleysRejectsMissingOutputs(t *testing.T) {
	_, err := CompileVolleys([]byte(`speed := 100`))
	assert.Error(t, err)
}

func cuesOf(events []component.Event) []component.Cue {
	var out []component.Cue
	for _, ev := range events {
		if ev.Kind == component.EventCue {
			out = append(out, ev.Cue)
		}
	}
	return out
}

func newWorldOn(t *testing.T, difficulty int) *World {
	t.Helper()
	tuning := loadTuning(t)
	_, d := tuning.DifficultyAt(difficulty)
	w := NewWorld(tuning, d, nil)
	w.Player = w.Spawn(NewPlayer(tuning, 0))
	w.House = w.Spawn(NewHouse(tuning, 100))
	return w
}

func TestBossMeleeHitsHouse(t *testing.T) {
	cases := []struct {
		name       string
		difficulty int
		offset     float64
		frozen     bool
		wantHP     int
		wantAnim   bool
	}{
		{"easy in range", 0, 50, false, 97, true},
		{"normal in range", 1, 50, false, 97, true},
		{"hard in range", 2, 50, false, 95, true},
		{"at melee edge", 1, 80, false, 97, true},
		{"out of range", 1, 81, false, 100, false},
		{"frozen", 1, 50, true, 100, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorldOn(t, tc.difficulty)
			house := w.HouseActor()
			boss := NewBoss(w.Tuning, w.Difficulty, house.Bounds().Right())
			boss.Boss.State = component.BossFighting
			boss.Boss.Frozen = tc.frozen
			boss.Pos.X = boss.Boss.TargetX + tc.offset
			w.Boss = w.Spawn(boss)

			NewCombatSystem().Check(w, nil)

			assert.Equal(t, tc.wantHP, house.HP)
			if tc.wantAnim {
				assert.InDelta(t, w.Tuning.Boss.AttackAnim, boss.Boss.AttackAnim, 1e-9)
				assert.Contains(t, cuesOf(w.Events.Drain()), component.CueHouseHit)
			} else {
				assert.Zero(t, boss.Boss.AttackAnim)
				assert.NotContains(t, cuesOf(w.Events.Drain()), component.CueHouseHit)
			}
		})
	}
}

func TestEnemyContactHurtsPlayer(t *testing.T) {
	cases := []struct {
		name         string
		enemyX       []float64
		invulnerable float64
		wantHP       int
		wantHurt     bool
	}{
		{"touching", []float64{110}, 0, 4, true},
		{"two touching share one window", []float64{110, 115}, 0, 4, true},
		{"invulnerable", []float64{110}, 1, 5, false},
		{"apart", []float64{400}, 0, 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			player := w.PlayerActor()
			player.Player.Invulnerable = tc.invulnerable
			var enemies []*component.Actor
			for _, x := range tc.enemyX {
				_, e := spawnEnemy(w, x)
				enemies = append(enemies, e)
			}
			shot := fireAt(w, cp.Vector{X: 600, Y: 100})

			NewCombatSystem().Check(w, nil)

			assert.Equal(t, tc.wantHP, player.HP)
			assert.True(t, shot.Active, "contact consumes no projectile")
			for _, e := range enemies {
				assert.True(t, e.Active)
				assert.Equal(t, e.MaxHP, e.HP)
			}
			if tc.wantHurt {
				assert.InDelta(t, w.Tuning.Player.InvulnerableSeconds, player.Player.Invulnerable, 1e-9)
				assert.Equal(t, []component.Cue{component.CuePlayerHurt}, cuesOf(w.Events.Drain()))
			} else {
				assert.Empty(t, cuesOf(w.Events.Drain()))
			}
		})
	}
}
