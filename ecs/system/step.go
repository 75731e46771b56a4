package system

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
)

// Step advances one non-player actor by dt. Inactive actors are left alone.
func Step(w *World, e ecs.Entity, a *component.Actor, dt float64) {
	if w == nil || a == nil || !a.Active {
		return
	}

	a.Time += dt
	if a.HitFlash > 0 {
		a.HitFlash = math.Max(0, a.HitFlash-dt)
	}

	switch a.Kind {
	case component.KindEnemy:
		stepEnemy(w, a, dt)
	case component.KindBoss:
		stepBoss(w, e, a, dt)
	case component.KindProjectile, component.KindFireball:
		stepProjectile(w, a, dt)
	case component.KindPowerUp:
		stepPowerUp(w, a, dt)
	}
}

func integrate(a *component.Actor, dt float64) {
	a.Pos = a.Pos.Add(a.Vel.Mult(dt))
}

func stepEnemy(w *World, a *component.Actor, dt float64) {
	en := a.Enemy
	if en == nil {
		return
	}

	if en.Frozen {
		a.Vel = cp.Vector{}
		en.FreezeTimer -= dt
		if en.FreezeTimer <= 0 {
			en.Frozen = false
			en.FreezeTimer = 0
		}
		oscillate(w, a)
		return
	}

	switch en.State {
	case component.EnemyApproaching:
		a.Vel.X = -en.Speed
		if a.Pos.X <= en.TargetX+w.Tuning.Enemies.AttackRange {
			en.State = component.EnemyAttacking
			a.Vel.X = 0
		}
	case component.EnemyAttacking:
		a.Vel.X = 0
		if en.AttackCooldown > 0 {
			en.AttackCooldown -= dt
		}
	case component.EnemyStunned:
		a.Vel.X = 0
		en.StunTimer -= dt
		if en.StunTimer <= 0 {
			en.StunTimer = 0
			en.State = component.EnemyApproaching
		}
	}

	integrate(a, dt)
	oscillate(w, a)
}

func oscillate(w *World, a *component.Actor) {
	if !a.Enemy.Flying {
		return
	}
	fs := w.Tuning.Enemies.Flying
	a.Pos.Y = a.Enemy.BaseY + math.Sin(a.Time*fs.Frequency+a.Enemy.Phase)*fs.Amplitude
}

func stepBoss(w *World, e ecs.Entity, a *component.Actor, dt float64) {
	b := a.Boss
	if b == nil {
		return
	}

	b.Fireballs = slices.DeleteFunc(b.Fireballs, func(fb ecs.Entity) bool {
		f := w.Actor(fb)
		return f == nil || !f.Active
	})
	if b.AttackAnim > 0 {
		b.AttackAnim = math.Max(0, b.AttackAnim-dt)
	}

	if b.Frozen {
		a.Vel = cp.Vector{}
		b.FreezeTimer -= dt
		if b.FreezeTimer <= 0 {
			b.Frozen = false
			b.FreezeTimer = 0
		}
		return
	}

	bs := w.Tuning.Boss
	phase := BossPhase(a.HP, a.MaxHP)

	switch b.State {
	case component.BossEntering:
		a.Vel.X = -b.Speed * bs.EnterSpeedMul
		if a.Pos.X <= w.Tuning.Playfield.Width-a.W-bs.EngageMargin {
			b.State = component.BossFighting
			a.Vel.X = 0
		}
	case component.BossFighting:
		move := b.Speed * (1 + float64(phase-1)*bs.PhaseSpeedStep)
		if a.Pos.X > b.TargetX+bs.HoldDistance {
			a.Vel.X = -move
		} else {
			a.Vel.X = 0
		}

		b.AttackTimer -= dt
		if b.AttackTimer <= 0 {
			fireVolley(w, e, a, phase)
			b.AttackTimer = bs.AttackRate / float64(phase)
		}
	}

	integrate(a, dt)
}

// fireVolley launches the phase's fireball spread from the boss's leading
// edge at mid height.
func fireVolley(w *World, e ecs.Entity, a *component.Actor, phase int) {
	v := w.Volleys.For(phase)
	origin := cp.Vector{X: a.Pos.X, Y: a.Center().Y}
	for _, vy := range v.Offsets {
		fb := w.Spawn(NewFireball(w.Tuning, origin, cp.Vector{X: -v.Speed, Y: vy}))
		a.Boss.Fireballs = append(a.Boss.Fireballs, fb)
	}
	w.Emit(component.CueBossFireball, origin)
}

func stepProjectile(w *World, a *component.Actor, dt float64) {
	p := a.Projectile
	if p == nil {
		return
	}
	integrate(a, dt)
	p.Life -= dt

	margin := w.Tuning.Projectile.OffstageMargin
	if p.Life <= 0 || a.Pos.X < -margin || a.Pos.X > w.Tuning.Playfield.Width+margin {
		a.Active = false
	}
}

func stepPowerUp(w *World, a *component.Actor, dt float64) {
	pu := a.PowerUp
	if pu == nil {
		return
	}
	ps := w.Tuning.PowerUp
	a.Pos.Y = pu.BaseY + math.Sin(a.Time*ps.BobSpeed)*ps.BobAmplitude
	pu.Life -= dt
	if pu.Life <= 0 {
		a.Active = false
	}
}
