package system

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
)

// PlayerOptions carries the session flags the controller depends on.
type PlayerOptions struct {
	Cannon        bool
	FreezeEnabled bool
}

// CurrentTier is the weapon tier the player fires with right now. An active
// power-up outranks the cannon upgrade.
func CurrentTier(p *component.Player, cannon bool) component.Tier {
	switch {
	case p != nil && p.PoweredUp:
		return component.TierPowerShot
	case cannon:
		return component.TierCannon
	}
	return component.TierBasic
}

// UpdatePlayer runs the player controller for one frame and then advances
// the player's own shots.
func UpdatePlayer(w *World, in component.Input, opts PlayerOptions, dt float64) {
	if w == nil {
		return
	}
	a := w.PlayerActor()
	if a == nil || !a.Active || a.Player == nil {
		return
	}
	p := a.Player
	t := w.Tuning
	a.Time += dt

	if p.Invulnerable > 0 {
		p.Invulnerable -= dt
	}
	if p.PowerUpTimer > 0 {
		p.PowerUpTimer -= dt
		if p.PowerUpTimer <= 0 {
			p.PowerUpTimer = 0
			p.PoweredUp = false
		}
	}

	move := in.MoveX()
	a.Vel.X = move * t.Player.Speed
	if move != 0 {
		p.Facing = move
	}

	wasOnGround := p.OnGround
	if in.Jump && p.OnGround {
		a.Vel.Y = t.Player.JumpVelocity
		p.OnGround = false
		w.Emit(component.CueJump, a.Center())
	}
	if !p.OnGround {
		a.Vel.Y += t.Physics.Gravity * dt
	}

	integrate(a, dt)

	ground := w.GroundY()
	if a.Bounds().Bottom() >= ground {
		a.Pos.Y = ground - a.H
		a.Vel.Y = 0
		p.OnGround = true
		if !wasOnGround {
			w.Emit(component.CueLand, a.Center())
		}
	}
	a.Pos.X = cp.Clamp(a.Pos.X, 0, t.Playfield.Width-a.W)

	if p.FreezeCooldown > 0 {
		p.FreezeCooldown -= dt
	}
	if opts.FreezeEnabled && in.Freeze && p.FreezeCooldown <= 0 {
		p.FreezeRequested = true
		p.FreezeCooldown = t.Player.FreezeCooldown
	}

	p.ShootCooldown -= dt
	if in.Shoot && p.ShootCooldown <= 0 {
		shoot(w, a, CurrentTier(p, opts.Cannon))
	}

	for _, pe := range p.Projectiles {
		Step(w, pe, w.Actor(pe), dt)
	}
	p.Projectiles = slices.DeleteFunc(p.Projectiles, func(pe ecs.Entity) bool {
		pa := w.Actor(pe)
		return pa == nil || !pa.Active
	})
}

func shoot(w *World, a *component.Actor, tier component.Tier) {
	p := a.Player
	p.ShootCooldown = WeaponFor(w.Tuning, tier).Cooldown

	muzzle := cp.Vector{X: a.Pos.X, Y: a.Center().Y - w.Tuning.Player.MuzzleDrop}
	if p.Facing >= 0 {
		muzzle.X += a.W
	}
	shot := w.Spawn(NewProjectile(w.Tuning, tier, muzzle, p.Facing))
	p.Projectiles = append(p.Projectiles, shot)

	switch tier {
	case component.TierPowerShot:
		w.Emit(component.CuePowerShot, muzzle)
	case component.TierCannon:
		w.Emit(component.CueCannonShot, muzzle)
	default:
		w.Emit(component.CueShoot, muzzle)
	}
}

// ConsumeFreeze clears and returns the player's pending freeze request.
func ConsumeFreeze(w *World) bool {
	a := w.PlayerActor()
	if a == nil || a.Player == nil || !a.Player.FreezeRequested {
		return false
	}
	a.Player.FreezeRequested = false
	return true
}
