package component

import "github.com/milk9111/waterguard/ecs"

// Player holds the controllable water drop's timers and owned shots.
type Player struct {
	// Facing is +1 for right and -1 for left.
	Facing   float64
	OnGround bool

	ShootCooldown  float64
	Invulnerable   float64
	FreezeCooldown float64

	// FreezeRequested is set when the freeze ability fires and is consumed
	// once by the session.
	FreezeRequested bool

	PowerUpTimer float64
	PoweredUp    bool

	Projectiles []ecs.Entity
}
