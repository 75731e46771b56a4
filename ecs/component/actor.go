package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/common"
)

// Kind tags which variant an Actor carries.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindBoss
	KindProjectile
	KindFireball
	KindPowerUp
	KindHouse
	KindCastle
)

var kindNames = [...]string{
	KindNone:       "none",
	KindPlayer:     "player",
	KindEnemy:      "enemy",
	KindBoss:       "boss",
	KindProjectile: "projectile",
	KindFireball:   "fireball",
	KindPowerUp:    "powerup",
	KindHouse:      "house",
	KindCastle:     "castle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Transient reports whether actors of this kind are removed from the world
// once inactive. Player and structures persist for the whole stage.
func (k Kind) Transient() bool {
	switch k {
	case KindEnemy, KindBoss, KindProjectile, KindFireball, KindPowerUp:
		return true
	}
	return false
}

// Actor is the single record shared by every simulated entity. Exactly one
// of the variant pointers matching Kind is set.
type Actor struct {
	Kind   Kind
	Pos    cp.Vector
	Vel    cp.Vector
	W, H   float64
	HP     int
	MaxHP  int
	Active bool

	// Time is seconds since spawn. HitFlash counts down after a hit.
	Time     float64
	HitFlash float64

	Player     *Player
	Enemy      *Enemy
	Boss       *Boss
	Projectile *Projectile
	PowerUp    *PowerUp
	Structure  *Structure
}

func (a *Actor) Bounds() common.Rect {
	return common.Rect{X: a.Pos.X, Y: a.Pos.Y, Width: a.W, Height: a.H}
}

func (a *Actor) Center() cp.Vector {
	return cp.Vector{X: a.Pos.X + a.W/2, Y: a.Pos.Y + a.H/2}
}

// Overlaps reports whether both actors are active and their bounds intersect.
func (a *Actor) Overlaps(other *Actor) bool {
	if a == nil || other == nil || !a.Active || !other.Active {
		return false
	}
	return a.Bounds().Intersects(other.Bounds())
}

// HPRatio is HP/MaxHP in [0, 1].
func (a *Actor) HPRatio() float64 {
	return common.Ratio(float64(a.HP), float64(a.MaxHP))
}
