package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/prefabs"
)

// NewPlayer builds the water drop standing at its spawn point on the ground.
func NewPlayer(t *prefabs.Tuning, hp int) *component.Actor {
	ps := t.Player
	if hp <= 0 || hp > ps.HP {
		hp = ps.HP
	}
	return &component.Actor{
		Kind:   component.KindPlayer,
		Pos:    cp.Vector{X: ps.SpawnX, Y: t.Playfield.GroundY() - ps.Height},
		W:      ps.Width,
		H:      ps.Height,
		HP:     hp,
		MaxHP:  ps.HP,
		Active: true,
		Player: &component.Player{Facing: 1, OnGround: true},
	}
}

// NewEnemy builds a fire monster of the given type at pos with
// difficulty-scaled stats. Unknown types use the default stat block.
func NewEnemy(t *prefabs.Tuning, d prefabs.Difficulty, key string, pos cp.Vector, targetX, phase float64) *component.Actor {
	key, info := t.Enemy(key)
	hp := d.ScaleHP(info.HP)
	return &component.Actor{
		Kind:   component.KindEnemy,
		Pos:    pos,
		W:      info.Width,
		H:      info.Height,
		HP:     hp,
		MaxHP:  hp,
		Active: true,
		Enemy: &component.Enemy{
			Type:    key,
			Speed:   d.ScaleSpeed(info.Speed),
			Damage:  d.ScaleDamage(info.Damage),
			Flying:  info.Flying,
			State:   component.EnemyApproaching,
			TargetX: targetX,
			BaseY:   pos.Y,
			Phase:   phase,
		},
	}
}

// NewBoss builds the boss just off the right edge, standing on the ground.
func NewBoss(t *prefabs.Tuning, d prefabs.Difficulty, targetX float64) *component.Actor {
	bs := t.Boss
	hp := d.ScaleHP(bs.HP)
	return &component.Actor{
		Kind:   component.KindBoss,
		Pos:    cp.Vector{X: t.Playfield.Width + bs.SpawnOffset, Y: t.Playfield.GroundY() - bs.Height},
		W:      bs.Width,
		H:      bs.Height,
		HP:     hp,
		MaxHP:  hp,
		Active: true,
		Boss: &component.Boss{
			Speed:   d.ScaleSpeed(bs.Speed),
			Damage:  d.ScaleDamage(bs.Damage),
			State:   component.BossEntering,
			TargetX: targetX,
		},
	}
}

// NewProjectile builds a player shot centered on muzzle, travelling toward facing.
func NewProjectile(t *prefabs.Tuning, tier component.Tier, muzzle cp.Vector, facing float64) *component.Actor {
	ws := WeaponFor(t, tier)
	dir := 1.0
	if facing < 0 {
		dir = -1
	}
	return &component.Actor{
		Kind:       component.KindProjectile,
		Pos:        cp.Vector{X: muzzle.X - ws.Width/2, Y: muzzle.Y - ws.Height/2},
		Vel:        cp.Vector{X: dir * t.Projectile.Speed},
		W:          ws.Width,
		H:          ws.Height,
		HP:         1,
		MaxHP:      1,
		Active:     true,
		Projectile: &component.Projectile{Tier: tier, Damage: ws.Damage, Life: t.Projectile.Lifetime},
	}
}

// NewFireball builds a boss fireball centered on origin.
func NewFireball(t *prefabs.Tuning, origin, vel cp.Vector) *component.Actor {
	fs := t.Boss.Fireball
	return &component.Actor{
		Kind:       component.KindFireball,
		Pos:        cp.Vector{X: origin.X - fs.Width/2, Y: origin.Y - fs.Height/2},
		Vel:        vel,
		W:          fs.Width,
		H:          fs.Height,
		HP:         1,
		MaxHP:      1,
		Active:     true,
		Projectile: &component.Projectile{Damage: fs.Damage, Life: fs.Lifetime},
	}
}

func NewHouse(t *prefabs.Tuning, hp int) *component.Actor {
	hs := t.House
	if hp <= 0 {
		hp = hs.DefaultHP
	}
	return &component.Actor{
		Kind:      component.KindHouse,
		Pos:       cp.Vector{X: hs.X, Y: t.Playfield.GroundY() - hs.Height},
		W:         hs.Width,
		H:         hs.Height,
		HP:        hp,
		MaxHP:     hp,
		Active:    true,
		Structure: &component.Structure{},
	}
}

// NewCastle builds the enemy castle against the right edge.
func NewCastle(t *prefabs.Tuning, hp int) *component.Actor {
	cs := t.Castle
	return &component.Actor{
		Kind:      component.KindCastle,
		Pos:       cp.Vector{X: t.Playfield.Width - cs.Width - cs.Margin, Y: t.Playfield.GroundY() - cs.Height},
		W:         cs.Width,
		H:         cs.Height,
		HP:        hp,
		MaxHP:     hp,
		Active:    hp > 0,
		Structure: &component.Structure{},
	}
}

// NewPowerUp builds a pickup centered on center.
func NewPowerUp(t *prefabs.Tuning, center cp.Vector) *component.Actor {
	ps := t.PowerUp
	y := center.Y - ps.Size/2
	return &component.Actor{
		Kind:    component.KindPowerUp,
		Pos:     cp.Vector{X: center.X - ps.Size/2, Y: y},
		W:       ps.Size,
		H:       ps.Size,
		HP:      1,
		MaxHP:   1,
		Active:  true,
		PowerUp: &component.PowerUp{Life: ps.Lifetime, BaseY: y},
	}
}

// WeaponFor returns the stat block of a weapon tier.
func WeaponFor(t *prefabs.Tuning, tier component.Tier) prefabs.WeaponSpec {
	switch tier {
	case component.TierCannon:
		return t.Weapons.Cannon
	case component.TierPowerShot:
		return t.Weapons.PowerShot
	}
	return t.Weapons.Basic
}
