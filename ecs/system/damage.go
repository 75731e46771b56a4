package system

import (
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/prefabs"
)

// TakeDamage applies n damage to a under its kind's rules and reports
// whether the hit deactivated it. HP never drops below zero.
//
// The player ignores damage while invulnerable and restarts the window on
// every hit that lands. The house floors at zero but stays active. Enemies
// are stunned by non-lethal hits unless frozen.
func TakeDamage(t *prefabs.Tuning, a *component.Actor, n int) bool {
	if a == nil || !a.Active || n <= 0 {
		return false
	}

	switch a.Kind {
	case component.KindPlayer:
		if a.Player.Invulnerable > 0 {
			return false
		}
		a.Player.Invulnerable = t.Player.InvulnerableSeconds
	case component.KindEnemy:
		a.HitFlash = t.Enemies.HitFlash
	case component.KindBoss:
		a.HitFlash = t.Enemies.HitFlash
	case component.KindCastle:
		a.HitFlash = t.Castle.HitFlash
	}

	a.HP = max(0, a.HP-n)

	if a.Kind == component.KindHouse {
		if a.HP == 0 && !a.Structure.Destroyed {
			a.Structure.Destroyed = true
		}
		return false
	}

	if a.HP == 0 {
		a.Active = false
		if a.Structure != nil {
			a.Structure.Destroyed = true
		}
		return true
	}

	if en := a.Enemy; en != nil && !en.Frozen {
		en.State = component.EnemyStunned
		en.StunTimer = t.Enemies.StunSeconds
	}
	return false
}

// Freeze suspends an enemy or the boss for d seconds. Other kinds ignore it.
func Freeze(a *component.Actor, d float64) bool {
	if a == nil || !a.Active || d <= 0 {
		return false
	}
	switch {
	case a.Enemy != nil:
		a.Enemy.Frozen = true
		a.Enemy.FreezeTimer = d
	case a.Boss != nil:
		a.Boss.Frozen = true
		a.Boss.FreezeTimer = d
	default:
		return false
	}
	return true
}

// EnemyCanAttack reports whether an enemy lands a melee hit this frame and,
// when it does, restarts its attack cooldown.
func EnemyCanAttack(t *prefabs.Tuning, a *component.Actor) bool {
	if a == nil || !a.Active || a.Enemy == nil {
		return false
	}
	en := a.Enemy
	if en.Frozen || en.State != component.EnemyAttacking || en.AttackCooldown > 0 {
		return false
	}
	en.AttackCooldown = t.Enemies.AttackRate
	return true
}

// BossCanAttack reports whether the boss is in melee range of its target.
// A true result starts the attack animation timer; the caller owns any
// cooldown.
func BossCanAttack(t *prefabs.Tuning, a *component.Actor) bool {
	if a == nil || !a.Active || a.Boss == nil || a.Boss.Frozen {
		return false
	}
	if a.Pos.X > a.Boss.TargetX+t.Boss.MeleeRange {
		return false
	}
	a.Boss.AttackAnim = t.Boss.AttackAnim
	return true
}

// BossPhase derives the aggression tier from remaining HP: above 66% is
// phase 1, above 33% phase 2, anything lower phase 3.
func BossPhase(hp, maxHP int) int {
	if maxHP <= 0 {
		return 1
	}
	ratio := float64(hp) / float64(maxHP)
	switch {
	case ratio > 0.66:
		return 1
	case ratio > 0.33:
		return 2
	}
	return 3
}

// ActivatePowerUp starts or refreshes the player's power-up timer.
func ActivatePowerUp(t *prefabs.Tuning, a *component.Actor) {
	if a == nil || a.Player == nil {
		return
	}
	a.Player.PoweredUp = true
	a.Player.PowerUpTimer = t.Player.PowerUpDuration
}
