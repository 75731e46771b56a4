package system

import (
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
)

// KillListener is told about kills the resolver causes.
type KillListener interface {
	EnemyKilled(enemy *component.Actor)
	BossKilled(boss *component.Actor)
	CastleDestroyed(castle *component.Actor)
}

// CombatSystem resolves every cross-category hit once per frame, after all
// actors have moved.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem { return &CombatSystem{} }

// Check runs the eight resolution steps in order. Each player shot hits at
// most one target per frame: the first overlapping enemy in spawn order,
// otherwise the boss, otherwise the castle. The boss and the castle each
// take at most one shot per frame.
func (s *CombatSystem) Check(w *World, kills KillListener) {
	if w == nil {
		return
	}
	t := w.Tuning
	player := w.PlayerActor()
	house := w.HouseActor()
	boss := w.BossActor()
	castle := w.CastleActor()

	shots := s.shots(w)

	// Shots against enemies.
	for _, shot := range shots {
		w.Each(component.KindEnemy, func(_ ecs.Entity, enemy *component.Actor) {
			if !shot.Active || !enemy.Active || !shot.Bounds().Intersects(enemy.Bounds()) {
				return
			}
			shot.Active = false
			killed := TakeDamage(t, enemy, shot.Projectile.Damage)
			w.Emit(component.CueEnemyHit, shot.Center())
			if killed {
				w.Emit(component.CueEnemyKilled, enemy.Center())
				if kills != nil {
					kills.EnemyKilled(enemy)
				}
			}
		})
	}

	// Shots against the boss.
	if boss != nil && boss.Active {
		for _, shot := range shots {
			if !shot.Overlaps(boss) {
				continue
			}
			shot.Active = false
			killed := TakeDamage(t, boss, shot.Projectile.Damage)
			w.Emit(component.CueBossHit, shot.Center())
			if killed {
				w.Emit(component.CueBossKilled, boss.Center())
				if kills != nil {
					kills.BossKilled(boss)
				}
			}
			break
		}
	}

	// Fireballs against the player.
	if player != nil && player.Active {
		w.Each(component.KindFireball, func(_ ecs.Entity, fb *component.Actor) {
			if !player.Active || !fb.Overlaps(player) {
				return
			}
			fb.Active = false
			s.hurtPlayer(w, player, fb.Projectile.Damage)
		})
	}

	// Boss melee against the house.
	if boss != nil && boss.Active && house != nil && house.HP > 0 && BossCanAttack(t, boss) {
		s.hitHouse(w, house, boss.Boss.Damage)
	}

	// Shots against the castle.
	if castle != nil && castle.Active {
		for _, shot := range shots {
			if !shot.Overlaps(castle) {
				continue
			}
			shot.Active = false
			destroyed := TakeDamage(t, castle, shot.Projectile.Damage)
			w.Emit(component.CueStructureHit, shot.Center())
			if destroyed {
				w.Emit(component.CueStructureDestroyed, castle.Center())
				if kills != nil {
					kills.CastleDestroyed(castle)
				}
			}
			break
		}
	}

	// Enemy melee against the house. Every ready enemy lands its hit.
	if house != nil && house.HP > 0 {
		w.Each(component.KindEnemy, func(_ ecs.Entity, enemy *component.Actor) {
			if enemy.Active && EnemyCanAttack(t, enemy) {
				s.hitHouse(w, house, enemy.Enemy.Damage)
			}
		})
	}

	// Enemy contact against the player.
	if player != nil {
		w.Each(component.KindEnemy, func(_ ecs.Entity, enemy *component.Actor) {
			if player.Active && enemy.Overlaps(player) {
				s.hurtPlayer(w, player, enemy.Enemy.Damage)
			}
		})
	}

	// Player against power-ups.
	if player != nil && player.Active {
		w.Each(component.KindPowerUp, func(_ ecs.Entity, pu *component.Actor) {
			if !pu.Overlaps(player) {
				return
			}
			pu.Active = false
			ActivatePowerUp(t, player)
			w.Emit(component.CuePowerUpCollected, pu.Center())
		})
	}
}

// shots returns the player's live shots in firing order.
func (s *CombatSystem) shots(w *World) []*component.Actor {
	player := w.PlayerActor()
	if player == nil || player.Player == nil {
		return nil
	}
	out := make([]*component.Actor, 0, len(player.Player.Projectiles))
	for _, e := range player.Player.Projectiles {
		if shot := w.Actor(e); shot != nil && shot.Active && shot.Projectile != nil {
			out = append(out, shot)
		}
	}
	return out
}

func (s *CombatSystem) hitHouse(w *World, house *component.Actor, damage int) {
	wasStanding := !house.Structure.Destroyed
	TakeDamage(w.Tuning, house, damage)
	w.Emit(component.CueHouseHit, house.Center())
	if wasStanding && house.Structure.Destroyed {
		w.Emit(component.CueStructureDestroyed, house.Center())
	}
}

func (s *CombatSystem) hurtPlayer(w *World, player *component.Actor, damage int) {
	if player.Player.Invulnerable > 0 {
		return
	}
	TakeDamage(w.Tuning, player, damage)
	w.Emit(component.CuePlayerHurt, player.Center())
}
