package component

import "github.com/jakecoffman/cp"

type EventKind uint8

const (
	EventCue EventKind = iota + 1
	EventMusic
)

// Cue names a one-shot presentation effect.
type Cue string

const (
	CueShoot              Cue = "shoot"
	CueCannonShot         Cue = "cannon_shot"
	CuePowerShot          Cue = "power_shot"
	CueJump               Cue = "jump"
	CueLand               Cue = "land"
	CueEnemyHit           Cue = "enemy_hit"
	CueEnemyKilled        Cue = "enemy_killed"
	CueBossHit            Cue = "boss_hit"
	CueBossKilled         Cue = "boss_killed"
	CueStructureHit       Cue = "structure_hit"
	CueStructureDestroyed Cue = "structure_destroyed"
	CueHouseHit           Cue = "house_hit"
	CuePlayerHurt         Cue = "player_hurt"
	CuePowerUpCollected   Cue = "powerup_collected"
	CuePowerUpDropped     Cue = "powerup_dropped"
	CueWaveIncoming       Cue = "wave_incoming"
	CueBossFireball       Cue = "boss_fireball"
	CueFreeze             Cue = "freeze"
	CueWeaponUpgraded     Cue = "weapon_upgraded"
	CueBossAppeared       Cue = "boss_appeared"
	CueStageCleared       Cue = "stage_cleared"
	CueGameOver           Cue = "game_over"
	CueVictory            Cue = "victory"
	CueMenuSelect         Cue = "menu_select"
	CueMenuConfirm        Cue = "menu_confirm"
	CuePurchase           Cue = "purchase"
	CueEquip              Cue = "equip"
)

// Event is a one-way notification for presentation collaborators. Cue
// events carry the world position of the effect; music events carry the
// track key, empty for silence.
type Event struct {
	Kind  EventKind
	Cue   Cue
	Track string
	Pos   cp.Vector
}

func CueAt(cue Cue, pos cp.Vector) Event {
	return Event{Kind: EventCue, Cue: cue, Pos: pos}
}

func Music(track string) Event {
	return Event{Kind: EventMusic, Track: track}
}
