package component

import "github.com/milk9111/waterguard/ecs"

type BossState uint8

const (
	BossEntering BossState = iota
	BossFighting
)

func (s BossState) String() string {
	if s == BossFighting {
		return "fighting"
	}
	return "entering"
}

// Boss is the final-stage fire lord. Its phase is never stored; it is
// derived from HP on every read.
type Boss struct {
	Speed  float64
	Damage int

	State       BossState
	AttackTimer float64
	AttackAnim  float64
	TargetX     float64

	Frozen      bool
	FreezeTimer float64

	Fireballs []ecs.Entity
}
