package component

type EnemyState uint8

const (
	EnemyApproaching EnemyState = iota
	EnemyAttacking
	EnemyStunned
)

func (s EnemyState) String() string {
	switch s {
	case EnemyApproaching:
		return "approaching"
	case EnemyAttacking:
		return "attacking"
	case EnemyStunned:
		return "stunned"
	}
	return "unknown"
}

// Enemy is a ground or flying fire monster walking toward the house.
type Enemy struct {
	Type   string
	Speed  float64
	Damage int
	Flying bool

	State          EnemyState
	AttackCooldown float64
	StunTimer      float64
	TargetX        float64

	Frozen      bool
	FreezeTimer float64

	// BaseY and Phase drive the flying oscillation.
	BaseY float64
	Phase float64
}
