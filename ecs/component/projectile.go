package component

// Tier is the weapon tier a player shot was fired with.
type Tier uint8

const (
	TierBasic Tier = iota
	TierCannon
	TierPowerShot
)

func (t Tier) String() string {
	switch t {
	case TierCannon:
		return "cannon"
	case TierPowerShot:
		return "power_shot"
	}
	return "basic"
}

// Projectile is shared by player water shots and boss fireballs.
type Projectile struct {
	Tier   Tier
	Damage int
	Life   float64
}

type PowerUp struct {
	Life  float64
	BaseY float64
}

// Structure is the house or the enemy castle. Destroyed latches the first
// time HP reaches zero.
type Structure struct {
	Destroyed bool
}
