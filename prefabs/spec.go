package prefabs

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	TuningFile = "tuning.yaml"
	StagesFile = "stages.yaml"
)

// LoadSpec reads and decodes a YAML content file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning holds every gameplay constant the simulation reads.
type Tuning struct {
	Playfield         PlayfieldSpec  `yaml:"playfield"`
	Physics           PhysicsSpec    `yaml:"physics"`
	Player            PlayerSpec     `yaml:"player"`
	Weapons           WeaponsSpec    `yaml:"weapons"`
	Projectile        ProjectileSpec `yaml:"projectile"`
	Enemies           EnemiesSpec    `yaml:"enemies"`
	Boss              BossSpec       `yaml:"boss"`
	House             HouseSpec      `yaml:"house"`
	Castle            CastleSpec     `yaml:"castle"`
	PowerUp           PowerUpSpec    `yaml:"powerup"`
	Materials         MaterialsSpec  `yaml:"materials"`
	Flow              FlowSpec       `yaml:"flow"`
	DefaultDifficulty int            `yaml:"default_difficulty"`
	Difficulties      []Difficulty   `yaml:"difficulties"`
	Music             MusicSpec      `yaml:"music"`
	Shop              ShopSpec       `yaml:"shop"`
}

type PlayfieldSpec struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundRatio float64 `yaml:"ground_ratio"`
	MaxDT       float64 `yaml:"max_dt"`
}

// GroundY is the y coordinate of the ground line.
func (p PlayfieldSpec) GroundY() float64 {
	return p.Height * p.GroundRatio
}

type PhysicsSpec struct {
	Gravity float64 `yaml:"gravity"`
}

type PlayerSpec struct {
	Speed               float64 `yaml:"speed"`
	JumpVelocity        float64 `yaml:"jump_velocity"`
	HP                  int     `yaml:"hp"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	SpawnX              float64 `yaml:"spawn_x"`
	MuzzleDrop          float64 `yaml:"muzzle_drop"`
	InvulnerableSeconds float64 `yaml:"invulnerable_seconds"`
	FreezeCooldown      float64 `yaml:"freeze_cooldown"`
	FreezeDuration      float64 `yaml:"freeze_duration"`
	PowerUpDuration     float64 `yaml:"powerup_duration"`
}

type WeaponSpec struct {
	Damage   int     `yaml:"damage"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Cooldown float64 `yaml:"cooldown"`
}

type WeaponsSpec struct {
	Basic     WeaponSpec `yaml:"basic"`
	Cannon    WeaponSpec `yaml:"cannon"`
	PowerShot WeaponSpec `yaml:"power_shot"`
}

type ProjectileSpec struct {
	Speed          float64 `yaml:"speed"`
	Lifetime       float64 `yaml:"lifetime"`
	OffstageMargin float64 `yaml:"offstage_margin"`
}

// EnemyType is the base stat block of one adversary archetype.
type EnemyType struct {
	HP     int     `yaml:"hp"`
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Flying bool    `yaml:"flying"`
}

type FlyingSpec struct {
	Amplitude    float64 `yaml:"amplitude"`
	Frequency    float64 `yaml:"frequency"`
	MinAltitude  float64 `yaml:"min_altitude"`
	AltitudeBand float64 `yaml:"altitude_band"`
}

type SpawnSpec struct {
	OffsetX      float64 `yaml:"offset_x"`
	Spacing      float64 `yaml:"spacing"`
	CastleJitter float64 `yaml:"castle_jitter"`
}

type EnemiesSpec struct {
	Default     string               `yaml:"default"`
	AttackRange float64              `yaml:"attack_range"`
	AttackRate  float64              `yaml:"attack_rate"`
	StunSeconds float64              `yaml:"stun_seconds"`
	HitFlash    float64              `yaml:"hit_flash"`
	Types       map[string]EnemyType `yaml:"types"`
	Flying      FlyingSpec           `yaml:"flying"`
	Spawn       SpawnSpec            `yaml:"spawn"`
}

type FireballSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Damage   int     `yaml:"damage"`
	Lifetime float64 `yaml:"lifetime"`
}

type BossSpec struct {
	HP             int          `yaml:"hp"`
	Width          float64      `yaml:"width"`
	Height         float64      `yaml:"height"`
	Speed          float64      `yaml:"speed"`
	Damage         int          `yaml:"damage"`
	SpawnOffset    float64      `yaml:"spawn_offset"`
	EnterSpeedMul  float64      `yaml:"enter_speed_mul"`
	EngageMargin   float64      `yaml:"engage_margin"`
	HoldDistance   float64      `yaml:"hold_distance"`
	MeleeRange     float64      `yaml:"melee_range"`
	AttackRate     float64      `yaml:"attack_rate"`
	AttackAnim     float64      `yaml:"attack_anim"`
	PhaseSpeedStep float64      `yaml:"phase_speed_step"`
	Script         string       `yaml:"script"`
	Fireball       FireballSpec `yaml:"fireball"`
}

type HouseSpec struct {
	X         float64 `yaml:"x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	DefaultHP int     `yaml:"default_hp"`
}

type CastleSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Margin   float64 `yaml:"margin"`
	HitFlash float64 `yaml:"hit_flash"`
}

type PowerUpSpec struct {
	Size          float64 `yaml:"size"`
	Lifetime      float64 `yaml:"lifetime"`
	DropChance    float64 `yaml:"drop_chance"`
	MaxPerSession int     `yaml:"max_per_session"`
	DropLift      float64 `yaml:"drop_lift"`
	BobAmplitude  float64 `yaml:"bob_amplitude"`
	BobSpeed      float64 `yaml:"bob_speed"`
}

type MaterialsSpec struct {
	Total int      `yaml:"total"`
	Names []string `yaml:"names"`
}

// FlowSpec holds the minimum dwell time, in seconds, of each transitional state.
type FlowSpec struct {
	TutorialDwell   float64 `yaml:"tutorial_dwell"`
	StageClearDwell float64 `yaml:"stage_clear_dwell"`
	CannonDwell     float64 `yaml:"cannon_dwell"`
	BossIntroDwell  float64 `yaml:"boss_intro_dwell"`
	GameOverDwell   float64 `yaml:"game_over_dwell"`
	WinDwell        float64 `yaml:"win_dwell"`
}

type MusicSpec struct {
	Menu       string `yaml:"menu"`
	Shop       string `yaml:"shop"`
	Win        string `yaml:"win"`
	Boss       string `yaml:"boss"`
	BossHard   string `yaml:"boss_hard"`
	HardPrefix string `yaml:"hard_prefix"`
}

// ShopItem is one purchasable cosmetic. Color is an SVG color name used to
// tint the player or its shots while the item is equipped.
type ShopItem struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
	Color string `yaml:"color"`
}

type ShopSpec struct {
	Body   []ShopItem `yaml:"body"`
	Bullet []ShopItem `yaml:"bullet"`
}

// Item looks up id in a catalog. Unknown ids resolve to the first item.
func Item(catalog []ShopItem, id string) (ShopItem, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	if len(catalog) > 0 {
		return catalog[0], false
	}
	return ShopItem{}, false
}

// Difficulty is a named preset applied uniformly to every adversarial entity.
type Difficulty struct {
	Key            string  `yaml:"key"`
	Label          string  `yaml:"label"`
	HPMul          float64 `yaml:"hp_mul"`
	SpeedMul       float64 `yaml:"speed_mul"`
	DamageMul      float64 `yaml:"damage_mul"`
	StructureHPMul float64 `yaml:"structure_hp_mul"`
	Reward         int     `yaml:"reward"`
	Freeze         bool    `yaml:"freeze"`
	ExtraWaves     bool    `yaml:"extra_waves"`
	PowerUps       bool    `yaml:"power_ups"`
}

// ScaleHP returns ceil(base * HPMul).
func (d Difficulty) ScaleHP(base int) int {
	return scaleUp(base, d.HPMul)
}

// ScaleDamage returns ceil(base * DamageMul).
func (d Difficulty) ScaleDamage(base int) int {
	return scaleUp(base, d.DamageMul)
}

// ScaleStructureHP returns ceil(base * StructureHPMul).
func (d Difficulty) ScaleStructureHP(base int) int {
	return scaleUp(base, d.StructureHPMul)
}

// ScaleSpeed returns base * SpeedMul.
func (d Difficulty) ScaleSpeed(base float64) float64 {
	return base * d.SpeedMul
}

// scaleUp multiplies and rounds up, ignoring float noise such as
// 120*1.3 = 156.00000000000003.
func scaleUp(base int, mul float64) int {
	if mul <= 0 {
		mul = 1
	}
	return int(math.Ceil(float64(base)*mul - 1e-9))
}

// Enemy returns the stat block for key, falling back to the default type
// for unknown keys. The resolved key is returned alongside.
func (t *Tuning) Enemy(key string) (string, EnemyType) {
	if info, ok := t.Enemies.Types[key]; ok {
		return key, info
	}
	if info, ok := t.Enemies.Types[t.Enemies.Default]; ok {
		return t.Enemies.Default, info
	}
	return key, EnemyType{HP: 1, Speed: 80, Damage: 1, Width: 32, Height: 32}
}

// DifficultyAt clamps i into range and returns that preset.
func (t *Tuning) DifficultyAt(i int) (int, Difficulty) {
	if len(t.Difficulties) == 0 {
		return 0, Difficulty{Key: "normal", Label: "Normal", HPMul: 1, SpeedMul: 1, DamageMul: 1, StructureHPMul: 1}
	}
	i = max(0, min(i, len(t.Difficulties)-1))
	return i, t.Difficulties[i]
}

// LoadTuning loads tuning.yaml.
func LoadTuning() (*Tuning, error) {
	spec, err := LoadSpec[Tuning](TuningFile)
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (t *Tuning) validate() error {
	if t.Playfield.Width <= 0 || t.Playfield.Height <= 0 {
		return fmt.Errorf("prefabs: %s: playfield size must be positive", TuningFile)
	}
	if t.Playfield.MaxDT <= 0 {
		t.Playfield.MaxDT = 1.0 / 30
	}
	if len(t.Enemies.Types) == 0 {
		return fmt.Errorf("prefabs: %s: no enemy types", TuningFile)
	}
	if _, ok := t.Enemies.Types[t.Enemies.Default]; !ok {
		return fmt.Errorf("prefabs: %s: default enemy type %q is not defined", TuningFile, t.Enemies.Default)
	}
	if len(t.Difficulties) == 0 {
		return fmt.Errorf("prefabs: %s: no difficulties", TuningFile)
	}
	if !(t.Weapons.Basic.Cooldown > t.Weapons.Cannon.Cooldown && t.Weapons.Cannon.Cooldown > t.Weapons.PowerShot.Cooldown) {
		return fmt.Errorf("prefabs: %s: weapon cooldowns must strictly decrease basic > cannon > power_shot", TuningFile)
	}
	for _, catalog := range [][]ShopItem{t.Shop.Body, t.Shop.Bullet} {
		for _, it := range catalog {
			if _, ok := colornames.Map[it.Color]; !ok {
				return fmt.Errorf("prefabs: %s: shop item %q has unknown color %q", TuningFile, it.ID, it.Color)
			}
		}
	}
	return nil
}

// EnemyGroup is a count of one enemy type inside a wave.
type EnemyGroup struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// Wave is a timed group of spawns; Delay is seconds from stage start.
type Wave struct {
	Delay   float64      `yaml:"delay"`
	Enemies []EnemyGroup `yaml:"enemies"`
}

// StageConfig is one level's immutable configuration.
type StageConfig struct {
	ID         int     `yaml:"id"`
	Name       string  `yaml:"name"`
	Background string  `yaml:"background"`
	Material   *int    `yaml:"material"`
	Waves      []Wave  `yaml:"waves"`
	ExtraWaves []Wave  `yaml:"extra_waves"`
	HouseHP    int     `yaml:"house_hp"`
	CastleHP   int     `yaml:"castle_hp"`
	BossDelay  float64 `yaml:"boss_delay"`
	Boss       bool    `yaml:"boss"`
}

// HasCastle reports whether the stage fields an enemy castle.
func (s StageConfig) HasCastle() bool {
	return !s.Boss && s.CastleHP > 0
}

// Schedule merges the base waves with the extra waves (when enabled) and
// sorts by delay. Ties keep declaration order, base waves first.
func (s StageConfig) Schedule(extra bool) []Wave {
	waves := slices.Clone(s.Waves)
	if extra {
		waves = append(waves, s.ExtraWaves...)
	}
	slices.SortStableFunc(waves, func(a, b Wave) int {
		switch {
		case a.Delay < b.Delay:
			return -1
		case a.Delay > b.Delay:
			return 1
		}
		return 0
	})
	return waves
}

type stagesFile struct {
	Stages []StageConfig `yaml:"stages"`
}

// LoadStages loads stages.yaml.
func LoadStages() ([]StageConfig, error) {
	spec, err := LoadSpec[stagesFile](StagesFile)
	if err != nil {
		return nil, err
	}
	if len(spec.Stages) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no stages defined", StagesFile)
	}
	for i := range spec.Stages {
		if spec.Stages[i].Background == "" {
			spec.Stages[i].Background = "village"
		}
	}
	return spec.Stages, nil
}

// HardMode reports whether the preset plays stages with their extra waves,
// which also selects the hard music variants.
func (d Difficulty) HardMode() bool {
	return d.ExtraWaves
}
