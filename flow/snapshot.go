package flow

import (
	"github.com/milk9111/waterguard/common"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/ecs/system"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/milk9111/waterguard/save"
)

// ActorView is the read-only render data of one actor.
type ActorView struct {
	Kind         component.Kind
	Bounds       common.Rect
	HPRatio      float64
	HitFlash     bool
	Frozen       bool
	Invulnerable bool
	PoweredUp    bool
	Facing       float64
	Tier         component.Tier
	EnemyType    string
	Flying       bool
	BossPhase    int
	Attacking    bool

	// Skin is the equipped cosmetic color of the player and its shots.
	Skin string
}

// Skin is an equipped cosmetic.
type Skin struct {
	ID    string
	Color string
}

type ShopItemView struct {
	ID     string
	Name   string
	Price  int
	Color  string
	Owned  bool
	Active bool
}

type ShopView struct {
	Tab    int
	Cursor int
	Items  []ShopItemView
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	State           State
	Dwell           float64
	Music           string
	Coins           int
	DifficultyIndex int
	DifficultyLabel string
	Difficulties    []string
	ActiveBody      Skin
	ActiveBullet    Skin

	InRun          bool
	StageIndex     int
	StageCount     int
	StageName      string
	Background     string
	BossStage      bool
	Materials      int
	MaterialsTotal int
	MaterialNames  []string
	FoundMaterial  string
	Cannon         bool
	Wave           int
	Waves          int
	Elapsed        float64
	Reward         int

	PlayerHP    int
	PlayerMaxHP int
	HouseHP     int
	HouseMaxHP  int
	BossHP      int
	BossMaxHP   int

	ShootCooldown  float64
	FreezeEnabled  bool
	FreezeCooldown float64
	PowerUp        float64

	Actors []ActorView
	Shop   ShopView
}

// Snapshot builds a read-only view of the current frame.
func (g *Game) Snapshot() Snapshot {
	t := g.content.Tuning
	snap := Snapshot{
		State:           g.state,
		Dwell:           g.dwell,
		Music:           g.music,
		DifficultyIndex: g.difficultyIndex,
		StageCount:      len(g.content.Stages),
		MaterialsTotal:  t.Materials.Total,
		MaterialNames:   t.Materials.Names,
	}
	for _, d := range t.Difficulties {
		snap.Difficulties = append(snap.Difficulties, d.Label)
	}
	_, d := t.DifficultyAt(g.difficultyIndex)
	snap.DifficultyLabel = d.Label
	if g.wallet != nil {
		snap.Coins = g.wallet.Coins()
	}
	snap.ActiveBody = g.activeSkin(save.Body)
	snap.ActiveBullet = g.activeSkin(save.Bullet)

	if g.state == StateShop {
		snap.Shop = g.shopView()
	}

	if g.session == nil || g.stage == nil {
		return snap
	}
	sess, s := g.session, g.stage
	snap.InRun = true
	snap.DifficultyLabel = sess.Difficulty.Label
	snap.StageIndex = sess.StageIndex
	snap.StageName = s.Stage().Name
	snap.Background = s.Background()
	snap.BossStage = s.IsBossStage()
	snap.Materials = sess.Materials
	snap.Cannon = sess.Cannon
	if m := s.Stage().Material; m != nil && *m >= 0 && *m < len(t.Materials.Names) {
		snap.FoundMaterial = t.Materials.Names[*m]
	}
	snap.Wave = s.CurrentWave() + 1
	snap.Waves = s.TotalWaves()
	snap.Elapsed = s.Elapsed()
	snap.Reward = sess.Reward
	snap.FreezeEnabled = sess.Difficulty.Freeze

	if p := s.Player(); p != nil {
		snap.PlayerHP, snap.PlayerMaxHP = p.HP, p.MaxHP
		tier := system.CurrentTier(p.Player, sess.Cannon)
		snap.ShootCooldown = common.Ratio(p.Player.ShootCooldown, system.WeaponFor(t, tier).Cooldown)
		snap.FreezeCooldown = common.Ratio(p.Player.FreezeCooldown, t.Player.FreezeCooldown)
		snap.PowerUp = common.Ratio(p.Player.PowerUpTimer, t.Player.PowerUpDuration)
	}
	if h := s.House(); h != nil {
		snap.HouseHP, snap.HouseMaxHP = h.HP, h.MaxHP
	}
	if b := s.World().BossActor(); b != nil && b.Active {
		snap.BossHP, snap.BossMaxHP = b.HP, b.MaxHP
	}

	s.World().Each(component.KindNone, func(_ ecs.Entity, a *component.Actor) {
		if !a.Active && a.Kind != component.KindHouse {
			return
		}
		v := viewOf(a)
		switch a.Kind {
		case component.KindPlayer:
			v.Skin = snap.ActiveBody.Color
		case component.KindProjectile:
			v.Skin = snap.ActiveBullet.Color
		}
		snap.Actors = append(snap.Actors, v)
	})
	return snap
}

func viewOf(a *component.Actor) ActorView {
	v := ActorView{
		Kind:     a.Kind,
		Bounds:   a.Bounds(),
		HPRatio:  a.HPRatio(),
		HitFlash: a.HitFlash > 0,
	}
	switch {
	case a.Player != nil:
		v.Invulnerable = a.Player.Invulnerable > 0
		v.PoweredUp = a.Player.PoweredUp
		v.Facing = a.Player.Facing
	case a.Enemy != nil:
		v.Frozen = a.Enemy.Frozen
		v.EnemyType = a.Enemy.Type
		v.Flying = a.Enemy.Flying
		v.Attacking = a.Enemy.State == component.EnemyAttacking
	case a.Boss != nil:
		v.Frozen = a.Boss.Frozen
		v.BossPhase = system.BossPhase(a.HP, a.MaxHP)
		v.Attacking = a.Boss.AttackAnim > 0
	case a.Projectile != nil:
		v.Tier = a.Projectile.Tier
		v.Facing = 1
		if a.Vel.X < 0 {
			v.Facing = -1
		}
	}
	return v
}

func (g *Game) shopView() ShopView {
	view := ShopView{Tab: g.shopTab, Cursor: g.shopCursor}
	c := save.Category(g.shopTab)
	for _, item := range g.shopItems(g.shopTab) {
		iv := ShopItemView{ID: item.ID, Name: item.Name, Price: item.Price, Color: item.Color}
		if g.wallet != nil {
			iv.Owned = g.wallet.Owns(c, item.ID)
			iv.Active = g.wallet.Active(c) == item.ID
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

// activeSkin resolves the equipped item of c. Without a wallet, or with an
// id the catalog no longer lists, the first catalog item is shown.
func (g *Game) activeSkin(c save.Category) Skin {
	id := save.DefaultItem
	if g.wallet != nil {
		id = g.wallet.Active(c)
	}
	item, _ := prefabs.Item(g.shopItems(int(c)), id)
	return Skin{ID: item.ID, Color: item.Color}
}
