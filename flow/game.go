// Package flow is the top-level state machine: menus, stage progression,
// pause, terminal screens and reward settlement.
package flow

import (
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/ecs/system"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/milk9111/waterguard/stage"
)

type Options struct {
	Rand  *rand.Rand
	Debug bool

	// Difficulty preselects a menu difficulty by key; empty keeps the
	// content default.
	Difficulty string
}

// Game owns every piece of mutable simulation state. Update is the only
// writer; collaborators read Snapshot and drain Events.
type Game struct {
	content Content
	wallet  Wallet
	rng     *rand.Rand
	debug   bool

	events ecs.EventQueue[component.Event]

	state State
	prev  State
	dwell float64
	music string

	difficultyIndex int
	session         *Session
	stage           *stage.Scheduler

	shopTab    int
	shopCursor int
}

func New(content Content, wallet Wallet, opts Options) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Game{
		content: content,
		wallet:  wallet,
		rng:     rng,
		debug:   opts.Debug,
		state:   StateMenu,
		prev:    StateMenu,
	}
	g.difficultyIndex, _ = content.Tuning.DifficultyAt(content.Tuning.DefaultDifficulty)
	for i, d := range content.Tuning.Difficulties {
		if opts.Difficulty != "" && d.Key == opts.Difficulty {
			g.difficultyIndex = i
		}
	}
	g.enter(StateMenu, StateMenu)
	return g
}

func (g *Game) State() State { return g.state }

// Session returns the running session, nil outside a run.
func (g *Game) Session() *Session { return g.session }

// Stage returns the active stage, nil outside a run.
func (g *Game) Stage() *stage.Scheduler { return g.stage }

// Events drains the outbound presentation events queued since the last call.
func (g *Game) Events() []component.Event { return g.events.Drain() }

// Music is the background track key currently requested, empty for silence.
func (g *Game) Music() string { return g.music }

// Reload swaps content. Running stages keep their configuration; the new
// content applies from the next stage load.
func (g *Game) Reload(c Content) {
	if c.Tuning == nil || len(c.Stages) == 0 {
		log.Printf("flow: reload ignored: incomplete content")
		return
	}
	if c.Volleys == nil {
		c.Volleys = g.content.Volleys
	}
	g.content = c
	g.difficultyIndex, _ = c.Tuning.DifficultyAt(g.difficultyIndex)
	g.clampShopCursor()
}

// Update advances one frame. dt is clamped to the playfield's max step so a
// stalled host cannot cause multi-second jumps.
func (g *Game) Update(in component.Input, dt float64) {
	if g == nil {
		return
	}
	dt = cp.Clamp(dt, 0, g.content.Tuning.Playfield.MaxDT)
	g.dwell += dt
	fs := g.content.Tuning.Flow

	switch g.state {
	case StateMenu:
		g.updateMenu(in)

	case StateTutorial:
		if in.Confirm && g.dwell >= fs.TutorialDwell {
			g.setState(StatePlaying)
		}

	case StatePlaying:
		if in.Pause {
			g.setState(StatePaused)
			return
		}
		g.updatePlaying(in, dt)

	case StatePaused:
		switch {
		case in.Pause:
			g.setState(StatePlaying)
		case in.Quit:
			g.setState(StateConfirmQuit)
		}

	case StateConfirmQuit:
		switch {
		case in.Confirm:
			g.session, g.stage = nil, nil
			g.setState(StateMenu)
		case in.Back, in.Pause:
			g.setState(StatePaused)
		}

	case StateStageClear:
		if in.Confirm && g.dwell >= fs.StageClearDwell {
			g.advanceFromClear()
		}

	case StateCannonComplete:
		if in.Confirm && g.dwell >= fs.CannonDwell {
			g.session.StageIndex++
			g.setState(StateBossIntro)
		}

	case StateBossIntro:
		if g.dwell >= fs.BossIntroDwell {
			g.setState(StatePlaying)
		}

	case StateGameOver:
		if in.Confirm && g.dwell >= fs.GameOverDwell {
			g.setState(StatePlaying)
		}

	case StateWin:
		if in.Confirm && g.dwell >= fs.WinDwell {
			g.settleReward()
			g.session, g.stage = nil, nil
			g.setState(StateMenu)
		}

	case StateShop:
		g.updateShop(in)
	}
}

func (g *Game) updateMenu(in component.Input) {
	t := g.content.Tuning
	prev := g.difficultyIndex
	if in.DifficultyStep != 0 {
		g.difficultyIndex, _ = t.DifficultyAt(g.difficultyIndex + in.DifficultyStep)
	}
	if i, ok := in.Difficulty.Index(); ok {
		g.difficultyIndex, _ = t.DifficultyAt(i)
	}
	if prev != g.difficultyIndex {
		g.emit(component.CueMenuSelect)
	}

	switch {
	case in.OpenShop:
		g.emit(component.CueMenuConfirm)
		g.setState(StateShop)
	case in.Confirm:
		g.emit(component.CueMenuConfirm)
		g.setState(StateTutorial)
	}
}

func (g *Game) updatePlaying(in component.Input, dt float64) {
	s, sess := g.stage, g.session
	w := s.World()

	system.UpdatePlayer(w, in, system.PlayerOptions{
		Cannon:        sess.Cannon,
		FreezeEnabled: sess.Difficulty.Freeze,
	}, dt)
	s.Update(dt)
	s.Resolve()

	if system.ConsumeFreeze(w) && sess.Difficulty.Freeze {
		s.FreezeAll(g.content.Tuning.Player.FreezeDuration)
		pf := g.content.Tuning.Playfield
		w.Emit(component.CueFreeze, cp.Vector{X: pf.Width / 2, Y: pf.Height / 2})
	}

	if g.lost() {
		g.emit(component.CueGameOver)
		g.setState(StateGameOver)
		return
	}

	if !s.Evaluate() {
		return
	}
	g.emit(component.CueStageCleared)
	if s.IsBossStage() {
		sess.Reward = sess.Difficulty.Reward
		g.emit(component.CueVictory)
		g.setState(StateWin)
		return
	}
	sess.Materials = min(sess.Materials+1, g.content.Tuning.Materials.Total)
	g.setState(StateStageClear)
}

// lost reports a destroyed house or a defeated player.
func (g *Game) lost() bool {
	house := g.stage.House()
	player := g.stage.Player()
	return house == nil || house.HP <= 0 || player == nil || player.HP <= 0
}

func (g *Game) advanceFromClear() {
	sess := g.session
	if sess.Materials >= g.content.Tuning.Materials.Total && !sess.Cannon {
		g.setState(StateCannonComplete)
		return
	}
	sess.StageIndex++
	idx, next := g.stageAt(sess.StageIndex)
	sess.StageIndex = idx
	if next.Boss {
		g.setState(StateBossIntro)
		return
	}
	g.setState(StatePlaying)
}

func (g *Game) settleReward() {
	if g.session == nil || g.session.Reward <= 0 || g.wallet == nil {
		return
	}
	g.wallet.AddCoins(g.session.Reward)
	g.session.Reward = 0
}

func (g *Game) setState(next State) {
	prev := g.state
	g.prev, g.state, g.dwell = prev, next, 0
	if g.debug {
		log.Printf("flow: %s -> %s", prev, next)
	}
	g.enter(next, prev)
}

// enter runs entry actions: session and stage setup for Playing, and the
// background music request of every state that has one.
func (g *Game) enter(state, from State) {
	m := g.content.Tuning.Music
	switch state {
	case StateMenu:
		g.playMusic(m.Menu)
	case StateShop:
		g.shopTab, g.shopCursor = 0, 0
		g.playMusic(m.Shop)
	case StatePlaying:
		switch from {
		case StateMenu, StateTutorial:
			g.newSession()
		case StateStageClear, StateCannonComplete, StateBossIntro:
			g.loadStage(g.session.StageIndex, g.stage.Player().HP)
		case StateGameOver:
			g.loadStage(g.session.StageIndex, 0)
		}
		g.playMusic(g.stageMusic())
	case StateCannonComplete:
		g.session.Cannon = true
		g.emit(component.CueWeaponUpgraded)
		g.playMusic("")
	case StateBossIntro:
		g.emit(component.CueBossAppeared)
		g.playMusic("")
	case StateStageClear, StateGameOver:
		g.playMusic("")
	case StateWin:
		g.playMusic(m.Win)
	}
}

func (g *Game) newSession() {
	idx, d := g.content.Tuning.DifficultyAt(g.difficultyIndex)
	g.session = &Session{Difficulty: d, DifficultyIndex: idx}
	g.loadStage(0, 0)
}

// loadStage builds a fresh scheduler for stage i. Out-of-range indexes fall
// back to the first stage. playerHP carries health across stages; zero
// restores it fully.
func (g *Game) loadStage(i, playerHP int) {
	idx, cfg := g.stageAt(i)
	g.session.StageIndex = idx
	g.stage = stage.New(stage.Config{
		Tuning:     g.content.Tuning,
		Stage:      cfg,
		Difficulty: g.session.Difficulty,
		Volleys:    g.content.Volleys,
		Events:     &g.events,
		Rand:       g.rng,
		PlayerHP:   playerHP,
		Drops:      &g.session.Drops,
	})
	if g.debug {
		log.Printf("flow: load stage %d (%s) on %s", idx, cfg.Name, g.session.Difficulty.Key)
	}
}

func (g *Game) stageAt(i int) (int, prefabs.StageConfig) {
	stages := g.content.Stages
	if i < 0 || i >= len(stages) {
		if g.debug {
			log.Printf("flow: stage %d out of range, using stage 0", i)
		}
		return 0, stages[0]
	}
	return i, stages[i]
}

func (g *Game) stageMusic() string {
	m := g.content.Tuning.Music
	hard := g.session != nil && g.session.Difficulty.HardMode()
	if g.stage == nil {
		return m.Menu
	}
	if g.stage.IsBossStage() {
		if hard {
			return m.BossHard
		}
		return m.Boss
	}
	if hard {
		return m.HardPrefix + g.stage.Background()
	}
	return g.stage.Background()
}

func (g *Game) playMusic(track string) {
	if track == g.music {
		return
	}
	g.music = track
	g.events.Push(component.Music(track))
}

func (g *Game) emit(cue component.Cue) {
	g.events.Push(component.CueAt(cue, cp.Vector{}))
}
