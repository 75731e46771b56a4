package flow

import (
	"log"

	"github.com/milk9111/waterguard/ecs/system"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/milk9111/waterguard/save"
)

// Session is one run from the menu to a win or an abandon.
type Session struct {
	Difficulty      prefabs.Difficulty
	DifficultyIndex int
	StageIndex      int
	Materials       int
	Cannon          bool

	// Reward is the coin payout pending settlement on the win screen.
	Reward int

	// Drops counts power-ups dropped across every stage of the run.
	Drops int
}

// Wallet is the persistence collaborator: coins and owned cosmetics.
type Wallet interface {
	Coins() int
	AddCoins(n int)
	Owns(c save.Category, id string) bool
	Purchase(c save.Category, id string, price int) bool
	SetActive(c save.Category, id string)
	Active(c save.Category) string
}

// Content is the externally supplied configuration a Game runs on.
type Content struct {
	Tuning  *prefabs.Tuning
	Stages  []prefabs.StageConfig
	Volleys *system.Volleys
}

// LoadContent loads tuning, stages and the boss volley script from prefabs.
// A broken volley script falls back to the built-in pattern.
func LoadContent() (Content, error) {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return Content{}, err
	}
	stages, err := prefabs.LoadStages()
	if err != nil {
		return Content{}, err
	}
	volleys, err := system.LoadVolleys(tuning.Boss.Script)
	if err != nil {
		log.Printf("flow: %v; using built-in volleys", err)
		volleys = system.DefaultVolleys()
	}
	return Content{Tuning: tuning, Stages: stages, Volleys: volleys}, nil
}
