package main

import (
	"log"

	"github.com/milk9111/waterguard/ecs/component"
)

// cueThrottle is the minimum gap between two plays of a cue that can fire
// every frame while a structure or the player is under attack.
var cueThrottle = map[component.Cue]float64{
	component.CueHouseHit:   0.5,
	component.CuePlayerHurt: 0.3,
}

// CuePlayer is the audio collaborator. It has no sound bank; it tracks the
// current music track and logs cues in debug mode.
type CuePlayer struct {
	debug    bool
	track    string
	cooldown map[component.Cue]float64
}

func NewCuePlayer(debug bool) *CuePlayer {
	return &CuePlayer{
		debug:    debug,
		cooldown: make(map[component.Cue]float64),
	}
}

// Play consumes one frame of events. It returns the cues that were played
// after throttling.
func (p *CuePlayer) Play(events []component.Event, dt float64) []component.Cue {
	if p == nil {
		return nil
	}
	for cue, left := range p.cooldown {
		if left -= dt; left <= 0 {
			delete(p.cooldown, cue)
		} else {
			p.cooldown[cue] = left
		}
	}

	var played []component.Cue
	for _, ev := range events {
		switch ev.Kind {
		case component.EventMusic:
			if ev.Track == p.track {
				continue
			}
			p.track = ev.Track
			if p.debug {
				log.Printf("audio: music %q", ev.Track)
			}
		case component.EventCue:
			if _, ok := p.cooldown[ev.Cue]; ok {
				continue
			}
			if gap, ok := cueThrottle[ev.Cue]; ok {
				p.cooldown[ev.Cue] = gap
			}
			played = append(played, ev.Cue)
			if p.debug {
				log.Printf("audio: %s at (%.0f, %.0f)", ev.Cue, ev.Pos.X, ev.Pos.Y)
			}
		}
	}
	return played
}

// Track is the music track currently selected.
func (p *CuePlayer) Track() string {
	if p == nil {
		return ""
	}
	return p.track
}
