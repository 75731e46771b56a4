package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/waterguard/ecs"
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/prefabs"
)

// World is the live actor set of one stage plus the handles the resolver
// and scheduler need to reach directly.
type World struct {
	Actors     *ecs.Arena[component.Actor]
	Events     *ecs.EventQueue[component.Event]
	Tuning     *prefabs.Tuning
	Difficulty prefabs.Difficulty
	Volleys    *Volleys

	Player ecs.Entity
	House  ecs.Entity
	Castle ecs.Entity
	Boss   ecs.Entity
}

func NewWorld(t *prefabs.Tuning, d prefabs.Difficulty, events *ecs.EventQueue[component.Event]) *World {
	if events == nil {
		events = &ecs.EventQueue[component.Event]{}
	}
	return &World{
		Actors:     &ecs.Arena[component.Actor]{},
		Events:     events,
		Tuning:     t,
		Difficulty: d,
		Volleys:    DefaultVolleys(),
	}
}

func (w *World) Spawn(a *component.Actor) ecs.Entity {
	if w == nil || a == nil {
		return 0
	}
	return w.Actors.Spawn(a)
}

// Actor resolves a handle; nil for stale or zero handles.
func (w *World) Actor(e ecs.Entity) *component.Actor {
	if w == nil || !e.Valid() {
		return nil
	}
	a, ok := w.Actors.Get(e)
	if !ok {
		return nil
	}
	return a
}

func (w *World) PlayerActor() *component.Actor { return w.Actor(w.Player) }
func (w *World) HouseActor() *component.Actor  { return w.Actor(w.House) }
func (w *World) CastleActor() *component.Actor { return w.Actor(w.Castle) }
func (w *World) BossActor() *component.Actor   { return w.Actor(w.Boss) }

// Each visits actors of kind in spawn order. KindNone visits everything.
func (w *World) Each(kind component.Kind, fn func(ecs.Entity, *component.Actor)) {
	if w == nil || fn == nil {
		return
	}
	w.Actors.Each(func(e ecs.Entity, a *component.Actor) {
		if kind == component.KindNone || a.Kind == kind {
			fn(e, a)
		}
	})
}

// CountActive returns the number of active actors of kind.
func (w *World) CountActive(kind component.Kind) int {
	n := 0
	w.Each(kind, func(_ ecs.Entity, a *component.Actor) {
		if a.Active {
			n++
		}
	})
	return n
}

// Sweep destroys inactive transient actors and returns how many were removed.
func (w *World) Sweep() int {
	if w == nil {
		return 0
	}
	return w.Actors.Sweep(func(a *component.Actor) bool {
		return a.Active || !a.Kind.Transient()
	})
}

func (w *World) Emit(cue component.Cue, pos cp.Vector) {
	if w == nil || w.Events == nil {
		return
	}
	w.Events.Push(component.CueAt(cue, pos))
}

func (w *World) GroundY() float64 {
	return w.Tuning.Playfield.GroundY()
}
