package ecs

import "github.com/milk9111/goofballs/ecs/component"

// System updates a world once per simulation tick.
type System interface {
	Update(w *World)
}

// World owns entities, component storage, the event queue and the tick clock.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	scheduler scheduler
	events    EventQueue

	dt        float64
	realDt    float64
	timeScale float64
	elapsed   float64
	ticks     uint64
}

// NewWorld creates an empty ECS world running at normal speed.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]store),
		timeScale: 1,
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.add(s)
}

// Tick advances the simulation by dt seconds of real time. Systems observe
// dt scaled by the current time scale through Dt and the unscaled value
// through RealDt. Events pushed during the tick are discarded at its end.
func (w *World) Tick(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.realDt = dt
	w.dt = dt * w.timeScale
	w.elapsed += w.dt
	w.ticks++

	w.scheduler.run(w)
	w.events.flush()
}

// SystemNames lists the registered systems in update order.
func (w *World) SystemNames() []string { return w.scheduler.names() }

// Dt is the scaled duration of the current tick in seconds.
func (w *World) Dt() float64 { return w.dt }

// RealDt is the unscaled duration of the current tick in seconds.
func (w *World) RealDt() float64 { return w.realDt }

// Elapsed is the scaled simulation time accumulated so far.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks counts completed calls to Tick.
func (w *World) Ticks() uint64 { return w.ticks }

// TimeScale returns the multiplier applied to dt.
func (w *World) TimeScale() float64 { return w.timeScale }

// SetTimeScale changes the dt multiplier starting with the next tick. Values
// below zero clamp to zero.
func (w *World) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	w.timeScale = scale
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) removeAll(e Entity) {
	for _, s := range w.stores {
		s.remove(e.id())
	}
}
