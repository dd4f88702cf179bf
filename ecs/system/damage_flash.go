package system

import (
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

const (
	DefaultFlashDuration = 0.3
	DefaultFlashInterval = 0.05
)

// DamageFlashSystem starts a blink on everything damaged this tick and
// counts running blinks down.
type DamageFlashSystem struct {
	Duration float64
	Interval float64
}

func NewDamageFlashSystem() *DamageFlashSystem {
	return &DamageFlashSystem{Duration: DefaultFlashDuration, Interval: DefaultFlashInterval}
}

func (s *DamageFlashSystem) Update(w *ecs.World) {
	dt := w.RealDt()

	ecs.ForEach(w, component.DamageFlashComponent.Kind(), func(e ecs.Entity, f *component.DamageFlash) {
		if f.Interval <= 0 {
			f.Interval = DefaultFlashInterval
		}
		f.Timer += dt
		for f.Timer >= f.Interval {
			f.Timer -= f.Interval
			f.On = !f.On
		}
		f.Remaining -= dt
		if f.Remaining <= 0 {
			_ = ecs.Remove(w, e, component.DamageFlashComponent.Kind())
		}
	})

	for _, evt := range w.Events().Of(EventDamaged) {
		d, ok := evt.Data.(Damaged)
		if !ok || !ecs.IsAlive(w, d.Target) {
			continue
		}
		if f, ok := ecs.Get(w, d.Target, component.DamageFlashComponent.Kind()); ok {
			f.Remaining = s.Duration
			continue
		}
		_ = ecs.Add(w, d.Target, component.DamageFlashComponent.Kind(), &component.DamageFlash{
			Remaining: s.Duration,
			Interval:  s.Interval,
			On:        true,
		})
	}
}
