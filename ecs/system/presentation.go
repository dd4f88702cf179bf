package system

import "github.com/milk9111/goofballs/ecs"

// Presenter receives every event raised during a tick, after the rest of
// the simulation has run. Presenters must not mutate the world.
type Presenter interface {
	Present(evt ecs.Event)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(evt ecs.Event)

func (f PresenterFunc) Present(evt ecs.Event) { f(evt) }

// PresentationSystem forwards events to the injected presenters. It runs
// last so presenters see the whole tick.
type PresentationSystem struct {
	presenters []Presenter
}

func NewPresentationSystem(presenters ...Presenter) *PresentationSystem {
	s := &PresentationSystem{}
	for _, p := range presenters {
		s.Add(p)
	}
	return s
}

func (s *PresentationSystem) Add(p Presenter) {
	if p == nil {
		return
	}
	s.presenters = append(s.presenters, p)
}

func (s *PresentationSystem) Update(w *ecs.World) {
	events := w.Events().Events()
	if len(events) == 0 {
		return
	}
	for _, p := range s.presenters {
		for _, evt := range events {
			p.Present(evt)
		}
	}
}
