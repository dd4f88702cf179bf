package ecs

import "fmt"

// scheduler keeps the update order of a world's systems. Nil systems are
// dropped on registration.
type scheduler struct {
	systems []System
}

func (s *scheduler) add(sys System) {
	if sys == nil {
		return
	}
	s.systems = append(s.systems, sys)
}

func (s *scheduler) run(w *World) {
	for _, sys := range s.systems {
		sys.Update(w)
	}
}

// names lists the registered systems by type, e.g. "*system.CombatSystem".
func (s *scheduler) names() []string {
	out := make([]string, len(s.systems))
	for i, sys := range s.systems {
		out[i] = fmt.Sprintf("%T", sys)
	}
	return out
}
