package system

import (
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// tutorialDoneState ends the tutorial when a script transitions to it.
const tutorialDoneState = "done"

// ClipLengths resolves the playback length of a named voice clip.
type ClipLengths interface {
	Length(name string) (time.Duration, bool)
}

// TutorialSystem runs a scripted tutorial sequence. Scripts wait on real
// time and simulation events, show dialogue, lock player input and decide
// when the countdown intro is over.
type TutorialSystem struct {
	log   zerolog.Logger
	clips ClipLengths
	rt    *tutorialRuntime

	elapsed   float64
	progress  int
	introDone bool
	finished  bool
	failed    bool
}

// NewTutorialSystem compiles src up front so script errors surface at load.
func NewTutorialSystem(log zerolog.Logger, src []byte, clips ClipLengths) (*TutorialSystem, error) {
	rt, err := compileTutorial(src)
	if err != nil {
		return nil, err
	}
	return &TutorialSystem{log: log, clips: clips, rt: rt}, nil
}

// IntroComplete lets the encounter countdown finish once the script calls
// finish_intro or the tutorial is over.
func (s *TutorialSystem) IntroComplete() bool {
	return s == nil || s.introDone || s.finished || s.failed
}

func (s *TutorialSystem) Finished() bool { return s.finished }

func (s *TutorialSystem) Progress() int { return s.progress }

func (s *TutorialSystem) State() string { return s.rt.current }

func (s *TutorialSystem) Update(w *ecs.World) {
	if s == nil || s.finished || s.failed {
		return
	}
	s.elapsed += w.RealDt()

	engine := s.buildEngine(w, tutorialEvents(w))
	changed, err := s.rt.step(engine)
	if err != nil {
		s.failed = true
		lockPlayers(w, component.LockTutorial, false)
		s.log.Error().Err(err).Msg("tutorial script failed, skipping tutorial")
		return
	}
	if !changed {
		return
	}
	s.elapsed = 0
	s.log.Debug().Str("state", s.rt.current).Msg("tutorial state")
	if s.rt.current == tutorialDoneState {
		s.finished = true
		lockPlayers(w, component.LockTutorial, false)
		push(w, EventTutorialProgress, TutorialProgress{Step: s.progress, State: tutorialDoneState})
	}
}

// tutorialEvents names what happened this tick in terms scripts can test
// with event(name): raw event types plus player-centric aliases.
func tutorialEvents(w *ecs.World) map[string]bool {
	set := map[string]bool{}
	for _, evt := range w.Events().Events() {
		set[string(evt.Type)] = true
		switch data := evt.Data.(type) {
		case LungeStarted:
			if ecs.Has(w, data.Entity, component.PlayerTagComponent.Kind()) {
				set["player_lunged"] = true
			}
		case CombatantDied:
			if data.Player {
				set["player_died"] = true
			} else if data.Team == component.TeamEnemy {
				set["enemy_killed"] = true
			}
		case Damaged:
			if data.Objective && data.Team == component.TeamEnemy {
				set["enemy_objective_hit"] = true
			}
			if data.Objective && data.Team == component.TeamPlayer {
				set["own_objective_hit"] = true
			}
		case PhaseChanged:
			if data.To == PhaseActive {
				set["encounter_started"] = true
			}
		}
	}
	return set
}

func (s *TutorialSystem) buildEngine(w *ecs.World, events map[string]bool) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		s.rt.pending = name
		return tengo.TrueValue, nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.elapsed}, nil
	}}

	values["lock_input"] = &tengo.UserFunction{Name: "lock_input", Value: func(args ...tengo.Object) (tengo.Object, error) {
		lockPlayers(w, component.LockTutorial, true)
		return tengo.TrueValue, nil
	}}

	values["unlock_input"] = &tengo.UserFunction{Name: "unlock_input", Value: func(args ...tengo.Object) (tengo.Object, error) {
		lockPlayers(w, component.LockTutorial, false)
		return tengo.TrueValue, nil
	}}

	values["finish_intro"] = &tengo.UserFunction{Name: "finish_intro", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.introDone = true
		return tengo.TrueValue, nil
	}}

	values["clip_length"] = &tengo.UserFunction{Name: "clip_length", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: s.clipLength(objectAsString(args[0]), "")}, nil
	}}

	values["say"] = &tengo.UserFunction{Name: "say", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Float{Value: 0}, nil
		}
		text := objectAsString(args[0])
		clip := ""
		if len(args) > 1 {
			clip = objectAsString(args[1])
		}
		d := s.clipLength(clip, text)
		push(w, EventDialogue, Dialogue{Text: text, Clip: clip, Duration: d})
		return &tengo.Float{Value: d}, nil
	}}

	values["progress"] = &tengo.UserFunction{Name: "progress", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{Value: int64(s.progress)}, nil
		}
		if n, ok := objectAsFloat(args[0]); ok {
			s.progress = int(n)
			push(w, EventTutorialProgress, TutorialProgress{Step: s.progress, State: s.rt.current})
		}
		return &tengo.Int{Value: int64(s.progress)}, nil
	}}

	values["event"] = &tengo.UserFunction{Name: "event", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(events[strings.TrimSpace(objectAsString(args[0]))]), nil
	}}

	values["alive"] = &tengo.UserFunction{Name: "alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.Int{Value: 0}, nil
		}
		team, err := component.ParseTeam(objectAsString(args[0]))
		if err != nil {
			return &tengo.Int{Value: 0}, nil
		}
		count := 0
		for _, c := range collectCandidates(w)[team] {
			if !c.Dead {
				count++
			}
		}
		return &tengo.Int{Value: int64(count)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		s.log.Info().Str("state", s.rt.current).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// clipLength falls back to a reading-speed estimate when the clip is unknown.
func (s *TutorialSystem) clipLength(clip, text string) float64 {
	if s.clips != nil && clip != "" {
		if d, ok := s.clips.Length(clip); ok {
			return d.Seconds()
		}
	}
	return 1.5 + 0.05*float64(len(text))
}
