package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// tutorialRuntime hosts a compiled tengo script that defines
// onEnter/update/onExit(engine, state, current) and an optional
// initial_state global.
type tutorialRuntime struct {
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	current     string
	initialized bool
	pending     string
}

const tutorialDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

func compileTutorial(src []byte) (*tutorialRuntime, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("tutorial: empty script")
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + tutorialDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tutorial: compile: %w", err)
	}

	rt := &tutorialRuntime{
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		current:   "intro",
	}

	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", noop); err != nil {
		return nil, fmt.Errorf("tutorial: init: %w", err)
	}
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(compiled.Get("initial_state").String()); s != "" {
			rt.current = s
		}
	}
	return rt, nil
}

func (rt *tutorialRuntime) runPhase(phase string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", rt.current); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// step runs one tick: enter on first use, update, then at most one
// transition. It reports whether the state changed.
func (rt *tutorialRuntime) step(engine *tengo.ImmutableMap) (bool, error) {
	if !rt.initialized {
		if err := rt.runPhase("enter", engine); err != nil {
			return false, fmt.Errorf("onEnter %s: %w", rt.current, err)
		}
		rt.initialized = true
	}

	if err := rt.runPhase("update", engine); err != nil {
		return false, fmt.Errorf("update %s: %w", rt.current, err)
	}

	if rt.pending == "" || rt.pending == rt.current {
		rt.pending = ""
		return false, nil
	}

	if err := rt.runPhase("exit", engine); err != nil {
		return false, fmt.Errorf("onExit %s: %w", rt.current, err)
	}
	rt.current = rt.pending
	rt.pending = ""
	if err := rt.runPhase("enter", engine); err != nil {
		return true, fmt.Errorf("onEnter %s: %w", rt.current, err)
	}
	return true, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
