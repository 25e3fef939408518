package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/Questionxble/2dgameproject-sub002/prefabs"
)

type aiScriptRuntime struct {
	scriptPath  string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initial     string
	initialized bool
	pending     string
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

func loadScriptRuntime(path string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ai: empty script path")
	}
	scriptBytes, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + aiLifecycleDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", path, err)
	}

	rt := &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
		initial:    "idle",
	}

	// Resolve optional initial state from script global `initial_state`.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", rt.initial, noop); err != nil {
		return nil, err
	}
	if compiled.IsDefined("initial_state") {
		s := strings.TrimSpace(compiled.Get("initial_state").String())
		if s != "" {
			rt.initial = s
		}
	}
	return rt, nil
}

// step runs one frame of the script for the dummy: the initial enter once,
// then update, then exit and enter when the script requested a transition.
func (rt *aiScriptRuntime) step(d *Dummy, engine *tengo.ImmutableMap) error {
	if d.State == "" {
		d.State = rt.initial
	}
	if !rt.initialized {
		if err := rt.runPhase("enter", d.State, engine); err != nil {
			return fmt.Errorf("onEnter: %w", err)
		}
		rt.initialized = true
	}
	if err := rt.runPhase("update", d.State, engine); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if rt.pending == "" || rt.pending == d.State {
		rt.pending = ""
		return nil
	}

	prev := d.State
	if err := rt.runPhase("exit", prev, engine); err != nil {
		return fmt.Errorf("onExit: %w", err)
	}
	d.State = rt.pending
	rt.pending = ""
	if err := rt.runPhase("enter", d.State, engine); err != nil {
		return fmt.Errorf("onEnter: %w", err)
	}
	return nil
}

func (rt *aiScriptRuntime) runPhase(phase, current string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
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
	if err := rt.compiled.Set("__current_state", current); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func stringArg(args []tengo.Object, i int) string {
	if len(args) <= i || args[i] == nil {
		return ""
	}
	switch v := args[i].(type) {
	case *tengo.String:
		return strings.TrimSpace(v.Value)
	default:
		return strings.TrimSpace(strings.Trim(v.String(), "\""))
	}
}

func floatArg(args []tengo.Object, i int) float64 {
	if len(args) <= i || args[i] == nil {
		return 0
	}
	switch v := args[i].(type) {
	case *tengo.Int:
		return float64(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		if v.IsFalsy() {
			return 0
		}
		return 1
	default:
		return 0
	}
}

// buildDummyEngine exposes the dummy's senses and actions to its script.
func buildDummyEngine(s *DummyAISystem, d *Dummy, rt *aiScriptRuntime, events map[string]bool) *tengo.ImmutableMap {
	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: f}
	}
	values := map[string]tengo.Object{
		"transition": fn("transition", func(args ...tengo.Object) (tengo.Object, error) {
			name := stringArg(args, 0)
			if name == "" {
				return tengo.FalseValue, nil
			}
			rt.pending = name
			return tengo.TrueValue, nil
		}),
		"event": fn("event", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(events[stringArg(args, 0)]), nil
		}),
		"move": fn("move", func(args ...tengo.Object) (tengo.Object, error) {
			s.move(d, floatArg(args, 0))
			return tengo.TrueValue, nil
		}),
		"jump": fn("jump", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(s.jump(d)), nil
		}),
		"attack": fn("attack", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(s.attack(d)), nil
		}),
		"ground_ahead": fn("ground_ahead", func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(s.groundAhead(d)), nil
		}),
		"target_dir": fn("target_dir", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Int{Value: int64(d.targetDir)}, nil
		}),
		"target_distance": fn("target_distance", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: d.targetDist}, nil
		}),
	}
	return &tengo.ImmutableMap{Value: values}
}
