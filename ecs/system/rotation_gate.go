package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/quarterturn/prefabs"
)

// RotationGateContext is what a gate script sees as ctx.
type RotationGateContext struct {
	X, Y, Z  float64
	Yaw      float64
	Delta    float64
	Grounded bool
}

// RotationGate decides whether a quarter turn may begin.
type RotationGate interface {
	Allow(script string, ctx RotationGateContext) (bool, error)
}

const rotationGateDispatch = `
__allowed := allow(__ctx)
`

// ScriptGate runs allow(ctx) from a tengo script under prefabs/scripts.
// Compiled scripts are cached until Reload.
type ScriptGate struct {
	load  func(name string) ([]byte, error)
	cache map[string]*tengo.Compiled
}

func NewScriptGate() *ScriptGate {
	return &ScriptGate{
		load:  prefabs.LoadScript,
		cache: make(map[string]*tengo.Compiled),
	}
}

// NewScriptGateFromSource serves every script name from src.
func NewScriptGateFromSource(src string) *ScriptGate {
	g := NewScriptGate()
	g.load = func(string) ([]byte, error) { return []byte(src), nil }
	return g
}

// Reload drops compiled scripts so the next Allow reads them again.
func (g *ScriptGate) Reload() {
	if g == nil {
		return
	}
	g.cache = make(map[string]*tengo.Compiled)
}

func (g *ScriptGate) Allow(script string, ctx RotationGateContext) (bool, error) {
	if g == nil || script == "" {
		return true, nil
	}
	compiled, err := g.compiled(script)
	if err != nil {
		return true, err
	}
	if err := compiled.Set("__ctx", gateContextMap(ctx)); err != nil {
		return true, fmt.Errorf("rotation gate: %s: set ctx: %w", script, err)
	}
	if err := compiled.Run(); err != nil {
		return true, fmt.Errorf("rotation gate: %s: run: %w", script, err)
	}
	return compiled.Get("__allowed").Bool(), nil
}

func (g *ScriptGate) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := g.cache[name]; ok {
		return c, nil
	}

	src, err := g.load(name)
	if err != nil {
		return nil, fmt.Errorf("rotation gate: load %s: %w", name, err)
	}

	script := tengo.NewScript(append(src, []byte(rotationGateDispatch)...))
	if err := script.Add("__ctx", gateContextMap(RotationGateContext{})); err != nil {
		return nil, fmt.Errorf("rotation gate: %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rotation gate: compile %s: %w", name, err)
	}
	g.cache[name] = compiled
	return compiled, nil
}

func gateContextMap(ctx RotationGateContext) map[string]interface{} {
	return map[string]interface{}{
		"x":        ctx.X,
		"y":        ctx.Y,
		"z":        ctx.Z,
		"yaw":      ctx.Yaw,
		"delta":    ctx.Delta,
		"grounded": ctx.Grounded,
	}
}
