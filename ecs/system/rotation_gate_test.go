package system

import (
	"errors"
	"testing"
)

func TestScriptGateAllow(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ctx  RotationGateContext
		want bool
	}{
		{"always", `allow := func(ctx) { return true }`, RotationGateContext{}, true},
		{"never", `allow := func(ctx) { return false }`, RotationGateContext{}, false},
		{"grounded_only_denies", `allow := func(ctx) { return ctx.grounded }`, RotationGateContext{Grounded: false}, false},
		{"grounded_only_allows", `allow := func(ctx) { return ctx.grounded }`, RotationGateContext{Grounded: true}, true},
		{"left_only", `allow := func(ctx) { return ctx.delta > 0 }`, RotationGateContext{Delta: -90}, false},
		{"uses_stdlib", `math := import("math")
allow := func(ctx) { return math.abs(ctx.yaw - 90) < 1 }`, RotationGateContext{Yaw: 90}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewScriptGateFromSource(c.src).Allow("gate.tengo", c.ctx)
			if err != nil {
				t.Fatalf("allow: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestScriptGateErrorsAllow(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `allow := func(ctx) { return `},
		{"missing_allow", `x := 1`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewScriptGateFromSource(c.src).Allow("broken.tengo", RotationGateContext{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !got {
				t.Fatal("a failing gate should allow the turn")
			}
		})
	}
}

func TestScriptGateCachesUntilReload(t *testing.T) {
	loads := 0
	g := NewScriptGate()
	g.load = func(string) ([]byte, error) {
		loads++
		return []byte(`allow := func(ctx) { return true }`), nil
	}

	for i := 0; i < 3; i++ {
		if _, err := g.Allow("gate.tengo", RotationGateContext{}); err != nil {
			t.Fatal(err)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
	g.Reload()
	if _, err := g.Allow("gate.tengo", RotationGateContext{}); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Fatalf("expected reload to read again, got %d loads", loads)
	}
}

func TestScriptGateLoadError(t *testing.T) {
	g := NewScriptGate()
	missing := errors.New("missing")
	g.load = func(string) ([]byte, error) { return nil, missing }
	ok, err := g.Allow("gone.tengo", RotationGateContext{})
	if !errors.Is(err, missing) || !ok {
		t.Fatalf("expected allow with wrapped error, got %v %v", ok, err)
	}
}

func TestEmbeddedRotationGate(t *testing.T) {
	g := NewScriptGate()
	cases := []struct {
		z    float64
		want bool
	}{
		{40, true},
		{-800, false},
	}
	for _, c := range cases {
		got, err := g.Allow("rotation_gate.tengo", RotationGateContext{Z: c.z})
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if got != c.want {
			t.Fatalf("z=%v: got %v, want %v", c.z, got, c.want)
		}
	}
}
