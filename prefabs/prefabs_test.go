package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	tests := []struct {
		file      string
		component string
		check     func(t *testing.T, raw any)
	}{
		{
			file:      "player.yaml",
			component: "player",
			check: func(t *testing.T, raw any) {
				spec, err := DecodeComponentSpec[PlayerComponentSpec](raw)
				if err != nil {
					t.Fatal(err)
				}
				if spec.DropHeight != 10 {
					t.Fatalf("expected drop height 10, got %v", spec.DropHeight)
				}
			},
		},
		{
			file:      "camera.yaml",
			component: "camera_rotation",
			check: func(t *testing.T, raw any) {
				spec, err := DecodeComponentSpec[CameraRotationComponentSpec](raw)
				if err != nil {
					t.Fatal(err)
				}
				want := CameraRotationComponentSpec{Mode: "lerp", Smoothing: 0.05, Speed: 360, Epsilon: 0.1, MaxTicks: 10000}
				if diff := cmp.Diff(want, spec); diff != "" {
					t.Fatalf("camera_rotation mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			file:      "camera.yaml",
			component: "depth_probe",
			check: func(t *testing.T, raw any) {
				spec, err := DecodeComponentSpec[DepthProbeComponentSpec](raw)
				if err != nil {
					t.Fatal(err)
				}
				want := DepthProbeComponentSpec{Drop: 120, Distance: 7000, AxisThreshold: 0.1, Policy: "skip_while_rotating"}
				if diff := cmp.Diff(want, spec); diff != "" {
					t.Fatalf("depth_probe mismatch (-want +got):\n%s", diff)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.file+"/"+tc.component, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			raw, ok := spec.Components[tc.component]
			if !ok {
				t.Fatalf("%s has no %q component", tc.file, tc.component)
			}
			tc.check(t, raw)
		})
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	spec, err := DecodeComponentSpec[PlayerComponentSpec](nil)
	if err != nil {
		t.Fatal(err)
	}
	if spec != (PlayerComponentSpec{}) {
		t.Fatalf("expected zero spec, got %+v", spec)
	}
}

func TestSpriteColor(t *testing.T) {
	spec, err := DecodeComponentSpec[SpriteComponentSpec](map[string]any{"width": 10, "color": "#102030FF"})
	if err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	if got := spec.Color.RGBA8(); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if spec.Width != 10 {
		t.Fatalf("expected width 10, got %v", spec.Width)
	}

	var unset YAMLColor
	if got := unset.RGBA8(); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("unset color should be white, got %v", got)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#FF8000", want: color.NRGBA{R: 255, G: 128, A: 255}},
		{in: "00ff0080", want: color.NRGBA{G: 255, A: 128}},
		{in: " #000000 ", want: color.NRGBA{A: 255}},
		{in: "#FFF", wantErr: true},
		{in: "#GG0000", wantErr: true},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "prefabs/player.yaml", "player.yaml"},
		{cleanPrefabPath, "camera.yaml", "camera.yaml"},
		{cleanScriptPath, "rotation_gate.tengo", "scripts/rotation_gate.tengo"},
		{cleanScriptPath, "prefabs/scripts/rotation_gate.tengo", "scripts/rotation_gate.tengo"},
		{cleanScriptPath, "scripts/rotation_gate.tengo", "scripts/rotation_gate.tengo"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	src, err := LoadScript("rotation_gate.tengo")
	if err != nil {
		t.Fatal(err)
	}
	if len(src) == 0 {
		t.Fatal("empty gate script")
	}
}

func TestWatcherReportsChangedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ignored := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(path, []byte("name: player\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("expected %s, got %s", path, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	for range w.Events {
	}
}

func TestWatchedFileKinds(t *testing.T) {
	if !IsScriptFile("prefabs/scripts/gate.tengo") || IsScriptFile("camera.yaml") {
		t.Fatal("IsScriptFile misclassified")
	}
	if !IsLevelFile("levels/courtyard.json") || IsLevelFile("player.yaml") {
		t.Fatal("IsLevelFile misclassified")
	}
	if isWatchedFile("readme.md") {
		t.Fatal("markdown should not be watched")
	}
}
