// Command rotsim runs the game pipeline without a window and prints the
// camera yaw, player position and depth probe per tick.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"github.com/milk9111/quarterturn/ecs/entity"
	"github.com/milk9111/quarterturn/ecs/system"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	level  string
	ticks  int
	rotate []string
	at     int
	gap    int
	every  int
	debug  bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "rotsim",
		Short: "Simulate quarter turns headlessly",
		Long:  `Loads a level, spawns the player and camera, issues the requested turns and prints the state of every tick.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, opts)
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&opts.level, "level", "courtyard", "level name in levels/")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 300, "number of ticks to simulate")
	cmd.Flags().StringSliceVar(&opts.rotate, "rotate", []string{"left"}, "turns to issue in order (left, right)")
	cmd.Flags().IntVar(&opts.at, "at", 60, "tick of the first turn")
	cmd.Flags().IntVar(&opts.gap, "gap", 150, "ticks between turns")
	cmd.Flags().IntVar(&opts.every, "every", 1, "print every n ticks")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log systems at debug level to stderr")
	return cmd
}

// turnSchedule maps a tick to the input that requests a turn on it.
func turnSchedule(turns []string, at, gap int) (map[int]component.Input, error) {
	schedule := make(map[int]component.Input, len(turns))
	for i, turn := range turns {
		var in component.Input
		switch strings.ToLower(strings.TrimSpace(turn)) {
		case "left", "l":
			in.RotateLeft = true
		case "right", "r":
			in.RotateRight = true
		default:
			return nil, fmt.Errorf("rotsim: unknown turn %q", turn)
		}
		schedule[at+i*gap] = in
	}
	return schedule, nil
}

func run(out io.Writer, opts options) error {
	if opts.ticks <= 0 {
		return fmt.Errorf("rotsim: ticks must be positive")
	}
	if opts.every <= 0 {
		opts.every = 1
	}
	schedule, err := turnSchedule(opts.rotate, opts.at, opts.gap)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.debug {
		logger, err = common.NewLogger(true)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	w := ecs.NewWorld()
	scene, err := entity.LoadScene(w, opts.level)
	if err != nil {
		return fmt.Errorf("rotsim: %w", err)
	}

	tick := 0
	pipeline := system.NewPipeline(logger, system.NewInputSystemFrom(func() component.Input {
		return schedule[tick]
	}))

	fmt.Fprintf(out, "%5s %8s %-9s %9s %27s %s\n", "tick", "yaw", "state", "remaining", "position", "probe")
	for tick = 1; tick <= opts.ticks; tick++ {
		pipeline.Update(w)
		events := w.Events().Drain()
		if tick%opts.every != 0 && !hasRotationEdge(events) {
			continue
		}
		fmt.Fprintln(out, formatTick(w, scene, tick, events))
	}
	return nil
}

func hasRotationEdge(events []ecs.Event) bool {
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventRotationStarted, ecs.EventRotationFinished, ecs.EventRotationDenied:
			return true
		}
	}
	return false
}

func formatTick(w *ecs.World, scene *entity.Scene, tick int, events []ecs.Event) string {
	yaw := 0.0
	if ct, ok := ecs.Get(w, scene.Camera, component.TransformComponent.Kind()); ok {
		yaw = ct.Yaw
	}
	state := "idle"
	remaining := 0.0
	if rot, ok := ecs.Get(w, scene.Camera, component.CameraRotationComponent.Kind()); ok {
		state = rot.State.String()
		if rot.State == component.RotationRotating {
			remaining = common.DeltaDegrees(yaw, rot.TargetYaw)
		}
	}
	pos := "-"
	if pt, ok := ecs.Get(w, scene.Player, component.TransformComponent.Kind()); ok {
		pos = fmt.Sprintf("(%7.1f,%7.1f,%7.1f)", pt.Position.X(), pt.Position.Y(), pt.Position.Z())
	}
	probe := "miss"
	if p, ok := ecs.Get(w, scene.Camera, component.DepthProbeComponent.Kind()); ok && p.Hit && p.Axis >= 0 {
		probe = fmt.Sprintf("%s=%.1f", []string{"x", "y"}[p.Axis], p.Point[p.Axis])
	}

	line := fmt.Sprintf("%5d %8.3f %-9s %9.3f %27s %s", tick, yaw, state, remaining, pos, probe)
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventRotationStarted, ecs.EventRotationFinished, ecs.EventRotationDenied:
			line += fmt.Sprintf(" [%s %.0f]", evt.Kind, evt.Value)
		}
	}
	return line
}
