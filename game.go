package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"github.com/milk9111/quarterturn/ecs/entity"
	"github.com/milk9111/quarterturn/ecs/system"
	"github.com/milk9111/quarterturn/prefabs"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

const defaultLevel = "courtyard"

type Game struct {
	logger *zap.Logger

	world    *ecs.World
	scene    *entity.Scene
	pipeline *system.Pipeline
	render   *system.RenderSystem

	levelName string
	watcher   *prefabs.Watcher

	debug        bool
	paused       bool
	pauseUI      *ebitenui.UI
	messages     messageLog
	face         ebtext.Face
	clipboardOK  bool
	quitRequested bool
}

func NewGame(levelName string, debug bool, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if levelName == "" {
		levelName = defaultLevel
	}

	world := ecs.NewWorld()
	scene, err := entity.LoadScene(world, levelName)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		logger:    logger,
		world:     world,
		scene:     scene,
		pipeline:  system.NewPipeline(logger, system.NewInputSystem()),
		render:    system.NewRenderSystem(),
		levelName: levelName,
		debug:     debug,
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
	}
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	if dirs := watchDirs("prefabs", "prefabs/scripts", "levels"); len(dirs) > 0 {
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = watcher
			logger.Debug("watching for changes", zap.Strings("dirs", dirs))
		}
	}

	logger.Info("game started",
		zap.String("level", levelName),
		zap.Int("blocks", len(scene.Level.Blocks)),
		zap.Stringer("player", scene.Player),
	)
	return g, nil
}

func (g *Game) Update() error {
	if g.quitRequested {
		g.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copyState()
	}

	g.handleFileChanges()

	g.pipeline.Update(g.world)

	g.messages.Tick()
	for _, evt := range g.world.Events().Drain() {
		logEvent(g.logger, evt)
		if text, ok := eventMessage(evt); ok {
			g.messages.Push(text)
		}
	}
	return nil
}

// watchDirs keeps the directories that exist next to the binary; without
// them there is nothing on disk to override the embedded files.
func watchDirs(dirs ...string) []string {
	var out []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// handleFileChanges applies whatever the watcher reported since last frame.
func (g *Game) handleFileChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case prefabs.IsScriptFile(path):
		g.pipeline.Gate.Reload()
		g.logger.Info("scripts reloaded", zap.String("path", path))
	case prefabs.IsLevelFile(path):
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if name != g.levelName {
			return
		}
		if err := g.scene.ReloadLevel(g.world, g.levelName); err != nil {
			g.logger.Error("level reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		g.pipeline.Physics.Invalidate()
		g.messages.Push("Level reloaded")
		g.logger.Info("level reloaded", zap.String("level", g.levelName))
	default:
		if err := g.reloadTuning(); err != nil {
			g.logger.Error("prefab reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		g.messages.Push("Tuning reloaded")
		g.logger.Info("prefabs reloaded", zap.String("path", path))
	}
}

// reloadTuning rebuilds the player and camera from their prefabs in place of
// the current ones, keeping the player where it stands.
func (g *Game) reloadTuning() error {
	pt, ok := ecs.Get(g.world, g.scene.Player, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("reload: player has no transform")
	}
	if rot, ok := ecs.Get(g.world, g.scene.Camera, component.CameraRotationComponent.Kind()); ok && rot.State == component.RotationRotating {
		return fmt.Errorf("reload: rotation in progress")
	}
	here := component.Spawn{X: pt.Position.X(), Y: pt.Position.Y(), Z: pt.Position.Z(), Yaw: pt.Yaw}

	player, err := entity.NewPlayerAt(g.world, here)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	camera, err := entity.NewCameraFor(g.world, player)
	if err != nil {
		ecs.DestroyEntity(g.world, player)
		return fmt.Errorf("reload: %w", err)
	}
	if sp, ok := ecs.Get(g.world, player, component.SpawnComponent.Kind()); ok {
		*sp = g.scene.Spawn
	}

	ecs.DestroyEntity(g.world, g.scene.Player)
	ecs.DestroyEntity(g.world, g.scene.Camera)
	g.scene.Player = player
	g.scene.Camera = camera
	return nil
}

// stateDump is what F9 puts on the clipboard.
type stateDump struct {
	Level    string     `yaml:"level"`
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
	Rotation string     `yaml:"rotation"`
	Probe    struct {
		Hit   bool       `yaml:"hit"`
		Axis  int        `yaml:"axis"`
		Point [3]float64 `yaml:"point"`
	} `yaml:"probe"`
}

func (g *Game) snapshot() stateDump {
	var dump stateDump
	dump.Level = g.levelName
	if pt, ok := ecs.Get(g.world, g.scene.Player, component.TransformComponent.Kind()); ok {
		dump.Position = [3]float64(pt.Position)
		dump.Yaw = pt.Yaw
	}
	if rot, ok := ecs.Get(g.world, g.scene.Camera, component.CameraRotationComponent.Kind()); ok {
		dump.Rotation = rot.State.String()
	}
	if probe, ok := ecs.Get(g.world, g.scene.Camera, component.DepthProbeComponent.Kind()); ok {
		dump.Probe.Hit = probe.Hit
		dump.Probe.Axis = probe.Axis
		dump.Probe.Point = [3]float64(probe.Point)
	}
	return dump
}

func (g *Game) copyState() {
	out, err := yaml.Marshal(g.snapshot())
	if err != nil {
		g.logger.Error("state dump failed", zap.Error(err))
		return
	}
	if !g.clipboardOK {
		g.logger.Info("state dump", zap.ByteString("yaml", out))
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.messages.Push("State copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Lightsteelblue)

	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.pipeline.Physics, g.world, screen)
		system.DrawProbeDebug(g.world, screen)
		system.DrawPlayerStateDebug(g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 10, common.BaseHeight-20)
	}

	g.drawMessages(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawMessages(screen *ebiten.Image) {
	lines := g.messages.Lines()
	const lineHeight = 18
	y := float64(common.BaseHeight - 40 - lineHeight*len(lines))
	for _, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(common.BaseWidth-260, y)
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, line, g.face, op)
		y += lineHeight
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("watcher close", zap.Error(err))
		}
		g.watcher = nil
	}
}
