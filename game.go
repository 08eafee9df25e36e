package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/common"
	"github.com/milk9111/bubbleworm/prefabs"
	"github.com/milk9111/bubbleworm/render"
	"github.com/milk9111/bubbleworm/sim"
	"go.uber.org/zap"
)

type GameOptions struct {
	Debug  bool
	Seed   uint64
	Watch  bool
	Logger *zap.Logger
}

type Game struct {
	ctrl       *sim.Controller
	scene      *render.Scene
	background color.Color
	watcher    *prefabs.Watcher
	logger     *zap.Logger

	debug   bool
	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Game{logger: logger, debug: opts.Debug, background: color.Black}

	sprites, err := prefabs.LoadSpriteSetSpec()
	if err != nil {
		return nil, err
	}
	scene, err := render.NewSceneFromSpec(sprites)
	if err != nil {
		return nil, err
	}
	g.scene = scene
	g.setBackground(sprites)
	for _, name := range []string{prefabs.PlayerSpecFile, prefabs.BubbleSpecFile, prefabs.SpriteSetSpecFile} {
		logger.Debug("prefab source", zap.String("file", name), zap.Bool("disk", prefabs.FromDisk(name)))
	}

	tuning, placement, err := loadTuning()
	if err != nil {
		return nil, err
	}

	ctrl, err := sim.New(sim.Options{
		Tuning:    tuning,
		Visuals:   scene,
		Placement: placement,
		Rand:      rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d)),
		Logger:    logger.Named("sim"),
	})
	if err != nil {
		return nil, err
	}
	g.ctrl = ctrl

	if opts.Watch {
		w, err := prefabs.Watch()
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// loadTuning reads player.yaml and bubble.yaml, and compiles the bubble
// placement script when one is named.
func loadTuning() (sim.Tuning, sim.Placement, error) {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return sim.Tuning{}, nil, err
	}
	bubble, err := prefabs.LoadBubbleSpec()
	if err != nil {
		return sim.Tuning{}, nil, err
	}
	tuning, err := sim.TuningFromSpecs(player, bubble)
	if err != nil {
		return sim.Tuning{}, nil, err
	}

	if bubble.PlacementScript == "" {
		return tuning, sim.RectPlacement{Field: tuning.Bubble.Field}, nil
	}
	src, err := prefabs.LoadScript(bubble.PlacementScript)
	if err != nil {
		return sim.Tuning{}, nil, fmt.Errorf("prefabs: load script %s: %w", bubble.PlacementScript, err)
	}
	placement, err := sim.NewScriptPlacement(bubble.PlacementScript, src, tuning.Bubble.Field)
	if err != nil {
		return sim.Tuning{}, nil, err
	}
	return tuning, placement, nil
}

func (g *Game) setBackground(sprites *prefabs.SpriteSetSpec) {
	if sprites != nil && sprites.Background != nil && sprites.Background.Color != nil {
		g.background = sprites.Background.Color
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.quit {
		return ebiten.Termination
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.ctrl.OnMouseDown(cp.Vector{X: float64(x), Y: float64(y)})
	}

	g.ctrl.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}

	for {
		select {
		case change := <-g.watcher.Events:
			g.reload(change)
		case err := <-g.watcher.Errors:
			g.logger.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	if change.Kind == prefabs.ChangeSpec && change.Name() == prefabs.SpriteSetSpecFile {
		g.reloadSprites()
		return
	}

	tuning, placement, err := loadTuning()
	if err != nil {
		g.logger.Warn("prefab reload failed, keeping previous tuning", zap.String("file", change.Name()), zap.Error(err))
		return
	}
	if err := g.ctrl.SetTuning(tuning); err != nil {
		g.logger.Warn("prefab reload rejected", zap.String("file", change.Name()), zap.Error(err))
		return
	}
	g.ctrl.SetPlacement(placement)

	fields := []zap.Field{zap.String("file", change.Name())}
	if change.Kind == prefabs.ChangeSpec {
		if modified, ok := prefabs.ModTime(change.Name()); ok {
			fields = append(fields, zap.Time("modified", modified))
		}
	}
	g.logger.Info("prefabs reloaded", fields...)
}

func (g *Game) reloadSprites() {
	sprites, err := prefabs.LoadSpriteSetSpec()
	if err != nil {
		g.logger.Warn("sprite reload failed", zap.Error(err))
		return
	}
	for _, c := range sprites.Sprites {
		if err := g.scene.RegisterCircle(c); err != nil {
			g.logger.Warn("sprite reload failed", zap.String("sprite", c.Name), zap.Error(err))
			return
		}
	}
	g.setBackground(sprites)
	g.logger.Info("sprites reloaded", zap.Int("count", len(sprites.Sprites)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.scene.Draw(screen)

	if g.debug {
		next, _ := g.ctrl.NextSpawnIn()
		speed := 0.0
		if chain := g.ctrl.Chain(); chain != nil {
			speed = chain.Speed
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Bubbles: %d    Speed: %.1f    Next spawn: %.2fs\nFPS: %.2f",
			len(g.ctrl.Bubbles()), speed, next, ebiten.ActualFPS()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
