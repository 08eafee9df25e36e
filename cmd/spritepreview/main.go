// spritepreview shows every sprite in sprites.yaml spinning through a bubble
// shrink cycle, reloading when the file changes.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bubbleworm/ecs/component"
	"github.com/milk9111/bubbleworm/logging"
	"github.com/milk9111/bubbleworm/prefabs"
	"github.com/milk9111/bubbleworm/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	previewSize = 512
	cellSize    = 96
	spinPerSec  = 45.0
)

type previewGame struct {
	scene      *render.Scene
	background color.Color
	handles    []component.VisualHandle
	shrink     component.Shrink
	angle      float64
	watcher    *prefabs.Watcher
	logger     *zap.Logger
}

func newPreviewGame(logger *zap.Logger, watch bool) (*previewGame, error) {
	g := &previewGame{
		logger: logger,
		shrink: component.Shrink{Duration: 8, From: 1, To: 0.2},
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	if watch {
		w, err := prefabs.Watch()
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *previewGame) load() error {
	spec, err := prefabs.LoadSpriteSetSpec()
	if err != nil {
		return err
	}
	scene, err := render.NewSceneFromSpec(spec)
	if err != nil {
		return err
	}

	handles := make([]component.VisualHandle, 0, len(spec.Sprites))
	cols := previewSize / cellSize
	for i, c := range spec.Sprites {
		pos := cp.Vector{
			X: float64(i%cols)*cellSize + cellSize/2,
			Y: float64(i/cols)*cellSize + cellSize/2,
		}
		h, err := scene.NewVisual(c.Name, 0, pos, 0)
		if err != nil {
			return err
		}
		handles = append(handles, h)
	}

	for _, h := range g.handles {
		h.Release()
	}
	g.scene = scene
	g.handles = handles
	g.background = color.Black
	if spec.Background != nil && spec.Background.Color != nil {
		g.background = spec.Background.Color
	}
	g.logger.Info("sprites loaded", zap.Int("count", len(handles)))
	return nil
}

func (g *previewGame) Update() error {
	if g.watcher != nil {
		select {
		case change := <-g.watcher.Events:
			if change.Name() == prefabs.SpriteSetSpecFile {
				if err := g.load(); err != nil {
					g.logger.Warn("reload failed", zap.Error(err))
				}
			}
		default:
		}
	}

	dt := 1 / float64(ebiten.TPS())
	g.angle += spinPerSec * dt
	g.shrink.Elapsed += dt
	if g.shrink.Done() {
		g.shrink.Elapsed = 0
	}
	for _, h := range g.handles {
		h.SetAngle(g.angle)
		h.SetScale(g.shrink.Value())
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.scene.Draw(screen)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	var (
		dir   string
		watch bool
	)
	cmd := &cobra.Command{
		Use:          "spritepreview",
		Short:        "Preview the procedural sprites in sprites.yaml",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.DefaultConfig())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			prefabs.Dir = dir
			g, err := newPreviewGame(logger, watch)
			if err != nil {
				return err
			}
			if g.watcher != nil {
				defer g.watcher.Close()
			}

			ebiten.SetWindowSize(previewSize, previewSize)
			ebiten.SetWindowTitle("bubbleworm sprites")
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVar(&dir, "prefabs", "prefabs", "prefab directory")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload sprites.yaml on change")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
