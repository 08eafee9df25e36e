package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bubbleworm/common"
	"github.com/milk9111/bubbleworm/config"
	"github.com/milk9111/bubbleworm/logging"
	"github.com/milk9111/bubbleworm/prefabs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "bubbleworm",
		Short:         "Steer a slime worm with the mouse and collect bubbles before they shrink away.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	if err := config.RegisterFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func run(cfg config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	prefabs.Dir = cfg.Prefabs

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("starting bubbleworm", zap.Uint64("seed", seed), zap.String("prefabs", cfg.Prefabs), zap.Bool("watch", cfg.Watch))

	game, err := NewGame(GameOptions{
		Debug:  cfg.Debug,
		Seed:   seed,
		Watch:  cfg.Watch,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowTitle("bubbleworm")
	ebiten.SetWindowSize(int(common.BaseWidth*cfg.Scale), int(common.BaseHeight*cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop stopped", zap.Error(err))
		return err
	}
	return nil
}
