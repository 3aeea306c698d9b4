package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/stalker-eyes/app"
	"github.com/lixenwraith/stalker-eyes/audio"
	"github.com/lixenwraith/stalker-eyes/config"
	"github.com/lixenwraith/stalker-eyes/core"
	"github.com/lixenwraith/stalker-eyes/logging"
)

func main() {
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()

	logger.Info("starting", zap.String("version", Version), zap.String("color", cfg.Display.Color))

	opts := app.OptionsFromConfig(cfg)
	opts.Logger = logger.Logger
	opts.Player = openPlayer(cfg.Sound, logger.Logger)
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	screen, err := app.OpenScreen(cfg.Display.Color)
	if err != nil {
		opts.Player.Close()
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.New(screen, opts).Run(ctx)
}

// openPlayer returns a speaker-backed player, silent when disabled or unavailable
func openPlayer(cfg config.SoundConfig, logger *zap.Logger) audio.Player {
	if !cfg.Enabled {
		return audio.Silent{}
	}
	sm := audio.NewSoundManager(cfg.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return audio.Silent{}
	}
	return sm
}
