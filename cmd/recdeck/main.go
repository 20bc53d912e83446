// Recdeck presents the recommender-systems slide deck in a window, or renders
// it headless to SVG snapshots for review.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/phanxgames/recdeck"
	"github.com/phanxgames/recdeck/deck"
	"github.com/phanxgames/recdeck/ecs"
	"github.com/phanxgames/recdeck/internal/config"
	"github.com/phanxgames/recdeck/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config")
	snapshotDir := flag.String("snapshot", "", "render every slide to SVG in this directory and exit")
	scriptPath := flag.String("script", "", "run a JSON walkthrough script headless and exit")
	outDir := flag.String("out", "snapshots", "snapshot directory used by -script")
	maxFrames := flag.Int("frames", 36000, "frame limit for -script")
	debug := flag.Bool("debug", false, "log per-frame timings")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := logging.Logger()
		boot.Fatal().Err(err).Str("path", *configPath).Msg("load config")
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	logging.Init(cfg.Logging)
	log := logging.WithComponent("main")

	d := deck.New(cfg, ecs.NewBus(), logging.WithComponent("deck"))
	d.Scene.SetDebugMode(*debug)
	if cfg.Font.Path != "" {
		fonts, err := recdeck.LoadFontsFile(cfg.Font.Path)
		if err != nil {
			log.Warn().Err(err).Msg("falling back to the built-in font")
			fonts = recdeck.DefaultFonts()
		}
		d.Scene.SetFonts(fonts)
	}

	switch {
	case *snapshotDir != "":
		if err := d.SnapshotAll(*snapshotDir, 120); err != nil {
			log.Fatal().Err(err).Msg("snapshot")
		}
		log.Info().Str("dir", *snapshotDir).Msg("snapshots written")
		return
	case *scriptPath != "":
		script, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read script")
		}
		if err := d.RunScript(script, *outDir, *maxFrames); err != nil {
			log.Fatal().Err(err).Str("script", *scriptPath).Msg("run script")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		if err := d.Watch(ctx, *configPath); err != nil {
			log.Warn().Err(err).Msg("config reload disabled")
		}
	}()

	err = recdeck.Run(d.Scene, recdeck.RunConfig{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		TPS:     cfg.Window.TPS,
		ShowFPS: cfg.Window.ShowFPS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
