package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/goofballs/arena"
	"github.com/milk9111/goofballs/config"
	"github.com/milk9111/goofballs/logging"
)

func main() {
	configDir := flag.String("config", ".", "directory holding goofballs.yaml")
	tutorial := flag.Bool("tutorial", false, "play the scripted tutorial before the first match")
	debug := flag.Bool("debug", false, "enable debug overlay and the objective damage key")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		logging.New(logging.Options{}).Fatal().Err(err).Msg("load config")
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: os.Stderr})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game := NewGame(*debug)
	rt, err := arena.NewRuntime(arena.RuntimeOptions{
		Config:   cfg,
		Log:      log,
		Tutorial: *tutorial,
		Fader:    game,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("start arena")
	}
	defer rt.Close()
	game.Attach(rt, cfg.TickDt(), logging.Component(log, "host"))

	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("Full Metal Goofballs")

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Error().Err(err).Msg("game loop")
	}
}
