package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/milk9111/goofballs/config"
	"github.com/milk9111/goofballs/logging"
)

func main() {
	configDir := flag.String("config", ".", "directory holding goofballs.yaml")
	duration := flag.Duration("duration", 5*time.Minute, "simulated time limit")
	matches := flag.Int("matches", 1, "matches to play back to back")
	history := flag.Int("history", 5, "recent results to print from the store")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.LogFormat = "json"
	cfg.HotReload = false
	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: os.Stderr})

	summary, err := simulate(cfg, log, *duration, *matches, *history)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	summary.Print(os.Stdout)
}
