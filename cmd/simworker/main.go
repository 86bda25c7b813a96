// Package main provides the deckforge-simworker CLI for running
// simulation batches over compiled rule programs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/signalnine/deckforge/engine"
	"github.com/signalnine/deckforge/simulation"
	"github.com/signalnine/deckforge/wire"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// CLI flags
var (
	programPath string
	outputPath  string
	numGames    int
	seed        int64
	workers     int
	strategy    string
	iterations  int
	verbose     bool
	showVersion bool
)

func init() {
	// Load local overrides before flag defaults are read from the
	// environment; a missing .env is not an error.
	_ = godotenv.Load()

	flag.StringVar(&programPath, "program", "", "Path to compiled rule program")
	flag.StringVar(&outputPath, "out", "", "Write serialized batch result here (default: stdout summary only)")
	flag.IntVar(&numGames, "games", envInt("DECKFORGE_GAMES", 1000), "Number of games to simulate")
	flag.Int64Var(&seed, "seed", 0, "Batch random seed (0 = use current time)")
	flag.IntVar(&workers, "workers", 0, "Number of worker goroutines (0 = auto-detect CPU count)")
	flag.StringVar(&strategy, "strategy", envStr("DECKFORGE_STRATEGY", "random"), "Decision strategy (random, greedy, search)")
	flag.IntVar(&iterations, "iterations", 100, "Playout iterations per decision for the search strategy")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("deckforge-simworker %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if programPath == "" {
		logrus.Fatal("missing required -program flag")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strat, err := buildStrategy(strategy, iterations)
	if err != nil {
		logrus.WithError(err).Fatal("invalid strategy")
	}

	data, err := os.ReadFile(programPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read program")
	}
	prog, err := engine.ParseProgram(data)
	if err != nil {
		logrus.WithError(err).WithField("program", programPath).Fatal("failed to parse program")
	}

	logrus.WithFields(logrus.Fields{
		"program":  programPath,
		"players":  prog.Header.PlayerCount,
		"games":    numGames,
		"seed":     seed,
		"strategy": strategy,
	}).Info("running batch")

	start := time.Now()
	stats := simulation.RunBatchParallelN(prog, strat, numGames, uint64(seed), workers)
	elapsed := time.Since(start)

	logrus.WithFields(logrus.Fields{
		"batch_id":    stats.BatchID,
		"games":       stats.TotalGames,
		"draws":       stats.Draws,
		"errors":      stats.Errors,
		"avg_turns":   fmt.Sprintf("%.1f", stats.AvgTurns),
		"interaction": fmt.Sprintf("%.3f", stats.AvgInteraction),
		"elapsed":     elapsed.Round(time.Millisecond),
	}).Info("batch complete")

	for p, wins := range stats.Wins {
		logrus.WithFields(logrus.Fields{"player": p, "wins": wins}).Debug("player result")
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, wire.EncodeStats(&stats), 0o644); err != nil {
			logrus.WithError(err).Fatal("failed to write batch result")
		}
		logrus.WithField("out", outputPath).Info("wrote batch result")
	}
}

func buildStrategy(name string, iterations int) (simulation.Strategy, error) {
	switch name {
	case "random":
		return simulation.RandomStrategy{}, nil
	case "greedy":
		return simulation.GreedyStrategy{}, nil
	case "search":
		return simulation.SearchStrategy{Iterations: iterations}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
