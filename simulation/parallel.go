package simulation

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/signalnine/deckforge/engine"
)

// GameJob represents a single simulation job.
type GameJob struct {
	SimID int
	Seed  uint64
}

// RunBatch simulates numGames sequentially. Per-game seeds derive
// from the batch seed, so a batch replays exactly regardless of
// worker count.
func RunBatch(prog *engine.Program, strat Strategy, numGames int, seed uint64) AggregatedStats {
	rng := rand.New(rand.NewSource(int64(seed)))
	results := make([]GameResult, numGames)
	for i := 0; i < numGames; i++ {
		results[i] = RunSingleGame(prog, strat, rng.Uint64())
	}
	return aggregateResults(results, int(prog.Header.PlayerCount), len(prog.Teams))
}

// RunBatchParallel runs a batch across one worker per CPU.
func RunBatchParallel(prog *engine.Program, strat Strategy, numGames int, seed uint64) AggregatedStats {
	return RunBatchParallelN(prog, strat, numGames, seed, runtime.NumCPU())
}

// RunBatchParallelN runs a batch with an explicit worker count. Game
// seeds are generated up front from the batch seed, so results match
// the sequential runner game for game.
func RunBatchParallelN(prog *engine.Program, strat Strategy, numGames int, seed uint64, numWorkers int) AggregatedStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	logrus.WithFields(logrus.Fields{
		"games":   numGames,
		"workers": numWorkers,
		"players": prog.Header.PlayerCount,
	}).Debug("starting simulation batch")

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results, prog, strat)
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < numGames; i++ {
		jobs <- GameJob{SimID: i, Seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]GameResult, 0, numGames)
	for result := range results {
		collected = append(collected, result)
	}

	stats := aggregateResults(collected, int(prog.Header.PlayerCount), len(prog.Teams))
	logrus.WithFields(logrus.Fields{
		"batch_id": stats.BatchID,
		"draws":    stats.Draws,
		"errors":   stats.Errors,
	}).Debug("simulation batch complete")
	return stats
}

func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, prog *engine.Program, strat Strategy) {
	defer wg.Done()
	for job := range jobs {
		results <- RunSingleGame(prog, strat, job.Seed)
	}
}
