package simulation

import (
	"sort"

	"github.com/google/uuid"
)

// AggregatedStats summarizes a batch of game results.
type AggregatedStats struct {
	BatchID     string
	TotalGames  uint32
	PlayerCount uint32
	Wins        []uint32 // Indexed by player ID
	TeamWins    []uint32 // Indexed by team, empty for non-team games
	Draws       uint32
	Errors      uint32

	AvgTurns      float64
	MedianTurns   uint32
	AvgDurationNs uint64

	TotalDecisions  uint64
	TotalValidMoves uint64
	ForcedDecisions uint64
	TotalActions    uint64

	AvgLeadChanges     float64
	AvgDecisiveTurnPct float64
	AvgClosestMargin   float64
	AvgInteraction     float64
}

// aggregateResults folds game results into batch statistics. Errored
// games count toward Errors and are excluded from the averages.
func aggregateResults(results []GameResult, playerCount, teamCount int) AggregatedStats {
	stats := AggregatedStats{
		BatchID:     uuid.NewString(),
		TotalGames:  uint32(len(results)),
		PlayerCount: uint32(playerCount),
		Wins:        make([]uint32, playerCount),
	}
	if teamCount > 0 {
		stats.TeamWins = make([]uint32, teamCount)
	}

	turnCounts := make([]uint32, 0, len(results))
	var turnSum, durationSum uint64
	var leadChanges, decisivePct, closestMargin, interaction float64
	clean := 0

	for i := range results {
		r := &results[i]
		if r.Error != "" {
			stats.Errors++
			continue
		}

		// Exactly one of WinnerID / WinningTeam is set on a decided
		// game; both sentinels mean a draw.
		switch {
		case r.WinnerID >= 0 && int(r.WinnerID) < playerCount:
			stats.Wins[r.WinnerID]++
		case r.WinningTeam >= 0 && int(r.WinningTeam) < len(stats.TeamWins):
			stats.TeamWins[r.WinningTeam]++
		default:
			stats.Draws++
		}

		turnCounts = append(turnCounts, r.TurnCount)
		turnSum += uint64(r.TurnCount)
		durationSum += r.DurationNs
		leadChanges += float64(r.Metrics.LeadChanges)
		decisivePct += r.Metrics.DecisiveTurnPct
		closestMargin += r.Metrics.ClosestMargin
		interaction += r.Metrics.InteractionScore
		clean++

		stats.TotalDecisions += r.Metrics.TotalDecisions
		stats.TotalValidMoves += r.Metrics.TotalValidMoves
		stats.ForcedDecisions += r.Metrics.ForcedDecisions
		stats.TotalActions += r.Metrics.TotalActions
	}

	if clean > 0 {
		n := float64(clean)
		stats.AvgTurns = float64(turnSum) / n
		stats.AvgDurationNs = durationSum / uint64(clean)
		stats.AvgLeadChanges = leadChanges / n
		stats.AvgDecisiveTurnPct = decisivePct / n
		stats.AvgClosestMargin = closestMargin / n
		stats.AvgInteraction = interaction / n

		sort.Slice(turnCounts, func(i, j int) bool { return turnCounts[i] < turnCounts[j] })
		stats.MedianTurns = turnCounts[len(turnCounts)/2]
	}

	return stats
}
