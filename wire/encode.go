package wire

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/deckforge/simulation"
)

// EncodeStats serializes aggregated batch statistics to a FlatBuffers
// record for the evolution host.
func EncodeStats(stats *simulation.AggregatedStats) []byte {
	builder := flatbuffers.NewBuilder(1024)
	builder.Finish(serializeStats(builder, stats))
	return builder.FinishedBytes()
}

func serializeStats(builder *flatbuffers.Builder, stats *simulation.AggregatedStats) flatbuffers.UOffsetT {
	// Vectors and strings must be built before the table starts.
	var winsOffset flatbuffers.UOffsetT
	if len(stats.Wins) > 0 {
		BatchResultStartWinsVector(builder, len(stats.Wins))
		for i := len(stats.Wins) - 1; i >= 0; i-- {
			builder.PrependUint32(stats.Wins[i])
		}
		winsOffset = builder.EndVector(len(stats.Wins))
	}

	var teamWinsOffset flatbuffers.UOffsetT
	if len(stats.TeamWins) > 0 {
		BatchResultStartTeamWinsVector(builder, len(stats.TeamWins))
		for i := len(stats.TeamWins) - 1; i >= 0; i-- {
			builder.PrependUint32(stats.TeamWins[i])
		}
		teamWinsOffset = builder.EndVector(len(stats.TeamWins))
	}

	batchIDOffset := builder.CreateString(stats.BatchID)

	BatchResultStart(builder)
	BatchResultAddTotalGames(builder, stats.TotalGames)
	BatchResultAddPlayerCount(builder, stats.PlayerCount)
	if winsOffset > 0 {
		BatchResultAddWins(builder, winsOffset)
	}
	if teamWinsOffset > 0 {
		BatchResultAddTeamWins(builder, teamWinsOffset)
	}
	BatchResultAddDraws(builder, stats.Draws)
	BatchResultAddErrors(builder, stats.Errors)
	BatchResultAddAvgTurns(builder, stats.AvgTurns)
	BatchResultAddMedianTurns(builder, stats.MedianTurns)
	BatchResultAddAvgDurationNs(builder, stats.AvgDurationNs)
	BatchResultAddTotalDecisions(builder, stats.TotalDecisions)
	BatchResultAddTotalValidMoves(builder, stats.TotalValidMoves)
	BatchResultAddForcedDecisions(builder, stats.ForcedDecisions)
	BatchResultAddTotalActions(builder, stats.TotalActions)
	BatchResultAddAvgLeadChanges(builder, stats.AvgLeadChanges)
	BatchResultAddAvgDecisiveTurnPct(builder, stats.AvgDecisiveTurnPct)
	BatchResultAddAvgClosestMargin(builder, stats.AvgClosestMargin)
	BatchResultAddAvgInteraction(builder, stats.AvgInteraction)
	BatchResultAddBatchId(builder, batchIDOffset)
	return BatchResultEnd(builder)
}

// DecodeStats reads a serialized batch result back into the aggregate
// form. Unknown fields appended by newer writers are skipped by the
// vtable, so records stay forward compatible.
func DecodeStats(buf []byte) *simulation.AggregatedStats {
	rec := GetRootAsBatchResult(buf, 0)

	stats := &simulation.AggregatedStats{
		BatchID:            string(rec.BatchId()),
		TotalGames:         rec.TotalGames(),
		PlayerCount:        rec.PlayerCount(),
		Draws:              rec.Draws(),
		Errors:             rec.Errors(),
		AvgTurns:           rec.AvgTurns(),
		MedianTurns:        rec.MedianTurns(),
		AvgDurationNs:      rec.AvgDurationNs(),
		TotalDecisions:     rec.TotalDecisions(),
		TotalValidMoves:    rec.TotalValidMoves(),
		ForcedDecisions:    rec.ForcedDecisions(),
		TotalActions:       rec.TotalActions(),
		AvgLeadChanges:     rec.AvgLeadChanges(),
		AvgDecisiveTurnPct: rec.AvgDecisiveTurnPct(),
		AvgClosestMargin:   rec.AvgClosestMargin(),
		AvgInteraction:     rec.AvgInteraction(),
	}

	if n := rec.WinsLength(); n > 0 {
		stats.Wins = make([]uint32, n)
		for i := 0; i < n; i++ {
			stats.Wins[i] = rec.Wins(i)
		}
	}
	if n := rec.TeamWinsLength(); n > 0 {
		stats.TeamWins = make([]uint32, n)
		for i := 0; i < n; i++ {
			stats.TeamWins[i] = rec.TeamWins(i)
		}
	}
	return stats
}
