package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/deckforge/simulation"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := &simulation.AggregatedStats{
		BatchID:            "b7a9c2f0-1db4-4f6e-9a41-3d2b5c8e7f00",
		TotalGames:         1000,
		PlayerCount:        4,
		Wins:               []uint32{310, 240, 260, 150},
		TeamWins:           []uint32{570, 390},
		Draws:              30,
		Errors:             10,
		AvgTurns:           47.25,
		MedianTurns:        45,
		AvgDurationNs:      183000,
		TotalDecisions:     52100,
		TotalValidMoves:    198456,
		ForcedDecisions:    4021,
		TotalActions:       52090,
		AvgLeadChanges:     3.4,
		AvgDecisiveTurnPct: 0.62,
		AvgClosestMargin:   0.085,
		AvgInteraction:     0.41,
	}

	buf := EncodeStats(in)
	require.NotEmpty(t, buf)

	out := DecodeStats(buf)
	assert.Equal(t, in, out)
}

func TestEncodeDecode_NoTeams(t *testing.T) {
	in := &simulation.AggregatedStats{
		BatchID:     "solo-batch",
		TotalGames:  5,
		PlayerCount: 2,
		Wins:        []uint32{3, 2},
	}

	out := DecodeStats(EncodeStats(in))

	assert.Equal(t, in.Wins, out.Wins)
	assert.Nil(t, out.TeamWins)
	assert.Equal(t, in.BatchID, out.BatchID)
}

func TestEncodeDecode_ZeroValue(t *testing.T) {
	out := DecodeStats(EncodeStats(&simulation.AggregatedStats{}))

	assert.Zero(t, out.TotalGames)
	assert.Nil(t, out.Wins)
	assert.Empty(t, out.BatchID)
}

func TestEncode_BuffersAreIndependent(t *testing.T) {
	a := EncodeStats(&simulation.AggregatedStats{BatchID: "a", TotalGames: 1})
	b := EncodeStats(&simulation.AggregatedStats{BatchID: "b", TotalGames: 2})

	assert.Equal(t, uint32(1), DecodeStats(a).TotalGames)
	assert.Equal(t, uint32(2), DecodeStats(b).TotalGames)
}
