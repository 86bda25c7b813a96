package simulation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/deckforge/engine"
)

// sheddingProgram builds a two-player race to empty a dealt hand.
func sheddingProgram() *engine.Program {
	return &engine.Program{
		Header: engine.ProgramHeader{PlayerCount: 2, MaxTurns: 100},
		Setup:  engine.SetupRules{CardsPerPlayer: 5, DeckCount: 1},
		Phases: []engine.Phase{
			&engine.PlayPhase{Target: engine.LocationDiscard, MinCards: 1, MaxCards: 1},
		},
		WinConditions: []engine.WinCondition{
			{WinType: engine.WinTypeEmptyHand},
		},
		Effects: map[uint8]engine.SpecialEffect{},
	}
}

// unwinnableProgram draws forever and can never satisfy its win
// condition, so every game runs into the turn limit.
func unwinnableProgram() *engine.Program {
	return &engine.Program{
		Header: engine.ProgramHeader{PlayerCount: 2, MaxTurns: 20},
		Setup:  engine.SetupRules{CardsPerPlayer: 1, DeckCount: 1},
		Phases: []engine.Phase{
			&engine.DrawPhase{Source: engine.LocationDeck, Count: 0, Mandatory: true},
		},
		WinConditions: []engine.WinCondition{
			{WinType: engine.WinTypeScore, Threshold: 1000, Comparison: engine.CompareAtOrAbove},
		},
		Effects: map[uint8]engine.SpecialEffect{},
	}
}

func TestRunSingleGame_CompletesSheddingGame(t *testing.T) {
	result := RunSingleGame(sheddingProgram(), &RandomStrategy{}, 42)

	require.Empty(t, result.Error)
	assert.GreaterOrEqual(t, result.WinnerID, int8(0))
	assert.Less(t, result.WinnerID, int8(2))
	// Both players shed five cards; the winner goes out on the ninth
	// or tenth play.
	assert.GreaterOrEqual(t, result.TurnCount, uint32(9))
	assert.EqualValues(t, result.Metrics.TotalDecisions, result.Metrics.TotalActions)
}

func TestRunSingleGame_SameSeedReplays(t *testing.T) {
	prog := sheddingProgram()
	a := RunSingleGame(prog, &RandomStrategy{}, 1234)
	b := RunSingleGame(prog, &RandomStrategy{}, 1234)

	assert.Equal(t, a.WinnerID, b.WinnerID)
	assert.Equal(t, a.TurnCount, b.TurnCount)
	assert.Equal(t, a.Metrics.TotalDecisions, b.Metrics.TotalDecisions)
	assert.Equal(t, a.Metrics.LeadChanges, b.Metrics.LeadChanges)
	assert.Equal(t, a.Metrics.InteractionScore, b.Metrics.InteractionScore)
}

func TestRunSingleGame_DifferentSeedsDiverge(t *testing.T) {
	// A plain shedding game always runs the same number of turns, so
	// seed effects only become visible through the shuffle: rank
	// effects route skips and reversals through whichever hands the
	// deal produced.
	prog := sheddingProgram()
	prog.Effects[7] = engine.SpecialEffect{TriggerRank: 7, EffectType: engine.EffectSkipNext, Magnitude: 1}
	prog.Effects[9] = engine.SpecialEffect{TriggerRank: 9, EffectType: engine.EffectReverse}

	base := RunSingleGame(prog, &RandomStrategy{}, 1)
	diverged := false
	for seed := uint64(2); seed < 12; seed++ {
		r := RunSingleGame(prog, &RandomStrategy{}, seed)
		if r.TurnCount != base.TurnCount || r.WinnerID != base.WinnerID ||
			r.Metrics.TotalValidMoves != base.Metrics.TotalValidMoves {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "ten seeds all replayed identically")
}

func TestSetupGame_ShuffleDependsOnSeed(t *testing.T) {
	prog := sheddingProgram()

	deal := func(seed uint64) []engine.Card {
		state := engine.GetState(2, seed)
		defer engine.PutState(state)
		setupGame(state, prog)
		hand := make([]engine.Card, len(state.Players[0].Hand))
		copy(hand, state.Players[0].Hand)
		return hand
	}

	base := deal(1)
	diverged := false
	for seed := uint64(2); seed < 12; seed++ {
		if !assert.ObjectsAreEqual(base, deal(seed)) {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "ten seeds dealt identical hands")
}

func TestRunSingleGame_TurnLimitIsADraw(t *testing.T) {
	result := RunSingleGame(unwinnableProgram(), &RandomStrategy{}, 7)

	require.Empty(t, result.Error)
	assert.Equal(t, engine.NoWinner, result.WinnerID)
	assert.Equal(t, uint32(20), result.TurnCount)
}

func TestRunSingleGame_StuckGameReportsError(t *testing.T) {
	// An optional draw from an always-empty pile yields no legal moves.
	prog := &engine.Program{
		Header: engine.ProgramHeader{PlayerCount: 2, MaxTurns: 50},
		Setup:  engine.SetupRules{CardsPerPlayer: 26, DeckCount: 1},
		Phases: []engine.Phase{
			&engine.DrawPhase{Source: engine.LocationDeck, Count: 1},
		},
		WinConditions: []engine.WinCondition{
			{WinType: engine.WinTypeScore, Threshold: 1000, Comparison: engine.CompareAtOrAbove},
		},
		Effects: map[uint8]engine.SpecialEffect{},
	}

	result := RunSingleGame(prog, &RandomStrategy{}, 7)
	assert.True(t, strings.Contains(result.Error, "no legal moves"),
		"error = %q", result.Error)
}

type panicStrategy struct{}

func (s *panicStrategy) SelectMove(state *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove {
	panic("strategy exploded")
}

func TestRunSingleGame_RecoversStrategyPanic(t *testing.T) {
	result := RunSingleGame(sheddingProgram(), &panicStrategy{}, 42)

	require.NotEmpty(t, result.Error)
	assert.Contains(t, result.Error, "panic")
	assert.Contains(t, result.Error, "strategy exploded")
}

func TestGreedyStrategy_PrefersWinningMove(t *testing.T) {
	prog := sheddingProgram()
	state := engine.GetState(2, 42)
	defer engine.PutState(state)

	state.Players[0].Hand = append(state.Players[0].Hand, engine.Card{Rank: 3})
	state.Players[1].Hand = append(state.Players[1].Hand,
		engine.Card{Rank: 4}, engine.Card{Rank: 5})

	moves := engine.GenerateLegalMoves(state, prog)
	require.Len(t, moves, 1)

	strat := &GreedyStrategy{}
	move := strat.SelectMove(state, prog, moves)
	assert.Equal(t, moves[0], move)

	require.NoError(t, engine.ApplyMove(state, prog, move))
	assert.True(t, engine.CheckWinConditions(state, prog))
	assert.Equal(t, int8(0), state.WinnerID)
}

func TestGreedyStrategy_BreaksTiesRandomly(t *testing.T) {
	prog := sheddingProgram()
	picks := make(map[int]int)

	// Two cards of the same rank evaluate identically, so the pick
	// must vary across game seeds.
	for seed := uint64(1); seed <= 50; seed++ {
		state := engine.GetState(2, seed)
		state.Players[0].Hand = append(state.Players[0].Hand,
			engine.Card{Rank: 6, Suit: 0}, engine.Card{Rank: 6, Suit: 1})
		state.Players[1].Hand = append(state.Players[1].Hand,
			engine.Card{Rank: 2}, engine.Card{Rank: 3, Suit: 1})

		moves := engine.GenerateLegalMoves(state, prog)
		require.Len(t, moves, 2)

		move := GreedyStrategy{}.SelectMove(state, prog, moves)
		picks[move.CardIndex]++
		engine.PutState(state)
	}

	assert.Len(t, picks, 2, "tied moves never alternated: %v", picks)
}

func TestSearchStrategy_PicksLegalMove(t *testing.T) {
	prog := sheddingProgram()
	state := engine.GetState(2, 42)
	defer engine.PutState(state)

	for i := 0; i < 3; i++ {
		state.Players[0].Hand = append(state.Players[0].Hand, engine.Card{Rank: uint8(i)})
		state.Players[1].Hand = append(state.Players[1].Hand, engine.Card{Rank: uint8(i), Suit: 1})
	}

	moves := engine.GenerateLegalMoves(state, prog)
	require.NotEmpty(t, moves)

	strat := &SearchStrategy{Iterations: 50}
	move := strat.SelectMove(state, prog, moves)
	assert.Contains(t, moves, move)
}
