package engine

import (
	"math"
	"testing"
)

func TestInteractionTracker_DisruptionFromForcedDiscard(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[0].Hand = append(state.Players[0].Hand, Card{Rank: 7, Suit: 0})
	state.Players[1].Hand = append(state.Players[1].Hand,
		Card{Rank: 2, Suit: 1}, Card{Rank: 3, Suit: 1}, Card{Rank: 4, Suit: 1})

	prog := progWithPhases(2, &PlayPhase{Target: LocationDiscard, MinCards: 1, MaxCards: 1})
	prog.Effects[7] = SpecialEffect{
		TriggerRank: 7, EffectType: EffectForceDiscard,
		Target: TargetNextPlayer, Magnitude: 2,
	}

	it := NewInteractionTracker()
	moves := GenerateLegalMoves(state, prog)

	it.BeforeMove(state, prog, moves[0])
	if err := ApplyMove(state, prog, moves[0]); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	it.AfterMove(state, prog)

	if it.MoveDisruptionEvents != 1 {
		t.Errorf("disruption events = %d, want 1", it.MoveDisruptionEvents)
	}
	// 3 options shrank to 1: a 66% loss crosses the forced-response bar.
	if it.ForcedResponseEvents != 1 {
		t.Errorf("forced response events = %d, want 1", it.ForcedResponseEvents)
	}
	if it.OpponentTurnCount != 1 || it.TotalActions != 1 {
		t.Errorf("counters = %d/%d, want 1/1", it.OpponentTurnCount, it.TotalActions)
	}
}

func TestInteractionTracker_NoDisruptionWithoutEffect(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[0].Hand = append(state.Players[0].Hand, Card{Rank: 5, Suit: 0})
	state.Players[1].Hand = append(state.Players[1].Hand, Card{Rank: 2, Suit: 1})
	state.Players[1].Hand = append(state.Players[1].Hand, Card{Rank: 3, Suit: 1})

	// Discarding from hand leaves the next seat's options alone, so
	// the probe must come back unchanged.
	prog := progWithPhases(2, &DiscardPhase{Target: LocationDiscard, Count: 1})

	it := NewInteractionTracker()
	moves := GenerateLegalMoves(state, prog)

	it.BeforeMove(state, prog, moves[0])
	if err := ApplyMove(state, prog, moves[0]); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	it.AfterMove(state, prog)

	if it.MoveDisruptionEvents != 0 {
		t.Errorf("disruption events = %d, want 0", it.MoveDisruptionEvents)
	}
	if it.ForcedResponseEvents != 0 {
		t.Errorf("forced response events = %d, want 0", it.ForcedResponseEvents)
	}
}

func TestInteractionTracker_ContentionOnSharedPile(t *testing.T) {
	state := newTestState(t, 2)
	state.Deck = append(state.Deck, Card{Rank: 1}, Card{Rank: 2}, Card{Rank: 3})

	// Both seats draw from the same deck: every draw is contended.
	prog := progWithPhases(2, &DrawPhase{Source: LocationDeck, Count: 1})
	prog.Phases[0].(*DrawPhase).Mandatory = true

	it := NewInteractionTracker()
	moves := GenerateLegalMoves(state, prog)
	if len(moves) != 1 {
		t.Fatalf("expected 1 draw move, got %d", len(moves))
	}

	it.BeforeMove(state, prog, moves[0])
	if err := ApplyMove(state, prog, moves[0]); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	it.AfterMove(state, prog)

	if it.ContentionEvents != 1 {
		t.Errorf("contention events = %d, want 1", it.ContentionEvents)
	}
}

func TestInteractionTracker_Score(t *testing.T) {
	it := NewInteractionTracker()
	it.MoveDisruptionEvents = 3
	it.ForcedResponseEvents = 1
	it.ContentionEvents = 5
	it.OpponentTurnCount = 10
	it.TotalActions = 10

	want := (0.3 + 0.1 + 0.5) / 3.0
	if got := it.Score(); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestInteractionTracker_ScoreCapsRatios(t *testing.T) {
	it := NewInteractionTracker()
	it.MoveDisruptionEvents = 50
	it.OpponentTurnCount = 10
	it.TotalActions = 10

	want := 1.0 / 3.0
	if got := it.Score(); math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestInteractionTracker_NoOpponentsScoresZero(t *testing.T) {
	it := NewInteractionTracker()
	if got := it.Score(); got != 0 {
		t.Errorf("score = %v, want 0 with no opponent turns", got)
	}
}
