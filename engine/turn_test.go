package engine

import "testing"

func TestAdvanceTurn_Basic(t *testing.T) {
	state := newTestState(t, 3)

	AdvanceTurn(state)
	if state.CurrentPlayer != 1 {
		t.Errorf("expected player 1, got %d", state.CurrentPlayer)
	}
	if state.TurnNumber != 1 {
		t.Errorf("expected turn 1, got %d", state.TurnNumber)
	}
}

func TestAdvanceTurn_Wraps(t *testing.T) {
	state := newTestState(t, 3)
	state.CurrentPlayer = 2

	AdvanceTurn(state)
	if state.CurrentPlayer != 0 {
		t.Errorf("expected wrap to player 0, got %d", state.CurrentPlayer)
	}
}

func TestAdvanceTurn_SkipInThreePlayerGame(t *testing.T) {
	state := newTestState(t, 3)
	state.SkipCount = 1

	AdvanceTurn(state)
	if state.CurrentPlayer != 2 {
		t.Errorf("expected player 2, got %d", state.CurrentPlayer)
	}
}

func TestAdvanceTurn_ReverseInFourPlayerGame(t *testing.T) {
	state := newTestState(t, 4)
	state.CurrentPlayer = 1
	state.PlayDirection = -1

	AdvanceTurn(state)
	if state.CurrentPlayer != 0 {
		t.Errorf("expected player 0, got %d", state.CurrentPlayer)
	}

	AdvanceTurn(state)
	if state.CurrentPlayer != 3 {
		t.Errorf("expected wrap to player 3, got %d", state.CurrentPlayer)
	}
}

func TestAdvanceTurn_SkipAfterReverseUsesNewDirection(t *testing.T) {
	state := newTestState(t, 4)
	state.CurrentPlayer = 1
	state.SkipCount = 1
	state.PlayDirection = -1

	AdvanceTurn(state)
	if state.CurrentPlayer != 3 {
		t.Errorf("expected player 3 (skip player 0 going backward), got %d", state.CurrentPlayer)
	}
}

func TestAdvanceTurn_MaxSkipReturnsToCurrent(t *testing.T) {
	state := newTestState(t, 4)
	state.CurrentPlayer = 2
	state.SkipCount = 3

	AdvanceTurn(state)
	if state.CurrentPlayer != 2 {
		t.Errorf("expected player 2 again after skipping everyone, got %d", state.CurrentPlayer)
	}
}

func TestAdvanceTurn_TwoPlayerSkipActsAsExtraTurn(t *testing.T) {
	state := newTestState(t, 2)
	state.SkipCount = 1

	AdvanceTurn(state)
	if state.CurrentPlayer != 0 {
		t.Errorf("expected player 0 to act again, got %d", state.CurrentPlayer)
	}
}
