package mcts

import (
	"math/rand"
	"testing"

	"github.com/signalnine/deckforge/engine"
)

func shedProgram(players uint32) *engine.Program {
	return &engine.Program{
		Header: engine.ProgramHeader{PlayerCount: players, MaxTurns: 50},
		Phases: []engine.Phase{
			&engine.PlayPhase{Target: engine.LocationDiscard, MinCards: 1, MaxCards: 1},
		},
		WinConditions: []engine.WinCondition{
			{WinType: engine.WinTypeEmptyHand},
		},
		Effects: map[uint8]engine.SpecialEffect{},
	}
}

func dealtState(t *testing.T, players, cards int) *engine.GameState {
	t.Helper()
	state := engine.GetState(players, 42)
	t.Cleanup(func() { engine.PutState(state) })
	for p := 0; p < players; p++ {
		for c := 0; c < cards; c++ {
			state.Players[p].Hand = append(state.Players[p].Hand,
				engine.Card{Rank: uint8(c), Suit: uint8(p % 4)})
		}
	}
	return state
}

func TestSearch_ReturnsLegalMove(t *testing.T) {
	prog := shedProgram(2)
	state := dealtState(t, 2, 3)
	rng := rand.New(rand.NewSource(7))

	move := Search(state, prog, 200, 0, rng)
	if move == nil {
		t.Fatal("expected a move from a live position")
	}

	legal := engine.GenerateLegalMoves(state, prog)
	found := false
	for _, m := range legal {
		if m == *move {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("search returned %+v, not among %d legal moves", *move, len(legal))
	}
}

func TestSearch_NoMovesReturnsNil(t *testing.T) {
	prog := shedProgram(2)
	state := dealtState(t, 2, 0)
	rng := rand.New(rand.NewSource(7))

	if move := Search(state, prog, 50, 0, rng); move != nil {
		t.Errorf("expected nil from a stuck position, got %+v", *move)
	}
}

func TestSearch_DeterministicWithSeededRng(t *testing.T) {
	prog := shedProgram(2)

	run := func() engine.LegalMove {
		state := dealtState(t, 2, 4)
		rng := rand.New(rand.NewSource(99))
		move := Search(state, prog, 300, 0, rng)
		if move == nil {
			t.Fatal("expected a move")
		}
		return *move
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	prog := shedProgram(2)
	state := dealtState(t, 2, 3)
	rng := rand.New(rand.NewSource(7))

	handBefore := len(state.Players[0].Hand)
	turnBefore := state.TurnNumber

	Search(state, prog, 100, 0, rng)

	if len(state.Players[0].Hand) != handBefore || state.TurnNumber != turnBefore {
		t.Error("search must work on clones, not the caller's state")
	}
}

func TestNode_UCB1UnvisitedIsInfinite(t *testing.T) {
	parent := GetNode()
	defer PutNode(parent)
	parent.Visits = 10

	child := GetNode()
	child.Parent = parent
	parent.Children = append(parent.Children, child)

	if got := child.UCB1(DefaultExplorationParam); got <= 1e18 {
		t.Errorf("unvisited child must dominate selection, got %v", got)
	}
}

func TestNode_MostVisitedChild(t *testing.T) {
	parent := GetNode()
	defer PutNode(parent)

	for _, visits := range []int{3, 9, 5} {
		child := GetNode()
		child.Visits = visits
		child.Parent = parent
		parent.Children = append(parent.Children, child)
	}

	if got := parent.MostVisitedChild(); got == nil || got.Visits != 9 {
		t.Errorf("expected the 9-visit child, got %+v", got)
	}
}
