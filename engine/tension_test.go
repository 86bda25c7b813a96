package engine

import (
	"math"
	"testing"
)

func approxF32(t *testing.T, got float32, want float64, what string) {
	t.Helper()
	if math.Abs(float64(got)-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestScoreLeaderDetector(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}

	state.Players[0].Score = 100
	state.Players[1].Score = 75
	if got := d.GetLeader(state); got != 0 {
		t.Errorf("leader = %d, want 0", got)
	}
	approxF32(t, d.GetMargin(state), 0.25, "margin") // (100-75)/100

	state.Players[1].Score = 100
	if got := d.GetLeader(state); got != -1 {
		t.Errorf("tied scores: leader = %d, want -1", got)
	}
	approxF32(t, d.GetMargin(state), 0, "tied margin")
}

func TestHandSizeLeaderDetector(t *testing.T) {
	state := newTestState(t, 2)
	d := &HandSizeLeaderDetector{}

	for i := 0; i < 2; i++ {
		state.Players[0].Hand = append(state.Players[0].Hand, Card{Rank: uint8(i)})
	}
	for i := 0; i < 5; i++ {
		state.Players[1].Hand = append(state.Players[1].Hand, Card{Rank: uint8(i)})
	}

	if got := d.GetLeader(state); got != 0 {
		t.Errorf("leader = %d, want 0 (fewest cards)", got)
	}
	approxF32(t, d.GetMargin(state), 0.6, "margin") // (5-2)/5
}

func TestTrickLeaderDetector(t *testing.T) {
	state := newTestState(t, 3)
	d := &TrickLeaderDetector{}

	state.Players[0].TricksWon = 4
	state.Players[1].TricksWon = 2
	state.Players[2].TricksWon = 1
	if got := d.GetLeader(state); got != 0 {
		t.Errorf("leader = %d, want 0", got)
	}
	approxF32(t, d.GetMargin(state), 0.5, "margin") // (4-2)/4

	state.Players[1].TricksWon = 4
	if got := d.GetLeader(state); got != -1 {
		t.Errorf("tied tricks: leader = %d, want -1", got)
	}
}

func TestTrickAvoidanceLeaderDetector(t *testing.T) {
	state := newTestState(t, 3)
	d := &TrickAvoidanceLeaderDetector{}

	state.Players[0].TricksWon = 4
	state.Players[1].TricksWon = 1
	state.Players[2].TricksWon = 3
	if got := d.GetLeader(state); got != 1 {
		t.Errorf("leader = %d, want 1 (fewest tricks)", got)
	}
	approxF32(t, d.GetMargin(state), 2.0/8.0, "margin") // (3-1)/8
}

func TestChipLeaderDetector(t *testing.T) {
	state := newTestState(t, 2)
	d := &ChipLeaderDetector{}

	state.Players[0].Chips = 60
	state.Players[1].Chips = 140
	if got := d.GetLeader(state); got != 1 {
		t.Errorf("leader = %d, want 1", got)
	}
	approxF32(t, d.GetMargin(state), 80.0/140.0, "margin") // (140-60)/140
}

func TestCaptureLeaderDetector(t *testing.T) {
	state := newTestState(t, 2)
	d := &CaptureLeaderDetector{}

	for i := 0; i < 6; i++ {
		state.Players[0].Hand = append(state.Players[0].Hand, Card{Rank: uint8(i)})
	}
	for i := 0; i < 4; i++ {
		state.Players[1].Hand = append(state.Players[1].Hand, Card{Rank: uint8(i)})
	}

	if got := d.GetLeader(state); got != 0 {
		t.Errorf("leader = %d, want 0 (most cards)", got)
	}
	approxF32(t, d.GetMargin(state), 1.0/3.0, "margin") // (6-4)/6
}

func TestTensionMetrics_LeadChanges(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	// Player 0 leads, then player 1 overtakes, then player 0 retakes.
	state.Players[0].Score = 10
	tm.Update(state, d)
	state.Players[1].Score = 20
	tm.Update(state, d)
	state.Players[0].Score = 30
	tm.Update(state, d)

	if tm.LeadChanges != 2 {
		t.Errorf("LeadChanges = %d, want 2", tm.LeadChanges)
	}
	if tm.TotalTurns != 3 {
		t.Errorf("TotalTurns = %d, want 3", tm.TotalTurns)
	}
}

func TestTensionMetrics_FirstLeaderIsNotAChange(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state.Players[0].Score = 10
	tm.Update(state, d)
	tm.Update(state, d)

	if tm.LeadChanges != 0 {
		t.Errorf("LeadChanges = %d, want 0", tm.LeadChanges)
	}
}

func TestTensionMetrics_ClosestMargin(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state.Players[0].Score = 100
	state.Players[1].Score = 50
	tm.Update(state, d) // margin 0.5
	state.Players[1].Score = 90
	tm.Update(state, d) // margin 0.1
	state.Players[1].Score = 60
	tm.Update(state, d) // margin 0.4, minimum stays

	approxF32(t, tm.ClosestMargin, 0.1, "ClosestMargin")
}

func TestTensionMetrics_DecisiveTurn(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	// Leader history: 0, 1, 1, 1 -> player 1 led from turn index 1.
	state.Players[0].Score = 10
	tm.Update(state, d)
	state.Players[1].Score = 20
	tm.Update(state, d)
	tm.Update(state, d)
	tm.Update(state, d)
	tm.Finalize(1)

	if tm.DecisiveTurn != 1 {
		t.Errorf("DecisiveTurn = %d, want 1", tm.DecisiveTurn)
	}
	if got := tm.DecisiveTurnPct(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("DecisiveTurnPct = %v, want 0.25", got)
	}
}

func TestTensionMetrics_TieDoesNotBreakLead(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	// History: 1, -1, 1. The tie in the middle does not interrupt the
	// winner's run.
	state.Players[1].Score = 20
	tm.Update(state, d)
	state.Players[0].Score = 20
	tm.Update(state, d)
	state.Players[1].Score = 40
	tm.Update(state, d)
	tm.Finalize(1)

	if tm.DecisiveTurn != 0 {
		t.Errorf("DecisiveTurn = %d, want 0", tm.DecisiveTurn)
	}
}

func TestTensionMetrics_DrawDecidedOnFinalTurn(t *testing.T) {
	state := newTestState(t, 2)
	d := &ScoreLeaderDetector{}
	tm := NewTensionMetrics(2)

	state.Players[0].Score = 10
	tm.Update(state, d)
	tm.Update(state, d)
	tm.Finalize(int(NoWinner))

	if tm.DecisiveTurn != 2 {
		t.Errorf("DecisiveTurn = %d, want TotalTurns for a draw", tm.DecisiveTurn)
	}
	if got := tm.DecisiveTurnPct(); got != 1.0 {
		t.Errorf("DecisiveTurnPct = %v, want 1.0", got)
	}
}

func TestSelectLeaderDetector(t *testing.T) {
	cases := []struct {
		name string
		prog *Program
		want LeaderDetector
	}{
		{"empty hand", progWithWins(2, WinCondition{WinType: WinTypeEmptyHand}), &HandSizeLeaderDetector{}},
		{"score race", progWithWins(2, WinCondition{WinType: WinTypeScore, Comparison: CompareAtOrAbove}), &ScoreLeaderDetector{}},
		{"score avoidance", progWithWins(2, WinCondition{WinType: WinTypeScore, Comparison: CompareAtOrBelow}), &TrickAvoidanceLeaderDetector{}},
		{"capture all", progWithWins(2, WinCondition{WinType: WinTypeCaptureAll}), &CaptureLeaderDetector{}},
		{"most tricks", progWithWins(2, WinCondition{WinType: WinTypeMostTricks}), &TrickLeaderDetector{}},
		{"fewest tricks", progWithWins(2, WinCondition{WinType: WinTypeFewestTricks}), &TrickAvoidanceLeaderDetector{}},
		{"most chips", progWithWins(2, WinCondition{WinType: WinTypeMostChips}), &ChipLeaderDetector{}},
		{"betting fallback", progWithPhases(2, &BettingPhase{MinBet: 5, MaxRaises: 3}), nil},
		{"trick fallback", progWithPhases(2, &TrickPhase{TrumpSuit: 255, BreakingSuit: 255}), nil},
	}

	// The phase fallback cases use progWithPhases, which installs an
	// empty-hand win condition; clear it so the fallback is exercised.
	cases[7].prog.WinConditions = nil
	cases[7].want = &ChipLeaderDetector{}
	cases[8].prog.WinConditions = nil
	cases[8].want = &TrickLeaderDetector{}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectLeaderDetector(tc.prog)
			if gotT, wantT := typeName(got), typeName(tc.want); gotT != wantT {
				t.Errorf("detector = %s, want %s", gotT, wantT)
			}
		})
	}
}

func typeName(d LeaderDetector) string {
	switch d.(type) {
	case *ScoreLeaderDetector:
		return "score"
	case *HandSizeLeaderDetector:
		return "handsize"
	case *TrickLeaderDetector:
		return "trick"
	case *TrickAvoidanceLeaderDetector:
		return "avoidance"
	case *ChipLeaderDetector:
		return "chip"
	case *CaptureLeaderDetector:
		return "capture"
	}
	return "unknown"
}
