package engine

// InteractionTracker measures how much players affect each other, used
// to flag multiplayer-solitaire rule programs. It probes the next
// seat's legal moves around each applied move and records three event
// streams:
//
//   - move disruption: the mover changed what the next seat can do
//   - forced response: the next seat lost over 30% of its options
//   - contention: the mover touched a shared pile the next seat also
//     had moves against
type InteractionTracker struct {
	MoveDisruptionEvents int
	ForcedResponseEvents int
	ContentionEvents     int
	OpponentTurnCount    int
	TotalActions         int

	probeSeat  uint8
	probeMoves []LegalMove
	probed     bool
}

const forcedResponseShrink = 0.3

// NewInteractionTracker creates a tracker for one game.
func NewInteractionTracker() *InteractionTracker {
	return &InteractionTracker{
		probeMoves: make([]LegalMove, 0, 16),
	}
}

// BeforeMove snapshots the next seat's options and checks the pending
// move for shared-pile contention. Move generation has no side
// effects, so probing another seat is just a CurrentPlayer swap.
func (it *InteractionTracker) BeforeMove(state *GameState, prog *Program, move LegalMove) {
	it.TotalActions++
	it.probed = false
	if state.NumPlayers < 2 {
		return
	}
	it.OpponentTurnCount++

	it.probeSeat = nextSeat(state)
	it.probeMoves = probeMoves(state, prog, it.probeSeat, it.probeMoves[:0])
	it.probed = true

	if isSharedLocation(move.TargetLoc) {
		for _, om := range it.probeMoves {
			if om.TargetLoc == move.TargetLoc {
				it.ContentionEvents++
				break
			}
		}
	}
}

// AfterMove re-probes the seat captured by BeforeMove and compares.
func (it *InteractionTracker) AfterMove(state *GameState, prog *Program) {
	if !it.probed {
		return
	}
	after := probeMoves(state, prog, it.probeSeat, nil)

	if !sameMoveSet(it.probeMoves, after) {
		it.MoveDisruptionEvents++
	}
	if len(it.probeMoves) > 0 {
		lost := len(it.probeMoves) - len(after)
		if lost > 0 && float64(lost)/float64(len(it.probeMoves)) > forcedResponseShrink {
			it.ForcedResponseEvents++
		}
	}
}

// Score folds the event streams into one 0-1 interaction measure. Each
// stream is normalized by its opportunity count before averaging, so a
// long game cannot inflate the score.
func (it *InteractionTracker) Score() float64 {
	if it.OpponentTurnCount == 0 {
		return 0
	}
	disruption := capRatio(it.MoveDisruptionEvents, it.OpponentTurnCount)
	forced := capRatio(it.ForcedResponseEvents, it.OpponentTurnCount)
	var contention float64
	if it.TotalActions > 0 {
		contention = capRatio(it.ContentionEvents, it.TotalActions)
	}
	return (disruption + forced + contention) / 3.0
}

func capRatio(events, opportunities int) float64 {
	r := float64(events) / float64(opportunities)
	if r > 1.0 {
		return 1.0
	}
	return r
}

func nextSeat(state *GameState) uint8 {
	n := int(state.NumPlayers)
	return uint8((int(state.CurrentPlayer) + int(state.PlayDirection) + n) % n)
}

func probeMoves(state *GameState, prog *Program, seat uint8, buf []LegalMove) []LegalMove {
	saved := state.CurrentPlayer
	state.CurrentPlayer = seat
	moves := GenerateLegalMoves(state, prog)
	state.CurrentPlayer = saved
	return append(buf, moves...)
}

func isSharedLocation(loc Location) bool {
	return loc == LocationDeck || loc == LocationDiscard || loc == LocationTableau
}

func sameMoveSet(a, b []LegalMove) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
