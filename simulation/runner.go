package simulation

import (
	"fmt"
	"time"

	"github.com/signalnine/deckforge/engine"
)

// GameMetrics holds per-game instrumentation counters.
type GameMetrics struct {
	TotalDecisions  uint64 // Decision points offered to strategies
	TotalValidMoves uint64 // Sum of legal move counts at each decision
	ForcedDecisions uint64 // Decisions with exactly one legal move
	TotalActions    uint64

	LeadChanges      int
	DecisiveTurnPct  float64
	ClosestMargin    float64
	InteractionScore float64
}

// GameResult holds the outcome of a single game.
type GameResult struct {
	WinnerID    int8
	WinningTeam int8
	TurnCount   uint32
	DurationNs  uint64
	Error       string
	Metrics     GameMetrics
}

// RunSingleGame plays one complete game to termination. Every game
// gets its own random source from seed, so the same program and seed
// replay move for move. A panic inside rule evaluation is captured as
// a per-game error instead of killing the batch.
func RunSingleGame(prog *engine.Program, strat Strategy, seed uint64) (result GameResult) {
	start := time.Now()
	result.WinnerID = engine.NoWinner
	result.WinningTeam = engine.NoWinner

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("panic: %v", r)
			result.DurationNs = uint64(time.Since(start).Nanoseconds())
		}
	}()

	state := engine.GetState(int(prog.Header.PlayerCount), seed)
	defer engine.PutState(state)

	setupGame(state, prog)

	detector := engine.SelectLeaderDetector(prog)
	tension := engine.NewTensionMetrics(int(state.NumPlayers))
	interaction := engine.NewInteractionTracker()

	maxTurns := prog.Header.MaxTurns
	for state.TurnNumber < maxTurns {
		if engine.CheckWinConditions(state, prog) {
			break
		}

		moves := engine.GenerateLegalMoves(state, prog)
		result.Metrics.TotalDecisions++
		result.Metrics.TotalValidMoves += uint64(len(moves))
		if len(moves) == 1 {
			result.Metrics.ForcedDecisions++
		}
		if len(moves) == 0 {
			result.Error = fmt.Sprintf("no legal moves at turn %d", state.TurnNumber)
			break
		}

		move := strat.SelectMove(state, prog, moves)

		interaction.BeforeMove(state, prog, move)
		if err := engine.ApplyMove(state, prog, move); err != nil {
			result.Error = err.Error()
			break
		}
		interaction.AfterMove(state, prog)
		result.Metrics.TotalActions++

		tension.Update(state, detector)
	}

	engine.CheckWinConditions(state, prog)
	tension.Finalize(winningSeat(state))

	result.WinnerID = state.WinnerID
	result.WinningTeam = state.WinningTeam
	result.TurnCount = state.TurnNumber
	result.DurationNs = uint64(time.Since(start).Nanoseconds())
	result.Metrics.LeadChanges = tension.LeadChanges
	result.Metrics.DecisiveTurnPct = tension.DecisiveTurnPct()
	result.Metrics.ClosestMargin = float64(tension.ClosestMargin)
	result.Metrics.InteractionScore = interaction.Score()
	return result
}

// winningSeat maps the result to a seat for the tension tracker: the
// individual winner, or any member of the winning team, or -1 on a
// draw.
func winningSeat(state *engine.GameState) int {
	if state.WinnerID >= 0 {
		return int(state.WinnerID)
	}
	if state.WinningTeam >= 0 {
		for i := range state.Players {
			if state.Players[i].Team == state.WinningTeam {
				return i
			}
		}
	}
	return -1
}

// setupGame builds and shuffles the deck, deals hands and the shared
// pile, and initializes chips and teams when the program uses them.
func setupGame(state *engine.GameState, prog *engine.Program) {
	state.BuildDeck(int(prog.Setup.DeckCount))
	state.ShuffleDeck()

	for i := 0; i < int(prog.Setup.CardsPerPlayer); i++ {
		for p := uint8(0); p < state.NumPlayers; p++ {
			state.DrawCard(p, engine.LocationDeck)
		}
	}

	for i := 0; i < int(prog.Setup.DealToShared); i++ {
		if len(state.Deck) == 0 {
			break
		}
		card := state.Deck[len(state.Deck)-1]
		state.Deck = state.Deck[:len(state.Deck)-1]
		state.Discard = append(state.Discard, card)
	}

	if prog.HasPhase(engine.PhaseKindBetting) {
		state.InitializeChips(int64(prog.Setup.StartingChips))
	}
	if prog.TeamMode() {
		state.InitializeTeams(prog.Teams)
	}
}
