package simulation

import (
	"github.com/signalnine/deckforge/engine"
	"github.com/signalnine/deckforge/mcts"
)

// Strategy selects one move from a non-empty legal move list. All
// randomness must come from state.Rand so whole games replay from a
// seed.
type Strategy interface {
	SelectMove(state *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove
}

// RandomStrategy picks uniformly among the legal moves.
type RandomStrategy struct{}

func (RandomStrategy) SelectMove(state *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove {
	return moves[state.Rand.Intn(len(moves))]
}

// GreedyStrategy evaluates each move one ply deep and takes the one
// with the best immediate position. Ties are broken uniformly at
// random via state.Rand, so selection still replays from a seed.
type GreedyStrategy struct{}

func (GreedyStrategy) SelectMove(state *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove {
	player := state.CurrentPlayer
	best := 0
	bestValue := evaluateMove(state, prog, moves[0], player)
	tied := 1
	for i := 1; i < len(moves); i++ {
		value := evaluateMove(state, prog, moves[i], player)
		switch {
		case value > bestValue:
			bestValue = value
			best = i
			tied = 1
		case value == bestValue:
			// Reservoir pick: each tied move ends up selected with
			// equal probability without a second pass.
			tied++
			if state.Rand.Intn(tied) == 0 {
				best = i
			}
		}
	}
	return moves[best]
}

// evaluateMove applies the move on a clone and scores the resulting
// position for the mover. Winning outright dominates everything else.
func evaluateMove(state *engine.GameState, prog *engine.Program, move engine.LegalMove, player uint8) float64 {
	clone := state.Clone()
	defer engine.PutState(clone)

	if err := engine.ApplyMove(clone, prog, move); err != nil {
		return -1e18
	}
	if engine.CheckWinConditions(clone, prog) {
		if clone.WinnerID == int8(player) ||
			(clone.WinningTeam >= 0 && clone.Players[player].Team == clone.WinningTeam) {
			return 1e18
		}
		return -1e18
	}

	p := &clone.Players[player]
	value := float64(p.Score)*10 +
		float64(p.Chips) +
		float64(p.TricksWon)*5 -
		float64(len(p.Hand))
	return value
}

// SearchStrategy runs a bounded UCT search per decision. Iterations
// trades strength for throughput.
type SearchStrategy struct {
	Iterations int
}

func (s SearchStrategy) SelectMove(state *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove {
	iterations := s.Iterations
	if iterations <= 0 {
		iterations = 100
	}
	move := mcts.Search(state, prog, iterations, 0, state.Rand)
	if move == nil {
		return moves[0]
	}
	return *move
}
