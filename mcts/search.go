package mcts

import (
	"math/rand"

	"github.com/signalnine/deckforge/engine"
)

// DefaultExplorationParam is sqrt(2), the standard UCT constant.
const DefaultExplorationParam = 1.414

// Search runs UCT from the given state and returns the best move, or
// nil when the position has no moves. All randomness flows through
// rng, so a seeded game explores the same tree every run.
func Search(state *engine.GameState, prog *engine.Program, iterations int, explorationParam float64, rng *rand.Rand) *engine.LegalMove {
	if explorationParam == 0 {
		explorationParam = DefaultExplorationParam
	}

	root := GetNode()
	defer PutNode(root)

	root.State = state.Clone()
	root.PlayerID = state.CurrentPlayer
	root.UntriedMoves = append(root.UntriedMoves, engine.GenerateLegalMoves(root.State, prog)...)

	for i := 0; i < iterations; i++ {
		node := root

		// Selection
		for !node.IsTerminal() && node.IsFullyExpanded() {
			node = node.BestChild(explorationParam)
			if node == nil {
				break
			}
		}
		if node == nil {
			continue
		}

		// Expansion
		if !node.IsTerminal() && len(node.UntriedMoves) > 0 {
			node = expand(node, prog, rng)
			if node == nil {
				continue
			}
		}

		// Simulation
		winner, winningTeam := simulate(node.State, prog, rng)

		// Backpropagation
		backpropagate(node, winner, winningTeam)
	}

	bestChild := root.MostVisitedChild()
	if bestChild == nil || bestChild.Move == nil {
		moves := engine.GenerateLegalMoves(state, prog)
		if len(moves) > 0 {
			return &moves[0]
		}
		return nil
	}

	moveCopy := *bestChild.Move
	return &moveCopy
}

// expand adds a child for one untried move, picked at random.
func expand(node *Node, prog *engine.Program, rng *rand.Rand) *Node {
	moveIndex := rng.Intn(len(node.UntriedMoves))
	move := node.UntriedMoves[moveIndex]

	node.UntriedMoves[moveIndex] = node.UntriedMoves[len(node.UntriedMoves)-1]
	node.UntriedMoves = node.UntriedMoves[:len(node.UntriedMoves)-1]

	childState := node.State.Clone()
	if err := engine.ApplyMove(childState, prog, move); err != nil {
		engine.PutState(childState)
		return nil
	}
	engine.CheckWinConditions(childState, prog)

	child := GetNode()
	child.State = childState
	child.Move = &move
	child.Parent = node
	child.PlayerID = childState.CurrentPlayer
	child.UntriedMoves = append(child.UntriedMoves, engine.GenerateLegalMoves(childState, prog)...)

	node.Children = append(node.Children, child)
	return child
}

// simulate plays out randomly from the node's state. Returns the
// winning player and team, with -1 sentinels for a draw or stuck
// position; team games decide the team, individual games the player.
func simulate(state *engine.GameState, prog *engine.Program, rng *rand.Rand) (int8, int8) {
	simState := state.Clone()
	defer engine.PutState(simState)

	maxSimulationTurns := int(prog.Header.MaxTurns) * 2

	for i := 0; i < maxSimulationTurns; i++ {
		if engine.CheckWinConditions(simState, prog) {
			return simState.WinnerID, simState.WinningTeam
		}
		moves := engine.GenerateLegalMoves(simState, prog)
		if len(moves) == 0 {
			return engine.NoWinner, engine.NoWinner
		}
		move := moves[rng.Intn(len(moves))]
		if err := engine.ApplyMove(simState, prog, move); err != nil {
			return engine.NoWinner, engine.NoWinner
		}
	}

	return engine.NoWinner, engine.NoWinner
}

func backpropagate(node *Node, winner, winningTeam int8) {
	for node != nil {
		node.Visits++
		switch {
		case winner >= 0 && uint8(winner) == node.PlayerID:
			node.Wins += 1.0
		case winningTeam >= 0 && node.State != nil &&
			node.State.Players[node.PlayerID].Team == winningTeam:
			node.Wins += 1.0
		}
		node = node.Parent
	}
}

// SearchParams bundles tunable search settings.
type SearchParams struct {
	Iterations       int
	ExplorationParam float64
}

// SearchWithParams runs Search with bundled parameters.
func SearchWithParams(state *engine.GameState, prog *engine.Program, params SearchParams, rng *rand.Rand) *engine.LegalMove {
	return Search(state, prog, params.Iterations, params.ExplorationParam, rng)
}
