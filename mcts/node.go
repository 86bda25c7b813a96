package mcts

import (
	"math"
	"sync"

	"github.com/signalnine/deckforge/engine"
)

// Node is one node in the Monte Carlo search tree.
type Node struct {
	State        *engine.GameState
	Move         *engine.LegalMove
	Parent       *Node
	Children     []*Node
	Visits       int
	Wins         float64
	UntriedMoves []engine.LegalMove
	PlayerID     uint8
}

// nodePool recycles nodes across searches.
var nodePool = sync.Pool{
	New: func() interface{} {
		return &Node{
			Children:     make([]*Node, 0, 10),
			UntriedMoves: make([]engine.LegalMove, 0, 20),
		}
	},
}

// GetNode acquires a reset node from the pool.
func GetNode() *Node {
	node := nodePool.Get().(*Node)
	node.Reset()
	return node
}

// PutNode returns a node and its subtree to the pool. Owned game
// states go back to the state pool at the same time.
func PutNode(node *Node) {
	if node == nil {
		return
	}
	for _, child := range node.Children {
		PutNode(child)
	}
	if node.State != nil {
		engine.PutState(node.State)
		node.State = nil
	}
	nodePool.Put(node)
}

// Reset clears a node for reuse.
func (n *Node) Reset() {
	n.State = nil
	n.Move = nil
	n.Parent = nil
	n.Children = n.Children[:0]
	n.Visits = 0
	n.Wins = 0
	n.UntriedMoves = n.UntriedMoves[:0]
	n.PlayerID = 0
}

// UCB1 calculates the upper confidence bound for this node.
func (n *Node) UCB1(explorationParam float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins / float64(n.Visits)
	exploration := explorationParam * math.Sqrt(math.Log(float64(n.Parent.Visits))/float64(n.Visits))
	return exploitation + exploration
}

// BestChild returns the child with the highest UCB1 value.
func (n *Node) BestChild(explorationParam float64) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	bestChild := n.Children[0]
	bestValue := bestChild.UCB1(explorationParam)
	for _, child := range n.Children[1:] {
		value := child.UCB1(explorationParam)
		if value > bestValue {
			bestValue = value
			bestChild = child
		}
	}
	return bestChild
}

// MostVisitedChild returns the child explored most often.
func (n *Node) MostVisitedChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	bestChild := n.Children[0]
	maxVisits := bestChild.Visits
	for _, child := range n.Children[1:] {
		if child.Visits > maxVisits {
			maxVisits = child.Visits
			bestChild = child
		}
	}
	return bestChild
}

// IsFullyExpanded reports whether every move has been tried.
func (n *Node) IsFullyExpanded() bool {
	return len(n.UntriedMoves) == 0
}

// IsTerminal reports whether the node's state is decided, for either
// an individual winner or a winning team.
func (n *Node) IsTerminal() bool {
	if n.State == nil {
		return true
	}
	return n.State.WinnerID != engine.NoWinner || n.State.WinningTeam != engine.NoWinner
}
