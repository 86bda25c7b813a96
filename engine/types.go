package engine

import (
	"math/rand"
	"sync"
)

// Card represents a playing card (1 byte each field)
type Card struct {
	Rank uint8 // 0-12 (2-10,J,Q,K,A)
	Suit uint8 // 0-3 (H,D,C,S)
}

// Location enum
type Location uint8

const (
	LocationDeck Location = iota
	LocationHand
	LocationDiscard
	LocationTableau
	LocationOpponentHand
)

const (
	// NoTeam marks a player outside any team
	NoTeam int8 = -1
	// NoWinner is the sentinel for WinnerID / WinningTeam
	NoWinner int8 = -1
)

// PlayerState is mutable for performance. Owned exclusively by the
// enclosing GameState and never shared across games.
type PlayerState struct {
	Hand         []Card
	Score        int32
	Chips        int64 // Chip count for betting games (int64 for precision)
	CurrentBet   int64 // Current bet this round
	HasFolded    bool
	IsAllIn      bool
	TricksWon    uint8
	CurrentBid   int8 // Contract bid, -1 = none
	Team         int8 // Team index, NoTeam if not a team game
	ActedInRound bool // Betting round bookkeeping
}

// TrickCard records one contribution to the trick in progress.
type TrickCard struct {
	PlayerID uint8
	Card     Card
}

// GameState is mutable and pooled. One state is never touched by more
// than one worker at a time.
type GameState struct {
	Players       []PlayerState
	Deck          []Card
	Discard       []Card
	Tableau       [][]Card
	NumPlayers    uint8
	CurrentPlayer uint8
	TurnNumber    uint32
	PlayDirection int8  // +1 or -1
	SkipCount     uint8 // Pending skips, capped at NumPlayers-1
	WinnerID      int8  // NoWinner until someone wins
	WinningTeam   int8  // NoWinner unless a team game is won

	// Betting extensions
	Pot        int64
	CurrentBet int64 // Highest bet in current round
	RaiseCount int

	// Trick-taking extensions
	CurrentTrick []TrickCard
	TrickLeader  uint8
	SuitBroken   bool

	// Capture battle state: one contribution per player per battle,
	// plus any pile carried over from an unresolved tie.
	BattleRound []TrickCard
	BattleCarry []Card

	// Team extensions (empty when not a team game)
	TeamScores []int32

	// Rand is the per-game deterministic random source. It is owned by
	// this state and is never a process-wide singleton.
	Rand *rand.Rand
}

// statePool manages GameState reuse across the very large number of
// simulated games.
var statePool = sync.Pool{
	New: func() interface{} {
		return &GameState{
			Players:      make([]PlayerState, 0, 8),
			Deck:         make([]Card, 0, 52),
			Discard:      make([]Card, 0, 52),
			Tableau:      make([][]Card, 0, 4),
			CurrentTrick: make([]TrickCard, 0, 8),
			TeamScores:   make([]int32, 0, 4),
		}
	},
}

// GetState acquires a fully reset GameState from the pool, sized for
// numPlayers and seeded with its own random source.
func GetState(numPlayers int, seed uint64) *GameState {
	s := statePool.Get().(*GameState)
	s.Reset(numPlayers)
	s.Rand = rand.New(rand.NewSource(int64(seed)))
	return s
}

// PutState returns a GameState to the pool.
func PutState(s *GameState) {
	if s == nil {
		return
	}
	statePool.Put(s)
}

// Reset clears state for reuse. Every field is restored to its
// initial value; slice capacity is retained.
func (s *GameState) Reset(numPlayers int) {
	if cap(s.Players) < numPlayers {
		s.Players = make([]PlayerState, numPlayers)
	}
	s.Players = s.Players[:numPlayers]
	for i := range s.Players {
		p := &s.Players[i]
		p.Hand = p.Hand[:0]
		p.Score = 0
		p.Chips = 0
		p.CurrentBet = 0
		p.HasFolded = false
		p.IsAllIn = false
		p.TricksWon = 0
		p.CurrentBid = -1
		p.Team = NoTeam
		p.ActedInRound = false
	}

	s.Deck = s.Deck[:0]
	s.Discard = s.Discard[:0]
	s.Tableau = s.Tableau[:0]
	s.NumPlayers = uint8(numPlayers)
	s.CurrentPlayer = 0
	s.TurnNumber = 0
	s.PlayDirection = 1
	s.SkipCount = 0
	s.WinnerID = NoWinner
	s.WinningTeam = NoWinner
	s.Pot = 0
	s.CurrentBet = 0
	s.RaiseCount = 0
	s.CurrentTrick = s.CurrentTrick[:0]
	s.TrickLeader = 0
	s.SuitBroken = false
	s.BattleRound = s.BattleRound[:0]
	s.BattleCarry = s.BattleCarry[:0]
	s.TeamScores = s.TeamScores[:0]
	s.Rand = nil
}

// InitializeTeams assigns players to teams and sizes the team score
// accumulator. rosters holds player indices per team.
func (s *GameState) InitializeTeams(rosters [][]int) {
	s.TeamScores = s.TeamScores[:0]
	for teamIdx, roster := range rosters {
		s.TeamScores = append(s.TeamScores, 0)
		for _, playerIdx := range roster {
			if playerIdx >= 0 && playerIdx < len(s.Players) {
				s.Players[playerIdx].Team = int8(teamIdx)
			}
		}
	}
}

// InitializeChips gives every player the same starting stack.
func (s *GameState) InitializeChips(startingChips int64) {
	for i := range s.Players {
		s.Players[i].Chips = startingChips
	}
}

// IsTeamGame reports whether team scoring is active.
func (s *GameState) IsTeamGame() bool {
	return len(s.TeamScores) > 0
}

// Clone creates a deep copy for tree search playouts. The clone gets
// a random source derived from the parent's so playouts stay
// deterministic per game.
func (s *GameState) Clone() *GameState {
	clone := statePool.Get().(*GameState)
	clone.Reset(int(s.NumPlayers))

	for i := range s.Players {
		src := &s.Players[i]
		dst := &clone.Players[i]
		dst.Hand = append(dst.Hand, src.Hand...)
		dst.Score = src.Score
		dst.Chips = src.Chips
		dst.CurrentBet = src.CurrentBet
		dst.HasFolded = src.HasFolded
		dst.IsAllIn = src.IsAllIn
		dst.TricksWon = src.TricksWon
		dst.CurrentBid = src.CurrentBid
		dst.Team = src.Team
		dst.ActedInRound = src.ActedInRound
	}

	clone.Deck = append(clone.Deck, s.Deck...)
	clone.Discard = append(clone.Discard, s.Discard...)
	for _, pile := range s.Tableau {
		pileClone := make([]Card, len(pile))
		copy(pileClone, pile)
		clone.Tableau = append(clone.Tableau, pileClone)
	}

	clone.CurrentPlayer = s.CurrentPlayer
	clone.TurnNumber = s.TurnNumber
	clone.PlayDirection = s.PlayDirection
	clone.SkipCount = s.SkipCount
	clone.WinnerID = s.WinnerID
	clone.WinningTeam = s.WinningTeam
	clone.Pot = s.Pot
	clone.CurrentBet = s.CurrentBet
	clone.RaiseCount = s.RaiseCount
	clone.CurrentTrick = append(clone.CurrentTrick, s.CurrentTrick...)
	clone.TrickLeader = s.TrickLeader
	clone.SuitBroken = s.SuitBroken
	clone.BattleRound = append(clone.BattleRound, s.BattleRound...)
	clone.BattleCarry = append(clone.BattleCarry, s.BattleCarry...)
	clone.TeamScores = append(clone.TeamScores, s.TeamScores...)

	if s.Rand != nil {
		clone.Rand = rand.New(rand.NewSource(s.Rand.Int63()))
	}

	return clone
}

// CardCount returns the total cards across deck, discard, hands,
// trick and tableau. Constant for the whole game unless a rule
// removes cards.
func (s *GameState) CardCount() int {
	total := len(s.Deck) + len(s.Discard) + len(s.CurrentTrick) + len(s.BattleRound) + len(s.BattleCarry)
	for i := range s.Players {
		total += len(s.Players[i].Hand)
	}
	for _, pile := range s.Tableau {
		total += len(pile)
	}
	return total
}
