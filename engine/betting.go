package engine

import (
	"fmt"
	"sort"
)

// ApplyBettingAction executes a betting action for the current player.
// A bet or raise re-opens the round for everyone else.
func ApplyBettingAction(state *GameState, action BetAction, ph *BettingPhase) error {
	player := &state.Players[state.CurrentPlayer]
	player.ActedInRound = true

	switch action {
	case BetCheck:
		// No chips move.
	case BetBet:
		player.Chips -= int64(ph.MinBet)
		player.CurrentBet += int64(ph.MinBet)
		state.Pot += int64(ph.MinBet)
		state.CurrentBet = player.CurrentBet
		reopenRound(state, state.CurrentPlayer)
	case BetCall:
		toCall := state.CurrentBet - player.CurrentBet
		player.Chips -= toCall
		player.CurrentBet = state.CurrentBet
		state.Pot += toCall
	case BetRaise:
		toCall := state.CurrentBet - player.CurrentBet
		raiseAmount := toCall + int64(ph.MinBet)
		player.Chips -= raiseAmount
		player.CurrentBet = state.CurrentBet + int64(ph.MinBet)
		state.Pot += raiseAmount
		state.CurrentBet = player.CurrentBet
		state.RaiseCount++
		reopenRound(state, state.CurrentPlayer)
	case BetAllIn:
		amount := player.Chips
		player.Chips = 0
		player.CurrentBet += amount
		state.Pot += amount
		player.IsAllIn = true
		if player.CurrentBet > state.CurrentBet {
			state.CurrentBet = player.CurrentBet
			reopenRound(state, state.CurrentPlayer)
		}
	case BetFold:
		player.HasFolded = true
	default:
		return fmt.Errorf("unknown betting action %d", action)
	}
	return nil
}

func reopenRound(state *GameState, aggressor uint8) {
	for i := range state.Players {
		if uint8(i) == aggressor {
			continue
		}
		state.Players[i].ActedInRound = false
	}
}

// CountActivePlayers returns the number of players still in the hand.
func CountActivePlayers(state *GameState) int {
	count := 0
	for i := range state.Players {
		if !state.Players[i].HasFolded {
			count++
		}
	}
	return count
}

// CountActingPlayers returns the number of players who can still act.
func CountActingPlayers(state *GameState) int {
	count := 0
	for i := range state.Players {
		p := &state.Players[i]
		if !p.HasFolded && !p.IsAllIn && p.Chips > 0 {
			count++
		}
	}
	return count
}

// AllBetsMatched reports whether every live, non-all-in player has
// matched the table bet.
func AllBetsMatched(state *GameState) bool {
	for i := range state.Players {
		p := &state.Players[i]
		if !p.HasFolded && !p.IsAllIn && p.CurrentBet != state.CurrentBet {
			return false
		}
	}
	return true
}

// BettingRoundComplete reports whether the round can close: one player
// left, nobody able to act, or everyone acted with bets matched.
func BettingRoundComplete(state *GameState) bool {
	if CountActivePlayers(state) <= 1 {
		return true
	}
	if CountActingPlayers(state) == 0 {
		return true
	}
	for i := range state.Players {
		p := &state.Players[i]
		if !p.HasFolded && !p.IsAllIn && p.Chips > 0 && !p.ActedInRound {
			return false
		}
	}
	return AllBetsMatched(state)
}

// ResolveShowdown compares the live hands, awards the pot, and resets
// round state so the next betting round starts clean. With a single
// live player no cards are compared.
func ResolveShowdown(state *GameState, prog *Program) {
	live := make([]int, 0, len(state.Players))
	for i := range state.Players {
		if !state.Players[i].HasFolded {
			live = append(live, i)
		}
	}

	winners := live
	if len(live) > 1 {
		winners = bestHands(state, prog, live)
	}
	AwardPot(state, winners)

	for i := range state.Players {
		p := &state.Players[i]
		p.CurrentBet = 0
		p.HasFolded = false
		p.ActedInRound = false
		if p.Chips > 0 {
			p.IsAllIn = false
		}
	}
	state.CurrentBet = 0
	state.RaiseCount = 0
}

// bestHands returns the players holding the strongest hand among the
// candidates, per the program's evaluation method. Ties return every
// tied player.
func bestHands(state *GameState, prog *Program, candidates []int) []int {
	score := func(hand []Card) float64 {
		if prog.HandEval == nil {
			return EvaluateHandStrength(hand)
		}
		switch prog.HandEval.Method {
		case EvalMethodPatternMatch:
			return float64(EvaluateHandPattern(hand, prog.HandEval))
		case EvalMethodPointTotal:
			total := HandPointTotal(hand)
			if prog.HandEval.BustThreshold > 0 && total > int(prog.HandEval.BustThreshold) {
				return -1
			}
			return float64(total)
		default:
			return EvaluateHandStrength(hand)
		}
	}

	best := make([]int, 0, 2)
	bestScore := 0.0
	for _, id := range candidates {
		s := score(state.Players[id].Hand)
		switch {
		case len(best) == 0 || s > bestScore:
			best = append(best[:0], id)
			bestScore = s
		case s == bestScore:
			best = append(best, id)
		}
	}
	return best
}

// AwardPot splits the pot evenly among winners, remainder to the first.
func AwardPot(state *GameState, winnerIDs []int) {
	if len(winnerIDs) == 0 || state.Pot == 0 {
		return
	}
	share := state.Pot / int64(len(winnerIDs))
	remainder := state.Pot % int64(len(winnerIDs))
	for i, id := range winnerIDs {
		state.Players[id].Chips += share
		if i == 0 {
			state.Players[id].Chips += remainder
		}
	}
	state.Pot = 0
}

// EvaluateHandStrength returns a 0-1 heuristic score from pair counts
// and high cards. Used when the program specifies no evaluation method.
func EvaluateHandStrength(hand []Card) float64 {
	if len(hand) == 0 {
		return 0.0
	}

	rankCounts := make(map[uint8]int)
	maxCount := 0
	highRank := uint8(0)
	for _, card := range hand {
		rankCounts[card.Rank]++
		if rankCounts[card.Rank] > maxCount {
			maxCount = rankCounts[card.Rank]
		}
		if card.Rank > highRank {
			highRank = card.Rank
		}
	}

	pairScore := float64(maxCount-1) * 0.2
	highCardScore := float64(highRank) / 12.0 * 0.4

	score := pairScore + highCardScore
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// HandPointTotal sums card point values blackjack-style: faces count
// ten, aces count eleven.
func HandPointTotal(hand []Card) int {
	total := 0
	for _, card := range hand {
		switch {
		case card.Rank >= 12: // Ace
			total += 11
		case card.Rank >= 8: // 10, J, Q, K
			total += 10
		default:
			total += int(card.Rank) + 2
		}
	}
	return total
}

// EvaluateHandPattern returns the priority of the best matching
// pattern, or 0 when nothing matches. Patterns are stored sorted by
// priority, highest first.
func EvaluateHandPattern(hand []Card, eval *HandEvaluation) uint8 {
	if eval == nil || eval.Method != EvalMethodPatternMatch || len(eval.Patterns) == 0 {
		return 0
	}
	for _, pattern := range eval.Patterns {
		if matchesPattern(hand, pattern) {
			return pattern.Priority
		}
	}
	return 0
}

func matchesPattern(hand []Card, p HandPattern) bool {
	if p.RequiredCount > 0 && len(hand) != int(p.RequiredCount) {
		return false
	}

	if p.SameSuitCount > 0 {
		suitCounts := make(map[uint8]int)
		maxSuit := 0
		for _, c := range hand {
			suitCounts[c.Suit]++
			if suitCounts[c.Suit] > maxSuit {
				maxSuit = suitCounts[c.Suit]
			}
		}
		if maxSuit < int(p.SameSuitCount) {
			return false
		}
	}

	if len(p.SameRankGroups) > 0 {
		rankCounts := make(map[uint8]int)
		for _, c := range hand {
			rankCounts[c.Rank]++
		}
		counts := make([]int, 0, len(rankCounts))
		for _, count := range rankCounts {
			counts = append(counts, count)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(counts)))
		for i, required := range p.SameRankGroups {
			if i >= len(counts) || counts[i] < int(required) {
				return false
			}
		}
	}

	if p.SequenceLength > 0 && !isSequence(hand, int(p.SequenceLength), p.SequenceWrap) {
		return false
	}

	return true
}

// isSequence reports whether the hand contains a run of consecutive
// ranks of the given length. wrap allows the ace-low run where the ace
// sits below the lowest rank.
func isSequence(hand []Card, length int, wrap bool) bool {
	if len(hand) < length {
		return false
	}

	rankSet := make(map[uint8]bool)
	for _, c := range hand {
		rankSet[c.Rank] = true
	}
	ranks := make([]int, 0, len(rankSet))
	for r := range rankSet {
		ranks = append(ranks, int(r))
	}
	sort.Ints(ranks)

	for i := 0; i <= len(ranks)-length; i++ {
		consecutive := true
		for j := 1; j < length; j++ {
			if ranks[i+j] != ranks[i]+j {
				consecutive = false
				break
			}
		}
		if consecutive {
			return true
		}
	}

	// Ace-low: ace (12) plus a run starting at the lowest rank.
	if wrap && rankSet[12] {
		for j := 0; j < length-1; j++ {
			if !rankSet[uint8(j)] {
				return false
			}
		}
		return true
	}

	return false
}
