package engine

import (
	"fmt"
)

// ApplyMove mutates state according to move. Moves must come from
// GenerateLegalMoves on this exact state; anything else returns an
// error and may leave the state partially modified.
//
// Rank-triggered effects fire before turn advancement, so a skip or
// reverse lands on the turn that follows the triggering play.
func ApplyMove(state *GameState, prog *Program, move LegalMove) error {
	if move.PhaseIndex < 0 || move.PhaseIndex >= len(prog.Phases) {
		return fmt.Errorf("phase index %d out of range", move.PhaseIndex)
	}

	switch ph := prog.Phases[move.PhaseIndex].(type) {
	case *DrawPhase:
		applyDraw(state, ph)
		AdvanceTurn(state)

	case *PlayPhase:
		if err := applyPlay(state, prog, move, ph); err != nil {
			return err
		}
		AdvanceTurn(state)

	case *DiscardPhase:
		if move.CardIndex < 0 || move.CardIndex >= len(state.Players[state.CurrentPlayer].Hand) {
			return fmt.Errorf("discard index %d out of range", move.CardIndex)
		}
		state.PlayCard(state.CurrentPlayer, move.CardIndex, LocationDiscard)
		AdvanceTurn(state)

	case *TrickPhase:
		if err := applyTrickPlay(state, prog, move, ph); err != nil {
			return err
		}

	case *BettingPhase:
		if err := ApplyBettingAction(state, move.Bet, ph); err != nil {
			return err
		}
		if BettingRoundComplete(state) {
			ResolveShowdown(state, prog)
		}
		AdvanceTurn(state)

	case *CapturePhase:
		if err := applyCapturePlay(state, prog, move, ph); err != nil {
			return err
		}
		AdvanceTurn(state)

	default:
		return fmt.Errorf("unhandled phase kind %d", prog.Phases[move.PhaseIndex].Kind())
	}

	return nil
}

func applyDraw(state *GameState, ph *DrawPhase) {
	// Drawing from an empty pile is a no-op, not an error. Mandatory
	// draws rely on this.
	for i := 0; i < int(ph.Count); i++ {
		if !state.DrawCard(state.CurrentPlayer, ph.Source) {
			break
		}
	}
}

func applyPlay(state *GameState, prog *Program, move LegalMove, ph *PlayPhase) error {
	player := state.CurrentPlayer
	if move.CardIndex < 0 || move.CardIndex >= len(state.Players[player].Hand) {
		return fmt.Errorf("play index %d out of range", move.CardIndex)
	}
	card := state.Players[player].Hand[move.CardIndex]
	if !state.PlayCard(player, move.CardIndex, ph.Target) {
		return fmt.Errorf("play to location %d failed", ph.Target)
	}

	applyScoring(state, prog, player, card, ScoreTriggerPlay)
	if effect, ok := prog.Effects[card.Rank]; ok {
		ApplyEffect(state, &effect)
	}
	checkHandEndScoring(state, prog, player)
	return nil
}

func applyTrickPlay(state *GameState, prog *Program, move LegalMove, ph *TrickPhase) error {
	player := state.CurrentPlayer
	hand := state.Players[player].Hand
	if move.CardIndex < 0 || move.CardIndex >= len(hand) {
		return fmt.Errorf("trick play index %d out of range", move.CardIndex)
	}
	card := hand[move.CardIndex]
	state.Players[player].Hand = append(hand[:move.CardIndex], hand[move.CardIndex+1:]...)

	if len(state.CurrentTrick) == 0 {
		state.TrickLeader = player
	}
	state.CurrentTrick = append(state.CurrentTrick, TrickCard{PlayerID: player, Card: card})
	if ph.BreakingSuit != 255 && card.Suit == ph.BreakingSuit {
		state.SuitBroken = true
	}

	if len(state.CurrentTrick) >= int(state.NumPlayers) {
		resolveTrick(state, prog, ph)
		checkHandEndScoring(state, prog, player)
		return nil
	}

	AdvanceTurn(state)
	checkHandEndScoring(state, prog, player)
	return nil
}

// resolveTrick determines the trick winner, moves the trick to the
// discard pile, and gives the winner the lead. Trump beats lead suit;
// within the deciding suit the high (or low) rank wins per the phase.
func resolveTrick(state *GameState, prog *Program, ph *TrickPhase) {
	leadSuit := state.CurrentTrick[0].Card.Suit
	winnerIdx := 0

	beats := func(a, b Card) bool {
		aTrump := ph.TrumpSuit != 255 && a.Suit == ph.TrumpSuit
		bTrump := ph.TrumpSuit != 255 && b.Suit == ph.TrumpSuit
		if aTrump != bTrump {
			return aTrump
		}
		if !aTrump {
			aLead := a.Suit == leadSuit
			bLead := b.Suit == leadSuit
			if aLead != bLead {
				return aLead
			}
			if !aLead {
				return false
			}
		}
		if ph.HighCardWins {
			return a.Rank > b.Rank
		}
		return a.Rank < b.Rank
	}

	for i := 1; i < len(state.CurrentTrick); i++ {
		if beats(state.CurrentTrick[i].Card, state.CurrentTrick[winnerIdx].Card) {
			winnerIdx = i
		}
	}

	winner := state.CurrentTrick[winnerIdx].PlayerID
	state.Players[winner].TricksWon++

	for _, tc := range state.CurrentTrick {
		applyScoring(state, prog, winner, tc.Card, ScoreTriggerTrick)
		state.Discard = append(state.Discard, tc.Card)
	}
	state.CurrentTrick = state.CurrentTrick[:0]

	// Winner leads the next trick; pending skips do not displace the
	// lead.
	state.CurrentPlayer = winner
	state.TrickLeader = winner
	state.SkipCount = 0
	state.TurnNumber++
}

// applyCapturePlay handles a capture-battle contribution. A play whose
// rank matches the top of the discard pile captures both cards to the
// mover's hand instead of joining the battle. Otherwise the card joins
// the battle round, which resolves once every player still holding
// cards has contributed.
func applyCapturePlay(state *GameState, prog *Program, move LegalMove, ph *CapturePhase) error {
	player := state.CurrentPlayer
	hand := state.Players[player].Hand
	if move.CardIndex < 0 || move.CardIndex >= len(hand) {
		return fmt.Errorf("capture play index %d out of range", move.CardIndex)
	}
	card := hand[move.CardIndex]
	state.Players[player].Hand = append(hand[:move.CardIndex], hand[move.CardIndex+1:]...)

	if n := len(state.Discard); n > 0 && state.Discard[n-1].Rank == card.Rank {
		top := state.Discard[n-1]
		state.Discard = state.Discard[:n-1]
		state.Players[player].Hand = append(state.Players[player].Hand, top, card)
		applyScoring(state, prog, player, top, ScoreTriggerCapture)
		applyScoring(state, prog, player, card, ScoreTriggerCapture)
		if effect, ok := prog.Effects[card.Rank]; ok {
			ApplyEffect(state, &effect)
		}
		return nil
	}

	state.BattleRound = append(state.BattleRound, TrickCard{PlayerID: player, Card: card})
	if effect, ok := prog.Effects[card.Rank]; ok {
		ApplyEffect(state, &effect)
	}

	if battleComplete(state) {
		resolveBattle(state, prog, ph)
	}
	return nil
}

// battleComplete reports whether everyone who can still contribute has.
func battleComplete(state *GameState) bool {
	for i := range state.Players {
		contributed := false
		for _, bc := range state.BattleRound {
			if int(bc.PlayerID) == i {
				contributed = true
				break
			}
		}
		if !contributed && len(state.Players[i].Hand) > 0 {
			return false
		}
	}
	return len(state.BattleRound) > 0
}

// resolveBattle decides the battle by extreme rank. A decisive winner
// takes the round plus any carried pile into hand. Ties resolve per
// the phase: either the most recent tied contributor wins, or the
// whole round carries forward to sweeten the next battle.
func resolveBattle(state *GameState, prog *Program, ph *CapturePhase) {
	bestIdx := 0
	tie := false
	for i := 1; i < len(state.BattleRound); i++ {
		a := state.BattleRound[i].Card.Rank
		b := state.BattleRound[bestIdx].Card.Rank
		switch {
		case a == b:
			tie = true
			if ph.TieBreak == CaptureTieMoverWins {
				bestIdx = i
			}
		case ph.HighCardWins && a > b, !ph.HighCardWins && a < b:
			bestIdx = i
			tie = false
		}
	}

	if tie && ph.TieBreak == CaptureTiePileStays {
		for _, bc := range state.BattleRound {
			state.BattleCarry = append(state.BattleCarry, bc.Card)
		}
		state.BattleRound = state.BattleRound[:0]
		return
	}

	winner := state.BattleRound[bestIdx].PlayerID
	for _, bc := range state.BattleRound {
		state.Players[winner].Hand = append(state.Players[winner].Hand, bc.Card)
		applyScoring(state, prog, winner, bc.Card, ScoreTriggerCapture)
	}
	for _, c := range state.BattleCarry {
		state.Players[winner].Hand = append(state.Players[winner].Hand, c)
		applyScoring(state, prog, winner, c, ScoreTriggerCapture)
	}
	state.BattleRound = state.BattleRound[:0]
	state.BattleCarry = state.BattleCarry[:0]
}

// checkHandEndScoring fires hand-end scoring the moment the mover goes
// out, charging every card still held by the other players. Games with
// hand-end rules normally end on the same turn via a win condition, so
// this fires once.
func checkHandEndScoring(state *GameState, prog *Program, mover uint8) {
	if len(state.Players[mover].Hand) > 0 {
		return
	}
	hasHandEnd := false
	for _, rule := range prog.Scoring {
		if rule.Trigger == ScoreTriggerHandEnd {
			hasHandEnd = true
			break
		}
	}
	if !hasHandEnd {
		return
	}
	for i := range state.Players {
		for _, card := range state.Players[i].Hand {
			applyScoring(state, prog, uint8(i), card, ScoreTriggerHandEnd)
		}
	}
}
