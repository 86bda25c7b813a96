package engine

// BetAction is the discrete action tag carried by betting moves.
type BetAction int8

const (
	BetNone BetAction = iota - 1
	BetCheck
	BetBet
	BetCall
	BetRaise
	BetAllIn
	BetFold
)

// LegalMove represents a possible action. A move is only valid
// relative to the exact state it was generated from.
type LegalMove struct {
	PhaseIndex int
	CardIndex  int // -1 if not card-specific
	TargetLoc  Location
	Bet        BetAction // BetNone unless a betting move
}

// GenerateLegalMoves returns all valid moves for the current player
// across the phases open this turn. Never mutates state; calling it
// twice on the same state yields the same move set. An empty result
// is a valid outcome meaning "must pass" or "stuck".
func GenerateLegalMoves(state *GameState, prog *Program) []LegalMove {
	moves := make([]LegalMove, 0, 10)
	currentPlayer := state.CurrentPlayer

	for phaseIdx, phase := range prog.Phases {
		switch ph := phase.(type) {
		case *DrawPhase:
			if ph.Condition != nil && !EvaluateCondition(state, currentPlayer, ph.Condition) {
				continue
			}
			canDraw := false
			switch ph.Source {
			case LocationDeck:
				canDraw = len(state.Deck) > 0
			case LocationDiscard:
				canDraw = len(state.Discard) > 0
			case LocationOpponentHand:
				opponentID := (currentPlayer + 1) % state.NumPlayers
				canDraw = len(state.Players[opponentID].Hand) > 0
			}
			// A mandatory draw from an empty pile is a no-op draw, not
			// an error, so it still appears as a legal move.
			if canDraw || ph.Mandatory {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  -1,
					TargetLoc:  ph.Source,
					Bet:        BetNone,
				})
			}

		case *PlayPhase:
			if ph.MinCards > 1 || ph.MaxCards < 1 {
				continue
			}
			for cardIdx, card := range state.Players[currentPlayer].Hand {
				if ph.Condition != nil && !EvaluateCardCondition(state, currentPlayer, card, ph.Condition) {
					continue
				}
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  cardIdx,
					TargetLoc:  ph.Target,
					Bet:        BetNone,
				})
			}

		case *DiscardPhase:
			for cardIdx := range state.Players[currentPlayer].Hand {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  cardIdx,
					TargetLoc:  LocationDiscard,
					Bet:        BetNone,
				})
			}

		case *TrickPhase:
			moves = appendTrickMoves(moves, state, phaseIdx, ph)

		case *BettingPhase:
			moves = appendBettingMoves(moves, state, phaseIdx, ph)

		case *CapturePhase:
			for cardIdx := range state.Players[currentPlayer].Hand {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  cardIdx,
					TargetLoc:  LocationTableau,
					Bet:        BetNone,
				})
			}
		}
	}

	return moves
}

// appendTrickMoves generates lead/follow moves for a trick phase.
func appendTrickMoves(moves []LegalMove, state *GameState, phaseIdx int, ph *TrickPhase) []LegalMove {
	currentPlayer := state.CurrentPlayer
	hand := state.Players[currentPlayer].Hand
	if len(hand) == 0 {
		return moves
	}

	isLeading := len(state.CurrentTrick) == 0

	if isLeading {
		for cardIdx, card := range hand {
			// Breaking suit cannot be led until broken, unless the
			// hand holds nothing else.
			if ph.BreakingSuit != 255 && card.Suit == ph.BreakingSuit && !state.SuitBroken {
				hasOther := false
				for _, c := range hand {
					if c.Suit != ph.BreakingSuit {
						hasOther = true
						break
					}
				}
				if hasOther {
					continue
				}
			}
			moves = append(moves, LegalMove{
				PhaseIndex: phaseIdx,
				CardIndex:  cardIdx,
				TargetLoc:  LocationTableau,
				Bet:        BetNone,
			})
		}
		return moves
	}

	leadSuit := state.CurrentTrick[0].Card.Suit
	mustFollow := false
	if ph.LeadSuitRequired {
		for _, card := range hand {
			if card.Suit == leadSuit {
				mustFollow = true
				break
			}
		}
	}

	for cardIdx, card := range hand {
		if mustFollow && card.Suit != leadSuit {
			continue
		}
		moves = append(moves, LegalMove{
			PhaseIndex: phaseIdx,
			CardIndex:  cardIdx,
			TargetLoc:  LocationTableau,
			Bet:        BetNone,
		})
	}
	return moves
}

// appendBettingMoves generates the betting actions open to the
// current player. Candidates depend on the gap between the player's
// bet and the table's bet, and on whether funds cover a call or the
// minimum bet; all-in substitutes when they do not.
func appendBettingMoves(moves []LegalMove, state *GameState, phaseIdx int, ph *BettingPhase) []LegalMove {
	player := &state.Players[state.CurrentPlayer]

	add := func(action BetAction) {
		moves = append(moves, LegalMove{
			PhaseIndex: phaseIdx,
			CardIndex:  -1,
			TargetLoc:  LocationTableau,
			Bet:        action,
		})
	}

	// Folded and all-in players pass with a no-op check so the round
	// can still advance past them.
	if player.HasFolded || player.IsAllIn || player.Chips <= 0 {
		add(BetCheck)
		return moves
	}

	toCall := state.CurrentBet - player.CurrentBet

	if toCall == 0 {
		add(BetCheck)
		if player.Chips >= int64(ph.MinBet) {
			add(BetBet)
		} else if player.Chips > 0 {
			add(BetAllIn)
		}
	} else {
		if player.Chips >= toCall {
			add(BetCall)
			if player.Chips >= toCall+int64(ph.MinBet) && state.RaiseCount < ph.MaxRaises {
				add(BetRaise)
			}
		} else if player.Chips > 0 {
			add(BetAllIn)
		}
		add(BetFold)
	}

	return moves
}
