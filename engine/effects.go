package engine

// Effect type constants
const (
	EffectSkipNext uint8 = iota
	EffectReverse
	EffectDrawCards
	EffectExtraTurn
	EffectForceDiscard
)

// Target selector constants
const (
	TargetNextPlayer uint8 = iota
	TargetPrevPlayer
	TargetRandomOpponent
	TargetAllOpponents
)

// ApplyEffect executes a rank-triggered effect on the game state.
// Unknown effect types are ignored so newer rule programs keep
// running on older engines.
func ApplyEffect(state *GameState, effect *SpecialEffect) {
	switch effect.EffectType {
	case EffectSkipNext:
		state.SkipCount += effect.Magnitude
		capSkipCount(state)

	case EffectReverse:
		state.PlayDirection *= -1

	case EffectDrawCards:
		applyToTargets(state, effect.Target, func(targetID int) {
			// Draw up to Magnitude cards or until the deck empties,
			// whichever comes first. A short deck is not an error.
			for i := uint8(0); i < effect.Magnitude && len(state.Deck) > 0; i++ {
				state.DrawCard(uint8(targetID), LocationDeck)
			}
		})

	case EffectExtraTurn:
		// Skip everyone else = current player goes again.
		state.SkipCount = state.NumPlayers - 1

	case EffectForceDiscard:
		applyToTargets(state, effect.Target, func(targetID int) {
			hand := &state.Players[targetID].Hand
			toDiscard := int(effect.Magnitude)
			if toDiscard > len(*hand) {
				toDiscard = len(*hand)
			}
			for i := 0; i < toDiscard; i++ {
				card := (*hand)[len(*hand)-1]
				*hand = (*hand)[:len(*hand)-1]
				state.Discard = append(state.Discard, card)
			}
		})

	default:
		// Unknown effect type - ignore for forward compatibility
	}
}

func capSkipCount(state *GameState) {
	maxSkip := state.NumPlayers - 1
	if state.SkipCount > maxSkip {
		state.SkipCount = maxSkip
	}
}

// resolveTarget determines which player an effect targets.
// Returns -1 for TargetAllOpponents to signal the caller must loop.
func resolveTarget(state *GameState, target uint8) int {
	current := int(state.CurrentPlayer)
	numPlayers := int(state.NumPlayers)
	direction := int(state.PlayDirection)

	switch target {
	case TargetNextPlayer:
		return (current + direction + numPlayers) % numPlayers
	case TargetPrevPlayer:
		return (current - direction + numPlayers) % numPlayers
	case TargetRandomOpponent:
		if numPlayers < 2 {
			return current
		}
		// Uniform over the numPlayers-1 seats that are not current.
		pick := state.Rand.Intn(numPlayers - 1)
		if pick >= current {
			pick++
		}
		return pick
	case TargetAllOpponents:
		return -1
	default:
		return (current + 1) % numPlayers
	}
}

// applyToTargets handles a single target or TargetAllOpponents.
func applyToTargets(state *GameState, target uint8, action func(int)) {
	targetID := resolveTarget(state, target)
	if targetID == -1 {
		for i := 0; i < int(state.NumPlayers); i++ {
			if i != int(state.CurrentPlayer) {
				action(i)
			}
		}
	} else {
		action(targetID)
	}
}
