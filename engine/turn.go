package engine

// AdvanceTurn moves to the next player. A single rule covers plain
// advancement, skips, extra turns and direction reversal: step by the
// current direction 1 + SkipCount times, wrapping modulo player
// count, then reset SkipCount.
//
// Pending skips are consumed in whatever direction is current at
// advancement time; a reverse fired earlier in the same turn changes
// who gets skipped.
func AdvanceTurn(state *GameState) {
	step := int(state.PlayDirection)
	next := int(state.CurrentPlayer)
	numPlayers := int(state.NumPlayers)

	for i := 0; i <= int(state.SkipCount); i++ {
		next = (next + step + numPlayers) % numPlayers
	}

	state.CurrentPlayer = uint8(next)
	state.SkipCount = 0
	state.TurnNumber++
}
