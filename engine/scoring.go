package engine

const anyMatch uint8 = 255

// applyScoring credits the player (and their team) for every scoring
// rule the card matches under the given trigger. Rules may carry
// negative points for avoidance games.
func applyScoring(state *GameState, prog *Program, player uint8, card Card, trigger uint8) {
	for _, rule := range prog.Scoring {
		if rule.Trigger != trigger {
			continue
		}
		if rule.Suit != anyMatch && rule.Suit != card.Suit {
			continue
		}
		if rule.Rank != anyMatch && rule.Rank != card.Rank {
			continue
		}
		AddScore(state, player, int32(rule.Points))
	}
}

// AddScore adjusts a player's score, mirroring the change into the
// team accumulator when teams are active.
func AddScore(state *GameState, player uint8, points int32) {
	state.Players[player].Score += points
	if team := state.Players[player].Team; team != NoTeam && int(team) < len(state.TeamScores) {
		state.TeamScores[team] += points
	}
}
