package engine

// CheckWinConditions evaluates the program's win conditions in
// declaration order and returns true when one is satisfied, setting
// WinnerID (individual games) or WinningTeam (team games). Conditions
// past the first satisfied one are never consulted.
func CheckWinConditions(state *GameState, prog *Program) bool {
	if state.WinnerID != NoWinner || state.WinningTeam != NoWinner {
		return true
	}

	for _, wc := range prog.WinConditions {
		if wc.Trigger == TriggerHandEnd && !allHandsEmpty(state) {
			continue
		}
		if winner, ok := evaluateWinCondition(state, wc); ok {
			declareWinner(state, winner)
			return true
		}
	}
	return false
}

func allHandsEmpty(state *GameState) bool {
	for i := range state.Players {
		if len(state.Players[i].Hand) > 0 {
			return false
		}
	}
	return true
}

func evaluateWinCondition(state *GameState, wc WinCondition) (int8, bool) {
	switch wc.WinType {
	case WinTypeEmptyHand:
		for i := range state.Players {
			if len(state.Players[i].Hand) == 0 {
				return int8(i), true
			}
		}

	case WinTypeScore:
		return evaluateScoreCondition(state, wc)

	case WinTypeCaptureAll:
		total := state.CardCount()
		for i := range state.Players {
			if total > 0 && len(state.Players[i].Hand) == total {
				return int8(i), true
			}
		}

	case WinTypeMostTricks:
		if allHandsEmpty(state) {
			return extremeTricks(state, true), true
		}

	case WinTypeFewestTricks:
		if allHandsEmpty(state) {
			return extremeTricks(state, false), true
		}

	case WinTypeAllHandsEmpty:
		if allHandsEmpty(state) {
			return extremeScore(state, wc.Comparison == CompareAtOrAbove), true
		}

	case WinTypeMostChips:
		for i := range state.Players {
			if state.Players[i].Chips >= int64(wc.Threshold) {
				return int8(i), true
			}
		}
		// Everyone else busted.
		funded := -1
		for i := range state.Players {
			if state.Players[i].Chips > 0 {
				if funded >= 0 {
					funded = -1
					break
				}
				funded = i
			}
		}
		if funded >= 0 && state.Pot == 0 {
			return int8(funded), true
		}
	}

	return NoWinner, false
}

// evaluateScoreCondition handles threshold races in both directions.
// At-or-above is a straight race to the threshold. At-or-below is the
// avoidance form: the condition arms when anyone reaches the
// threshold, and the lowest score wins.
func evaluateScoreCondition(state *GameState, wc WinCondition) (int8, bool) {
	if state.IsTeamGame() {
		return evaluateTeamScoreCondition(state, wc)
	}

	if wc.Comparison == CompareAtOrAbove {
		for i := range state.Players {
			if state.Players[i].Score >= int32(wc.Threshold) {
				return int8(i), true
			}
		}
		return NoWinner, false
	}

	armed := false
	for i := range state.Players {
		if state.Players[i].Score >= int32(wc.Threshold) {
			armed = true
			break
		}
	}
	if !armed {
		return NoWinner, false
	}
	return extremeScore(state, false), true
}

// evaluateTeamScoreCondition races on the team accumulators instead of
// individual scores. The reported winner is the first member of the
// winning team; declareWinner records the team itself.
func evaluateTeamScoreCondition(state *GameState, wc WinCondition) (int8, bool) {
	winningTeam := -1
	if wc.Comparison == CompareAtOrAbove {
		for t, score := range state.TeamScores {
			if score >= int32(wc.Threshold) {
				winningTeam = t
				break
			}
		}
	} else {
		armed := false
		for _, score := range state.TeamScores {
			if score >= int32(wc.Threshold) {
				armed = true
				break
			}
		}
		if armed {
			winningTeam = 0
			for t := 1; t < len(state.TeamScores); t++ {
				if state.TeamScores[t] < state.TeamScores[winningTeam] {
					winningTeam = t
				}
			}
		}
	}
	if winningTeam < 0 {
		return NoWinner, false
	}
	for i := range state.Players {
		if state.Players[i].Team == int8(winningTeam) {
			return int8(i), true
		}
	}
	return NoWinner, false
}

func extremeScore(state *GameState, highest bool) int8 {
	best := 0
	for i := 1; i < len(state.Players); i++ {
		if highest && state.Players[i].Score > state.Players[best].Score {
			best = i
		}
		if !highest && state.Players[i].Score < state.Players[best].Score {
			best = i
		}
	}
	return int8(best)
}

func extremeTricks(state *GameState, most bool) int8 {
	best := 0
	for i := 1; i < len(state.Players); i++ {
		if most && state.Players[i].TricksWon > state.Players[best].TricksWon {
			best = i
		}
		if !most && state.Players[i].TricksWon < state.Players[best].TricksWon {
			best = i
		}
	}
	return int8(best)
}

// declareWinner records the result. Team games record the winning
// team and leave WinnerID at its sentinel; individual games do the
// opposite. Exactly one of the two is ever set. A winner outside
// every roster still wins individually: rosters need not cover the
// whole table.
func declareWinner(state *GameState, winner int8) {
	if state.IsTeamGame() && winner >= 0 && state.Players[winner].Team != NoTeam {
		state.WinningTeam = state.Players[winner].Team
		return
	}
	state.WinnerID = winner
}
