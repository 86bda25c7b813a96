package engine

// TensionMetrics tracks how contested a game was while it ran.
type TensionMetrics struct {
	LeadChanges   int     // Number of times the leader switched
	DecisiveTurn  int     // Turn when the winner took permanent lead
	ClosestMargin float32 // Smallest normalized gap between 1st and 2nd (0 = tied)
	TotalTurns    int

	// Internal tracking (not serialized)
	currentLeader int
	leaderHistory []int
}

// LeaderDetector answers "who is winning right now" for one family of
// games.
type LeaderDetector interface {
	GetLeader(state *GameState) int     // Player ID or -1 for tie
	GetMargin(state *GameState) float32 // Normalized gap (0-1), 0 = tied
}

// NewTensionMetrics creates an initialized tension tracker.
func NewTensionMetrics(numPlayers int) *TensionMetrics {
	return &TensionMetrics{
		currentLeader: -1,
		ClosestMargin: 1.0,
		leaderHistory: make([]int, 0, 100),
	}
}

// Update samples the leader after one turn.
func (tm *TensionMetrics) Update(state *GameState, detector LeaderDetector) {
	leader := detector.GetLeader(state)
	if leader != -1 && leader != tm.currentLeader {
		if tm.currentLeader != -1 {
			tm.LeadChanges++
		}
		tm.currentLeader = leader
	}
	tm.leaderHistory = append(tm.leaderHistory, leader)

	margin := detector.GetMargin(state)
	if margin < tm.ClosestMargin {
		tm.ClosestMargin = margin
	}
	tm.TotalTurns++
}

// Finalize computes the decisive turn: the first turn from which the
// winner led without interruption to the end. Ties in the history do
// not break a lead; a different leader does. A drawn game is decided
// on its final turn.
func (tm *TensionMetrics) Finalize(winner int) {
	if winner < 0 || tm.TotalTurns == 0 {
		tm.DecisiveTurn = tm.TotalTurns
		return
	}

	decisive := tm.TotalTurns
	for i := len(tm.leaderHistory) - 1; i >= 0; i-- {
		if tm.leaderHistory[i] != winner && tm.leaderHistory[i] != -1 {
			break
		}
		if tm.leaderHistory[i] == winner {
			decisive = i
		}
	}
	tm.DecisiveTurn = decisive
}

// DecisiveTurnPct returns how late the game was decided, 0-1.
func (tm *TensionMetrics) DecisiveTurnPct() float64 {
	if tm.TotalTurns == 0 {
		return 1.0
	}
	return float64(tm.DecisiveTurn) / float64(tm.TotalTurns)
}

// ScoreLeaderDetector covers score-race games. Higher score wins.
type ScoreLeaderDetector struct{}

func (d *ScoreLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	maxScore := state.Players[0].Score
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		if state.Players[i].Score > maxScore {
			maxScore = state.Players[i].Score
			leader = i
			tied = false
		} else if state.Players[i].Score == maxScore {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *ScoreLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	var first, second int32 = 0, 0
	for i := range state.Players {
		score := state.Players[i].Score
		if score > first {
			second = first
			first = score
		} else if score > second {
			second = score
		}
	}
	if first == 0 {
		return 0
	}
	return float32(first-second) / float32(first)
}

// HandSizeLeaderDetector covers shedding games. Fewer cards wins.
type HandSizeLeaderDetector struct{}

func (d *HandSizeLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	minCards := len(state.Players[0].Hand)
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		cards := len(state.Players[i].Hand)
		if cards < minCards {
			minCards = cards
			leader = i
			tied = false
		} else if cards == minCards {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *HandSizeLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	first, second := 999, 999
	maxCards := 0
	for i := range state.Players {
		cards := len(state.Players[i].Hand)
		if cards > maxCards {
			maxCards = cards
		}
		if cards < first {
			second = first
			first = cards
		} else if cards < second {
			second = cards
		}
	}
	if maxCards == 0 || second == 999 {
		return 0
	}
	return float32(second-first) / float32(maxCards)
}

// TrickLeaderDetector covers trick-taking games. Most tricks wins.
type TrickLeaderDetector struct{}

func (d *TrickLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	maxTricks := state.Players[0].TricksWon
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		tricks := state.Players[i].TricksWon
		if tricks > maxTricks {
			maxTricks = tricks
			leader = i
			tied = false
		} else if tricks == maxTricks {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *TrickLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	var first, second uint8
	for i := range state.Players {
		tricks := state.Players[i].TricksWon
		if tricks > first {
			second = first
			first = tricks
		} else if tricks > second {
			second = tricks
		}
	}
	if first == 0 {
		return 0
	}
	return float32(first-second) / float32(first)
}

// TrickAvoidanceLeaderDetector covers avoidance games where taking
// fewer tricks (or points) is winning.
type TrickAvoidanceLeaderDetector struct{}

func (d *TrickAvoidanceLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	minTricks := state.Players[0].TricksWon
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		tricks := state.Players[i].TricksWon
		if tricks < minTricks {
			minTricks = tricks
			leader = i
			tied = false
		} else if tricks == minTricks {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *TrickAvoidanceLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	first, second := uint8(255), uint8(255)
	var total uint8
	for i := range state.Players {
		tricks := state.Players[i].TricksWon
		total += tricks
		if tricks < first {
			second = first
			first = tricks
		} else if tricks < second {
			second = tricks
		}
	}
	if total == 0 || second == 255 {
		return 0
	}
	return float32(second-first) / float32(total)
}

// ChipLeaderDetector covers betting games. Most chips wins.
type ChipLeaderDetector struct{}

func (d *ChipLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	maxChips := state.Players[0].Chips
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		chips := state.Players[i].Chips
		if chips > maxChips {
			maxChips = chips
			leader = i
			tied = false
		} else if chips == maxChips {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *ChipLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	var first, second int64
	for i := range state.Players {
		chips := state.Players[i].Chips
		if chips > first {
			second = first
			first = chips
		} else if chips > second {
			second = chips
		}
	}
	if first == 0 {
		return 0
	}
	return float32(first-second) / float32(first)
}

// CaptureLeaderDetector covers accumulation games where holding the
// most cards is winning.
type CaptureLeaderDetector struct{}

func (d *CaptureLeaderDetector) GetLeader(state *GameState) int {
	if len(state.Players) < 2 {
		return -1
	}
	maxCards := len(state.Players[0].Hand)
	leader := 0
	tied := false
	for i := 1; i < len(state.Players); i++ {
		cards := len(state.Players[i].Hand)
		if cards > maxCards {
			maxCards = cards
			leader = i
			tied = false
		} else if cards == maxCards {
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

func (d *CaptureLeaderDetector) GetMargin(state *GameState) float32 {
	if len(state.Players) < 2 {
		return 0
	}
	first, second := 0, 0
	for i := range state.Players {
		cards := len(state.Players[i].Hand)
		if cards > first {
			second = first
			first = cards
		} else if cards > second {
			second = cards
		}
	}
	if first == 0 {
		return 0
	}
	return float32(first-second) / float32(first)
}

// SelectLeaderDetector picks the detector that matches how the program
// is won. The first win condition decides; phase types are only a
// fallback when no win condition gives a signal.
func SelectLeaderDetector(prog *Program) LeaderDetector {
	for _, wc := range prog.WinConditions {
		switch wc.WinType {
		case WinTypeEmptyHand, WinTypeAllHandsEmpty:
			return &HandSizeLeaderDetector{}
		case WinTypeScore:
			if wc.Comparison == CompareAtOrBelow {
				return &TrickAvoidanceLeaderDetector{}
			}
			return &ScoreLeaderDetector{}
		case WinTypeCaptureAll:
			return &CaptureLeaderDetector{}
		case WinTypeMostTricks:
			return &TrickLeaderDetector{}
		case WinTypeFewestTricks:
			return &TrickAvoidanceLeaderDetector{}
		case WinTypeMostChips:
			return &ChipLeaderDetector{}
		}
	}

	if prog.HasPhase(PhaseKindBetting) {
		return &ChipLeaderDetector{}
	}
	if prog.HasPhase(PhaseKindTrick) {
		return &TrickLeaderDetector{}
	}
	return &ScoreLeaderDetector{}
}
