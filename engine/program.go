package engine

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed size of the program header in bytes.
const HeaderSize = 44

// Phase kind constants
const (
	PhaseKindDraw    uint8 = 1
	PhaseKindPlay    uint8 = 2
	PhaseKindDiscard uint8 = 3
	PhaseKindTrick   uint8 = 4
	PhaseKindBetting uint8 = 5
	PhaseKindCapture uint8 = 6
)

// Win condition type constants
const (
	WinTypeEmptyHand     uint8 = 0
	WinTypeScore         uint8 = 1
	WinTypeCaptureAll    uint8 = 2
	WinTypeMostTricks    uint8 = 3
	WinTypeFewestTricks  uint8 = 4
	WinTypeAllHandsEmpty uint8 = 5
	WinTypeMostChips     uint8 = 6
)

// Win condition comparison directions
const (
	CompareAtOrAbove uint8 = 0
	CompareAtOrBelow uint8 = 1
)

// Win condition trigger modes
const (
	TriggerImmediate uint8 = 0
	TriggerHandEnd   uint8 = 1
)

// effectSectionMarker introduces the rank-indexed effect table.
const effectSectionMarker = 60

// ParseError reports a malformed or truncated rule program. It names
// the offending section so the caller can identify bad compilations.
type ParseError struct {
	Section string
	Offset  int
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rule program parse error in %s at offset %d: %s", e.Section, e.Offset, e.Reason)
}

func parseErr(section string, offset int, format string, args ...interface{}) error {
	return &ParseError{Section: section, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// ProgramHeader is the fixed-layout program header.
type ProgramHeader struct {
	Version        uint32
	ProgramIDHash  uint64
	PlayerCount    uint32
	MaxTurns       uint32
	SetupOffset    int32
	PhaseOffset    int32
	WinCondOffset  int32
	ScoringOffset  int32 // -1 = no scoring section
	HandEvalOffset int32 // -1 = no hand evaluation section
	TeamOffset     int32 // -1 = not a team game
}

// SetupRules defines initial dealing and stacks.
type SetupRules struct {
	CardsPerPlayer int
	DeckCount      int // Number of 52-card decks (1 or 2)
	DealToShared   int // Cards dealt face-up to the shared pile at start
	StartingChips  int64
}

// Phase is the closed set of turn phase variants.
type Phase interface {
	Kind() uint8
}

// DrawPhase draws cards from a source pile.
type DrawPhase struct {
	Source    Location
	Count     int
	Mandatory bool
	Condition []byte // nil = unconditional
}

func (p *DrawPhase) Kind() uint8 { return PhaseKindDraw }

// PlayPhase plays cards from hand to a target location.
type PlayPhase struct {
	Target    Location
	MinCards  int
	MaxCards  int
	Mandatory bool
	Condition []byte // Legality predicate over candidate cards, nil = any
}

func (p *PlayPhase) Kind() uint8 { return PhaseKindPlay }

// DiscardPhase discards cards from hand.
type DiscardPhase struct {
	Target    Location
	Count     int
	Mandatory bool
}

func (p *DiscardPhase) Kind() uint8 { return PhaseKindDiscard }

// TrickPhase is a multi-participant trick-taking phase.
type TrickPhase struct {
	LeadSuitRequired bool
	TrumpSuit        uint8 // 255 = none
	HighCardWins     bool
	BreakingSuit     uint8 // 255 = none
}

func (p *TrickPhase) Kind() uint8 { return PhaseKindTrick }

// BettingPhase is a poker-style betting round.
type BettingPhase struct {
	MinBet    int
	MaxRaises int
}

func (p *BettingPhase) Kind() uint8 { return PhaseKindBetting }

// Capture tie-break parameters
const (
	CaptureTieMoverWins uint8 = 0
	CaptureTiePileStays uint8 = 1
)

// CapturePhase is a two-participant battle over a shared pile. Each
// active participant contributes one card; the battle resolves once
// everyone has contributed.
type CapturePhase struct {
	HighCardWins bool
	TieBreak     uint8
}

func (p *CapturePhase) Kind() uint8 { return PhaseKindCapture }

// WinCondition is one configured way to end the game.
type WinCondition struct {
	WinType    uint8
	Threshold  int32
	Comparison uint8 // CompareAtOrAbove / CompareAtOrBelow
	Trigger    uint8 // TriggerImmediate / TriggerHandEnd
}

// SpecialEffect is one rank-indexed card effect.
type SpecialEffect struct {
	TriggerRank uint8
	EffectType  uint8
	Target      uint8
	Magnitude   uint8
}

// Scoring trigger constants
const (
	ScoreTriggerPlay    uint8 = 0
	ScoreTriggerTrick   uint8 = 1
	ScoreTriggerCapture uint8 = 2
	ScoreTriggerHandEnd uint8 = 3
)

// ScoringRule awards points for specific cards.
type ScoringRule struct {
	Suit    uint8 // 255 = any
	Rank    uint8 // 255 = any
	Points  int16
	Trigger uint8
}

// Hand evaluation methods
const (
	EvalMethodNone         uint8 = 0
	EvalMethodHighCard     uint8 = 1
	EvalMethodPointTotal   uint8 = 2
	EvalMethodPatternMatch uint8 = 3
)

// HandPattern is one poker-style hand shape.
type HandPattern struct {
	Priority       uint8
	RequiredCount  uint8
	SameSuitCount  uint8
	SequenceLength uint8
	SequenceWrap   bool
	SameRankGroups []uint8
}

// HandEvaluation configures final-hand comparison.
type HandEvaluation struct {
	Method        uint8
	TargetValue   uint8 // For point-total games (e.g. 21)
	BustThreshold uint8
	Patterns      []HandPattern // Sorted by priority, highest first
}

// Program is a fully parsed, immutable rule program. The engine never
// mutates it; one Program is shared by all workers in a batch.
type Program struct {
	Header        ProgramHeader
	Setup         SetupRules
	Phases        []Phase
	WinConditions []WinCondition
	// Effects maps rank to at most one effect. Later entries for the
	// same rank overwrite earlier ones; this keeps lookup O(1) and the
	// search space simple.
	Effects  map[uint8]SpecialEffect
	Scoring  []ScoringRule
	HandEval *HandEvaluation
	Teams    [][]int // nil unless team mode
}

// TeamMode reports whether win conditions evaluate team aggregates.
func (p *Program) TeamMode() bool { return len(p.Teams) > 0 }

// HasPhase reports whether any phase of the given kind is configured.
func (p *Program) HasPhase(kind uint8) bool {
	for _, ph := range p.Phases {
		if ph.Kind() == kind {
			return true
		}
	}
	return false
}

// ParseProgram parses a serialized rule program. Every offset and
// length is bounds-checked; unknown trailing sections are ignored for
// forward compatibility.
func ParseProgram(data []byte) (*Program, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	prog := &Program{Header: *header}

	if err := prog.parseSetup(data); err != nil {
		return nil, err
	}
	if err := prog.parsePhases(data); err != nil {
		return nil, err
	}
	end, err := prog.parseWinConditions(data)
	if err != nil {
		return nil, err
	}
	end, err = prog.parseEffects(data, end)
	if err != nil {
		return nil, err
	}
	if err := prog.parseScoring(data); err != nil {
		return nil, err
	}
	if err := prog.parseHandEval(data); err != nil {
		return nil, err
	}
	if err := prog.parseTeams(data); err != nil {
		return nil, err
	}

	if prog.TeamMode() {
		if err := prog.validateTeams(); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

func parseHeader(data []byte) (*ProgramHeader, error) {
	if len(data) < HeaderSize {
		return nil, parseErr("header", 0, "program too short: %d < %d bytes", len(data), HeaderSize)
	}

	h := &ProgramHeader{}
	h.Version = binary.BigEndian.Uint32(data[0:4])
	h.ProgramIDHash = binary.BigEndian.Uint64(data[4:12])
	h.PlayerCount = binary.BigEndian.Uint32(data[12:16])
	h.MaxTurns = binary.BigEndian.Uint32(data[16:20])
	h.SetupOffset = int32(binary.BigEndian.Uint32(data[20:24]))
	h.PhaseOffset = int32(binary.BigEndian.Uint32(data[24:28]))
	h.WinCondOffset = int32(binary.BigEndian.Uint32(data[28:32]))
	h.ScoringOffset = int32(binary.BigEndian.Uint32(data[32:36]))
	h.HandEvalOffset = int32(binary.BigEndian.Uint32(data[36:40]))
	h.TeamOffset = int32(binary.BigEndian.Uint32(data[40:44]))

	if h.PlayerCount < 2 || h.PlayerCount > 8 {
		return nil, parseErr("header", 12, "player count %d outside 2..8", h.PlayerCount)
	}
	if h.MaxTurns == 0 {
		return nil, parseErr("header", 16, "max turns must be positive")
	}

	return h, nil
}

// sectionStart validates a section offset against the buffer and the
// minimum bytes the section needs.
func sectionStart(data []byte, section string, offset int32, need int) (int, error) {
	off := int(offset)
	if off < HeaderSize || off+need > len(data) {
		return 0, parseErr(section, off, "offset out of bounds (need %d bytes, have %d)", need, len(data)-off)
	}
	return off, nil
}

func (p *Program) parseSetup(data []byte) error {
	off, err := sectionStart(data, "setup", p.Header.SetupOffset, 13)
	if err != nil {
		return err
	}

	p.Setup.CardsPerPlayer = int(binary.BigEndian.Uint32(data[off : off+4]))
	p.Setup.DeckCount = int(data[off+4])
	p.Setup.DealToShared = int(binary.BigEndian.Uint32(data[off+5 : off+9]))
	p.Setup.StartingChips = int64(binary.BigEndian.Uint32(data[off+9 : off+13]))

	if p.Setup.DeckCount < 1 || p.Setup.DeckCount > 2 {
		return parseErr("setup", off+4, "deck count %d outside 1..2", p.Setup.DeckCount)
	}
	deckSize := p.Setup.DeckCount * 52
	if p.Setup.CardsPerPlayer*int(p.Header.PlayerCount)+p.Setup.DealToShared > deckSize {
		return parseErr("setup", off, "deal requires more than %d cards", deckSize)
	}

	return nil
}

func (p *Program) parsePhases(data []byte) error {
	off, err := sectionStart(data, "phases", p.Header.PhaseOffset, 4)
	if err != nil {
		return err
	}

	count := int(binary.BigEndian.Uint32(data[off : off+4]))
	off += 4
	if count == 0 {
		return parseErr("phases", off, "phase list is empty")
	}

	p.Phases = make([]Phase, 0, count)
	for i := 0; i < count; i++ {
		if off >= len(data) {
			return parseErr("phases", off, "truncated before phase %d of %d", i+1, count)
		}
		kind := data[off]
		off++

		var phase Phase
		switch kind {
		case PhaseKindDraw:
			if off+7 > len(data) {
				return parseErr("phases", off, "truncated draw phase")
			}
			dp := &DrawPhase{
				Source:    Location(data[off]),
				Count:     int(binary.BigEndian.Uint32(data[off+1 : off+5])),
				Mandatory: data[off+5] == 1,
			}
			hasCond := data[off+6] == 1
			off += 7
			if hasCond {
				if off+conditionSize > len(data) {
					return parseErr("phases", off, "truncated draw phase condition")
				}
				dp.Condition = cloneBytes(data[off : off+conditionSize])
				off += conditionSize
			}
			phase = dp

		case PhaseKindPlay:
			if off+8 > len(data) {
				return parseErr("phases", off, "truncated play phase")
			}
			pp := &PlayPhase{
				Target:    Location(data[off]),
				MinCards:  int(data[off+1]),
				MaxCards:  int(data[off+2]),
				Mandatory: data[off+3] == 1,
			}
			condLen := int(binary.BigEndian.Uint32(data[off+4 : off+8]))
			off += 8
			if condLen > 0 {
				if off+condLen > len(data) {
					return parseErr("phases", off, "play condition exceeds program length")
				}
				pp.Condition = cloneBytes(data[off : off+condLen])
				off += condLen
			}
			phase = pp

		case PhaseKindDiscard:
			if off+6 > len(data) {
				return parseErr("phases", off, "truncated discard phase")
			}
			phase = &DiscardPhase{
				Target:    Location(data[off]),
				Count:     int(binary.BigEndian.Uint32(data[off+1 : off+5])),
				Mandatory: data[off+5] == 1,
			}
			off += 6

		case PhaseKindTrick:
			if off+4 > len(data) {
				return parseErr("phases", off, "truncated trick phase")
			}
			phase = &TrickPhase{
				LeadSuitRequired: data[off] == 1,
				TrumpSuit:        data[off+1],
				HighCardWins:     data[off+2] == 1,
				BreakingSuit:     data[off+3],
			}
			off += 4

		case PhaseKindBetting:
			if off+8 > len(data) {
				return parseErr("phases", off, "truncated betting phase")
			}
			phase = &BettingPhase{
				MinBet:    int(binary.BigEndian.Uint32(data[off : off+4])),
				MaxRaises: int(binary.BigEndian.Uint32(data[off+4 : off+8])),
			}
			off += 8

		case PhaseKindCapture:
			if off+2 > len(data) {
				return parseErr("phases", off, "truncated capture phase")
			}
			phase = &CapturePhase{
				HighCardWins: data[off] == 1,
				TieBreak:     data[off+1],
			}
			off += 2

		default:
			return parseErr("phases", off-1, "unknown phase kind %d", kind)
		}

		p.Phases = append(p.Phases, phase)
	}

	return nil
}

func (p *Program) parseWinConditions(data []byte) (int, error) {
	off, err := sectionStart(data, "win conditions", p.Header.WinCondOffset, 4)
	if err != nil {
		return 0, err
	}

	count := int(binary.BigEndian.Uint32(data[off : off+4]))
	off += 4
	if count == 0 {
		return 0, parseErr("win conditions", off, "no win conditions configured")
	}

	p.WinConditions = make([]WinCondition, 0, count)
	for i := 0; i < count; i++ {
		if off+7 > len(data) {
			return 0, parseErr("win conditions", off, "truncated at entry %d of %d", i+1, count)
		}
		p.WinConditions = append(p.WinConditions, WinCondition{
			WinType:    data[off],
			Threshold:  int32(binary.BigEndian.Uint32(data[off+1 : off+5])),
			Comparison: data[off+5],
			Trigger:    data[off+6],
		})
		off += 7
	}

	return off, nil
}

// parseEffects reads the rank-indexed effect table following the win
// condition section. Absent section is fine; a truncated one is not.
func (p *Program) parseEffects(data []byte, off int) (int, error) {
	p.Effects = make(map[uint8]SpecialEffect)

	if off >= len(data) || data[off] != effectSectionMarker {
		return off, nil // No effects section
	}
	off++

	if off >= len(data) {
		return 0, parseErr("effects", off, "missing entry count")
	}
	count := int(data[off])
	off++

	if off+count*4 > len(data) {
		return 0, parseErr("effects", off, "claims %d entries, only %d bytes remain", count, len(data)-off)
	}

	for i := 0; i < count; i++ {
		effect := SpecialEffect{
			TriggerRank: data[off],
			EffectType:  data[off+1],
			Target:      data[off+2],
			Magnitude:   data[off+3],
		}
		// Later effects with the same rank overwrite earlier ones.
		p.Effects[effect.TriggerRank] = effect
		off += 4
	}

	return off, nil
}

func (p *Program) parseScoring(data []byte) error {
	if p.Header.ScoringOffset < 0 {
		return nil
	}
	off, err := sectionStart(data, "scoring", p.Header.ScoringOffset, 1)
	if err != nil {
		return err
	}

	count := int(data[off])
	off++
	if off+count*5 > len(data) {
		return parseErr("scoring", off, "claims %d rules, only %d bytes remain", count, len(data)-off)
	}

	p.Scoring = make([]ScoringRule, 0, count)
	for i := 0; i < count; i++ {
		p.Scoring = append(p.Scoring, ScoringRule{
			Suit:    data[off],
			Rank:    data[off+1],
			Points:  int16(binary.BigEndian.Uint16(data[off+2 : off+4])),
			Trigger: data[off+4],
		})
		off += 5
	}

	return nil
}

func (p *Program) parseHandEval(data []byte) error {
	if p.Header.HandEvalOffset < 0 {
		return nil
	}
	off, err := sectionStart(data, "hand evaluation", p.Header.HandEvalOffset, 4)
	if err != nil {
		return err
	}

	eval := &HandEvaluation{
		Method:        data[off],
		TargetValue:   data[off+1],
		BustThreshold: data[off+2],
	}
	patternCount := int(data[off+3])
	off += 4

	for i := 0; i < patternCount; i++ {
		if off+6 > len(data) {
			return parseErr("hand evaluation", off, "truncated pattern %d of %d", i+1, patternCount)
		}
		pat := HandPattern{
			Priority:       data[off],
			RequiredCount:  data[off+1],
			SameSuitCount:  data[off+2],
			SequenceLength: data[off+3],
			SequenceWrap:   data[off+4] == 1,
		}
		groupCount := int(data[off+5])
		off += 6
		if off+groupCount > len(data) {
			return parseErr("hand evaluation", off, "truncated rank groups in pattern %d", i+1)
		}
		pat.SameRankGroups = cloneBytes(data[off : off+groupCount])
		off += groupCount
		eval.Patterns = append(eval.Patterns, pat)
	}

	p.HandEval = eval
	return nil
}

func (p *Program) parseTeams(data []byte) error {
	if p.Header.TeamOffset < 0 {
		return nil
	}
	off, err := sectionStart(data, "teams", p.Header.TeamOffset, 1)
	if err != nil {
		return err
	}

	teamCount := int(data[off])
	off++
	if teamCount < 2 {
		return parseErr("teams", off-1, "team mode needs at least 2 teams, got %d", teamCount)
	}

	p.Teams = make([][]int, 0, teamCount)
	for t := 0; t < teamCount; t++ {
		if off >= len(data) {
			return parseErr("teams", off, "truncated roster %d of %d", t+1, teamCount)
		}
		size := int(data[off])
		off++
		if off+size > len(data) {
			return parseErr("teams", off, "roster %d exceeds program length", t+1)
		}
		roster := make([]int, 0, size)
		for i := 0; i < size; i++ {
			roster = append(roster, int(data[off+i]))
		}
		off += size
		p.Teams = append(p.Teams, roster)
	}

	return nil
}

func (p *Program) validateTeams() error {
	seen := make(map[int]bool)
	for t, roster := range p.Teams {
		for _, player := range roster {
			if player < 0 || player >= int(p.Header.PlayerCount) {
				return parseErr("teams", int(p.Header.TeamOffset), "roster %d references player %d outside 0..%d", t, player, p.Header.PlayerCount-1)
			}
			if seen[player] {
				return parseErr("teams", int(p.Header.TeamOffset), "player %d appears in more than one roster", player)
			}
			seen[player] = true
		}
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
