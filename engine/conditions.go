package engine

import (
	"encoding/binary"
	"sort"
)

// OpCode identifies a condition or operator in a legality predicate.
type OpCode uint8

const (
	// Conditions
	OpCheckHandSize     OpCode = 0
	OpCheckCardRank     OpCode = 1
	OpCheckCardSuit     OpCode = 2
	OpCheckLocationSize OpCode = 3
	OpCheckHasSetOfN    OpCode = 5
	OpCheckHasRunOfN    OpCode = 6
	OpCheckChipCount    OpCode = 8
	OpCheckPotSize      OpCode = 9
	// Card matching conditions (for play-phase legality)
	OpCheckCardMatchesRank OpCode = 12
	OpCheckCardMatchesSuit OpCode = 13
	OpCheckCardBeatsTop    OpCode = 14

	// Control flow
	OpAnd OpCode = 40
	OpOr  OpCode = 41

	// Operators
	OpEQ OpCode = 50
	OpNE OpCode = 51
	OpLT OpCode = 52
	OpGT OpCode = 53
	OpLE OpCode = 54
	OpGE OpCode = 55
)

// conditionSize is the encoded size of a simple (non-compound)
// condition: opcode:1 + operator:1 + value:4 + reference:1.
const conditionSize = 7

// Reference card selectors used by matching conditions.
const (
	RefTopDiscard uint8 = 1
	RefTableauTop uint8 = 2
)

// EvaluateCondition checks a state-level condition for a player.
func EvaluateCondition(state *GameState, playerID uint8, cond []byte) bool {
	if len(cond) < conditionSize {
		return false
	}

	opcode := OpCode(cond[0])
	operator := cond[1]
	value := int32(binary.BigEndian.Uint32(cond[2:6]))
	reference := cond[6]

	var actual int32

	switch opcode {
	case OpCheckHandSize:
		actual = int32(len(state.Players[playerID].Hand))

	case OpCheckLocationSize:
		switch Location(reference) {
		case LocationDeck:
			actual = int32(len(state.Deck))
		case LocationHand:
			actual = int32(len(state.Players[playerID].Hand))
		case LocationDiscard:
			actual = int32(len(state.Discard))
		case LocationTableau:
			if len(state.Tableau) > 0 {
				actual = int32(len(state.Tableau[0]))
			}
		}

	case OpCheckCardRank:
		ref := referencedCard(state, reference)
		return ref != nil && int32(ref.Rank) == value

	case OpCheckCardSuit:
		ref := referencedCard(state, reference)
		return ref != nil && int32(ref.Suit) == value

	case OpCheckChipCount:
		return compareInt64(state.Players[playerID].Chips, operator, int64(value))

	case OpCheckPotSize:
		return compareInt64(state.Pot, operator, int64(value))

	case OpCheckHasSetOfN:
		rankCounts := make(map[uint8]int)
		for _, card := range state.Players[playerID].Hand {
			rankCounts[card.Rank]++
			if rankCounts[card.Rank] >= int(value) {
				return true
			}
		}
		return false

	case OpCheckHasRunOfN:
		return hasRunOfN(state.Players[playerID].Hand, int(value))

	default:
		return false
	}

	return compareInt32(actual, operator, value)
}

// EvaluateCardCondition checks whether a candidate card satisfies a
// play-phase legality predicate.
func EvaluateCardCondition(state *GameState, playerID uint8, candidate Card, cond []byte) bool {
	if len(cond) < conditionSize {
		return false
	}

	opcode := OpCode(cond[0])
	value := int32(binary.BigEndian.Uint32(cond[2:6]))
	reference := cond[6]

	switch opcode {
	case OpCheckCardRank:
		return int32(candidate.Rank) == value

	case OpCheckCardSuit:
		return int32(candidate.Suit) == value

	case OpCheckCardMatchesRank:
		ref := referencedCard(state, reference)
		if ref == nil {
			return true // No reference card = any card valid
		}
		return candidate.Rank == ref.Rank

	case OpCheckCardMatchesSuit:
		ref := referencedCard(state, reference)
		if ref == nil {
			return true
		}
		return candidate.Suit == ref.Suit

	case OpCheckCardBeatsTop:
		ref := referencedCard(state, reference)
		if ref == nil {
			return true
		}
		return candidate.Rank >= ref.Rank

	case OpAnd:
		return evaluateCompound(state, playerID, candidate, cond, true)

	case OpOr:
		return evaluateCompound(state, playerID, candidate, cond, false)

	default:
		return EvaluateCondition(state, playerID, cond)
	}
}

// evaluateCompound handles AND/OR predicates.
// Format: [OpCode:1][Count:4][nested conditions...]
func evaluateCompound(state *GameState, playerID uint8, candidate Card, cond []byte, isAnd bool) bool {
	if len(cond) < 5 {
		return false
	}

	count := binary.BigEndian.Uint32(cond[1:5])
	offset := 5

	for i := uint32(0); i < count; i++ {
		if offset+conditionSize > len(cond) {
			return false
		}

		nestedLen := conditionSize
		if op := OpCode(cond[offset]); op == OpAnd || op == OpOr {
			nestedLen = compoundSize(cond[offset:])
		}
		if offset+nestedLen > len(cond) {
			return false
		}

		result := EvaluateCardCondition(state, playerID, candidate, cond[offset:offset+nestedLen])
		if isAnd && !result {
			return false
		}
		if !isAnd && result {
			return true
		}
		offset += nestedLen
	}

	return isAnd
}

// compoundSize returns the total byte size of a compound condition.
func compoundSize(cond []byte) int {
	if len(cond) < 5 {
		return 0
	}

	count := binary.BigEndian.Uint32(cond[1:5])
	size := 5
	offset := 5

	for i := uint32(0); i < count; i++ {
		if offset >= len(cond) {
			break
		}
		if op := OpCode(cond[offset]); op == OpAnd || op == OpOr {
			nested := compoundSize(cond[offset:])
			size += nested
			offset += nested
		} else {
			size += conditionSize
			offset += conditionSize
		}
	}

	return size
}

func hasRunOfN(hand []Card, required int) bool {
	if len(hand) < required {
		return false
	}

	sorted := make([]Card, len(hand))
	copy(sorted, hand)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})

	runLength := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank == sorted[i-1].Rank+1 {
			runLength++
			if runLength >= required {
				return true
			}
		} else if sorted[i].Rank != sorted[i-1].Rank {
			runLength = 1
		}
	}
	return false
}

func referencedCard(state *GameState, reference uint8) *Card {
	switch reference {
	case RefTopDiscard:
		if len(state.Discard) > 0 {
			return &state.Discard[len(state.Discard)-1]
		}
	case RefTableauTop:
		if len(state.Tableau) > 0 && len(state.Tableau[0]) > 0 {
			pile := state.Tableau[0]
			return &pile[len(pile)-1]
		}
	}
	return nil
}

func compareInt32(actual int32, operator uint8, value int32) bool {
	switch OpCode(operator) {
	case OpEQ:
		return actual == value
	case OpNE:
		return actual != value
	case OpLT:
		return actual < value
	case OpGT:
		return actual > value
	case OpLE:
		return actual <= value
	case OpGE:
		return actual >= value
	default:
		return false
	}
}

func compareInt64(actual int64, operator uint8, value int64) bool {
	switch OpCode(operator) {
	case OpEQ:
		return actual == value
	case OpNE:
		return actual != value
	case OpLT:
		return actual < value
	case OpGT:
		return actual > value
	case OpLE:
		return actual <= value
	case OpGE:
		return actual >= value
	default:
		return false
	}
}
