package engine

// DrawCard moves the top card of a source pile to a player's hand.
// Returns false when the source is empty or invalid; callers treat an
// empty-pile mandatory draw as a no-op, never an error.
func (s *GameState) DrawCard(playerID uint8, source Location) bool {
	if int(playerID) >= len(s.Players) {
		return false
	}

	var srcPile *[]Card

	switch source {
	case LocationDeck:
		srcPile = &s.Deck
	case LocationDiscard:
		srcPile = &s.Discard
	case LocationOpponentHand:
		if s.NumPlayers == 0 {
			return false
		}
		opponentID := (playerID + 1) % s.NumPlayers
		srcPile = &s.Players[opponentID].Hand
	default:
		return false
	}

	if len(*srcPile) == 0 {
		return false
	}

	card := (*srcPile)[len(*srcPile)-1]
	*srcPile = (*srcPile)[:len(*srcPile)-1]
	s.Players[playerID].Hand = append(s.Players[playerID].Hand, card)
	return true
}

// PlayCard moves a card from a player's hand to a target location.
func (s *GameState) PlayCard(playerID uint8, cardIndex int, target Location) bool {
	if int(playerID) >= len(s.Players) {
		return false
	}

	hand := &s.Players[playerID].Hand
	if cardIndex < 0 || cardIndex >= len(*hand) {
		return false
	}

	card := (*hand)[cardIndex]
	*hand = append((*hand)[:cardIndex], (*hand)[cardIndex+1:]...)

	switch target {
	case LocationDiscard:
		s.Discard = append(s.Discard, card)
	case LocationTableau:
		if len(s.Tableau) == 0 {
			s.Tableau = append(s.Tableau, make([]Card, 0, 10))
		}
		s.Tableau[0] = append(s.Tableau[0], card)
	default:
		// Put it back; unknown targets reject the move.
		*hand = append(*hand, Card{})
		copy((*hand)[cardIndex+1:], (*hand)[cardIndex:])
		(*hand)[cardIndex] = card
		return false
	}

	return true
}

// BuildDeck fills the deck with deckCount standard 52-card decks.
func (s *GameState) BuildDeck(deckCount int) {
	for d := 0; d < deckCount; d++ {
		for suit := uint8(0); suit < 4; suit++ {
			for rank := uint8(0); rank < 13; rank++ {
				s.Deck = append(s.Deck, Card{Rank: rank, Suit: suit})
			}
		}
	}
}

// ShuffleDeck randomizes deck order in place using the state's own
// random source.
func (s *GameState) ShuffleDeck() {
	for i := len(s.Deck) - 1; i > 0; i-- {
		j := s.Rand.Intn(i + 1)
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	}
}
