package recommendations

import "github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"

// Deck-slot categories in classification order. Earlier categories win
// when a card's text matches several.
const (
	CategoryLands      = "lands"
	CategoryRamp       = "ramp"
	CategoryRemoval    = "removal"
	CategoryDraw       = "draw"
	CategoryProtection = "protection"
	CategoryFinishers  = "finishers"
	CategoryUtility    = "utility"
	CategorySynergy    = "synergy"
)

var (
	rampPhrases = []string{
		"search your library for a land",
		"add {", "add one mana", "add two mana", "add three mana",
		"add mana of any",
	}
	removalPhrases = []string{
		"destroy target", "exile target", "counter target spell",
		"return target", "destroy all", "exile all",
	}
	drawPhrases = []string{
		"draw a card", "draw two cards", "draw three cards",
		"draw cards", "draws a card",
	}
	protectionPhrases = []string{
		"hexproof", "indestructible", "ward", "shroud", "protection from",
	}
	finisherPhrases = []string{
		"you win the game", "loses the game", "double strike",
		"combat damage to a player", "extra turn",
	}
	utilityPhrases = []string{
		"search your library", "choose one", "choose two",
	}
)

// Categorize assigns a candidate exactly one deck-slot category from its
// type line, rules text, and mana value.
func Categorize(card *cards.Card) string {
	switch {
	case card.HasType("Land"):
		return CategoryLands
	case matchesAny(card, rampPhrases):
		return CategoryRamp
	case matchesAny(card, removalPhrases):
		return CategoryRemoval
	case matchesAny(card, drawPhrases):
		return CategoryDraw
	case matchesAny(card, protectionPhrases):
		return CategoryProtection
	case card.ManaValue >= 6 || matchesAny(card, finisherPhrases):
		return CategoryFinishers
	case matchesAny(card, utilityPhrases):
		return CategoryUtility
	default:
		return CategorySynergy
	}
}

func matchesAny(card *cards.Card, phrases []string) bool {
	for _, phrase := range phrases {
		if card.OracleContains(phrase) {
			return true
		}
	}
	return false
}
