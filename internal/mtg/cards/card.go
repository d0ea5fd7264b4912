// Package cards defines the card record shared by the corpus store and the
// scoring engine.
package cards

import (
	"strings"
	"time"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

// Card represents one printing of a Magic card with everything the
// recommendation engine needs. Fields that sources commonly omit carry
// documented defaults instead of failing: Identity defaults to colorless,
// Mechanics to empty, Archetypes to all-false, Rarity to "common".
// Identity is resolved once at corpus-load time and never re-derived.
type Card struct {
	Name       string
	TypeLine   string
	OracleText string
	SetCode    string
	ReleasedAt time.Time

	// ManaValue is the numeric cost magnitude (CMC), used for curve fit.
	ManaValue float64

	// Rarity is one of "common", "uncommon", "rare", "mythic".
	Rarity string

	// Identity is the resolved color identity, authoritative for legality.
	Identity colors.Identity

	// Mechanics holds normalized (lower-case, trimmed) mechanic tags.
	Mechanics []string

	// Archetypes marks the card's strategic roles.
	Archetypes ArchetypeFlags

	// IsInfiniteCombo marks known infinite-combo pieces.
	IsInfiniteCombo bool

	// IsComboPiece marks membership in the known combo-card list.
	IsComboPiece bool

	// CommanderLegal reports legality in the Commander format.
	CommanderLegal bool

	// Price is the estimated USD price, nil when unknown.
	Price *float64
}

// HasType reports whether the card's type line contains the given type,
// case-insensitively.
func (c *Card) HasType(cardType string) bool {
	return strings.Contains(strings.ToLower(c.TypeLine), strings.ToLower(cardType))
}

// OracleContains reports whether the card's rules text contains the
// phrase, case-insensitively.
func (c *Card) OracleContains(phrase string) bool {
	return strings.Contains(strings.ToLower(c.OracleText), strings.ToLower(phrase))
}

// IsBasicLand reports whether the card is a basic land.
func (c *Card) IsBasicLand() bool {
	return c.HasType("Basic") && c.HasType("Land")
}

// CanBeLead reports whether the card is eligible to lead a Commander deck:
// a legendary creature, a legendary planeswalker, or any card whose rules
// text says it can be your commander.
func (c *Card) CanBeLead() bool {
	if strings.Contains(strings.ToLower(c.OracleText), "can be your commander") {
		return true
	}
	if !c.HasType("Legendary") {
		return false
	}
	return c.HasType("Creature") || c.HasType("Planeswalker")
}

// MechanicSet returns the card's mechanics as a set.
func (c *Card) MechanicSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Mechanics))
	for _, m := range c.Mechanics {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			set[m] = struct{}{}
		}
	}
	return set
}

// RarityRank orders rarities for deterministic tie-breaks: mythic > rare >
// uncommon > common. Unknown rarities rank below common.
func RarityRank(rarity string) int {
	switch strings.ToLower(strings.TrimSpace(rarity)) {
	case "mythic":
		return 4
	case "rare":
		return 3
	case "uncommon":
		return 2
	case "common":
		return 1
	default:
		return 0
	}
}
