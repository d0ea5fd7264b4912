// Package colors models Magic color identity for Commander legality checks.
package colors

import (
	"regexp"
	"strings"
)

// Color constants for WUBRG
const (
	ColorWhite = "W"
	ColorBlue  = "U"
	ColorBlack = "B"
	ColorRed   = "R"
	ColorGreen = "G"
)

// AllColors lists all five colors in WUBRG order.
var AllColors = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

var colorBits = map[string]Identity{
	ColorWhite: 1 << 0,
	ColorBlue:  1 << 1,
	ColorBlack: 1 << 2,
	ColorRed:   1 << 3,
	ColorGreen: 1 << 4,
}

// Identity is a set of color symbols over {W,U,B,R,G}, stored as a bitmask.
// The zero value is colorless.
type Identity uint8

// Colorless is the empty color identity.
const Colorless Identity = 0

// FromSymbols builds an identity from a list of color symbols.
// Symbols are normalized (trimmed, upper-cased); full color names like
// "White" are accepted, anything unrecognized is ignored so that dirty
// source data degrades to a smaller identity instead of failing.
func FromSymbols(symbols []string) Identity {
	names := map[string]string{
		"WHITE": ColorWhite, "BLUE": ColorBlue, "BLACK": ColorBlack,
		"RED": ColorRed, "GREEN": ColorGreen,
	}

	var id Identity
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if full, ok := names[s]; ok {
			s = full
		}
		if bit, ok := colorBits[s]; ok {
			id |= bit
		}
	}
	return id
}

// manaSymbolPattern matches mana symbols like {G}, {2/W} or {W/U} in mana
// costs and rules text.
var manaSymbolPattern = regexp.MustCompile(`\{([WUBRG0-9/]+)\}`)

// FromManaCostAndText derives a color identity from a mana cost and rules
// text. This is the fallback when a card record has no trusted
// color_identity field: every colored symbol appearing in either string
// contributes, including hybrid symbols like {W/U}.
func FromManaCostAndText(manaCost, rulesText string) Identity {
	var id Identity
	for _, source := range []string{manaCost, rulesText} {
		if source == "" {
			continue
		}
		for _, m := range manaSymbolPattern.FindAllStringSubmatch(strings.ToUpper(source), -1) {
			for _, part := range strings.Split(m[1], "/") {
				if bit, ok := colorBits[part]; ok {
					id |= bit
				}
			}
		}
	}
	return id
}

// Contains reports whether other is a subset of this identity.
func (id Identity) Contains(other Identity) bool {
	return other&^id == 0
}

// IsColorless reports whether the identity has no colors.
func (id Identity) IsColorless() bool {
	return id == 0
}

// Count returns the number of colors in the identity.
func (id Identity) Count() int {
	n := 0
	for _, c := range AllColors {
		if id&colorBits[c] != 0 {
			n++
		}
	}
	return n
}

// Symbols returns the identity's color symbols in WUBRG order.
func (id Identity) Symbols() []string {
	symbols := make([]string, 0, 5)
	for _, c := range AllColors {
		if id&colorBits[c] != 0 {
			symbols = append(symbols, c)
		}
	}
	return symbols
}

// String renders the identity in WUBRG order, or "Colorless".
func (id Identity) String() string {
	if id == 0 {
		return "Colorless"
	}
	return strings.Join(id.Symbols(), "")
}

// IsLegal reports whether a card with the given identity may be played
// under the lead card's identity. Commander rule: the card's colors must
// be a subset of the lead's; a colorless card is legal against any lead.
func IsLegal(card, lead Identity) bool {
	return lead.Contains(card)
}
