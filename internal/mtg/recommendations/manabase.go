package recommendations

import (
	"fmt"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

// basicLandNames maps each color symbol to its basic land.
var basicLandNames = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
}

// Assumed prices for mana-base entries; basics are effectively free and
// the staples hover around a couple of dollars.
const (
	basicLandPrice = 0.1
	staplePrice    = 2.0
)

// stapleBudgetFloor gates the staple fixers: below this per-card budget
// the staples are assumed out of reach and only basics are proposed.
const stapleBudgetFloor = 5.0

type manaStaple struct {
	name       string
	category   string
	manaValue  float64
	confidence float64
	reason     string
}

var manaStaples = []manaStaple{
	{"Command Tower", CategoryLands, 0, 1.0, "any-color mana fixing"},
	{"Sol Ring", CategoryRamp, 1, 1.0, "essential mana acceleration"},
	{"Arcane Signet", CategoryRamp, 2, 0.9, "efficient mana rock"},
}

// buildManaBase proposes the deck's mana foundation: one basic land per
// color of the lead's identity with a suggested copy count, plus the
// staple fixers every list runs. The mana base sits alongside the
// assembled list and never competes with it for quota space; staples
// already present in the assembled list are not proposed twice.
func buildManaBase(identity colors.Identity, budget *float64, assembled []*CardRecommendation) []*CardRecommendation {
	var base []*CardRecommendation

	symbols := identity.Symbols()
	if n := len(symbols); n > 0 {
		perColor := max(3, 12/n)
		for _, symbol := range symbols {
			price := basicLandPrice
			base = append(base, &CardRecommendation{
				Name:       basicLandNames[symbol],
				Score:      80,
				Confidence: 1.0,
				Category:   CategoryLands,
				Reasons: []string{
					fmt.Sprintf("basic %s mana source, about %d copies", symbol, perColor),
				},
				EstimatedPrice: &price,
			})
		}
	}

	if budget != nil && *budget <= stapleBudgetFloor {
		return base
	}

	have := make(map[string]struct{}, len(assembled))
	for _, rec := range assembled {
		have[normalizeName(rec.Name)] = struct{}{}
	}
	for _, staple := range manaStaples {
		if _, ok := have[normalizeName(staple.name)]; ok {
			continue
		}
		price := staplePrice
		base = append(base, &CardRecommendation{
			Name:           staple.name,
			Score:          70,
			Confidence:     staple.confidence,
			Category:       staple.category,
			ManaValue:      staple.manaValue,
			Reasons:        []string{staple.reason},
			EstimatedPrice: &price,
		})
	}
	return base
}
