// Package scoring implements the multi-component card scoring engine for
// Commander deck recommendations. Every component score and the combined
// total live on a 0-100 scale; color identity acts as a hard veto that
// zeroes the total for any card outside the lead's identity.
package scoring

import (
	"log/slog"
	"strings"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

// Component weights. They must sum to 1.0; the color multiplier is applied
// after the weighted sum.
const (
	weightBasePower   = 0.15
	weightMechSynergy = 0.30
	weightArchetype   = 0.25
	weightCombo       = 0.15
	weightCurve       = 0.10
	weightTypeBalance = 0.05
)

// curveTargets holds the desired card count per mana-value slot for a
// 100-card deck. Slots outside the table default to defaultCurveTarget.
var curveTargets = map[int]int{
	1: 10, 2: 15, 3: 12, 4: 10, 5: 5, 6: 3, 7: 2, 8: 1,
}

const defaultCurveTarget = 1

// typeTargets holds the desired count per card-type category for a
// 100-card deck. The catch-all "synergy" category defaults to
// defaultTypeTarget.
var typeTargets = map[string]int{
	"creature":     35,
	"instant":      8,
	"sorcery":      8,
	"artifact":     8,
	"enchantment":  8,
	"planeswalker": 2,
	"land":         37,
}

const defaultTypeTarget = 5

// Components is the per-component breakdown of a card's score.
type Components struct {
	BasePower       float64
	MechanicSynergy float64
	ArchetypeFit    float64
	ComboBonus      float64
	CurveFit        float64
	TypeBalance     float64
	ColorMultiplier float64 // 0.0 (illegal) or 1.0 (legal)
	Total           float64
}

// Config configures a Scorer.
type Config struct {
	Combos *ComboRegistry
	Logger *slog.Logger

	// ParallelThreshold is the corpus size at which ScoreAll switches to
	// parallel chunked scoring. Default: 500.
	ParallelThreshold int

	// MaxWorkers caps the number of scoring goroutines. Default:
	// min(NumCPU, 4).
	MaxWorkers int
}

// Scorer scores cards against a lead card. It holds only read-only state
// and is safe for concurrent use.
type Scorer struct {
	combos            *ComboRegistry
	logger            *slog.Logger
	parallelThreshold int
	maxWorkers        int

	// parallel fans corpus scoring out across workers. Held as a field so
	// tests can force the failure path behind ScoreAll's fallback.
	parallel func(lead *cards.Card, deck, unique []*cards.Card) ([]*ScoredCandidate, error)
}

// NewScorer creates a scorer, applying defaults for unset config fields.
func NewScorer(cfg Config) *Scorer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = 500
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultWorkerCount()
	}
	s := &Scorer{
		combos:            cfg.Combos,
		logger:            cfg.Logger,
		parallelThreshold: cfg.ParallelThreshold,
		maxWorkers:        cfg.MaxWorkers,
	}
	s.parallel = s.scoreParallel
	return s
}

// ScoreCard scores a single card for fit with the lead card given the
// current deck as context. Pure and deterministic: identical inputs yield
// identical output. The deck is never mutated.
func (s *Scorer) ScoreCard(card, lead *cards.Card, deck []*cards.Card) (float64, Components) {
	c := Components{
		BasePower:       basePower(card),
		MechanicSynergy: mechanicSynergy(card, lead, deck),
		ArchetypeFit:    archetypeFit(card, lead),
		ComboBonus:      s.comboBonus(card, deck),
		CurveFit:        curveFit(card.ManaValue, deck),
		TypeBalance:     typeBalance(card.TypeLine, deck),
	}

	if colors.IsLegal(card.Identity, lead.Identity) {
		c.ColorMultiplier = 1.0
	} else {
		c.ColorMultiplier = 0.0
	}

	total := (c.BasePower*weightBasePower +
		c.MechanicSynergy*weightMechSynergy +
		c.ArchetypeFit*weightArchetype +
		c.ComboBonus*weightCombo +
		c.CurveFit*weightCurve +
		c.TypeBalance*weightTypeBalance) * c.ColorMultiplier

	c.Total = clamp(total)
	return c.Total, c
}

// basePower rates inherent card quality from rarity and mechanic count
// (0-100), independent of the lead card.
func basePower(card *cards.Card) float64 {
	rarityScores := map[string]float64{
		"common":   30,
		"uncommon": 50,
		"rare":     70,
		"mythic":   90,
	}
	rarityScore, ok := rarityScores[strings.ToLower(strings.TrimSpace(card.Rarity))]
	if !ok {
		rarityScore = 50
	}

	complexity := min(float64(len(card.Mechanics))*5, 30)

	return min(rarityScore*0.6+complexity*0.4, 100)
}

// mechanicSynergy rates mechanic overlap between card and lead (0-100).
// A lead with no mechanics scores a neutral 50. Carrying every one of the
// lead's mechanics earns a +15 bonus, and sharing mechanics with cards
// already in the deck earns up to +20 more.
func mechanicSynergy(card, lead *cards.Card, deck []*cards.Card) float64 {
	cardMechanics := card.MechanicSet()
	leadMechanics := lead.MechanicSet()

	var score float64
	if len(leadMechanics) == 0 {
		score = 50
	} else {
		overlap := 0
		for m := range leadMechanics {
			if _, ok := cardMechanics[m]; ok {
				overlap++
			}
		}
		score = float64(overlap) / float64(len(leadMechanics)) * 100

		// Card covers the lead's entire mechanic set.
		if overlap == len(leadMechanics) {
			score = min(score+15, 100)
		}
	}

	if len(deck) > 0 {
		shared := 0
		for _, deckCard := range deck {
			for m := range deckCard.MechanicSet() {
				if _, ok := cardMechanics[m]; ok {
					shared++
					break
				}
			}
		}
		if shared > 0 {
			bonus := min(float64(shared)/float64(len(deck))*20, 20)
			score = min(score+bonus, 100)
		}
	}

	return clamp(score)
}

// archetypeFit rates alignment of the card's archetype flags with the
// lead's (0-100). A flagless lead is neutral (50); a flagless card gets a
// mild penalty (30); active flags with no overlap are a hard mismatch (0).
func archetypeFit(card, lead *cards.Card) float64 {
	leadCount := lead.Archetypes.Count()
	if leadCount == 0 {
		return 50
	}
	if card.Archetypes.Count() == 0 {
		return 30
	}

	matching := card.Archetypes.Intersection(lead.Archetypes)
	if matching == 0 {
		return 0
	}

	return min(float64(matching)/float64(leadCount)*100, 100)
}

// comboBonus rewards known combo pieces and combo density already in the
// deck (0-100). Infinite pieces outrank plain combo cards; the tiers are
// mutually exclusive.
func (s *Scorer) comboBonus(card *cards.Card, deck []*cards.Card) float64 {
	var score float64
	switch {
	case card.IsInfiniteCombo || s.combos.IsInfinite(card.Name):
		score = 30
	case card.IsComboPiece || s.combos.IsKnown(card.Name):
		score = 15
	}

	if len(deck) > 0 {
		overlap := 0
		for _, deckCard := range deck {
			if deckCard.IsComboPiece || deckCard.IsInfiniteCombo || s.combos.IsKnown(deckCard.Name) {
				overlap++
			}
		}
		if overlap > 0 {
			score += min(float64(overlap)*15, 35)
		}
	}

	return clamp(score)
}

// curveFit rates how much the deck needs another card at this mana value
// (0-100). Deficit slots score above 50, saturated slots at 50, and
// overfull slots below. With an empty deck every slot is in deficit, so
// low mana values saturate to 100 on purpose: the engine is
// deficit-seeking from the first pick.
func curveFit(manaValue float64, deck []*cards.Card) float64 {
	slot := int(manaValue)

	target, ok := curveTargets[slot]
	if !ok {
		target = defaultCurveTarget
	}

	current := 0
	for _, deckCard := range deck {
		if int(deckCard.ManaValue) == slot {
			current++
		}
	}

	switch {
	case current < target:
		return min(50+float64(target-current)*10, 100)
	case current == target:
		return 50
	default:
		return max(50-float64(current-target)*10, 0)
	}
}

// typeBalance rates how much the deck needs another card of this type
// category (0-100). The target count is compared directly against the
// deck's current percentage for the category, a deliberate simplification
// that only matches true percentages in a 100-card deck.
func typeBalance(typeLine string, deck []*cards.Card) float64 {
	category := typeCategory(typeLine)

	target, ok := typeTargets[category]
	if !ok {
		target = defaultTypeTarget
	}

	total := len(deck)
	if total < 1 {
		total = 1
	}

	current := 0
	for _, deckCard := range deck {
		if typeCategory(deckCard.TypeLine) == category {
			current++
		}
	}
	currentPct := float64(current) / float64(total) * 100

	diff := float64(target) - currentPct
	if diff > 0 {
		return min(50+diff*2, 100)
	}
	return max(50+diff*2, 0)
}

// typeCategory classifies a type line into one of the balance categories.
// Check order matters: "Artifact Creature" counts as a creature.
func typeCategory(typeLine string) string {
	line := strings.ToLower(typeLine)
	for _, category := range []string{
		"creature", "instant", "sorcery", "artifact",
		"enchantment", "land", "planeswalker",
	} {
		if strings.Contains(line, category) {
			return category
		}
	}
	return "synergy"
}

func clamp(score float64) float64 {
	return max(0, min(100, score))
}
