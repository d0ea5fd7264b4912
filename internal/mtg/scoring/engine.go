package scoring

import (
	"sort"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
)

// ScoredCandidate pairs a corpus card with its score breakdown. Candidates
// are created here and, apart from the external-suggestion boost applied
// downstream, never mutated afterwards.
type ScoredCandidate struct {
	Card       *cards.Card
	Name       string
	Total      float64
	Components Components
}

// ScoreAll scores every card in the corpus against the lead card:
// deduplicate by name, score each representative, drop illegal cards
// (color multiplier zero), and sort by total score descending with name
// ascending as the tie-break. For corpora at or above the parallel
// threshold the scoring fans out across workers; the result is identical
// either way.
func (s *Scorer) ScoreAll(lead *cards.Card, deck, corpus []*cards.Card) []*ScoredCandidate {
	unique := dedupeByName(corpus)
	s.logger.Debug("scoring corpus",
		"lead", lead.Name,
		"unique_cards", len(unique),
		"total_cards", len(corpus),
	)

	var scored []*ScoredCandidate
	if len(unique) >= s.parallelThreshold {
		var err error
		scored, err = s.parallel(lead, deck, unique)
		if err != nil {
			// Parallel failure is recovered locally, never surfaced.
			s.logger.Warn("parallel scoring failed, falling back to sequential", "error", err)
			scored = s.scoreChunk(lead, deck, unique)
		}
	} else {
		scored = s.scoreChunk(lead, deck, unique)
	}

	sortCandidates(scored)
	return scored
}

// scoreChunk scores a slice of cards sequentially, excluding illegal ones.
func (s *Scorer) scoreChunk(lead *cards.Card, deck, chunk []*cards.Card) []*ScoredCandidate {
	scored := make([]*ScoredCandidate, 0, len(chunk))
	for _, card := range chunk {
		total, components := s.ScoreCard(card, lead, deck)
		if components.ColorMultiplier == 0 {
			continue
		}
		scored = append(scored, &ScoredCandidate{
			Card:       card,
			Name:       card.Name,
			Total:      total,
			Components: components,
		})
	}
	return scored
}

// dedupeByName keeps one representative per card name. The original
// behavior was "first occurrence wins", which depends on corpus iteration
// order; here the tie-break is explicit and stable: highest rarity, then
// most recent release date, then lexicographically smallest set code.
// The result is sorted by name so downstream work sees a fixed order.
func dedupeByName(corpus []*cards.Card) []*cards.Card {
	best := make(map[string]*cards.Card, len(corpus))
	for _, card := range corpus {
		if card == nil || card.Name == "" {
			continue
		}
		current, ok := best[card.Name]
		if !ok || preferPrinting(card, current) {
			best[card.Name] = card
		}
	}

	unique := make([]*cards.Card, 0, len(best))
	for _, card := range best {
		unique = append(unique, card)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Name < unique[j].Name
	})
	return unique
}

// preferPrinting reports whether candidate should replace current as a
// name's representative printing.
func preferPrinting(candidate, current *cards.Card) bool {
	if a, b := cards.RarityRank(candidate.Rarity), cards.RarityRank(current.Rarity); a != b {
		return a > b
	}
	if !candidate.ReleasedAt.Equal(current.ReleasedAt) {
		return candidate.ReleasedAt.After(current.ReleasedAt)
	}
	return candidate.SetCode < current.SetCode
}

// sortCandidates orders by total score descending, then name ascending.
// Applied once after merging so the sequence is invariant to worker count
// and partition boundaries.
func sortCandidates(scored []*ScoredCandidate) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Total != scored[j].Total {
			return scored[i].Total > scored[j].Total
		}
		return scored[i].Name < scored[j].Name
	})
}
