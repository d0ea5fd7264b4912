// Package recommendations turns a scored corpus into a category-balanced
// Commander deck list: resolve the lead, score every legal candidate,
// assemble under per-category quotas, then boost externally suggested
// names.
package recommendations

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/scoring"
)

// CorpusProvider returns the full card corpus. Implementations must be
// idempotent within a run; the engine treats the returned slice as
// read-only.
type CorpusProvider interface {
	AllCards(ctx context.Context) ([]*cards.Card, error)
}

// LeadResolver finds corpus cards eligible to serve as the lead for a
// free-text name. Implementations return matches in a deterministic
// order with exact name matches first; the engine takes the first one.
type LeadResolver interface {
	SearchLeads(ctx context.Context, name string) ([]*cards.Card, error)
}

// Request describes one recommendation run.
type Request struct {
	LeadName    string
	CurrentDeck []string

	// BudgetLimit is a per-card USD ceiling. Cards with a known price
	// above it are skipped before scoring; unpriced cards pass.
	BudgetLimit *float64

	// PreferredMechanics is free text naming mechanics to favor, e.g.
	// "sacrifice, tokens". Parsed tokens are merged into the lead's
	// mechanic set for synergy scoring.
	PreferredMechanics string

	// ExcludeCards are names never to recommend.
	ExcludeCards []string

	// Suggestions are externally sourced candidate names. Matched
	// suggestions get a confidence boost after assembly.
	Suggestions []string
}

// CardRecommendation is one entry of the assembled deck list.
type CardRecommendation struct {
	Name           string
	Score          float64
	Components     scoring.Components
	Confidence     float64 // 0.0-1.0
	Category       string
	ManaValue      float64
	Reasons        []string
	Suggested      bool
	EstimatedPrice *float64
}

// Result is the outcome of a recommendation run.
type Result struct {
	Lead            *cards.Card
	Recommendations []*CardRecommendation

	// ManaBase proposes the deck's mana foundation: basics distributed
	// across the lead's colors plus staple fixers. Kept separate from
	// Recommendations; it does not consume category quotas.
	ManaBase []*CardRecommendation

	CategoryBreakdown  map[string]int
	TotalEstimatedCost *float64
}

// Config configures an Engine.
type Config struct {
	Corpus CorpusProvider
	Leads  LeadResolver
	Scorer *scoring.Scorer
	Logger *slog.Logger

	// FuzzyCutoff is the minimum 0-100 similarity for suggestion
	// matching. Default: 85.
	FuzzyCutoff int
}

// Engine produces deck recommendations. Safe for concurrent use; no
// state is retained between requests.
type Engine struct {
	corpus      CorpusProvider
	leads       LeadResolver
	scorer      *scoring.Scorer
	logger      *slog.Logger
	fuzzyCutoff int
}

// NewEngine creates an engine, applying defaults for unset config fields.
func NewEngine(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Scorer == nil {
		cfg.Scorer = scoring.NewScorer(scoring.Config{Logger: cfg.Logger})
	}
	if cfg.FuzzyCutoff <= 0 {
		cfg.FuzzyCutoff = 85
	}
	return &Engine{
		corpus:      cfg.Corpus,
		leads:       cfg.Leads,
		scorer:      cfg.Scorer,
		logger:      cfg.Logger,
		fuzzyCutoff: cfg.FuzzyCutoff,
	}
}

// Recommend runs one full recommendation pass for the request.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Result, error) {
	lead, err := e.resolveLead(ctx, req.LeadName)
	if err != nil {
		return nil, err
	}

	corpus, err := e.corpus.AllCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCorpus, err)
	}
	if len(corpus) == 0 {
		return nil, ErrNoCorpus
	}

	deck := resolveDeck(corpus, req.CurrentDeck, e.logger)
	candidates := e.filterCandidates(corpus, lead, req)
	scoringLead := leadWithPreferredMechanics(lead, req.PreferredMechanics)

	scored := e.scorer.ScoreAll(scoringLead, deck, candidates)
	e.logger.Info("scored corpus",
		"lead", lead.Name,
		"candidates", len(candidates),
		"legal", len(scored),
	)

	recs := buildRecommendations(scored, scoringLead)
	assembled := assemble(recs)
	manaBase := buildManaBase(lead.Identity, req.BudgetLimit, assembled)
	// Matching runs over the full scored set; boosts reach the assembled
	// list through the shared recommendation pointers.
	e.applySuggestions(recs, req.Suggestions)

	return &Result{
		Lead:               lead,
		Recommendations:    assembled,
		ManaBase:           manaBase,
		CategoryBreakdown:  categoryBreakdown(assembled),
		TotalEstimatedCost: totalCost(assembled, manaBase),
	}, nil
}

// resolveLead maps a free-text name to the lead card, taking the
// resolver's first match.
func (e *Engine) resolveLead(ctx context.Context, name string) (*cards.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty lead name", ErrLeadNotFound)
	}

	matches, err := e.leads.SearchLeads(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("searching leads for %q: %w", name, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLeadNotFound, name)
	}
	if len(matches) > 1 {
		e.logger.Debug("ambiguous lead name, taking first match",
			"name", name, "matches", len(matches), "chosen", matches[0].Name)
	}
	return matches[0], nil
}

// filterCandidates drops cards that can never be recommended: basic
// lands, cards already in the deck, explicitly excluded names, and cards
// priced over the budget limit. Everything else goes to the scorer, which
// applies the color veto itself.
func (e *Engine) filterCandidates(corpus []*cards.Card, lead *cards.Card, req *Request) []*cards.Card {
	skip := make(map[string]struct{}, len(req.CurrentDeck)+len(req.ExcludeCards)+1)
	for _, name := range req.CurrentDeck {
		skip[normalizeName(name)] = struct{}{}
	}
	for _, name := range req.ExcludeCards {
		skip[normalizeName(name)] = struct{}{}
	}
	skip[normalizeName(lead.Name)] = struct{}{}

	candidates := make([]*cards.Card, 0, len(corpus))
	for _, card := range corpus {
		if card == nil || card.IsBasicLand() {
			continue
		}
		if _, ok := skip[normalizeName(card.Name)]; ok {
			continue
		}
		if req.BudgetLimit != nil && card.Price != nil && *card.Price > *req.BudgetLimit {
			continue
		}
		candidates = append(candidates, card)
	}
	return candidates
}

// resolveDeck looks up the current deck's names in the corpus so scoring
// sees full card records. Unknown names are skipped; a missing record
// only weakens the deck context, it never fails the run.
func resolveDeck(corpus []*cards.Card, names []string, logger *slog.Logger) []*cards.Card {
	if len(names) == 0 {
		return nil
	}

	byName := make(map[string]*cards.Card, len(corpus))
	for _, card := range corpus {
		if card != nil {
			byName[normalizeName(card.Name)] = card
		}
	}

	deck := make([]*cards.Card, 0, len(names))
	for _, name := range names {
		card, ok := byName[normalizeName(name)]
		if !ok {
			logger.Debug("deck card not in corpus, skipping", "name", name)
			continue
		}
		deck = append(deck, card)
	}
	return deck
}

// leadWithPreferredMechanics returns the lead extended with the request's
// preferred mechanics, or the lead itself when there is nothing to add.
// The stored lead is never mutated.
func leadWithPreferredMechanics(lead *cards.Card, preferred string) *cards.Card {
	extra := parseMechanics(preferred)
	if len(extra) == 0 {
		return lead
	}

	have := lead.MechanicSet()
	merged := append([]string(nil), lead.Mechanics...)
	for _, m := range extra {
		if _, ok := have[m]; !ok {
			merged = append(merged, m)
		}
	}
	if len(merged) == len(lead.Mechanics) {
		return lead
	}

	extended := *lead
	extended.Mechanics = merged
	return &extended
}

// parseMechanics splits free text like "sacrifice, tokens" into
// normalized mechanic tokens.
func parseMechanics(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	mechanics := make([]string, 0, len(fields))
	for _, f := range fields {
		if m := strings.ToLower(strings.TrimSpace(f)); m != "" {
			mechanics = append(mechanics, m)
		}
	}
	return mechanics
}

// buildRecommendations converts scored candidates into recommendation
// entries with category, confidence, and human-readable reasons.
func buildRecommendations(scored []*scoring.ScoredCandidate, lead *cards.Card) []*CardRecommendation {
	recs := make([]*CardRecommendation, 0, len(scored))
	for _, candidate := range scored {
		recs = append(recs, &CardRecommendation{
			Name:           candidate.Name,
			Score:          candidate.Total,
			Components:     candidate.Components,
			Confidence:     candidate.Total / 100,
			Category:       Categorize(candidate.Card),
			ManaValue:      candidate.Card.ManaValue,
			Reasons:        reasons(candidate, lead),
			EstimatedPrice: candidate.Card.Price,
		})
	}
	return recs
}

// reasons explains the strongest components of a candidate's score.
func reasons(candidate *scoring.ScoredCandidate, lead *cards.Card) []string {
	c := candidate.Components
	var out []string
	if c.MechanicSynergy >= 75 {
		out = append(out, fmt.Sprintf("strong mechanic synergy with %s", lead.Name))
	}
	if c.ArchetypeFit >= 75 {
		out = append(out, fmt.Sprintf("fits %s's archetype", lead.Name))
	}
	if c.ComboBonus >= 30 {
		out = append(out, "combo potential")
	}
	if c.CurveFit >= 75 {
		out = append(out, "fills a mana curve gap")
	}
	if len(out) == 0 {
		out = append(out, "solid overall fit")
	}
	return out
}

// categoryBreakdown counts assembled entries per category.
func categoryBreakdown(recs []*CardRecommendation) map[string]int {
	breakdown := make(map[string]int, len(categoryQuotas))
	for _, rec := range recs {
		breakdown[rec.Category]++
	}
	return breakdown
}

// totalCost sums the known prices across the assembled list and the mana
// base. Nil when no entry carries a price.
func totalCost(lists ...[]*CardRecommendation) *float64 {
	var sum float64
	priced := false
	for _, recs := range lists {
		for _, rec := range recs {
			if rec.EstimatedPrice != nil {
				sum += *rec.EstimatedPrice
				priced = true
			}
		}
	}
	if !priced {
		return nil
	}
	return &sum
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
