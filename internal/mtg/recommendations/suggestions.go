package recommendations

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards/fuzzy"
)

// suggestionBoost is added to a matched recommendation's confidence,
// on the 0.0-1.0 scale, capped at 1.0.
const suggestionBoost = 0.3

const maxSuggestionLength = 50

// applySuggestions matches external suggestion strings against the
// scored recommendation set and boosts every match. Runs strictly after
// scoring and assembly and never introduces new cards; malformed or
// unmatched suggestions are skipped silently.
func (e *Engine) applySuggestions(recs []*CardRecommendation, suggestions []string) {
	if len(suggestions) == 0 || len(recs) == 0 {
		return
	}

	byName := make(map[string]*CardRecommendation, len(recs))
	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		byName[normalizeName(rec.Name)] = rec
		names = append(names, rec.Name)
	}

	for _, raw := range suggestions {
		name, ok := validateSuggestion(raw)
		if !ok {
			e.logger.Debug("dropping implausible suggestion", "raw", raw)
			continue
		}

		rec, ok := byName[normalizeName(name)]
		if !ok {
			match, found := fuzzy.BestMatch(name, names, e.fuzzyCutoff)
			if !found {
				e.logger.Debug("suggestion matched nothing", "name", name)
				continue
			}
			rec = byName[normalizeName(match.Name)]
		}

		boostSuggestion(rec)
	}
}

// boostSuggestion raises confidence by the suggestion boost, flags the
// recommendation, and prepends the explanatory reason. Applied at most
// once per recommendation.
func boostSuggestion(rec *CardRecommendation) {
	if rec.Suggested {
		return
	}
	rec.Suggested = true
	rec.Confidence = min(rec.Confidence+suggestionBoost, 1.0)
	rec.Reasons = append([]string{"externally suggested"}, rec.Reasons...)
}

// validateSuggestion defensively filters free-text suggestion strings
// down to plausible card names: trimmed, 2-50 characters, starting with
// a letter or digit, and free of characters no card name carries.
func validateSuggestion(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if len(name) < 2 || len(name) > maxSuggestionLength {
		return "", false
	}

	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		return "", false
	}

	if strings.Contains(name, "://") || strings.ContainsAny(name, "<>{}[]|\\@#$%^*_=~`") {
		return "", false
	}

	return name, true
}
