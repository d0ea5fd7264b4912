// Package fuzzy provides approximate card-name matching.
package fuzzy

import "strings"

// Match is a candidate name paired with its similarity to the query.
type Match struct {
	Name  string
	Score int // 0-100
}

// Similarity scores how alike two card names are on a 0-100 scale.
// Comparison is case-insensitive with surrounding whitespace ignored.
// 100 means the normalized names are identical; otherwise the score is
// the normalized Levenshtein ratio, so a one-letter typo in a mid-length
// name still clears a high threshold.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	distance := levenshtein(ra, rb)
	longest := max(len(ra), len(rb))
	return 100 - (distance*100)/longest
}

// BestMatch finds the corpus name most similar to query, ignoring
// candidates below minScore. Ties go to the candidate that appears first,
// keeping the result deterministic for a fixed name order.
func BestMatch(query string, names []string, minScore int) (Match, bool) {
	best := Match{Score: -1}
	for _, name := range names {
		score := Similarity(query, name)
		if score < minScore {
			continue
		}
		if score > best.Score {
			best = Match{Name: name, Score: score}
		}
	}
	return best, best.Score >= 0
}

// levenshtein computes the edit distance between two rune sequences using
// two rolling rows instead of a full matrix. Runes rather than bytes, so
// one typo in a non-ASCII name costs one edit.
func levenshtein(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
