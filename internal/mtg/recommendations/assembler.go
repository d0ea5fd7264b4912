package recommendations

// categoryQuotas caps how many entries each deck-slot category may hold
// in the assembled list. The quotas sum to 100; lands sit outside the
// non-land cap below.
var categoryQuotas = map[string]int{
	CategoryLands:      37,
	CategoryRamp:       10,
	CategoryRemoval:    8,
	CategoryDraw:       10,
	CategoryProtection: 3,
	CategoryFinishers:  5,
	CategoryUtility:    5,
	CategorySynergy:    22,
}

// maxNonLand caps the assembled list's non-land entries: 100 slots minus
// the land quota.
const maxNonLand = 63

// assemble walks recommendations in descending-score order and admits
// each one only while its category is below quota, stopping once the
// non-land total hits the cap. Greedy and single-pass: a candidate whose
// category is full is skipped permanently, never reassigned.
func assemble(recs []*CardRecommendation) []*CardRecommendation {
	counts := make(map[string]int, len(categoryQuotas))
	nonLand := 0

	assembled := make([]*CardRecommendation, 0, min(len(recs), 100))
	for _, rec := range recs {
		if nonLand >= maxNonLand {
			break
		}

		quota, ok := categoryQuotas[rec.Category]
		if !ok {
			quota = categoryQuotas[CategorySynergy]
		}
		if counts[rec.Category] >= quota {
			continue
		}

		counts[rec.Category]++
		if rec.Category != CategoryLands {
			nonLand++
		}
		assembled = append(assembled, rec)
	}
	return assembled
}
