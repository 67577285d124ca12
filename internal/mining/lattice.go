package mining

import (
	"math"
	"slices"

	"github.com/Veraticus/armine/internal/model"
)

// JoinPredicate decides whether two same-length candidates combine into a
// candidate one item longer.
type JoinPredicate func(a, b model.Itemset) bool

// PrefixJoin is the canonical Apriori join: both candidates share every
// item but the last, and the last items differ. With candidates kept in
// canonical order this generates each next-level candidate once.
func PrefixJoin(a, b model.Itemset) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	last := len(a) - 1
	if !slices.Equal(a[:last], b[:last]) {
		return false
	}
	return a[last] != b[last]
}

// DistinctFeatureJoin is PrefixJoin for tabular data. Two values of the
// same column never occur in one record, so candidates whose last items
// share a column are not joined.
func DistinctFeatureJoin(a, b model.Itemset) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if model.Feature(a.Last()) == model.Feature(b.Last()) {
		return false
	}
	return PrefixJoin(a, b)
}

// seedCandidates returns one single-item candidate per distinct item.
func seedCandidates(data *model.Dataset) []model.Itemset {
	items := data.Items()
	candidates := make([]model.Itemset, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, model.Itemset{item})
	}
	return candidates
}

// pruneCandidates keeps the candidates whose support, rounded to three
// decimals, reaches the threshold. Support is anti-monotone, so nothing
// dropped here can become frequent in a later generation.
func pruneCandidates(candidates []model.Itemset, counter Counter, size int, support float64) []model.Itemset {
	frequent := make([]model.Itemset, 0, len(candidates))
	for _, candidate := range candidates {
		if roundSupport(counter.Count(candidate), size) >= support {
			frequent = append(frequent, candidate)
		}
	}
	return frequent
}

// joinCandidates builds the next generation from pairs of frequent
// candidates accepted by join. The result is canonical and sorted.
func joinCandidates(frequent []model.Itemset, join JoinPredicate) []model.Itemset {
	var next []model.Itemset
	for i := range frequent {
		for j := i + 1; j < len(frequent); j++ {
			if join(frequent[i], frequent[j]) {
				next = append(next, frequent[i].Union(frequent[j]))
			}
		}
	}
	slices.SortFunc(next, model.Itemset.Compare)
	return slices.CompactFunc(next, model.Itemset.Equal)
}

func roundSupport(count, size int) float64 {
	return math.Round(float64(count)/float64(size)*1000) / 1000
}
