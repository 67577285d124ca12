package mining

import (
	"github.com/Veraticus/armine/internal/model"
)

// saturated marks a record that has been claimed by enough rules.
const saturated = -1

// pruneByCoverage walks rules in order and keeps each rule that claims at
// least one record not yet claimed by threshold earlier rules. Every kept
// rule bumps the counter of each record it claims.
//
// The pass is order dependent: each decision reads the counters left by
// every earlier rule, so it runs strictly front to back over rules as
// given and cannot be split up.
func pruneByCoverage(rules model.RuleSet, data *model.Dataset, threshold int) model.RuleSet {
	claims := make([]int, data.Len())
	kept := make(model.RuleSet, 0, len(rules))

	for _, rule := range rules {
		claimed := false
		for i, txn := range data.Transactions {
			if claims[i] == saturated {
				continue
			}
			if !rule.Covers(txn.Items, labelAt(data, i)) {
				continue
			}
			claimed = true
			claims[i]++
			if claims[i] >= threshold {
				claims[i] = saturated
			}
		}
		if claimed {
			kept = append(kept, rule)
		}
	}
	return kept
}

func labelAt(data *model.Dataset, i int) model.Label {
	if data.Labels == nil {
		return ""
	}
	return data.Labels[i]
}
