// Package mining implements level-wise frequent itemset search, association
// rule construction, coverage based rule pruning and a CBA style rule
// classifier built on the same machinery.
//
// A Miner is one generic lattice search parameterised by three strategies:
//
//   - a Counter that reports how many records contain an item combination,
//   - a JoinPredicate that decides which same-length candidates combine
//     into the next generation,
//   - a RuleGenerator that turns every frequent itemset into rules and
//     decides which rules pass the support and confidence thresholds.
//
// Engine wires the association strategies and Classifier wires the
// classification strategies. Both are synchronous: Learn materializes the
// whole rule set before returning, and an instance must not be read while
// Learn is running on it.
//
// Typical use:
//
//	e := mining.NewEngine()
//	e.Load([][]string{{"Bread", "Milk"}, {"Beer", "Bread"}})
//	if err := e.Learn(0.2, 0.1, mining.DefaultCoverage); err != nil {
//		return err
//	}
//	for _, rule := range e.Rules() {
//		fmt.Println(rule, rule.Lift())
//	}
package mining
