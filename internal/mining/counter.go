package mining

import (
	"github.com/Veraticus/armine/internal/model"
)

// Counter reports how many records of the loaded dataset contain every
// item of a canonical itemset. Implementations memoize results until Reset.
type Counter interface {
	Count(items model.Itemset) int
	Reset()
	Cached() int
}

// ItemCounter counts plain occurrences with a full scan per combination.
type ItemCounter struct {
	data  *model.Dataset
	cache map[string]int
}

// NewItemCounter creates a counter over data. The dataset must not be
// modified while the counter is in use.
func NewItemCounter(data *model.Dataset) *ItemCounter {
	return &ItemCounter{
		data:  data,
		cache: make(map[string]int),
	}
}

// Count returns the number of transactions containing items.
func (c *ItemCounter) Count(items model.Itemset) int {
	key := items.Key()
	if count, ok := c.cache[key]; ok {
		return count
	}

	count := 0
	for _, txn := range c.data.Transactions {
		if txn.Contains(items) {
			count++
		}
	}
	c.cache[key] = count
	return count
}

// Reset drops every memoized count.
func (c *ItemCounter) Reset() {
	c.cache = make(map[string]int)
}

// Cached returns the number of memoized combinations.
func (c *ItemCounter) Cached() int {
	return len(c.cache)
}

// ClassCount is the per-label tally for one item combination.
type ClassCount struct {
	Matched int // Records of this label containing the combination
	Total   int // Records of this label
}

// ClassCounts maps every known label to its tally.
type ClassCounts map[model.Label]ClassCount

// Matched sums the matched counts across labels.
func (cc ClassCounts) Matched() int {
	total := 0
	for _, count := range cc {
		total += count.Matched
	}
	return total
}

// ClassCounter counts per class label. Its scalar Count is the sum of the
// matched counts, so it can drive the same lattice search as ItemCounter.
type ClassCounter struct {
	data   *model.Dataset
	labels []model.Label
	cache  map[string]ClassCounts
}

// NewClassCounter creates a classwise counter over a labeled dataset.
func NewClassCounter(data *model.Dataset) *ClassCounter {
	return &ClassCounter{
		data:   data,
		labels: data.ClassLabels(),
		cache:  make(map[string]ClassCounts),
	}
}

// Classwise returns the per-label tally of records containing items.
// The returned map is shared with the cache and must not be modified.
func (c *ClassCounter) Classwise(items model.Itemset) ClassCounts {
	key := items.Key()
	if counts, ok := c.cache[key]; ok {
		return counts
	}

	counts := make(ClassCounts, len(c.labels))
	for _, label := range c.labels {
		counts[label] = ClassCount{}
	}
	for i, txn := range c.data.Transactions {
		label := c.data.Labels[i]
		count := counts[label]
		if txn.Contains(items) {
			count.Matched++
		}
		count.Total++
		counts[label] = count
	}
	c.cache[key] = counts
	return counts
}

// Count returns the number of records containing items, across labels.
func (c *ClassCounter) Count(items model.Itemset) int {
	return c.Classwise(items).Matched()
}

// Labels returns the known labels in order of first appearance.
func (c *ClassCounter) Labels() []model.Label {
	return c.labels
}

// Reset drops every memoized tally.
func (c *ClassCounter) Reset() {
	c.cache = make(map[string]ClassCounts)
}

// Cached returns the number of memoized combinations.
func (c *ClassCounter) Cached() int {
	return len(c.cache)
}
