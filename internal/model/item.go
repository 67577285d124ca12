// Package model defines the core data structures for the armine application.
package model

import (
	"slices"
	"strings"
)

// keySeparator joins item tokens into cache and dedup keys. It is a control
// character so it cannot collide with tokens read from CSV or OFX input.
const keySeparator = "\x1f"

// Item is an opaque, discrete token appearing in a transaction.
type Item string

// Label is the class associated with a training transaction.
type Label string

// Itemset is a set of unique items kept in ascending order.
// Every Itemset built through NewItemset is canonical, so two itemsets holding
// the same items compare equal element by element and produce the same Key.
type Itemset []Item

// NewItemset returns the canonical (sorted, deduplicated) itemset of items.
func NewItemset(items ...Item) Itemset {
	set := make(Itemset, len(items))
	copy(set, items)
	slices.Sort(set)
	return slices.Compact(set)
}

// ItemsFromStrings converts raw string tokens into a canonical itemset.
func ItemsFromStrings(tokens []string) Itemset {
	items := make([]Item, 0, len(tokens))
	for _, token := range tokens {
		items = append(items, Item(token))
	}
	return NewItemset(items...)
}

// Key returns a canonical string form usable as a map key.
func (s Itemset) Key() string {
	return strings.Join(s.Strings(), keySeparator)
}

// Strings returns the items as plain strings.
func (s Itemset) Strings() []string {
	out := make([]string, len(s))
	for i, item := range s {
		out[i] = string(item)
	}
	return out
}

// String renders the itemset as a comma separated list.
func (s Itemset) String() string {
	return strings.Join(s.Strings(), ", ")
}

// Last returns the greatest item of a non-empty itemset.
func (s Itemset) Last() Item {
	return s[len(s)-1]
}

// Contains reports whether item is a member of the itemset.
func (s Itemset) Contains(item Item) bool {
	_, found := slices.BinarySearch(s, item)
	return found
}

// SubsetOf reports whether every item of s is also in other.
// Both itemsets must be canonical; the check walks them once in step.
func (s Itemset) SubsetOf(other Itemset) bool {
	if len(s) > len(other) {
		return false
	}
	j := 0
	for _, item := range s {
		for j < len(other) && other[j] < item {
			j++
		}
		if j == len(other) || other[j] != item {
			return false
		}
		j++
	}
	return true
}

// Union returns the canonical union of two itemsets.
func (s Itemset) Union(other Itemset) Itemset {
	merged := make([]Item, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewItemset(merged...)
}

// Difference returns the items of s that are not in other.
func (s Itemset) Difference(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	for _, item := range s {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// Compare orders itemsets lexicographically, item by item.
func (s Itemset) Compare(other Itemset) int {
	return slices.Compare(s, other)
}

// Equal reports whether both itemsets hold the same items.
func (s Itemset) Equal(other Itemset) bool {
	return slices.Equal(s, other)
}
