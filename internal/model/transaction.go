package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dataset errors.
var (
	ErrLabelCount    = errors.New("label count does not match transaction count")
	ErrRaggedTabular = errors.New("tabular rows have different widths")
)

// Transaction is one record of a dataset: an unordered set of items.
type Transaction struct {
	ID    string  // Optional source identifier (row number, OFX FITID, ...)
	Items Itemset // Canonical item set
}

// NewTransaction builds a transaction from raw string tokens.
func NewTransaction(tokens ...string) Transaction {
	return Transaction{Items: ItemsFromStrings(tokens)}
}

// Contains reports whether every item of set occurs in the transaction.
func (t Transaction) Contains(set Itemset) bool {
	return set.SubsetOf(t.Items)
}

// Dataset is an ordered sequence of transactions with optional class labels.
// Order does not change mining results but fixes the record indices used
// by coverage pruning.
type Dataset struct {
	Transactions []Transaction
	Labels       []Label // Parallel to Transactions; nil for unlabeled data
	Tabular      bool    // Items were synthesized per column by TabularItem
}

// NewDataset builds an unlabeled transactional dataset from raw rows.
func NewDataset(rows [][]string) Dataset {
	txns := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		txn := NewTransaction(row...)
		txn.ID = strconv.Itoa(i + 1)
		txns = append(txns, txn)
	}
	return Dataset{Transactions: txns}
}

// NewLabeledDataset builds a labeled dataset. When transactional is false
// every row is treated as a tabular record and encoded with TabularItem.
func NewLabeledDataset(rows [][]string, labels []string, transactional bool) (Dataset, error) {
	if len(rows) != len(labels) {
		return Dataset{}, fmt.Errorf("%w: %d rows, %d labels", ErrLabelCount, len(rows), len(labels))
	}

	if !transactional && len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			if len(row) != width {
				return Dataset{}, fmt.Errorf("%w: row %d has %d columns, expected %d",
					ErrRaggedTabular, i+1, len(row), width)
			}
		}
	}

	data := Dataset{
		Transactions: make([]Transaction, 0, len(rows)),
		Labels:       make([]Label, 0, len(labels)),
		Tabular:      !transactional,
	}
	for i, row := range rows {
		var txn Transaction
		if transactional {
			txn = NewTransaction(row...)
		} else {
			txn = Transaction{Items: EncodeTabularRow(row)}
		}
		txn.ID = strconv.Itoa(i + 1)
		data.Transactions = append(data.Transactions, txn)
		data.Labels = append(data.Labels, Label(labels[i]))
	}
	return data, nil
}

// Len returns the number of transactions.
func (d Dataset) Len() int {
	return len(d.Transactions)
}

// Labeled reports whether the dataset carries class labels.
func (d Dataset) Labeled() bool {
	return d.Labels != nil
}

// Validate checks the structural invariants of the dataset.
func (d Dataset) Validate() error {
	if d.Labels != nil && len(d.Labels) != len(d.Transactions) {
		return fmt.Errorf("%w: %d transactions, %d labels", ErrLabelCount, len(d.Transactions), len(d.Labels))
	}
	return nil
}

// Items returns every distinct item of the dataset in canonical order.
func (d Dataset) Items() Itemset {
	var all []Item
	for _, txn := range d.Transactions {
		all = append(all, txn.Items...)
	}
	return NewItemset(all...)
}

// ClassLabels returns the distinct labels in order of first appearance.
func (d Dataset) ClassLabels() []Label {
	seen := make(map[Label]bool)
	var labels []Label
	for _, label := range d.Labels {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	return labels
}

// tabularPrefix starts every synthesized column item.
const tabularPrefix = "feature"

// TabularItem encodes a value of a tabular column as an item.
// Columns are 1-based, matching the "feature<i>-<value>" convention.
func TabularItem(column int, value string) Item {
	return Item(tabularPrefix + strconv.Itoa(column) + "-" + value)
}

// EncodeTabularRow turns the values of one tabular record into items.
func EncodeTabularRow(values []string) Itemset {
	items := make([]Item, 0, len(values))
	for i, value := range values {
		items = append(items, TabularItem(i+1, value))
	}
	return NewItemset(items...)
}

// SplitTabularItem recovers the column and value of an item built by
// TabularItem. ok is false for items that do not follow the encoding.
func SplitTabularItem(item Item) (column int, value string, ok bool) {
	feature, value, found := strings.Cut(string(item), "-")
	if !found || !strings.HasPrefix(feature, tabularPrefix) {
		return 0, "", false
	}
	column, err := strconv.Atoi(strings.TrimPrefix(feature, tabularPrefix))
	if err != nil {
		return 0, "", false
	}
	return column, value, true
}

// Feature returns the source-column part of an item ("feature3" for
// "feature3-high"). Items without a column prefix are their own feature.
func Feature(item Item) string {
	feature, _, found := strings.Cut(string(item), "-")
	if !found {
		return string(item)
	}
	return feature
}

// DisplayItems strips the column encoding from tabular items for output.
func DisplayItems(set Itemset, tabular bool) []string {
	out := set.Strings()
	if !tabular {
		return out
	}
	for i, item := range set {
		if _, value, ok := SplitTabularItem(item); ok {
			out[i] = value
		}
	}
	return out
}
