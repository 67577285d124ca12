package dataset

import (
	"strings"
	"testing"

	"github.com/Veraticus/armine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTransactions(t *testing.T) {
	input := `Bread,Milk
# weekend baskets
Bread, Diapers ,Beer,,Eggs
Milk,Milk,Cola
`
	data, err := ReadTransactions(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 3, data.Len())
	assert.False(t, data.Labeled())
	assert.False(t, data.Tabular)
	assert.Equal(t, model.ItemsFromStrings([]string{"Beer", "Bread", "Diapers", "Eggs"}), data.Transactions[1].Items)
	assert.Equal(t, model.ItemsFromStrings([]string{"Cola", "Milk"}), data.Transactions[2].Items)
	assert.Equal(t, "1", data.Transactions[0].ID)
	assert.Equal(t, "3", data.Transactions[1].ID, "IDs are source line numbers")
}

func TestReadTransactions_Empty(t *testing.T) {
	data, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, data.Len())
}

func TestReadLabeled(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		labelIndex    int
		transactional bool
		wantLabels    []model.Label
		wantFirst     model.Itemset
		wantTabular   bool
	}{
		{
			name:        "tabular last column",
			input:       "sunny,hot,no\nrainy,cool,yes\n",
			labelIndex:  -1,
			wantLabels:  []model.Label{"no", "yes"},
			wantFirst:   model.EncodeTabularRow([]string{"sunny", "hot"}),
			wantTabular: true,
		},
		{
			name:        "tabular first column",
			input:       "no,sunny,hot\nyes,rainy,cool\n",
			labelIndex:  0,
			wantLabels:  []model.Label{"no", "yes"},
			wantFirst:   model.EncodeTabularRow([]string{"sunny", "hot"}),
			wantTabular: true,
		},
		{
			name:          "transactional ragged rows",
			input:         "Egg,Chicken,NV\nMilk,Egg,Spinach,,M\n",
			labelIndex:    -1,
			transactional: true,
			wantLabels:    []model.Label{"NV", "M"},
			wantFirst:     model.ItemsFromStrings([]string{"Chicken", "Egg"}),
		},
		{
			name:          "transactional middle label",
			input:         "Egg,NV,Chicken\n",
			labelIndex:    1,
			transactional: true,
			wantLabels:    []model.Label{"NV"},
			wantFirst:     model.ItemsFromStrings([]string{"Chicken", "Egg"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadLabeled(strings.NewReader(tt.input), tt.labelIndex, tt.transactional)
			require.NoError(t, err)
			require.NoError(t, data.Validate())
			assert.Equal(t, tt.wantLabels, data.Labels)
			assert.Equal(t, tt.wantFirst, data.Transactions[0].Items)
			assert.Equal(t, tt.wantTabular, data.Tabular)
		})
	}
}

func TestReadLabeled_Empty(t *testing.T) {
	data, err := ReadLabeled(strings.NewReader(""), -1, false)
	require.NoError(t, err)
	assert.True(t, data.Labeled(), "an empty labeled file is still labeled")
	assert.Zero(t, data.Len())
}

func TestReadLabeled_Malformed(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		labelIndex    int
		transactional bool
		wantLine      string
	}{
		{name: "label index past end", input: "a,b,x\nc,y\n", labelIndex: 2, transactional: true, wantLine: "line 2"},
		{name: "negative index past start", input: "a,x\n", labelIndex: -3, transactional: true, wantLine: "line 1"},
		{name: "ragged tabular row", input: "sunny,hot,no\nrainy,yes\n", labelIndex: -1, wantLine: "line 2"},
		{name: "empty label", input: "a,b,x\nc,d, \n", labelIndex: -1, wantLine: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLabeled(strings.NewReader(tt.input), tt.labelIndex, tt.transactional)
			require.ErrorIs(t, err, ErrMalformedRow)
			assert.Contains(t, err.Error(), tt.wantLine)
		})
	}
}
