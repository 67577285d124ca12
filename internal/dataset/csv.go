// Package dataset reads transaction datasets from CSV and OFX/QFX files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/armine/internal/model"
)

// ErrMalformedRow is returned when a CSV row cannot be turned into a record.
var ErrMalformedRow = errors.New("malformed row")

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	return cr
}

// ReadTransactions reads one transaction per CSV row. Blank cells are
// dropped and duplicate items within a row collapse.
func ReadTransactions(r io.Reader) (model.Dataset, error) {
	cr := newCSVReader(r)
	data := model.Dataset{}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Dataset{}, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		txn := model.NewTransaction(nonBlank(row)...)
		txn.ID = strconv.Itoa(line)
		data.Transactions = append(data.Transactions, txn)
	}

	return data, nil
}

// ReadLabeled reads a labeled dataset. labelIndex selects the label column;
// a negative index counts from the end of the row, so -1 is the last
// column. With transactional set the remaining cells are items and blanks
// are dropped; otherwise every row is a tabular record and must have the
// same width as the first.
func ReadLabeled(r io.Reader, labelIndex int, transactional bool) (model.Dataset, error) {
	cr := newCSVReader(r)
	data := model.Dataset{Labels: []model.Label{}, Tabular: !transactional}
	width := -1

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Dataset{}, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		idx := labelIndex
		if idx < 0 {
			idx += len(row)
		}
		if idx < 0 || idx >= len(row) {
			return model.Dataset{}, fmt.Errorf("%w: line %d: label index %d out of range for %d columns",
				ErrMalformedRow, line, labelIndex, len(row))
		}

		label := strings.TrimSpace(row[idx])
		if label == "" {
			return model.Dataset{}, fmt.Errorf("%w: line %d: empty label", ErrMalformedRow, line)
		}

		features := make([]string, 0, len(row)-1)
		features = append(features, row[:idx]...)
		features = append(features, row[idx+1:]...)

		var txn model.Transaction
		if transactional {
			txn = model.NewTransaction(nonBlank(features)...)
		} else {
			if width < 0 {
				width = len(row)
			}
			if len(row) != width {
				return model.Dataset{}, fmt.Errorf("%w: line %d has %d columns, expected %d",
					ErrMalformedRow, line, len(row), width)
			}
			for i := range features {
				features[i] = strings.TrimSpace(features[i])
			}
			txn = model.Transaction{Items: model.EncodeTabularRow(features)}
		}
		txn.ID = strconv.Itoa(line)

		data.Transactions = append(data.Transactions, txn)
		data.Labels = append(data.Labels, model.Label(label))
	}

	return data, nil
}

func nonBlank(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell = strings.TrimSpace(cell); cell != "" {
			out = append(out, cell)
		}
	}
	return out
}
