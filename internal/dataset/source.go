package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/armine/internal/model"
)

// Format identifies a dataset file format.
type Format string

// Supported formats.
const (
	FormatCSV Format = "csv"
	FormatOFX Format = "ofx"
)

// Options describe how a file becomes a dataset.
type Options struct {
	Format        Format // Empty detects the format from the file extension
	Labeled       bool
	LabelIndex    int  // Label column for labeled CSV; negative counts from the end
	Transactional bool // Labeled CSV rows are item lists rather than tabular records
}

// DetectFormat guesses the format from a file name.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return FormatOFX
	default:
		return FormatCSV
	}
}

// Read builds a dataset from r.
func Read(r io.Reader, opts Options) (model.Dataset, error) {
	switch opts.Format {
	case FormatOFX:
		return NewOFXReader(opts.Labeled).Read(r)
	case FormatCSV, "":
		if opts.Labeled {
			return ReadLabeled(r, opts.LabelIndex, opts.Transactional)
		}
		return ReadTransactions(r)
	default:
		return model.Dataset{}, fmt.Errorf("unsupported dataset format %q", opts.Format)
	}
}

// ReadFile opens path and builds a dataset from it.
func ReadFile(path string, opts Options) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	if opts.Format == "" {
		opts.Format = DetectFormat(path)
	}
	data, err := Read(f, opts)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return data, nil
}
