package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"youtube-stats/models"
)

// CSVWriter writes datasets to a CSV file, replacing its previous contents on every
// load.
type CSVWriter struct {
	path string
}

// NewCSVWriter prepares a writer for path. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "csv: create output dir")
	}
	return &CSVWriter{path: path}, nil
}

// Load truncates the file and writes a header row followed by every dataset row.
// The file is written to a temporary sibling and renamed into place.
func (c *CSVWriter) Load(ctx context.Context, ds *models.Dataset) error {
	tmp := c.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "csv: create file %q", tmp)
	}

	if err := writeCSV(ctx, f, ds); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "csv: close")
	}
	return errors.Wrap(os.Rename(tmp, c.path), "csv: replace output")
}

func writeCSV(ctx context.Context, f *os.File, ds *models.Dataset) error {
	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return errors.Wrap(err, "csv: write header")
	}

	record := make([]string, len(ds.Columns))
	for i, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := range record {
			record[j] = ""
			if j < len(row) {
				record[j] = formatCell(row[j])
			}
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "csv: write row %d", i)
		}
	}

	w.Flush()
	return errors.Wrap(w.Error(), "csv: flush")
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

func (c *CSVWriter) Destination() string {
	return "csv:" + c.path
}

// Close is a no-op; the file is closed after every load.
func (c *CSVWriter) Close() error {
	return nil
}
