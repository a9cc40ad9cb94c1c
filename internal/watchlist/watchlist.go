// Package watchlist loads ticker lists for batch analysis from CSV or
// XLSX files.
package watchlist

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Load reads a ticker watchlist, dispatching on file extension. Tickers
// are uppercased and deduplicated, preserving first-seen order. A header
// row with a "ticker" or "symbol" label is skipped.
func Load(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, eris.Errorf("watchlist: unsupported file type %q", filepath.Ext(path))
	}
}

func loadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "watchlist: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "watchlist: read csv")
	}

	var cells []string
	for _, rec := range records {
		if len(rec) > 0 {
			cells = append(cells, rec[0])
		}
	}
	return normalize(cells)
}

func loadXLSX(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "watchlist: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("watchlist: xlsx has no sheets")
	}

	var cells []string
	for _, row := range f.Sheets[0].Rows {
		if len(row.Cells) > 0 {
			cells = append(cells, row.Cells[0].String())
		}
	}
	return normalize(cells)
}

func normalize(cells []string) ([]string, error) {
	seen := make(map[string]bool, len(cells))
	var tickers []string
	first := true
	for _, cell := range cells {
		ticker := strings.ToUpper(strings.TrimSpace(cell))
		if ticker == "" {
			continue
		}
		// Header detection keys off the first non-blank cell, so a
		// leading blank row does not smuggle the label in as a ticker.
		if first {
			first = false
			if ticker == "TICKER" || ticker == "SYMBOL" {
				continue
			}
		}
		if seen[ticker] {
			continue
		}
		seen[ticker] = true
		tickers = append(tickers, ticker)
	}
	if len(tickers) == 0 {
		return nil, eris.New("watchlist: no tickers found")
	}
	return tickers, nil
}
