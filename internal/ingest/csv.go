// Package ingest reads raw transaction CSVs into memory. It is the
// ingestion collaborator of the analysis pipeline: it only maps columns,
// parses timestamps, and tags each row with its source file.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

// timestampLayouts are tried in order when parsing the date column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ReadFile parses one CSV file. Rows with an unparsable timestamp are
// dropped; rows with a blank or unparsable amount are kept with a zero
// amount and flagged as missing.
func ReadFile(path string, cfg config.Config) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	dateIdx, descIdx, amountIdx, err := columnIndices(records[0], cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	source := filepath.Base(path)
	var txns []model.Transaction
	for _, rec := range records[1:] {
		if dateIdx >= len(rec) {
			continue
		}
		ts, ok := parseTimestamp(rec[dateIdx])
		if !ok {
			continue
		}

		t := model.Transaction{Timestamp: ts, Source: source}
		if descIdx < len(rec) {
			t.Description = strings.TrimSpace(rec[descIdx])
		}
		if amountIdx < len(rec) {
			t.Amount, t.MissingAmount = parseAmount(rec[amountIdx])
		} else {
			t.MissingAmount = true
		}
		txns = append(txns, t)
	}

	return txns, nil
}

// ReadAll parses every path and returns the merged rows in ascending
// timestamp order, with the original per-file order as tie-break.
func ReadAll(paths []string, cfg config.Config) ([]model.Transaction, error) {
	var all []model.Transaction
	for _, p := range paths {
		txns, err := ReadFile(p, cfg)
		if err != nil {
			return nil, err
		}
		all = append(all, txns...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	return all, nil
}

func columnIndices(header []string, cfg config.Config) (date, desc, amount int, err error) {
	date, desc, amount = -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(cfg.DateColumn):
			date = i
		case strings.ToLower(cfg.DescriptionColumn):
			desc = i
		case strings.ToLower(cfg.AmountColumn):
			amount = i
		}
	}
	if date < 0 {
		return 0, 0, 0, fmt.Errorf("missing %q column", cfg.DateColumn)
	}
	if amount < 0 {
		return 0, 0, 0, fmt.Errorf("missing %q column", cfg.AmountColumn)
	}
	if desc < 0 {
		desc = len(header) // never matches a field, description stays blank
	}
	return date, desc, amount, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string) (amount float64, missing bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	// Tolerate comma decimal separators as long as no dot is present.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true
	}
	return v, false
}
