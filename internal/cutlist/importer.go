package cutlist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrImport wraps every row-level problem found while importing a file.
	ErrImport = errors.New("cut list import failed")
	// ErrUnsupportedFile indicates a file extension the importer cannot read.
	ErrUnsupportedFile = errors.New("unsupported cut list file")
)

// ImportResult holds the entries read from a file and any problems found.
type ImportResult struct {
	Entries  []Entry
	Errors   []string
	Warnings []string
}

// Err folds Errors into a single error wrapping ErrImport, or nil.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrImport, strings.Join(r.Errors, "; "))
}

type columnMapping struct {
	label    int
	length   int
	quantity int
}

var headerlessMapping = columnMapping{length: 0, quantity: 1, label: 2}

var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "description", "desc", "mark"},
	"length":   {"length", "len", "size", "cut", "cut length", "mm"},
	"quantity": {"quantity", "qty", "count", "pcs", "pieces", "amount"},
}

// ImportFile reads a cut list from a .csv, .txt or .xlsx file.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return ImportResult{Errors: []string{fmt.Sprintf("cannot open file: %v", err)}}
		}
		defer f.Close()
		return ImportCSV(f)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("%v: %s", ErrUnsupportedFile, filepath.Base(path))}}
	}
}

// ImportCSV reads a cut list from CSV data. The delimiter is detected from
// the content; a header row is optional.
func ImportCSV(r io.Reader) ImportResult {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read CSV data: %v", err)}}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot parse CSV data: %v", err)}}
	}
	return importRows(rows, "line")
}

// ImportExcel reads a cut list from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read Excel data: %v", err)}}
	}
	return importRows(rows, "row")
}

func importRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, ErrEmpty.Error())
		return result
	}

	mapping, hasHeader := detectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	} else {
		mapping = headerlessMapping
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		entry, err := parseRow(row, mapping)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(result.Entries) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, ErrEmpty.Error())
	}
	return result
}

// detectColumns matches header cells against headerAliases. A row is a
// header only when it names the length column.
func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{label: -1, length: -1, quantity: -1}
	for idx, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for canonical, aliases := range headerAliases {
			for _, alias := range aliases {
				if name != alias {
					continue
				}
				switch canonical {
				case "label":
					if mapping.label < 0 {
						mapping.label = idx
					}
				case "length":
					if mapping.length < 0 {
						mapping.length = idx
					}
				case "quantity":
					if mapping.quantity < 0 {
						mapping.quantity = idx
					}
				}
			}
		}
	}
	return mapping, mapping.length >= 0
}

func parseRow(row []string, mapping columnMapping) (Entry, error) {
	lengthStr := cell(row, mapping.length)
	if lengthStr == "" {
		return Entry{}, fmt.Errorf("missing length")
	}
	length, err := parseWhole(lengthStr)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid length %q", lengthStr)
	}

	qty := 1
	if qtyStr := cell(row, mapping.quantity); qtyStr != "" {
		qty, err = parseWhole(qtyStr)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid quantity %q", qtyStr)
		}
	}

	entry := Entry{
		Label:    cell(row, mapping.label),
		Length:   length,
		Quantity: qty,
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// parseWhole accepts integers and integral decimals such as "600.0", which
// spreadsheets tend to produce.
func parseWhole(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %s", s)
	}
	return int(f), nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// detectDelimiter picks the candidate that splits the most lines into the
// same number of columns as the first line. Single-column data falls back to
// comma.
func detectDelimiter(data []byte) rune {
	best := ','
	bestScore := 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}

		score := 0
		for _, rec := range records {
			if len(rec) == len(records[0]) {
				score++
			}
		}
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}
