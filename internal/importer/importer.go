// Package importer provides CSV and Excel import functionality for vehicle
// and package lists. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter that
// produces the most consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// readCSVFile loads a CSV file and returns its rows, along with any
// delimiter-detection warning.
func readCSVFile(path string) ([][]string, []string, []string) {
	var errs, warnings []string

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, append(errs, fmt.Sprintf("Cannot open file: %v", err)), warnings
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, append(errs, "File is empty"), warnings
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	rows, err := readCSVRows(bytes.NewReader(data), delimiter)
	if err != nil {
		return nil, append(errs, fmt.Sprintf("Cannot read CSV: %v", err)), warnings
	}
	if len(rows) == 0 {
		return nil, append(errs, "File is empty"), warnings
	}
	return rows, errs, warnings
}

// readCSVRows parses CSV content from a reader using the given delimiter.
func readCSVRows(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// readExcelFile loads the first sheet of an Excel workbook and returns its rows.
func readExcelFile(path string) ([][]string, []string) {
	var errs []string

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, append(errs, fmt.Sprintf("Cannot open Excel file: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, append(errs, "Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, append(errs, fmt.Sprintf("Cannot read Excel data: %v", err))
	}
	if len(rows) == 0 {
		return nil, append(errs, "Sheet is empty")
	}
	return rows, errs
}

// detectColumns examines a header row and maps each semantic role from the
// alias table to its column index. It performs case-insensitive matching and
// reports whether any header cell was recognized.
func detectColumns(row []string, aliases map[string][]string) (map[string]int, bool) {
	mapping := make(map[string]int, len(aliases))
	for role := range aliases {
		mapping[role] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, names := range aliases {
			for _, alias := range names {
				if normalized == alias && mapping[role] == -1 {
					isHeader = true
					mapping[role] = i
				}
			}
		}
	}
	return mapping, isHeader
}

// missingColumns returns the required roles that were not found in a detected
// header, capitalized for the error message.
func missingColumns(mapping map[string]int, required []string) []string {
	var missing []string
	for _, role := range required {
		if mapping[role] == -1 {
			missing = append(missing, strings.ToUpper(role[:1])+role[1:])
		}
	}
	return missing
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
