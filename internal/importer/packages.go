package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/cargopack/internal/model"
)

// PackageImportResult holds the results of a package list import.
type PackageImportResult struct {
	Packages []model.Package
	Errors   []string
	Warnings []string
}

// packageHeaderAliases maps canonical package column names to their accepted
// aliases (all lowercase).
var packageHeaderAliases = map[string][]string{
	"name":      {"name", "label", "package", "package name", "item", "description", "desc"},
	"width":     {"width", "w", "x"},
	"height":    {"height", "h", "z"},
	"thickness": {"thickness", "t", "depth", "d", "length", "len", "y"},
	"weight":    {"weight", "kg", "mass"},
}

// packageColumnOrder is the positional fallback when no header is present:
// Name, Width, Height, Thickness, Weight.
var packageColumnOrder = []string{"name", "width", "height", "thickness", "weight"}

// ImportPackagesCSV imports packages from a CSV file. It automatically
// detects the delimiter and maps columns by header names.
func ImportPackagesCSV(path string) PackageImportResult {
	rows, errs, warnings := readCSVFile(path)
	if len(errs) > 0 {
		return PackageImportResult{Errors: errs, Warnings: warnings}
	}
	return importPackagesFromRows(rows, "Line", warnings)
}

// ImportPackagesCSVFromReader imports packages from a CSV reader with a
// specific delimiter. This is useful for testing or when the delimiter is
// already known.
func ImportPackagesCSVFromReader(r io.Reader, delimiter rune) PackageImportResult {
	rows, err := readCSVRows(r, delimiter)
	if err != nil {
		return PackageImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(rows) == 0 {
		return PackageImportResult{Errors: []string{"File is empty"}}
	}
	return importPackagesFromRows(rows, "Line", nil)
}

// ImportPackagesExcel imports packages from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportPackagesExcel(path string) PackageImportResult {
	rows, errs := readExcelFile(path)
	if len(errs) > 0 {
		return PackageImportResult{Errors: errs}
	}
	return importPackagesFromRows(rows, "Row", nil)
}

// importPackagesFromRows is the shared import logic for CSV and Excel data.
func importPackagesFromRows(rows [][]string, rowPrefix string, initialWarnings []string) PackageImportResult {
	result := PackageImportResult{Warnings: initialWarnings}

	mapping, hasHeader := detectColumns(rows[0], packageHeaderAliases)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if missing := missingColumns(mapping, []string{"width", "height", "thickness", "weight"}); len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		for i, role := range packageColumnOrder {
			mapping[role] = i
		}
		// An unrecognized non-numeric first row is still treated as a header.
		if len(rows[0]) >= 2 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pkg, errMsg := parsePackageRow(row, mapping, rowLabel, len(result.Packages))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Packages = append(result.Packages, pkg)
	}

	return result
}

// parsePackageRow extracts a Package from a row using the given column mapping.
func parsePackageRow(row []string, mapping map[string]int, rowLabel string, count int) (model.Package, string) {
	name := getCell(row, mapping["name"])
	if name == "" {
		name = fmt.Sprintf("Package %d", count+1)
	}

	width, errMsg := parseDimension(row, mapping, "width", rowLabel)
	if errMsg != "" {
		return model.Package{}, errMsg
	}
	height, errMsg := parseDimension(row, mapping, "height", rowLabel)
	if errMsg != "" {
		return model.Package{}, errMsg
	}
	thickness, errMsg := parseDimension(row, mapping, "thickness", rowLabel)
	if errMsg != "" {
		return model.Package{}, errMsg
	}
	weight, errMsg := parseDimension(row, mapping, "weight", rowLabel)
	if errMsg != "" {
		return model.Package{}, errMsg
	}

	pkg, err := model.NewPackage(name, width, height, thickness, weight)
	if err != nil {
		return model.Package{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return pkg, ""
}

// parseDimension reads a numeric cell by role, reporting missing or
// non-numeric values against the row label.
func parseDimension(row []string, mapping map[string]int, role, rowLabel string) (float64, string) {
	raw := getCell(row, mapping[role])
	if raw == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, role)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, role, raw)
	}
	return value, ""
}
