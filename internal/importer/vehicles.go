package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/cargopack/internal/model"
)

// VehicleImportResult holds the results of a vehicle catalog import.
type VehicleImportResult struct {
	Vehicles []model.Vehicle
	Errors   []string
	Warnings []string
}

// vehicleHeaderAliases maps canonical vehicle column names to their accepted
// aliases (all lowercase).
var vehicleHeaderAliases = map[string][]string{
	"platform":  {"platform", "type", "group", "class", "category"},
	"name":      {"name", "label", "vehicle", "vehicle name", "description", "desc"},
	"width":     {"width", "w", "x"},
	"height":    {"height", "h", "z"},
	"thickness": {"thickness", "t", "depth", "d", "length", "len", "y"},
	"weight":    {"weight", "capacity", "weight limit", "payload", "kg"},
}

// vehicleColumnOrder is the positional fallback when no header is present:
// Platform, Name, Width, Height, Thickness, Weight.
var vehicleColumnOrder = []string{"platform", "name", "width", "height", "thickness", "weight"}

// ImportVehiclesCSV imports vehicles from a CSV file. It automatically
// detects the delimiter and maps columns by header names.
func ImportVehiclesCSV(path string) VehicleImportResult {
	rows, errs, warnings := readCSVFile(path)
	if len(errs) > 0 {
		return VehicleImportResult{Errors: errs, Warnings: warnings}
	}
	return importVehiclesFromRows(rows, "Line", warnings)
}

// ImportVehiclesCSVFromReader imports vehicles from a CSV reader with a
// specific delimiter.
func ImportVehiclesCSVFromReader(r io.Reader, delimiter rune) VehicleImportResult {
	rows, err := readCSVRows(r, delimiter)
	if err != nil {
		return VehicleImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(rows) == 0 {
		return VehicleImportResult{Errors: []string{"File is empty"}}
	}
	return importVehiclesFromRows(rows, "Line", nil)
}

// ImportVehiclesExcel imports vehicles from an Excel (.xlsx) file.
func ImportVehiclesExcel(path string) VehicleImportResult {
	rows, errs := readExcelFile(path)
	if len(errs) > 0 {
		return VehicleImportResult{Errors: errs}
	}
	return importVehiclesFromRows(rows, "Row", nil)
}

// importVehiclesFromRows is the shared import logic for CSV and Excel data.
func importVehiclesFromRows(rows [][]string, rowPrefix string, initialWarnings []string) VehicleImportResult {
	result := VehicleImportResult{Warnings: initialWarnings}

	mapping, hasHeader := detectColumns(rows[0], vehicleHeaderAliases)
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
		for i, role := range vehicleColumnOrder {
			mapping[role] = i
		}
		// Vehicle rows start with two text columns; a non-numeric third
		// column marks an unrecognized header.
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
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
		vehicle, errMsg := parseVehicleRow(row, mapping, rowLabel, len(result.Vehicles))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Vehicles = append(result.Vehicles, vehicle)
	}

	return result
}

// parseVehicleRow extracts a Vehicle from a row using the given column mapping.
func parseVehicleRow(row []string, mapping map[string]int, rowLabel string, count int) (model.Vehicle, string) {
	platform := getCell(row, mapping["platform"])
	if platform == "" {
		platform = "Default"
	}
	name := getCell(row, mapping["name"])
	if name == "" {
		name = fmt.Sprintf("Vehicle %d", count+1)
	}

	width, errMsg := parseDimension(row, mapping, "width", rowLabel)
	if errMsg != "" {
		return model.Vehicle{}, errMsg
	}
	height, errMsg := parseDimension(row, mapping, "height", rowLabel)
	if errMsg != "" {
		return model.Vehicle{}, errMsg
	}
	thickness, errMsg := parseDimension(row, mapping, "thickness", rowLabel)
	if errMsg != "" {
		return model.Vehicle{}, errMsg
	}
	weight, errMsg := parseDimension(row, mapping, "weight", rowLabel)
	if errMsg != "" {
		return model.Vehicle{}, errMsg
	}

	vehicle, err := model.NewVehicle(platform, name, width, height, thickness, weight)
	if err != nil {
		return model.Vehicle{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}
	return vehicle, ""
}
