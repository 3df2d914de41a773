package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/piwi3910/cargopack/internal/engine"
	"github.com/piwi3910/cargopack/internal/export"
	"github.com/piwi3910/cargopack/internal/importer"
	"github.com/piwi3910/cargopack/internal/logging"
	"github.com/piwi3910/cargopack/internal/model"
	"github.com/piwi3910/cargopack/internal/project"
)

func main() {
	app := kingpin.New("cargopack", "Cargo load optimizer - fits packages into vehicle cargo bays and picks the best vehicle per platform")
	vehiclesPath := app.Flag("vehicles", "Vehicle catalog (CSV or XLSX); the persistent fleet is used when omitted").String()
	packagesPath := app.Flag("packages", "Package list (CSV or XLSX)").Required().String()
	distribute := app.Flag("dist", "Distribute packages across all vehicles of a platform instead of picking the single best").Bool()
	manifest := app.Flag("manifest", "Write per-platform plain-text manifests").Bool()
	pdfPath := app.Flag("pdf", "Write a PDF load report to this path").String()
	labelsPath := app.Flag("labels", "Write QR package labels (PDF) to this path").String()
	xlsxPath := app.Flag("xlsx", "Write an Excel report to this path").String()
	dxfDir := app.Flag("dxf", "Write per-vehicle DXF drawings into this directory").String()
	savePath := app.Flag("save", "Save the plan (inputs and results) as JSON to this path").String()
	configPath := app.Flag("config", "Application config file").Default(project.DefaultConfigPath()).String()
	outputDir := app.Flag("output-dir", "Directory for manifest files (defaults to the configured output directory)").String()
	verbose := app.Flag("verbose", "Enable debug logging").Short('v').Bool()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New(*verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := project.LoadAppConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
	}

	packages := loadPackages(logger, *packagesPath)
	vehicles := loadVehicles(logger, *vehiclesPath, cfg)

	dist := *distribute || cfg.DefaultDistribute
	result, err := engine.Classify(vehicles, packages, dist)
	if err != nil {
		logger.Fatal("classification failed", zap.Error(err))
	}

	printSummary(result)

	if *manifest || cfg.DefaultManifest {
		dir := *outputDir
		if dir == "" {
			dir = cfg.OutputDir
		}
		paths, err := export.ExportManifests(dir, result)
		if err != nil {
			logger.Fatal("manifest export failed", zap.Error(err))
		}
		for _, p := range paths {
			logger.Info("wrote manifest", zap.String("path", p))
		}
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, result); err != nil {
			logger.Fatal("PDF export failed", zap.Error(err))
		}
		logger.Info("wrote PDF report", zap.String("path", *pdfPath))
	}

	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, result); err != nil {
			logger.Fatal("label export failed", zap.Error(err))
		}
		logger.Info("wrote package labels", zap.String("path", *labelsPath))
	}

	if *xlsxPath != "" {
		if err := export.ExportXLSX(*xlsxPath, result); err != nil {
			logger.Fatal("Excel export failed", zap.Error(err))
		}
		logger.Info("wrote Excel report", zap.String("path", *xlsxPath))
	}

	if *dxfDir != "" {
		paths, err := export.ExportDXF(*dxfDir, result)
		if err != nil {
			logger.Fatal("DXF export failed", zap.Error(err))
		}
		logger.Info("wrote DXF drawings", zap.Int("count", len(paths)), zap.String("dir", *dxfDir))
	}

	if *savePath != "" {
		plan := model.Plan{
			Name:     strings.TrimSuffix(filepath.Base(*savePath), filepath.Ext(*savePath)),
			Vehicles: vehicles,
			Packages: packages,
			Result:   &result,
		}
		if err := project.SavePlan(*savePath, plan); err != nil {
			logger.Fatal("failed to save plan", zap.Error(err))
		}
		logger.Info("saved plan", zap.String("path", *savePath))

		cfg.AddRecentPlan(*savePath)
		if err := project.SaveAppConfig(*configPath, cfg); err != nil {
			logger.Warn("failed to update recent plans", zap.Error(err))
		}
	}
}

// loadPackages reads the package list, logging warnings and treating any
// import error as fatal.
func loadPackages(logger *zap.Logger, path string) []model.Package {
	var result importer.PackageImportResult
	if isExcel(path) {
		result = importer.ImportPackagesExcel(path)
	} else {
		result = importer.ImportPackagesCSV(path)
	}
	for _, w := range result.Warnings {
		logger.Debug("package import", zap.String("warning", w))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error("package import", zap.String("error", e))
		}
		logger.Fatal("package import failed", zap.String("path", path))
	}
	return result.Packages
}

// loadVehicles reads the vehicle catalog, falling back to the persistent
// fleet when no file is given.
func loadVehicles(logger *zap.Logger, path string, cfg model.AppConfig) []model.Vehicle {
	if path == "" {
		if cfg.FleetPath != "" {
			fleet, err := project.LoadFleet(cfg.FleetPath)
			if err != nil {
				logger.Fatal("failed to load fleet", zap.String("path", cfg.FleetPath), zap.Error(err))
			}
			return fleet.Vehicles
		}
		fleet, fleetPath, err := project.LoadOrCreateFleet()
		if err != nil {
			logger.Fatal("failed to load fleet", zap.String("path", fleetPath), zap.Error(err))
		}
		logger.Debug("using persistent fleet", zap.String("path", fleetPath), zap.Int("vehicles", len(fleet.Vehicles)))
		return fleet.Vehicles
	}

	var result importer.VehicleImportResult
	if isExcel(path) {
		result = importer.ImportVehiclesExcel(path)
	} else {
		result = importer.ImportVehiclesCSV(path)
	}
	for _, w := range result.Warnings {
		logger.Debug("vehicle import", zap.String("warning", w))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error("vehicle import", zap.String("error", e))
		}
		logger.Fatal("vehicle import failed", zap.String("path", path))
	}
	return result.Vehicles
}

func isExcel(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xlsm"
}

// printSummary writes the classification outcome to stdout.
func printSummary(result model.ClassifyResult) {
	mode := "best individual vehicle"
	if result.Distributed {
		mode = "distribution across vehicles"
	}
	fmt.Printf("Mode: %s\n", mode)
	fmt.Printf("Packages: %d\n\n", result.TotalPackages)

	for _, pr := range result.Platforms {
		fmt.Println(export.FormatManifest(pr, result.Distributed))
	}
}
