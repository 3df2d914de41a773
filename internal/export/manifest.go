package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cargopack/internal/model"
)

// ExportManifests writes one plain-text loading manifest per platform into
// dir and returns the paths written. Single-best results go to
// best_individual_vehicle_<platform>.txt, distribution results to
// best_combination_<platform>.txt.
func ExportManifests(dir string, result model.ClassifyResult) ([]string, error) {
	if len(result.Platforms) == 0 {
		return nil, fmt.Errorf("no platforms to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, pr := range result.Platforms {
		prefix := "best_individual_vehicle"
		if result.Distributed {
			prefix = "best_combination"
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", prefix, sanitizeFilename(pr.Platform)))

		content := FormatManifest(pr, result.Distributed)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return paths, fmt.Errorf("failed to write manifest for %s: %w", pr.Platform, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FormatManifest renders the loading manifest for one platform as plain text.
func FormatManifest(pr model.PlatformResult, distributed bool) string {
	var b strings.Builder

	mode := "best individual vehicle"
	if distributed {
		mode = "distribution across vehicles"
	}
	fmt.Fprintf(&b, "Platform: %s (%s)\n", pr.Platform, mode)
	fmt.Fprintf(&b, "Packages placed: %d of %d (%.1f%%)\n\n", pr.PackedCount(), pr.TotalPackages, pr.PackedPercent())

	for i, load := range platformLoads(pr) {
		bay := load.Vehicle.Bay
		fmt.Fprintf(&b, "Vehicle %d: %s (%.0f x %.0f x %.0f cm bay, %.1f kg limit)\n",
			i+1, load.Vehicle.Name, bay.Width, bay.Height, bay.Thickness, load.Vehicle.WeightLimit)
		fmt.Fprintf(&b, "  Loaded: %d packages, %.1f kg, %.1f%% of bay volume\n",
			load.PackedCount(), load.LoadedWeight(), load.Utilization())

		for _, p := range load.Placements {
			d := p.Package.Dims
			fmt.Fprintf(&b, "  - %-20s %5.1f x %5.1f x %5.1f cm  %6.1f kg  at (%.1f, %.1f, %.1f) %s\n",
				p.Package.Name, d.Width, d.Height, d.Thickness, p.Package.Weight,
				p.Position.X, p.Position.Y, p.Position.Z, p.Rotation.String())
		}
		b.WriteString("\n")
	}

	unplaced := platformUnplaced(pr)
	if len(unplaced) > 0 {
		b.WriteString("Unplaced packages:\n")
		for _, pkg := range unplaced {
			d := pkg.Dims
			fmt.Fprintf(&b, "  - %-20s %5.1f x %5.1f x %5.1f cm  %6.1f kg\n",
				pkg.Name, d.Width, d.Height, d.Thickness, pkg.Weight)
		}
	}

	return b.String()
}

// sanitizeFilename replaces characters that are unsafe in file names.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "-",
		"\\", "-",
		":", "-",
	)
	return replacer.Replace(name)
}
