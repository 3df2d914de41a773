package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/cargopack/internal/geometry"
	"github.com/piwi3910/cargopack/internal/model"
)

var packageLayerColors = []color.ColorNumber{
	color.Red,
	color.Yellow,
	color.Green,
	color.Cyan,
	color.Blue,
	color.Magenta,
}

// ExportDXF writes one DXF wireframe drawing per loaded vehicle into dir and
// returns the paths written. The bay is drawn as a box outline on its own
// layer and each placed package as a box on a per-package layer, so CAD
// viewers can toggle individual packages.
func ExportDXF(dir string, result model.ClassifyResult) ([]string, error) {
	if len(result.Platforms) == 0 {
		return nil, fmt.Errorf("no platforms to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, pr := range result.Platforms {
		for i, load := range platformLoads(pr) {
			name := fmt.Sprintf("load_%s_%d_%s.dxf",
				sanitizeFilename(pr.Platform), i+1, sanitizeFilename(load.Vehicle.Name))
			path := filepath.Join(dir, name)

			if err := writeLoadDXF(path, load); err != nil {
				return paths, fmt.Errorf("failed to write DXF for %s: %w", load.Vehicle.Name, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// writeLoadDXF renders one vehicle load as a 3D wireframe drawing.
func writeLoadDXF(path string, load model.LoadResult) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("BAY", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	bayBox := geometry.Box{Extent: load.Vehicle.Bay.Extent()}
	if err := drawBox(d, bayBox); err != nil {
		return err
	}

	for i, p := range load.Placements {
		layerName := fmt.Sprintf("PKG_%02d_%s", i+1, sanitizeFilename(p.Package.Name))
		layerColor := packageLayerColors[i%len(packageLayerColors)]
		if _, err := d.AddLayer(layerName, layerColor, table.LT_CONTINUOUS, true); err != nil {
			return err
		}
		if err := drawBox(d, p.Box()); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// drawBox draws the 12 edges of an axis-aligned box on the current layer.
func drawBox(d *drawing.Drawing, box geometry.Box) error {
	min := box.Min
	max := box.Max()

	edges := [][2]geometry.Vector{
		// bottom face
		{{X: min.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: min.Z}},
		{{X: max.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: max.Y, Z: min.Z}},
		{{X: max.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: min.Z}},
		{{X: min.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: min.Y, Z: min.Z}},
		// top face
		{{X: min.X, Y: min.Y, Z: max.Z}, {X: max.X, Y: min.Y, Z: max.Z}},
		{{X: max.X, Y: min.Y, Z: max.Z}, {X: max.X, Y: max.Y, Z: max.Z}},
		{{X: max.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: max.Y, Z: max.Z}},
		{{X: min.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: min.Y, Z: max.Z}},
		// verticals
		{{X: min.X, Y: min.Y, Z: min.Z}, {X: min.X, Y: min.Y, Z: max.Z}},
		{{X: max.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: max.Z}},
		{{X: max.X, Y: max.Y, Z: min.Z}, {X: max.X, Y: max.Y, Z: max.Z}},
		{{X: min.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: max.Z}},
	}

	for _, e := range edges {
		if _, err := d.Line(e[0].X, e[0].Y, e[0].Z, e[1].X, e[1].Y, e[1].Z); err != nil {
			return err
		}
	}
	return nil
}
