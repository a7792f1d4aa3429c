// Package chart renders elevation-profile images for analyzed peak pairs.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

// ErrEmptyProfile is returned when a report carries no profile samples.
var ErrEmptyProfile = errors.New("report has no profile samples")

var (
	terrainColor   = color.RGBA{R: 160, G: 82, B: 45, A: 255}  // sienna
	sightColor     = color.RGBA{R: 65, G: 105, B: 225, A: 255} // royalblue
	referenceColor = color.RGBA{A: 255}                        // black
)

// Renderer writes profile PNGs into a fixed output directory.
type Renderer struct {
	dir string

	logger *logger.Logger
}

// NewRenderer constructs a Renderer that writes images under dir. The
// directory is created on first render.
func NewRenderer(dir string, log *logger.Logger) *Renderer {
	return &Renderer{
		dir:    dir,
		logger: log,
	}
}

// Render draws the terrain profile, the curvature-corrected sight line,
// and the straight no-curvature reference of report to a PNG and returns
// the written path.
func (r *Renderer) Render(report models.LOSReport) (string, error) {
	samples := len(report.SampleKM)
	if samples == 0 || samples != len(report.TerrainM) || samples != len(report.SightM) {
		return "", ErrEmptyProfile
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create profile directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s to %s (%.1f km)",
		report.Pair.First.Name, report.Pair.Second.Name, report.Pair.DistanceKM)
	p.X.Label.Text = "Distance (km)"
	p.Y.Label.Text = "Elevation (m)"
	p.Add(plotter.NewGrid())

	terrain, err := plotter.NewLine(profilePoints(report.SampleKM, report.TerrainM))
	if err != nil {
		return "", fmt.Errorf("build terrain line: %w", err)
	}
	terrain.Color = terrainColor
	terrain.Width = vg.Points(1)

	sight, err := plotter.NewLine(profilePoints(report.SampleKM, report.SightM))
	if err != nil {
		return "", fmt.Errorf("build sight line: %w", err)
	}
	sight.Color = sightColor
	sight.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	reference, err := plotter.NewLine(profilePoints(report.SampleKM, referenceLine(report)))
	if err != nil {
		return "", fmt.Errorf("build reference line: %w", err)
	}
	reference.Color = referenceColor
	reference.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}

	p.Add(terrain, sight, reference)
	p.Legend.Add("Terrain", terrain)
	p.Legend.Add("Line of sight", sight)
	p.Legend.Add("Straight line (no curvature)", reference)
	p.Legend.Top = true

	path := filepath.Join(r.dir, ProfileFileName(
		report.Pair.First.Name, report.Pair.Second.Name, report.Pair.DistanceKM))

	if err = p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save profile image: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("profile rendered")

	return path, nil
}

// ProfileFileName builds the canonical image name for a pair:
// lowercase peak names with spaces collapsed to underscores, joined by
// "_to_", suffixed with the rounded distance.
func ProfileFileName(first, second string, distanceKM float64) string {
	return fmt.Sprintf("%s_to_%s_%.0fkm.png",
		sanitize(first), sanitize(second), math.Round(distanceKM))
}

func sanitize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// referenceLine interpolates straight between the peak elevations, ignoring
// the Earth bulge the sight line corrects for.
func referenceLine(report models.LOSReport) []float64 {
	first := report.Pair.First.ElevationM
	second := report.Pair.Second.ElevationM

	ys := make([]float64, len(report.SampleKM))
	for i, d := range report.SampleKM {
		ys[i] = first + (second-first)*d/report.Pair.DistanceKM
	}
	return ys
}

func profilePoints(xs, ys []float64) plotter.XYs {
	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = xs[i]
		points[i].Y = ys[i]
	}
	return points
}
