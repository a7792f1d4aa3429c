package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/utils"
	"github.com/summitlab/peaksight/models"
)

// OverpassConfig configures the Overpass API client.
type OverpassConfig struct {
	BaseURL string
	Timeout time.Duration
}

type overpassClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// overpassQueryTemplate selects every node tagged natural=peak inside a
// (south,west,north,east) bounding box.
const overpassQueryTemplate = `[out:json][timeout:60];
(
  node["natural"="peak"](%v,%v,%v,%v);
);
out body;`

// overpassResponse mirrors the subset of the Overpass JSON output the
// catalogue needs.
type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// NewOverpassClient constructs a [PeakSource] backed by the Overpass API.
func NewOverpassClient(cfg OverpassConfig, log *logger.Logger) PeakSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}

	cli := utils.NewHTTPClient()
	cli.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &overpassClient{client: cli, logger: log}
}

// FetchPeaks queries the Overpass API for peak nodes inside region and
// returns those at or above minElevationM. Nodes without a parseable "ele"
// tag are skipped; unnamed nodes are catalogued as "Peak_<osm id>".
func (o *overpassClient) FetchPeaks(ctx context.Context, region models.Region, minElevationM float64) ([]models.Peak, error) {
	query := fmt.Sprintf(overpassQueryTemplate, region.South, region.West, region.North, region.East)

	resp, err := o.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"data": query}).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("overpass request for %q: %w", region.Name, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: overpass returned status %d for %q", ErrUpstreamStatus, resp.StatusCode(), region.Name)
	}

	var parsed overpassResponse
	if err = json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode overpass response for %q: %w", region.Name, err)
	}

	peaks := make([]models.Peak, 0, len(parsed.Elements))
	for _, element := range parsed.Elements {
		ele, ok := element.Tags["ele"]
		if !ok {
			continue
		}

		elevationM, err := strconv.ParseFloat(ele, 64)
		if err != nil {
			continue // non-numeric "ele" tags exist in OSM data
		}
		if elevationM < minElevationM {
			continue
		}

		name := element.Tags["name"]
		if name == "" {
			name = fmt.Sprintf("Peak_%d", element.ID)
		}

		peaks = append(peaks, models.Peak{
			Name:       name,
			Lat:        element.Lat,
			Lon:        element.Lon,
			ElevationM: elevationM,
		})
	}

	o.logger.Debug().
		Str("region", region.Name).
		Int("peaks", len(peaks)).
		Msg("fetched peaks from overpass")

	return peaks, nil
}
