package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/utils"
	"github.com/summitlab/peaksight/models"
)

// ElevationConfig configures the Open-Elevation API client.
type ElevationConfig struct {
	BaseURL   string
	Timeout   time.Duration
	BatchSize int
}

type elevationClient struct {
	client    *utils.HTTPClient
	batchSize int

	logger *logger.Logger
}

type elevationLookupRequest struct {
	Locations []models.Coordinate `json:"locations"`
}

type elevationLookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// NewElevationClient constructs an [ElevationAPI] backed by the
// Open-Elevation lookup endpoint.
func NewElevationClient(cfg ElevationConfig, log *logger.Logger) ElevationAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.open-elevation.com/api/v1/lookup"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}

	cli := utils.NewHTTPClient()
	cli.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &elevationClient{client: cli, batchSize: cfg.BatchSize, logger: log}
}

// FetchElevations resolves one elevation per coordinate, submitting the
// batch in chunks of the configured size. A chunk that fails — transport
// error, non-200 status, or short response — degrades to 0.0 elevations
// for its coordinates so a flaky upstream cannot poison the whole grid;
// the caller still receives exactly len(coords) values.
func (e *elevationClient) FetchElevations(ctx context.Context, coords []models.Coordinate) ([]float64, error) {
	elevations := make([]float64, 0, len(coords))
	totalChunks := (len(coords) + e.batchSize - 1) / e.batchSize

	for i := 0; i < len(coords); i += e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := i + e.batchSize
		if end > len(coords) {
			end = len(coords)
		}
		chunk := coords[i:end]
		chunkNum := i/e.batchSize + 1

		e.logger.Debug().
			Int("chunk", chunkNum).
			Int("total_chunks", totalChunks).
			Msg("fetching elevation batch")

		values, err := e.fetchChunk(ctx, chunk)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Int("chunk", chunkNum).
				Int("coords", len(chunk)).
				Msg("elevation chunk failed, degrading to zero elevations")

			values = make([]float64, len(chunk))
		}

		elevations = append(elevations, values...)
	}

	return elevations, nil
}

func (e *elevationClient) fetchChunk(ctx context.Context, chunk []models.Coordinate) ([]float64, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(elevationLookupRequest{Locations: chunk}).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("elevation lookup request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: elevation lookup returned status %d", ErrUpstreamStatus, resp.StatusCode())
	}

	var parsed elevationLookupResponse
	if err = json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode elevation response: %w", err)
	}
	if len(parsed.Results) != len(chunk) {
		return nil, fmt.Errorf("%w: got %d results for %d coordinates", ErrShortResponse, len(parsed.Results), len(chunk))
	}

	values := make([]float64, len(parsed.Results))
	for i, result := range parsed.Results {
		values[i] = result.Elevation
	}

	return values, nil
}
