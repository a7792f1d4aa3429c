package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

func coords(n int) []models.Coordinate {
	out := make([]models.Coordinate, n)
	for i := range out {
		out[i] = models.Coordinate{Lat: 38 + float64(i)*0.01, Lon: -105}
	}
	return out
}

// echoElevationServer answers every coordinate with its latitude as the
// elevation, which makes ordering trivially checkable.
func echoElevationServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}

		var req elevationLookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		results := make([]string, 0, len(req.Locations))
		for _, loc := range req.Locations {
			results = append(results, fmt.Sprintf(`{"elevation": %v}`, loc.Lat))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"results": [%s]}`, strings.Join(results, ","))
	}))
}

func TestElevationClient_FetchElevations_ChunksAndOrder(t *testing.T) {
	var requests atomic.Int64
	server := echoElevationServer(t, &requests)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, BatchSize: 2}, logger.Nop())

	input := coords(5)
	elevations, err := client.FetchElevations(context.Background(), input)
	require.NoError(t, err)

	// 5 coordinates at batch size 2 → 3 requests.
	assert.Equal(t, int64(3), requests.Load())

	require.Len(t, elevations, len(input))
	for i, c := range input {
		assert.InDelta(t, c.Lat, elevations[i], 1e-9)
	}
}

func TestElevationClient_FetchElevations_FailedChunkDegradesToZero(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var req elevationLookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		results := make([]string, 0, len(req.Locations))
		for range req.Locations {
			results = append(results, `{"elevation": 1500}`)
		}
		_, _ = fmt.Fprintf(w, `{"results": [%s]}`, strings.Join(results, ","))
	}))
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, BatchSize: 2}, logger.Nop())

	elevations, err := client.FetchElevations(context.Background(), coords(4))
	require.NoError(t, err)

	// first chunk degraded, second chunk served
	assert.Equal(t, []float64{0, 0, 1500, 1500}, elevations)
}

func TestElevationClient_FetchElevations_ShortResponseDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"elevation": 100}]}`))
	}))
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, BatchSize: 10}, logger.Nop())

	elevations, err := client.FetchElevations(context.Background(), coords(3))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, elevations)
}

func TestElevationClient_FetchElevations_Empty(t *testing.T) {
	server := echoElevationServer(t, nil)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL}, logger.Nop())

	elevations, err := client.FetchElevations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, elevations)
}

func TestElevationClient_FetchElevations_ContextCanceled(t *testing.T) {
	server := echoElevationServer(t, nil)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, BatchSize: 1}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchElevations(ctx, coords(3))
	assert.ErrorIs(t, err, context.Canceled)
}
