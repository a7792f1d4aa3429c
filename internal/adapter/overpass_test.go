package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

func testRegion() models.Region {
	return models.Region{Name: "Colorado", South: 37, North: 41, West: -109, East: -102}
}

func TestOverpassClient_FetchPeaks_FiltersAndNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseForm())
		query := r.Form.Get("data")
		assert.Contains(t, query, `node["natural"="peak"]`)
		assert.Contains(t, query, "(37,-109,41,-102)")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements": [
			{"id": 1, "lat": 38.8409, "lon": -105.0423, "tags": {"name": "Pikes Peak", "ele": "4302"}},
			{"id": 2, "lat": 39.1178, "lon": -106.4454, "tags": {"name": "Mount Elbert", "ele": "4401"}},
			{"id": 3, "lat": 39.0, "lon": -105.5, "tags": {"name": "Low Hill", "ele": "2000"}},
			{"id": 4, "lat": 39.2, "lon": -105.6, "tags": {"ele": "4100"}},
			{"id": 5, "lat": 39.3, "lon": -105.7, "tags": {"name": "No Elevation"}},
			{"id": 6, "lat": 39.4, "lon": -105.8, "tags": {"name": "Bad Elevation", "ele": "high"}}
		]}`))
	}))
	defer server.Close()

	client := NewOverpassClient(OverpassConfig{BaseURL: server.URL}, logger.Nop())

	peaks, err := client.FetchPeaks(context.Background(), testRegion(), 4000)
	require.NoError(t, err)

	require.Len(t, peaks, 3)
	assert.Equal(t, "Pikes Peak", peaks[0].Name)
	assert.Equal(t, 4302.0, peaks[0].ElevationM)
	assert.Equal(t, "Mount Elbert", peaks[1].Name)
	// unnamed node gets the synthetic Peak_<id> name
	assert.Equal(t, "Peak_4", peaks[2].Name)
}

func TestOverpassClient_FetchPeaks_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOverpassClient(OverpassConfig{BaseURL: server.URL}, logger.Nop())

	_, err := client.FetchPeaks(context.Background(), testRegion(), 4000)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}

func TestOverpassClient_FetchPeaks_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements": [`))
	}))
	defer server.Close()

	client := NewOverpassClient(OverpassConfig{BaseURL: server.URL}, logger.Nop())

	_, err := client.FetchPeaks(context.Background(), testRegion(), 4000)
	assert.Error(t, err)
}

func TestOverpassClient_FetchPeaks_EmptyRegion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements": []}`))
	}))
	defer server.Close()

	client := NewOverpassClient(OverpassConfig{BaseURL: server.URL}, logger.Nop())

	peaks, err := client.FetchPeaks(context.Background(), testRegion(), 4000)
	require.NoError(t, err)
	assert.Empty(t, peaks)
}
