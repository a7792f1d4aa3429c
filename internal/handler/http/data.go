package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/models"
)

func (h *Handler) listPeaks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	minElevationM, ok := queryFloat(w, r, "min_elevation_m", 0)
	if !ok {
		return
	}

	peaks, err := h.services.PeakService.List(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listPeaks").Msg("error listing peaks")
		h.writeError(w, err)
		return
	}

	if minElevationM > 0 {
		filtered := peaks[:0]
		for _, peak := range peaks {
			if peak.ElevationM >= minElevationM {
				filtered = append(filtered, peak)
			}
		}
		peaks = filtered
	}

	h.writeJSON(w, http.StatusOK, models.PeaksResponse{Peaks: peaks, Length: len(peaks)})
}

func (h *Handler) listPairs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	minKM, ok := queryFloat(w, r, "min_km", 0)
	if !ok {
		return
	}
	maxKM, ok := queryFloat(w, r, "max_km", math.MaxFloat64)
	if !ok {
		return
	}

	pairs, err := h.services.PairService.FindPairs(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listPairs").Msg("error listing pairs")
		h.writeError(w, err)
		return
	}

	filtered := pairs[:0]
	for _, pair := range pairs {
		if pair.DistanceKM >= minKM && pair.DistanceKM <= maxKM {
			filtered = append(filtered, pair)
		}
	}
	pairs = filtered

	h.writeJSON(w, http.StatusOK, models.PairsResponse{Pairs: pairs, Length: len(pairs)})
}

// queryFloat parses an optional float query parameter. On a malformed
// value it writes a 400 and reports false.
func queryFloat(w http.ResponseWriter, r *http.Request, name string, fallback float64) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid %s value", name), http.StatusBadRequest)
		return 0, false
	}

	return value, true
}

func (h *Handler) analyzeLOS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.LOSRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.analyzeLOS").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if request.Peak1 == "" || request.Peak2 == "" {
		http.Error(w, "both peak1 and peak2 are required", http.StatusBadRequest)
		return
	}

	report, err := h.services.AnalysisService.AnalyzePair(r.Context(), request.Peak1, request.Peak2)
	if err != nil {
		log.Err(err).Str("func", "*Handler.analyzeLOS").Msg("error analyzing pair")
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, models.LOSResponse{
		Report:     report,
		Statistics: report.Statistics(),
	})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	runs, err := h.services.AnalysisService.ListRuns(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRuns").Msg("error listing runs")
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, models.RunsResponse{Runs: runs, Length: len(runs)})
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	run, err := h.services.AnalysisService.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRun").Msg("error getting run")
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, run)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Err(err).Msg("error encoding response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: err.Error()})
}
