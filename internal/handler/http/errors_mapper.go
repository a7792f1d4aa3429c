package http

import (
	"errors"
	"net/http"

	"github.com/summitlab/peaksight/internal/los"
	"github.com/summitlab/peaksight/internal/service"
	"github.com/summitlab/peaksight/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrPeakNotFound:          http.StatusNotFound,
	service.ErrNoPairsFound:          http.StatusNotFound,
	service.ErrNoPeaksFetched:        http.StatusBadGateway,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	los.ErrIdenticalPeaks: http.StatusBadRequest,

	store.ErrElevationNotFound: http.StatusNotFound,
	store.ErrRunNotFound:       http.StatusNotFound,
	store.ErrRunAlreadyExists:  http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
