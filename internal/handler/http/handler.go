package http

import (
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/service"
)

type Handler struct {
	services *service.Services

	profileDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, profileDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		profileDir: profileDir,
		logger:     logger,
	}
}
