// Command server exposes the analysis pipeline over the JSON HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/summitlab/peaksight/internal/adapter"
	"github.com/summitlab/peaksight/internal/chart"
	"github.com/summitlab/peaksight/internal/config"
	handler "github.com/summitlab/peaksight/internal/handler/http"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/server"
	"github.com/summitlab/peaksight/internal/service"
	"github.com/summitlab/peaksight/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("peaksight-server")

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(service.Dependencies{
		Storages: storages,
		Peaks:    adapter.NewOverpassClient(adapter.OverpassConfig{BaseURL: cfg.Fetch.OverpassURL, Timeout: cfg.Fetch.Timeout}, log),
		API:      adapter.NewElevationClient(adapter.ElevationConfig{BaseURL: cfg.Fetch.ElevationURL, Timeout: cfg.Fetch.Timeout, BatchSize: cfg.Fetch.BatchSize}, log),
		Renderer: chart.NewRenderer(cfg.Storage.Files.ProfileDir, log),
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers := handler.NewHandler(services, cfg.Storage.Files.ProfileDir, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
