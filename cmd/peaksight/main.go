// Command peaksight is the batch front end of the line-of-sight pipeline:
// it prefetches the peak and elevation caches, derives candidate pairs,
// runs the full analysis, and manages the cached artifacts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/summitlab/peaksight/internal/adapter"
	"github.com/summitlab/peaksight/internal/chart"
	"github.com/summitlab/peaksight/internal/config"
	"github.com/summitlab/peaksight/internal/logger"
	"github.com/summitlab/peaksight/internal/service"
	"github.com/summitlab/peaksight/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usageText = `Usage: peaksight <command> [flags]

Commands:
  prefetch [-force]     fill the peak and elevation caches (skipped when populated)
  refresh               clean all caches, then prefetch from scratch
  clean                 remove all caches and rendered profiles
  pairs                 list candidate peak pairs inside the distance band
  analyze               run the full line-of-sight analysis and record the run
  los <peak1> <peak2>   analyze a single pair by peak names
  export-cache [dir]    write peaks_cache.json and elevation_cache.json snapshots
  import-cache [dir]    load cache snapshots back into the database
  version               print the application version
`

func main() {
	printBuildInfo()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}

	command, rest := args[0], args[1:]

	switch command {
	case "prefetch", "refresh", "clean", "pairs", "analyze", "los",
		"export-cache", "import-cache", "version":
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}

	// Positional arguments come before flags; peel them off per command.
	var (
		positional []string
		force      bool
	)
	switch command {
	case "prefetch":
		kept := rest[:0]
		for _, arg := range rest {
			if arg == "-force" || arg == "--force" {
				force = true
				continue
			}
			kept = append(kept, arg)
		}
		rest = kept
	case "los":
		if len(rest) < 2 {
			fmt.Fprintln(os.Stderr, "los requires two peak names")
			return 2
		}
		positional, rest = rest[:2], rest[2:]
	case "export-cache", "import-cache":
		if len(rest) > 0 && rest[0] != "" && rest[0][0] != '-' {
			positional, rest = rest[:1], rest[1:]
		}
	}

	log := logger.NewConsoleLogger("peaksight")

	cfg, err := config.GetStructuredConfig(rest)
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}

	if command == "version" {
		fmt.Println(cfg.App.Version)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// Services pull their logger from the context.
	ctx = log.WithContext(ctx)

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating storages")
		return 1
	}
	defer storages.Close()

	services, err := service.NewServices(service.Dependencies{
		Storages: storages,
		Peaks:    adapter.NewOverpassClient(adapter.OverpassConfig{BaseURL: cfg.Fetch.OverpassURL, Timeout: cfg.Fetch.Timeout}, log),
		API:      adapter.NewElevationClient(adapter.ElevationConfig{BaseURL: cfg.Fetch.ElevationURL, Timeout: cfg.Fetch.Timeout, BatchSize: cfg.Fetch.BatchSize}, log),
		Renderer: chart.NewRenderer(cfg.Storage.Files.ProfileDir, log),
	}, *cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating services")
		return 1
	}

	if err = dispatch(ctx, command, positional, force, services, storages); err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed")
		return 1
	}

	return 0
}

func dispatch(ctx context.Context, command string, positional []string, force bool,
	services *service.Services, storages *store.Storages) error {
	switch command {
	case "prefetch":
		return prefetch(ctx, services, force)

	case "refresh":
		if err := services.MaintenanceService.Clean(ctx); err != nil {
			return err
		}
		return prefetch(ctx, services, true)

	case "clean":
		return services.MaintenanceService.Clean(ctx)

	case "pairs":
		pairs, err := services.PairService.FindPairs(ctx)
		if err != nil {
			return err
		}
		for _, pair := range pairs {
			fmt.Printf("%s <-> %s: %.2f km\n", pair.First.Name, pair.Second.Name, pair.DistanceKM)
		}
		fmt.Printf("%d pairs\n", len(pairs))
		return nil

	case "analyze":
		if err := prefetch(ctx, services, false); err != nil {
			return err
		}
		run, reports, err := services.AnalysisService.Run(ctx)
		if err != nil {
			return err
		}
		for _, report := range reports {
			fmt.Println(report.Statistics())
			fmt.Println()
		}
		fmt.Printf("Run %s: %d pairs, %d clear, %d blocked\n",
			run.RunID, run.TotalPairs, run.ClearCount, run.BlockedCount)
		return nil

	case "los":
		report, err := services.AnalysisService.AnalyzePair(ctx, positional[0], positional[1])
		if err != nil {
			return err
		}
		fmt.Println(report.Statistics())
		return nil

	case "export-cache":
		dir := "."
		if len(positional) > 0 {
			dir = positional[0]
		}
		if err := store.ExportPeaksFile(ctx, storages.Peaks, filepath.Join(dir, "peaks_cache.json")); err != nil {
			return err
		}
		return store.ExportElevationsFile(ctx, storages.Elevations, filepath.Join(dir, "elevation_cache.json"))

	case "import-cache":
		dir := "."
		if len(positional) > 0 {
			dir = positional[0]
		}
		if err := store.ImportPeaksFile(ctx, storages.Peaks, filepath.Join(dir, "peaks_cache.json")); err != nil {
			return err
		}
		return store.ImportElevationsFile(ctx, storages.Elevations, filepath.Join(dir, "elevation_cache.json"))

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func prefetch(ctx context.Context, services *service.Services, force bool) error {
	peaks, err := services.PeakService.Prefetch(ctx, force)
	if err != nil {
		return err
	}
	fmt.Printf("%d peaks cached\n", peaks)

	grid, err := services.ElevationService.Prefetch(ctx, force)
	if err != nil {
		return err
	}
	fmt.Printf("%d elevation grid points cached\n", grid)

	return nil
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
