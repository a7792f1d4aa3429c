package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args. Each subcommand
// passes its own argument slice, so a fresh FlagSet is used instead of the
// global flag.CommandLine.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d cache database DSN (file path for sqlite, URI for postgres)
//	-driver cache database driver ("sqlite" or "postgres")
//	-profile-dir directory for elevation profiles and statistics
//	-c/-config json file path with configs
//	-min-elevation-feet minimum peak elevation in feet
//	-min-km/-max-km pairing distance band in kilometers
//	-resolution elevation grid spacing in degrees
//	-overpass-url Overpass API endpoint
//	-elevation-url Open-Elevation API endpoint
//	-fetch-timeout outbound request timeout (e.g., "90s")
//	-batch-size coordinates per elevation request
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-concurrency number of pairs analyzed in parallel
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("peaksight", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var profileDir string
	var jsonConfigPath string
	var minElevationFeet float64
	var minDistanceKM float64
	var maxDistanceKM float64
	var gridResolution float64
	var overpassURL string
	var elevationURL string
	var fetchTimeout time.Duration
	var batchSize int
	var requestTimeout time.Duration
	var concurrency int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Cache database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Cache database driver (sqlite|postgres)")
	fs.StringVar(&profileDir, "profile-dir", "", "Elevation profile output directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.Float64Var(&minElevationFeet, "min-elevation-feet", 0, "Minimum peak elevation in feet")
	fs.Float64Var(&minDistanceKM, "min-km", 0, "Minimum pairing distance in km")
	fs.Float64Var(&maxDistanceKM, "max-km", 0, "Maximum pairing distance in km")
	fs.Float64Var(&gridResolution, "resolution", 0, "Elevation grid spacing in degrees")
	fs.StringVar(&overpassURL, "overpass-url", "", "Overpass API endpoint")
	fs.StringVar(&elevationURL, "elevation-url", "", "Open-Elevation API endpoint")
	fs.DurationVar(&fetchTimeout, "fetch-timeout", 0, "Outbound request timeout (e.g., 90s)")
	fs.IntVar(&batchSize, "batch-size", 0, "Coordinates per elevation request")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s, 1m)")
	fs.IntVar(&concurrency, "concurrency", 0, "Pairs analyzed in parallel")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Analysis: Analysis{
			MinElevationFeet: minElevationFeet,
			MinDistanceKM:    minDistanceKM,
			MaxDistanceKM:    maxDistanceKM,
			GridResolution:   gridResolution,
		},
		Fetch: Fetch{
			OverpassURL:  overpassURL,
			ElevationURL: elevationURL,
			Timeout:      fetchTimeout,
			BatchSize:    batchSize,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				ProfileDir: profileDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{Concurrency: concurrency},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string so merging
// treats the flag as unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
