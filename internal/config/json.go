package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Analysis struct {
		MinElevationFeet float64 `json:"min_elevation_feet"`
		MinDistanceKM    float64 `json:"min_distance_km"`
		MaxDistanceKM    float64 `json:"max_distance_km"`
		GridResolution   float64 `json:"grid_resolution"`
	} `json:"analysis,omitempty"`

	Fetch struct {
		OverpassURL  string   `json:"overpass_url"`
		ElevationURL string   `json:"elevation_url"`
		Timeout      Duration `json:"timeout"`
		BatchSize    int      `json:"batch_size"`
	} `json:"fetch,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			ProfileDir string `json:"profile_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		Concurrency int `json:"concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Analysis: Analysis{
			MinElevationFeet: jsonCfg.Analysis.MinElevationFeet,
			MinDistanceKM:    jsonCfg.Analysis.MinDistanceKM,
			MaxDistanceKM:    jsonCfg.Analysis.MaxDistanceKM,
			GridResolution:   jsonCfg.Analysis.GridResolution,
		},
		Fetch: Fetch{
			OverpassURL:  jsonCfg.Fetch.OverpassURL,
			ElevationURL: jsonCfg.Fetch.ElevationURL,
			Timeout:      time.Duration(jsonCfg.Fetch.Timeout),
			BatchSize:    jsonCfg.Fetch.BatchSize,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				ProfileDir: jsonCfg.Storage.Files.ProfileDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			Concurrency: jsonCfg.Workers.Concurrency,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
