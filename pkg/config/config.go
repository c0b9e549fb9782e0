// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/repofleet/coordinator/pkg/errors"
	"github.com/repofleet/coordinator/pkg/logger/conf"
	"gopkg.in/yaml.v2"
)

// Config is the root process configuration, loaded from the file named
// by CONFIG_PATH (defaulting to config.yaml).
type Config struct {
	HttpPort   int              `json:"httpPort" yaml:"httpPort"`
	Log        conf.LogConfig   `json:"log" yaml:"log"`
	Middleware MiddlewareConfig `json:"middleware" yaml:"middleware"`
	Dispatch   DispatchConfig   `json:"dispatch" yaml:"dispatch"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}

// MiddlewareConfig toggles the gin middleware chain built by
// pkg/router. Every field defaults to enabled; it exists so an
// operator can disable CORS or metrics instrumentation in an
// environment where something upstream already provides it.
type MiddlewareConfig struct {
	EnableCORS    bool `json:"enableCors" yaml:"enableCors"`
	EnableLogging bool `json:"enableLogging" yaml:"enableLogging"`
	EnableMetrics bool `json:"enableMetrics" yaml:"enableMetrics"`
}

// DispatchConfig holds the fleet-coordination constants from the
// dispatcher specification: block sizing, timeout, and the
// empty-results/load-balance staleness thresholds.
type DispatchConfig struct {
	// BatchSize is the number of repository ids assigned to a block.
	BatchSize int `json:"batchSize" yaml:"batchSize"`
	// BlockTimeoutSeconds is how long a block may sit unfinished
	// before get_timed_out_block will hand it out again.
	BlockTimeoutSeconds int `json:"blockTimeoutSeconds" yaml:"blockTimeoutSeconds"`
	// EmptyResultsMax is the number of consecutive empty callbacks at
	// which a run of any hoster type is concluded; for an id-scanned
	// hoster (e.g. github) it is the only end signal.
	EmptyResultsMax int `json:"emptyResultsMax" yaml:"emptyResultsMax"`
	// StaleRunSeconds is how old (by run_created_ts) a finished run
	// must be before the load-balanced endpoint treats its hoster as
	// crawlable again; a hoster whose run is unfinished is always
	// crawlable.
	StaleRunSeconds int `json:"staleRunSeconds" yaml:"staleRunSeconds"`
}

// DefaultDispatchConfig mirrors the constants named in the
// specification: batch_size=1000, block_timeout=1000,
// empty_results_max=100, staleness threshold=3600.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		BatchSize:           1000,
		BlockTimeoutSeconds: 1000,
		EmptyResultsMax:     100,
		StaleRunSeconds:     3600,
	}
}

// StoreConfig selects and configures the StateStore/RepoSink backend.
type StoreConfig struct {
	// Backend is "memory" or "postgres".
	Backend  string         `json:"backend" yaml:"backend"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
}

type PostgresConfig struct {
	DSN             string        `json:"dsn" yaml:"dsn"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
}

func (cfg Config) GetHttpBindAddress() string {
	port := cfg.HttpPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}

var config *Config

// LoadConfig reads and decodes the yaml file named by CONFIG_PATH
// (defaulting to config.yaml) and fills in documented defaults for
// anything the file omits.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	configFile, err := os.Open(configPath)
	if err != nil {
		return nil, errors.NewError().
			WithCode(errors.CodeInitializeError).
			WithMessage("failed to open config file").
			WithError(err)
	}
	defer configFile.Close()

	loaded := &Config{
		Middleware: MiddlewareConfig{EnableCORS: true, EnableLogging: true, EnableMetrics: true},
	}
	decoder := yaml.NewDecoder(configFile)
	err = decoder.Decode(loaded)
	if err != nil {
		return nil, errors.NewError().
			WithCode(errors.CodeInitializeError).
			WithMessage("failed to parse config file").
			WithError(err)
	}
	applyDefaults(loaded)
	config = loaded
	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Dispatch.BatchSize == 0 {
		cfg.Dispatch.BatchSize = 1000
	}
	if cfg.Dispatch.BlockTimeoutSeconds == 0 {
		cfg.Dispatch.BlockTimeoutSeconds = 1000
	}
	if cfg.Dispatch.EmptyResultsMax == 0 {
		cfg.Dispatch.EmptyResultsMax = 100
	}
	if cfg.Dispatch.StaleRunSeconds == 0 {
		cfg.Dispatch.StaleRunSeconds = 3600
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Log.Core == "" {
		cfg.Log = *conf.DefaultConfig()
	}
}
