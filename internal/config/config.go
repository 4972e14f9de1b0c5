// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the mirror.
// It is populated by merging defaults, environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, schema file, log file.
	App App `envPrefix:"APP_"`

	// Source holds the remote content source endpoint and credentials.
	Source Source `envPrefix:"SOURCE_"`

	// Storage holds the local mirror database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the status/trigger HTTP server settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background sync job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string reported by /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// SchemaFile is the YAML file declaring entity types and type
	// registrations.
	// Env: APP_SCHEMA_FILE
	SchemaFile string `env:"SCHEMA_FILE"`

	// LogFile, when set, sends logs to a rotating file instead of stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Source holds the settings of the remote content delivery API.
type Source struct {
	// BaseURL is the API root (e.g. "https://cdn.example.com").
	// Env: SOURCE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// SpaceID identifies the remote space to mirror.
	// Env: SOURCE_SPACE_ID
	SpaceID string `env:"SPACE_ID"`

	// AccessToken is sent as a bearer token on every request.
	// Env: SOURCE_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// Locale selects which localized value of each field is mirrored.
	// Env: SOURCE_LOCALE
	Locale string `env:"LOCALE"`

	// RequestTimeout bounds a single page request (e.g. "30s").
	// Env: SOURCE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is how many times a failed page request is retried.
	// Env: SOURCE_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// PageLimit caps the number of items per page; zero keeps the server
	// default.
	// Env: SOURCE_PAGE_LIMIT
	PageLimit int `env:"PAGE_LIMIT"`

	// SyncType narrows initial passes to one record type ("Entry",
	// "Asset", ...); empty mirrors everything.
	// Env: SOURCE_SYNC_TYPE
	SyncType string `env:"SYNC_TYPE"`

	// ContentType narrows initial passes to one entry content type. It
	// requires SyncType "Entry".
	// Env: SOURCE_CONTENT_TYPE
	ContentType string `env:"CONTENT_TYPE"`
}

// Storage groups the storage backend settings.
type Storage struct {
	// DB holds the mirror database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the mirror database.
type DB struct {
	// DSN selects the backend: an SQLite file path, a postgres:// URL, or
	// ":memory:".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings of the status/trigger HTTP server.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format. Empty disables
	// the server.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds configuration of the periodic sync job.
type Workers struct {
	// SyncInterval is the period between sync passes.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// Once runs a single pass and exits instead of starting the job.
	// Env: WORKERS_ONCE
	Once bool `env:"ONCE"`
}

// Defaults applied before any other source.
const (
	DefaultLocale         = "en-US"
	DefaultRequestTimeout = 30 * time.Second
	DefaultRetryCount     = 3
	DefaultSyncInterval   = 5 * time.Minute
	DefaultDSN            = "mirror.db"
	DefaultSchemaFile     = "schema.yaml"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{SchemaFile: DefaultSchemaFile},
		Source: Source{
			Locale:         DefaultLocale,
			RequestTimeout: DefaultRequestTimeout,
			RetryCount:     DefaultRetryCount,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Workers: Workers{SyncInterval: DefaultSyncInterval},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources in the following priority order (later sources override earlier
// non-zero fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
