// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version    string `json:"version"`
		SchemaFile string `json:"schema_file"`
		LogFile    string `json:"log_file"`
	} `json:"app,omitempty"`

	Source struct {
		BaseURL        string   `json:"base_url"`
		SpaceID        string   `json:"space_id"`
		AccessToken    string   `json:"access_token"`
		Locale         string   `json:"locale"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
		PageLimit      int      `json:"page_limit"`
		SyncType       string   `json:"sync_type"`
		ContentType    string   `json:"content_type"`
	} `json:"source,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		Once         bool     `json:"once"`
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
			Version:    jsonCfg.App.Version,
			SchemaFile: jsonCfg.App.SchemaFile,
			LogFile:    jsonCfg.App.LogFile,
		},
		Source: Source{
			BaseURL:        jsonCfg.Source.BaseURL,
			SpaceID:        jsonCfg.Source.SpaceID,
			AccessToken:    jsonCfg.Source.AccessToken,
			Locale:         jsonCfg.Source.Locale,
			RequestTimeout: time.Duration(jsonCfg.Source.RequestTimeout),
			RetryCount:     jsonCfg.Source.RetryCount,
			PageLimit:      jsonCfg.Source.PageLimit,
			SyncType:       jsonCfg.Source.SyncType,
			ContentType:    jsonCfg.Source.ContentType,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			Once:         jsonCfg.Workers.Once,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
