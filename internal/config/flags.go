// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// ParseFlags parses the command-line arguments (without the program name).
//
// Flags:
//
//	-a status server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-s schema file path
//	-source-url content source base URL
//	-space space identifier
//	-token access token
//	-locale locale of mirrored fields
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retry-count retries per page request
//	-page-limit items per page
//	-sync-type record type filter of initial passes
//	-content-type content type filter of initial passes
//	-sync-interval period between sync passes (e.g., "5m")
//	-log-file rotating log file path
//	-once run a single pass and exit
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("mirror", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, jsonConfigPath, schemaFile, logFile string
	var sourceURL, spaceID, accessToken, locale, syncType, contentType string
	var requestTimeout, syncInterval time.Duration
	var retryCount, pageLimit int
	var once bool

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&schemaFile, "s", "", "Schema file path")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")
	fs.StringVar(&sourceURL, "source-url", "", "Content source base URL")
	fs.StringVar(&spaceID, "space", "", "Space identifier")
	fs.StringVar(&accessToken, "token", "", "Access token")
	fs.StringVar(&locale, "locale", "", "Locale of mirrored fields")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&retryCount, "retry-count", 0, "Retries per page request")
	fs.IntVar(&pageLimit, "page-limit", 0, "Items per page")
	fs.StringVar(&syncType, "sync-type", "", "Record type filter of initial passes")
	fs.StringVar(&contentType, "content-type", "", "Content type filter of initial passes")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync interval (e.g., 5m)")
	fs.BoolVar(&once, "once", false, "Run a single sync pass and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SchemaFile: schemaFile,
			LogFile:    logFile,
		},
		Source: Source{
			BaseURL:        sourceURL,
			SpaceID:        spaceID,
			AccessToken:    accessToken,
			Locale:         locale,
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
			PageLimit:      pageLimit,
			SyncType:       syncType,
			ContentType:    contentType,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			Once:         once,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
