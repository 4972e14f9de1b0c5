// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// makeRequest creates a test request carrying a logger that writes to buf,
// the same way withTraceID attaches one.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		status       int
		body         string
		wantContains []string
	}{
		{
			name:   "trigger sync",
			method: http.MethodPost,
			path:   "/api/sync",
			status: http.StatusOK,
			body:   "{}",
			wantContains: []string{
				`"method":"POST"`,
				`"uri":"/api/sync"`,
				`"status":200`,
				`"size":2`,
				`"duration":`,
			},
		},
		{
			name:         "conflict",
			method:       http.MethodPost,
			path:         "/api/sync",
			status:       http.StatusConflict,
			body:         `{"error":"sync already in progress"}`,
			wantContains: []string{`"status":409`},
		},
		{
			name:         "query string is kept",
			method:       http.MethodPost,
			path:         "/api/sync?async=true",
			status:       http.StatusAccepted,
			wantContains: []string{`"uri":"/api/sync?async=true"`, `"status":202`, `"size":0`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			rec := httptest.NewRecorder()
			withLogging(next).ServeHTTP(rec, makeRequest(tt.method, tt.path, &buf))

			assert.Equal(t, tt.status, rec.Code)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
	})

	rec := httptest.NewRecorder()
	withLogging(next).ServeHTTP(rec, makeRequest(http.MethodGet, "/api/sync/status", &buf))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"size":1024`)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("test panic") })

	assert.Panics(t, func() {
		withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/panic", &buf))
	})
}
