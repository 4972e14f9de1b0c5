// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"state": "idle"}

	n, err := WriteJSON(w, data, http.StatusOK)

	require.NoError(t, err)
	assert.NotZero(t, n)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())
}

func TestWriteJSON_CustomStatusCode(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, map[string]string{"state": "committing"}, http.StatusConflict)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, nil, http.StatusOK)

	require.NoError(t, err)
	assert.Equal(t, "null", w.Body.String())
}

func TestWriteJSON_NestedStruct(t *testing.T) {
	type report struct {
		PassID  string `json:"pass_id"`
		Created int    `json:"created"`
	}
	type status struct {
		State  string  `json:"state"`
		Report *report `json:"last_report,omitempty"`
	}

	w := httptest.NewRecorder()
	data := status{State: "idle", Report: &report{PassID: "p1", Created: 3}}

	_, err := WriteJSON(w, data, http.StatusOK)
	require.NoError(t, err)

	expected, _ := json.Marshal(data)
	assert.Equal(t, string(expected), w.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		code     int
		wantBody string
	}{
		{name: "explicit message", msg: "sync in progress", code: http.StatusConflict, wantBody: `{"error":"sync in progress"}`},
		{name: "status text fallback", msg: "", code: http.StatusBadGateway, wantBody: `{"error":"Bad Gateway"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			_, err := WriteError(w, tt.msg, tt.code)

			require.NoError(t, err)
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
