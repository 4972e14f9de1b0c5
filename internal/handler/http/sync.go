// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/utils"
)

const asyncQueryParam = "async"

// triggerSync runs one sync pass and responds with the resulting status.
// With ?async=true the pass runs in the background and 202 is returned
// right away, or 409 when a pass is already running.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	async, err := parseAsync(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.triggerSync").Msg("invalid query")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if async {
		err = h.services.SyncService.StartSync(context.WithoutCancel(ctx), func(success bool) {
			log.Info().Str("func", "*Handler.triggerSync").Bool("success", success).Msg("background sync pass finished")
		})
		if err != nil {
			log.Err(err).Str("func", "*Handler.triggerSync").Msg("background sync pass not started")
			utils.WriteError(w, err.Error(), statusFromError(err))
			return
		}
		utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusAccepted)
		return
	}

	if err = h.services.SyncService.Sync(ctx); err != nil {
		log.Err(err).Str("func", "*Handler.triggerSync").Msg("sync pass failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK)
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK)
}

func parseAsync(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get(asyncQueryParam)
	if raw == "" {
		return false, nil
	}

	async, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ErrInvalidAsyncParam
	}
	return async, nil
}
