// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-content-mirror/internal/config"
	"github.com/MKhiriev/go-content-mirror/internal/logger"
	"github.com/MKhiriev/go-content-mirror/internal/utils"
	"github.com/MKhiriev/go-content-mirror/models"
	"github.com/go-resty/resty/v2"
)

const (
	syncPath       = "/spaces/{space}/sync"
	syncTokenParam = "sync_token"
	retryWait      = 200 * time.Millisecond
)

type httpContentSource struct {
	client *utils.HTTPClient

	spaceID   string
	locale    string
	pageLimit int

	logger *logger.Logger
}

// NewHTTPContentSource constructs an HTTP/REST implementation of
// [ContentSource] for the sync endpoint of the space named by cfg.SpaceID.
//
// The client sends cfg.AccessToken as a bearer token, bounds every request
// by cfg.RequestTimeout and repeats requests failing with a network error,
// 429 or 5xx up to cfg.RetryCount times.
//
// Returns an error if cfg.BaseURL cannot be parsed as a valid URL or
// cfg.SpaceID is empty.
func NewHTTPContentSource(cfg config.MirrorSource, logger *logger.Logger) (ContentSource, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source base url: %w", err)
	}
	spaceID := strings.TrimSpace(cfg.SpaceID)
	if spaceID == "" {
		return nil, errors.New("empty space id")
	}

	client := utils.NewHTTPClient().WithRetries(cfg.RetryCount, retryWait, retryableStatus)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")
	if token := strings.TrimSpace(cfg.AccessToken); token != "" {
		client.SetAuthToken(token)
	}

	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = config.DefaultLocale
	}

	return &httpContentSource{
		client:    client,
		spaceID:   spaceID,
		locale:    locale,
		pageLimit: cfg.PageLimit,
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchInitial implements [ContentSource]. It sends GET /spaces/{space}/sync
// with initial=true and the filter as type / content_type query parameters.
func (h *httpContentSource) FetchInitial(ctx context.Context, filter models.SyncFilter) (models.DeltaPage, error) {
	if filter.ContentType != "" && filter.Type != "Entry" {
		return models.DeltaPage{}, fmt.Errorf("%w: content_type requires type Entry, got %q", ErrInvalidFilter, filter.Type)
	}

	params := map[string]string{"initial": "true"}
	if filter.Type != "" {
		params["type"] = filter.Type
	}
	if filter.ContentType != "" {
		params["content_type"] = filter.ContentType
	}
	if h.pageLimit > 0 {
		params["limit"] = strconv.Itoa(h.pageLimit)
	}

	return h.fetch(ctx, "httpContentSource.FetchInitial", params)
}

// FetchDelta implements [ContentSource]. The source remembers the filter of
// the initial request inside the token, so filter is not sent again.
func (h *httpContentSource) FetchDelta(ctx context.Context, token string, _ models.SyncFilter) (models.DeltaPage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.DeltaPage{}, ErrEmptySyncToken
	}

	return h.fetch(ctx, "httpContentSource.FetchDelta", map[string]string{syncTokenParam: token})
}

func (h *httpContentSource) fetch(ctx context.Context, funcName string, params map[string]string) (models.DeltaPage, error) {
	log := logger.FromContext(ctx)

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("space", h.spaceID).
		SetQueryParams(params).
		Get(syncPath)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("sync request failed")
		return models.DeltaPage{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", funcName).Int("status", resp.StatusCode()).Msg("sync request rejected")
		return models.DeltaPage{}, err
	}

	page, err := decodePage(resp.Body(), h.locale)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to decode sync page")
		return models.DeltaPage{}, err
	}

	log.Debug().
		Str("func", funcName).
		Int("entries", len(page.Entries)).
		Int("assets", len(page.Assets)).
		Int("deleted_entries", len(page.DeletedEntries)).
		Int("deleted_assets", len(page.DeletedAssets)).
		Bool("has_more", page.HasMore()).
		Msg("sync page fetched")

	return page, nil
}

// retryableStatus reports whether a response is worth repeating.
// Cancellation is final.
func retryableStatus(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
