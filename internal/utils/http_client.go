// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient with a default-configured
// underlying resty.Client. Each call returns an independent instance.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// WithRetries enables resty's retry loop: count extra attempts with
// exponential backoff starting at wait, repeated whenever one of conditions
// holds. A non-positive count leaves retries disabled.
func (c *HTTPClient) WithRetries(count int, wait time.Duration, conditions ...resty.RetryConditionFunc) *HTTPClient {
	if count <= 0 {
		return c
	}

	c.SetRetryCount(count).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(wait * time.Duration(1<<min(count, 6)))
	for _, cond := range conditions {
		c.AddRetryCondition(cond)
	}

	return c
}
