// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrInvalidAsyncParam is returned when the "async" query parameter of
// POST /api/sync is not a boolean.
var ErrInvalidAsyncParam = errors.New("query parameter `async` must be a boolean")
