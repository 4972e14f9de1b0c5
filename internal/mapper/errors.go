// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import "errors"

var (
	ErrEncodingSequence = errors.New("error encoding sequence")
	ErrDecodingSequence = errors.New("error decoding sequence")
)
