// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeSequence serializes an array of scalars into an opaque blob (the
// wire bytes of a structpb.ListValue).
func EncodeSequence(values []any) ([]byte, error) {
	list, err := structpb.NewList(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSequence, err)
	}

	blob, err := proto.MarshalOptions{Deterministic: true}.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingSequence, err)
	}
	return blob, nil
}

// DecodeSequence reverses EncodeSequence. Numbers come back as float64.
func DecodeSequence(blob []byte) ([]any, error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(blob, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingSequence, err)
	}
	return list.AsSlice(), nil
}
