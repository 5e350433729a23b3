// Package gateway describes the remote data platform the workflows run
// against: record storage (see internal/repository), an object bucket and
// invocable server-side functions.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Buckets used by the workflows.
const (
	BucketMarketplace = "marketplace-images"
	BucketServices    = "service-images"
	BucketEvents      = "event-images"
	BucketIDs         = "id-images"
	BucketAvatars     = "avatars"
)

// Server-side functions invoked through FunctionInvoker.
const (
	FnCreatePaymentIntent   = "create-payment-intent"
	FnRetrievePaymentIntent = "retrieve-payment-intent"
	FnProcessSellerPayout   = "process-seller-payout"
	FnExtractIDText         = "extract-id-text"
)

// InsertResult is the normalised response of every insert. Downstream code
// reads the new id from here and never inspects a raw response shape.
type InsertResult struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ObjectStore stores binary objects and returns their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, bucket, key string) error
}

// FunctionInvoker calls a named server-side function with a JSON payload and
// decodes the JSON result into out (which may be nil).
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, payload any, out any) error
}

var ErrEmptyInsertResponse = errors.New("insert response carried no rows")

// DecodeInsertResult accepts either an object-shaped or an array-shaped
// insert response and returns the first row's identity.
func DecodeInsertResult(raw []byte) (InsertResult, error) {
	var res InsertResult

	trimmed := firstNonSpace(raw)
	switch trimmed {
	case '[':
		var rows []InsertResult
		if err := json.Unmarshal(raw, &rows); err != nil {
			return res, fmt.Errorf("decode insert rows: %w", err)
		}
		if len(rows) == 0 {
			return res, ErrEmptyInsertResponse
		}
		res = rows[0]
	case '{':
		if err := json.Unmarshal(raw, &res); err != nil {
			return res, fmt.Errorf("decode insert row: %w", err)
		}
	default:
		return res, ErrEmptyInsertResponse
	}

	if res.ID == 0 {
		return res, ErrEmptyInsertResponse
	}
	return res, nil
}

func firstNonSpace(b []byte) byte {
	for _, c := range b {
		switch c {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return c
	}
	return 0
}
