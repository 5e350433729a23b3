package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
)

// Uploaded identifies a stored object.
type Uploaded struct {
	Bucket string
	Key    string
	URL    string
}

// Uploader decodes data-URLs and stores them under per-owner keys.
type Uploader struct {
	store gateway.ObjectStore
	log   *zap.Logger
	now   func() time.Time
}

func NewUploader(store gateway.ObjectStore, log *zap.Logger) *Uploader {
	return &Uploader{store: store, log: logger.OrNop(log), now: time.Now}
}

// Upload stores one data-URL image for ownerID.
func (u *Uploader) Upload(ctx context.Context, bucket string, ownerID int64, dataURL string) (*Uploaded, error) {
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	key := ObjectKey(ownerID, img.ContentType, u.now())
	url, err := u.store.Upload(ctx, bucket, key, img.Data, img.ContentType)
	if err != nil {
		return nil, err
	}
	return &Uploaded{Bucket: bucket, Key: key, URL: url}, nil
}

// UploadAll stores every image in order. On the first failure the objects
// already stored are removed again and the failing image's error is returned.
func (u *Uploader) UploadAll(ctx context.Context, bucket string, ownerID int64, dataURLs []string) ([]Uploaded, error) {
	out := make([]Uploaded, 0, len(dataURLs))
	for i, d := range dataURLs {
		up, err := u.Upload(ctx, bucket, ownerID, d)
		if err != nil {
			u.Discard(ctx, out)
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		out = append(out, *up)
	}
	return out, nil
}

func (u *Uploaded) String() string { return u.Bucket + "/" + u.Key }

// Discard removes stored objects; failures are only logged.
func (u *Uploader) Discard(ctx context.Context, objs []Uploaded) {
	for _, o := range objs {
		if err := u.store.Remove(ctx, o.Bucket, o.Key); err != nil {
			u.log.Warn("failed to remove uploaded object",
				zap.String("object", o.String()),
				zap.Error(err),
			)
		}
	}
}

// URLs returns the public URLs of objs in order.
func URLs(objs []Uploaded) []string {
	urls := make([]string, 0, len(objs))
	for _, o := range objs {
		urls = append(urls, o.URL)
	}
	return urls
}

// UploadFailed reports a failed image batch. Malformed input stays a
// validation error; everything else is a remote failure.
func UploadFailed(err error) error {
	if errors.Is(err, apperr.ErrValidation) {
		return apperr.Validation("Failed to upload images: %v", err)
	}
	return apperr.Remote(err, "Failed to upload images")
}
