package storage

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tigerlife/internal/pkg/apperr"
)

const MaxImageSize = 10 * 1024 * 1024 // 10 MB

// AllowedImageTypes lists the content types accepted for uploads.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a decoded data-URL.
type Image struct {
	Data        []byte
	ContentType string
}

// DecodeDataURL decodes "data:image/png;base64,...." or a bare base64 string.
// The content type is sniffed from the bytes when the URL does not carry one.
func DecodeDataURL(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperr.Validation("image data is empty")
	}

	declared := ""
	payload := s
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, apperr.Validation("malformed data URL")
		}
		meta := s[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, apperr.Validation("data URL must be base64 encoded")
		}
		declared = strings.TrimSuffix(meta, ";base64")
		payload = s[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, apperr.Validation("image is not valid base64")
		}
	}
	if len(data) == 0 {
		return nil, apperr.Validation("image data is empty")
	}
	if len(data) > MaxImageSize {
		return nil, apperr.Validation("image exceeds maximum allowed size")
	}

	contentType := strings.Split(http.DetectContentType(data), ";")[0]
	if !AllowedImageTypes[contentType] && AllowedImageTypes[declared] {
		contentType = declared
	}
	if !AllowedImageTypes[contentType] {
		return nil, apperr.Validation("image type %q is not allowed", contentType)
	}

	return &Image{Data: data, ContentType: contentType}, nil
}

// ObjectKey builds the per-owner, timestamp-named key for a new object.
func ObjectKey(ownerID int64, contentType string, now time.Time) string {
	return fmt.Sprintf("%d/%d-%s%s", ownerID, now.UnixMilli(), uuid.NewString(), extFor(contentType))
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
