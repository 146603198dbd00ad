// Package blob stores uploaded assets and hands back their public URLs.
package blob

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store persists one asset under key and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NewKey returns a unique storage key that keeps the extension of filename,
// e.g. "uploads/2026/1/2/<uuid>.png".
func NewKey(filename string) string {
	d := time.Now()
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("uploads/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func publicURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + key
}
