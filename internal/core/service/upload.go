package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// storeImage uploads an image under prefix/<uuid><ext> and returns its URL.
func storeImage(ctx context.Context, store ports.ObjectStore, prefix string, up *ports.Upload) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(up.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedUpload, contentType)
	}
	if store == nil {
		return "", fmt.Errorf("store image: no object store configured")
	}

	key := path.Join(prefix, uuid.NewString()+ext)
	url, err := store.Put(ctx, key, up.Body, up.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}
