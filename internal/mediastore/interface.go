package mediastore

import (
	"context"
	"errors"
	"io"

	"eniki/internal/models"
)

// Gateway validation errors, rejected before any storage attempt.
var (
	ErrPayloadTooLarge      = errors.New("payload exceeds maximum upload size")
	ErrUnsupportedMediaKind = errors.New("unsupported media kind")
)

// StoredMedia describes one persisted avatar payload. The store layer
// only ever holds this reference, never the media bytes.
type StoredMedia struct {
	FileURL   string
	FileName  string
	SizeBytes int64
}

// MediaStore is the avatar media gateway abstraction.
type MediaStore interface {
	Store(ctx context.Context, r io.Reader, declaredName string, kind models.MediaKind) (StoredMedia, error)
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
	Remove(ctx context.Context, fileName string) error
}
