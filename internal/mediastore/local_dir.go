package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"eniki/internal/models"
)

const (
	// MaxUploadBytes caps avatar payloads at 10 MiB.
	MaxUploadBytes int64 = 10 << 20

	publicURLPrefix = "/uploads/avatars/"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// LocalDir stores avatar media as files in a local directory. Storage
// names are timestamp-prefixed sanitized declared names, so repeated
// uploads of the same name never collide.
type LocalDir struct {
	root string
	now  func() time.Time
}

// NewLocalDir creates a local media store rooted at root.
func NewLocalDir(root string) (*LocalDir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("media store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalDir{root: abs, now: time.Now}, nil
}

// Store validates and persists one media payload, returning the public
// reference. Oversized or wrong-kind payloads are rejected before any
// bytes reach the final location.
func (d *LocalDir) Store(ctx context.Context, r io.Reader, declaredName string, kind models.MediaKind) (StoredMedia, error) {
	var zero StoredMedia
	if d == nil {
		return zero, fmt.Errorf("media store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	if !models.IsValidMediaKind(kind) {
		return zero, fmt.Errorf("%w: %s", ErrUnsupportedMediaKind, kind)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	fileName := d.storageName(declaredName, kind)

	tmp, err := os.CreateTemp(filepath.Join(d.root, "tmp"), "upload-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	// Copy one byte past the cap so oversized payloads are detected
	// without buffering the whole stream.
	n, err := io.Copy(tmp, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		cleanup()
		return zero, err
	}
	if n > MaxUploadBytes {
		cleanup()
		return zero, ErrPayloadTooLarge
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, err
	}

	dst := filepath.Join(d.root, fileName)
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return zero, err
	}

	return StoredMedia{
		FileURL:   publicURLPrefix + fileName,
		FileName:  fileName,
		SizeBytes: n,
	}, nil
}

// Open returns a reader for a stored media file.
func (d *LocalDir) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if d == nil {
		return nil, fmt.Errorf("media store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := d.pathFromName(fileName)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Remove deletes a stored media file. Missing files are ignored.
func (d *LocalDir) Remove(ctx context.Context, fileName string) error {
	if d == nil {
		return fmt.Errorf("media store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.pathFromName(fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// storageName builds "{unixmillis}_{sanitized}.{kind}". Every
// non-alphanumeric rune in the declared name is replaced.
func (d *LocalDir) storageName(declaredName string, kind models.MediaKind) string {
	sanitized := unsafeNameChars.ReplaceAllString(declaredName, "_")
	if sanitized == "" {
		sanitized = "avatar"
	}
	return fmt.Sprintf("%d_%s.%s", d.now().UnixMilli(), sanitized, kind)
}

func (d *LocalDir) pathFromName(fileName string) (string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", fmt.Errorf("file name is required")
	}
	clean := filepath.Clean(filepath.FromSlash(fileName))
	if clean != filepath.Base(clean) || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid file name")
	}
	return filepath.Join(d.root, clean), nil
}
