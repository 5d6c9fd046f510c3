package models

import (
	"fmt"
	"strings"
	"time"
)

// AvatarID is the sentinel key the single avatar descriptor is stored
// under. At most one descriptor exists at any time.
const AvatarID = "current_avatar"

// MediaKind defines accepted avatar media formats.
type MediaKind string

const (
	MediaKindGIF MediaKind = "gif"
	MediaKindMP4 MediaKind = "mp4"
)

var validMediaKinds = map[MediaKind]struct{}{
	MediaKindGIF: {},
	MediaKindMP4: {},
}

// AvatarDescriptor is the metadata record for the current avatar. The
// media itself lives in the upload directory; the descriptor only
// carries the reference returned by the media gateway.
type AvatarDescriptor struct {
	ID          string    `json:"id"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	MediaKind   MediaKind `json:"media_kind"`
	DisplayName string    `json:"display_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidMediaKind(kind MediaKind) bool {
	_, ok := validMediaKinds[kind]
	return ok
}

// ParseMediaKind normalizes and validates a raw media kind value.
func ParseMediaKind(raw string) (MediaKind, error) {
	value := MediaKind(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("media kind is required")
	}
	if !IsValidMediaKind(value) {
		return "", fmt.Errorf("invalid media kind: %s", value)
	}
	return value, nil
}

// MediaKindFromContentType maps an upload MIME type to a media kind.
func MediaKindFromContentType(contentType string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/gif":
		return MediaKindGIF, nil
	case "video/mp4":
		return MediaKindMP4, nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// ContentType returns the MIME type for a media kind.
func (k MediaKind) ContentType() string {
	switch k {
	case MediaKindGIF:
		return "image/gif"
	case MediaKindMP4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
