package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"eniki/internal/api"
	"eniki/internal/mediastore"
	"eniki/internal/models"
	"eniki/internal/store"
)

// AvatarService orchestrates the avatar upload workflow: media goes
// through the gateway, only the returned reference is persisted.
type AvatarService struct {
	store  store.DiaryStore
	media  mediastore.MediaStore
	logger *slog.Logger
	now    func() time.Time
}

// NewAvatarService constructs an AvatarService.
func NewAvatarService(diaryStore store.DiaryStore, media mediastore.MediaStore, logger *slog.Logger) *AvatarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AvatarService{store: diaryStore, media: media, logger: logger, now: time.Now}
}

// UploadInput describes one avatar upload.
type UploadInput struct {
	Media       io.Reader
	DisplayName string
	FileType    string
	ContentType string
}

// Upload validates and stores avatar media, then replaces the
// descriptor under the sentinel id. The previous stored file is
// removed best-effort; a leftover file never fails the upload.
func (s *AvatarService) Upload(ctx context.Context, in UploadInput) (api.AvatarUploadResponse, error) {
	var resp api.AvatarUploadResponse
	if s == nil || s.media == nil {
		return resp, internalError(fmt.Errorf("media store is not configured"))
	}

	if in.Media == nil {
		return resp, badRequestCode(fmt.Errorf("file is required"), ErrCodeMissingRequired)
	}
	if err := validateDisplayName(in.DisplayName); err != nil {
		return resp, err
	}

	kind, err := models.ParseMediaKind(in.FileType)
	if err != nil {
		return resp, badRequestCode(err, ErrCodeInvalidMediaKind)
	}
	if in.ContentType != "" {
		declaredKind, err := models.MediaKindFromContentType(in.ContentType)
		if err != nil {
			return resp, badRequestCode(err, ErrCodeInvalidMediaKind)
		}
		if declaredKind != kind {
			return resp, badRequestCode(fmt.Errorf("fileType %s does not match content type %s", kind, in.ContentType), ErrCodeInvalidMediaKind)
		}
	}

	previous, err := s.store.GetAvatar(ctx)
	if err != nil {
		return resp, storeFailure(err)
	}

	stored, err := s.media.Store(ctx, in.Media, in.DisplayName, kind)
	if err != nil {
		return resp, classifyMediaError(err)
	}

	desc := &models.AvatarDescriptor{
		ID:          models.AvatarID,
		FileURL:     stored.FileURL,
		FileName:    stored.FileName,
		MediaKind:   kind,
		DisplayName: strings.TrimSpace(in.DisplayName),
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.store.PutAvatar(ctx, desc); err != nil {
		// Roll back the stored media so a failed write leaves no
		// orphan file behind.
		_ = s.media.Remove(ctx, stored.FileName)
		return resp, storeFailure(err)
	}

	if previous != nil && previous.FileName != "" && previous.FileName != stored.FileName {
		if err := s.media.Remove(ctx, previous.FileName); err != nil {
			s.logger.Warn("remove previous avatar media", "file_name", previous.FileName, "error", err)
		}
	}

	return api.AvatarUploadResponse{
		Success:  true,
		FileURL:  stored.FileURL,
		FileName: stored.FileName,
		FileType: string(kind),
		Name:     desc.DisplayName,
	}, nil
}

// Get returns the current avatar descriptor.
func (s *AvatarService) Get(ctx context.Context) (api.AvatarResponse, error) {
	var resp api.AvatarResponse
	desc, err := s.store.GetAvatar(ctx)
	if err != nil {
		return resp, storeFailure(err)
	}
	if desc == nil {
		return resp, notFoundCode(fmt.Errorf("no avatar set"), ErrCodeAvatarNotFound)
	}
	resp.AvatarDescriptor = *desc
	return resp, nil
}

// Delete removes the stored media file and clears the descriptor.
func (s *AvatarService) Delete(ctx context.Context, fileName string) (api.AvatarDeleteResponse, error) {
	var resp api.AvatarDeleteResponse

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return resp, badRequestCode(fmt.Errorf("fileName is required"), ErrCodeMissingRequired)
	}

	if s.media != nil {
		if err := s.media.Remove(ctx, fileName); err != nil {
			return resp, internalError(fmt.Errorf("remove avatar media: %w", err))
		}
	}

	desc, err := s.store.GetAvatar(ctx)
	if err != nil {
		return resp, storeFailure(err)
	}
	if desc != nil && desc.FileName == fileName {
		if err := s.store.ClearAvatar(ctx); err != nil {
			return resp, storeFailure(err)
		}
	}

	return api.AvatarDeleteResponse{Success: true, Message: "avatar media deleted"}, nil
}

// OpenMedia returns a reader for a stored avatar media file.
func (s *AvatarService) OpenMedia(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if s == nil || s.media == nil {
		return nil, internalError(fmt.Errorf("media store is not configured"))
	}
	return s.media.Open(ctx, fileName)
}

func classifyMediaError(err error) error {
	switch {
	case errors.Is(err, mediastore.ErrPayloadTooLarge):
		return badRequestCode(err, ErrCodeRequestTooLarge)
	case errors.Is(err, mediastore.ErrUnsupportedMediaKind):
		return badRequestCode(err, ErrCodeInvalidMediaKind)
	default:
		return internalError(err)
	}
}
