package store

import (
	"context"
	"database/sql"
	"fmt"

	"eniki/internal/models"
)

// PutAvatar persists the avatar descriptor under the fixed sentinel
// id, replacing any prior descriptor in full. The descriptor's own ID
// field is ignored.
func (s *Store) PutAvatar(ctx context.Context, desc *models.AvatarDescriptor) error {
	if desc == nil {
		return fmt.Errorf("descriptor is required")
	}
	if !models.IsValidMediaKind(desc.MediaKind) {
		return fmt.Errorf("invalid media kind: %s", desc.MediaKind)
	}
	if !s.available() {
		return fmt.Errorf("put avatar: %w", ErrStorageUnavailable)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO avatar (id, file_url, file_name, media_kind, display_name, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_url = excluded.file_url,
			file_name = excluded.file_name,
			media_kind = excluded.media_kind,
			display_name = excluded.display_name,
			updated_at = excluded.updated_at
	`,
		models.AvatarID,
		desc.FileURL,
		desc.FileName,
		string(desc.MediaKind),
		desc.DisplayName,
		formatTime(desc.UpdatedAt),
	)
	if err != nil {
		return writeFailed("put avatar", err)
	}
	return nil
}

// GetAvatar returns the current avatar descriptor, or nil when no
// avatar has been set. When storage is unavailable it degrades to
// absent, mirroring GetAllDiaries.
func (s *Store) GetAvatar(ctx context.Context) (*models.AvatarDescriptor, error) {
	if !s.available() {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_url, file_name, media_kind, display_name, updated_at
		FROM avatar WHERE id = ?
	`, models.AvatarID)

	var desc models.AvatarDescriptor
	var kind, updatedAt string
	if err := row.Scan(&desc.ID, &desc.FileURL, &desc.FileName, &kind, &desc.DisplayName, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, readFailed("get avatar", err)
	}

	desc.MediaKind = models.MediaKind(kind)
	parsed, err := parseTime(updatedAt)
	if err != nil {
		return nil, readFailed("get avatar", err)
	}
	desc.UpdatedAt = parsed
	return &desc, nil
}

// ClearAvatar deletes the sentinel descriptor. Idempotent.
func (s *Store) ClearAvatar(ctx context.Context) error {
	if !s.available() {
		return fmt.Errorf("clear avatar: %w", ErrStorageUnavailable)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM avatar WHERE id = ?", models.AvatarID); err != nil {
		return writeFailed("clear avatar", err)
	}
	return nil
}
