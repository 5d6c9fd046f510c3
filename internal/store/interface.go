package store

import (
	"context"

	"eniki/internal/models"
)

// DiaryStore is the persistence surface the server depends on. A nil
// *Store satisfies it and behaves as an environment without
// persistence: reads degrade to empty results, writes fail with
// ErrStorageUnavailable.
type DiaryStore interface {
	PutDiary(ctx context.Context, entry *models.DiaryEntry) error
	GetDiary(ctx context.Context, id string) (*models.DiaryEntry, error)
	GetAllDiaries(ctx context.Context) ([]models.DiaryEntry, error)
	DeleteDiary(ctx context.Context, id string) error
	DeleteAllDiaries(ctx context.Context) error
	CountDiaries(ctx context.Context) (int, error)

	PutAvatar(ctx context.Context, desc *models.AvatarDescriptor) error
	GetAvatar(ctx context.Context) (*models.AvatarDescriptor, error)
	ClearAvatar(ctx context.Context) error

	SchemaVersion(ctx context.Context) (int, error)
}

var _ DiaryStore = (*Store)(nil)
