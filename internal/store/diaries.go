package store

import (
	"context"
	"database/sql"
	"fmt"

	"eniki/internal/models"
)

// PutDiary upserts a diary entry by id. The stored record is replaced
// in full; there is no field-level merge.
func (s *Store) PutDiary(ctx context.Context, entry *models.DiaryEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if !s.available() {
		return fmt.Errorf("put diary: %w", ErrStorageUnavailable)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO diary_entries (id, text, image_url, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			image_url = excluded.image_url,
			created_at = excluded.created_at
	`,
		entry.ID,
		entry.Text,
		entry.ImageURL,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return writeFailed("put diary", err)
	}
	return nil
}

// GetDiary returns a diary entry by id, or nil when absent.
func (s *Store) GetDiary(ctx context.Context, id string) (*models.DiaryEntry, error) {
	if !s.available() {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, image_url, created_at FROM diary_entries WHERE id = ?
	`, id)
	entry, err := scanEntry(row)
	if err != nil {
		return nil, readFailed("get diary", err)
	}
	return entry, nil
}

// GetAllDiaries returns every diary entry in storage order. Display
// ordering is the caller's responsibility. When storage is unavailable
// it degrades to an empty slice rather than failing, so the surrounding
// application stays renderable without a persistence backend.
func (s *Store) GetAllDiaries(ctx context.Context) ([]models.DiaryEntry, error) {
	if !s.available() {
		return []models.DiaryEntry{}, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, text, image_url, created_at FROM diary_entries")
	if err != nil {
		return nil, readFailed("list diaries", err)
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, readFailed("list diaries", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, readFailed("list diaries", err)
	}
	return entries, nil
}

// DeleteDiary removes a diary entry by id. Deleting a nonexistent id
// succeeds silently.
func (s *Store) DeleteDiary(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("entry id is required")
	}
	if !s.available() {
		return fmt.Errorf("delete diary: %w", ErrStorageUnavailable)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM diary_entries WHERE id = ?", id); err != nil {
		return writeFailed("delete diary", err)
	}
	return nil
}

// DeleteAllDiaries clears the diary collection. Idempotent.
func (s *Store) DeleteAllDiaries(ctx context.Context) error {
	if !s.available() {
		return fmt.Errorf("clear diaries: %w", ErrStorageUnavailable)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM diary_entries"); err != nil {
		return writeFailed("clear diaries", err)
	}
	return nil
}

// CountDiaries returns the number of stored diary entries.
func (s *Store) CountDiaries(ctx context.Context) (int, error) {
	if !s.available() {
		return 0, nil
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM diary_entries").Scan(&count); err != nil {
		return 0, readFailed("count diaries", err)
	}
	return count, nil
}

func scanEntry(scanner interface {
	Scan(dest ...any) error
}) (*models.DiaryEntry, error) {
	var entry models.DiaryEntry
	var createdAt string

	if err := scanner.Scan(&entry.ID, &entry.Text, &entry.ImageURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	parsed, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = parsed
	return &entry, nil
}
