package store

import (
	"context"
	"testing"
	"time"

	"eniki/internal/models"
)

func TestPutAndGetAvatar(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	desc := &models.AvatarDescriptor{
		FileURL:     "/uploads/avatars/1700000000000_cat.gif",
		FileName:    "1700000000000_cat.gif",
		MediaKind:   models.MediaKindGIF,
		DisplayName: "ねこ",
		UpdatedAt:   now,
	}
	if err := st.PutAvatar(ctx, desc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.GetAvatar(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected avatar, got nil")
	}
	if got.ID != models.AvatarID {
		t.Fatalf("expected sentinel id %q, got %q", models.AvatarID, got.ID)
	}
	if got.DisplayName != "ねこ" {
		t.Fatalf("unexpected display name: %q", got.DisplayName)
	}
	if got.MediaKind != models.MediaKindGIF {
		t.Fatalf("unexpected media kind: %q", got.MediaKind)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at %v, got %v", now, got.UpdatedAt)
	}
}

func TestPutAvatarReplacesPrevious(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	a1 := &models.AvatarDescriptor{
		FileURL:   "/uploads/avatars/1_a1.gif",
		FileName:  "1_a1.gif",
		MediaKind: models.MediaKindGIF,
		UpdatedAt: time.Now(),
	}
	if err := st.PutAvatar(ctx, a1); err != nil {
		t.Fatalf("put a1: %v", err)
	}

	a2 := &models.AvatarDescriptor{
		FileURL:   "/uploads/avatars/2_a2.mp4",
		FileName:  "2_a2.mp4",
		MediaKind: models.MediaKindMP4,
		UpdatedAt: time.Now(),
	}
	if err := st.PutAvatar(ctx, a2); err != nil {
		t.Fatalf("put a2: %v", err)
	}

	got, err := st.GetAvatar(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FileName != "2_a2.mp4" || got.MediaKind != models.MediaKindMP4 {
		t.Fatalf("expected a2 to replace a1, got %+v", got)
	}
}

func TestPutAvatarRejectsInvalidMediaKind(t *testing.T) {
	st := testStore(t)

	desc := &models.AvatarDescriptor{
		FileURL:   "/uploads/avatars/1_x.webm",
		FileName:  "1_x.webm",
		MediaKind: models.MediaKind("webm"),
		UpdatedAt: time.Now(),
	}
	if err := st.PutAvatar(context.Background(), desc); err == nil {
		t.Fatal("expected error for unsupported media kind")
	}
}

func TestGetAvatarAbsent(t *testing.T) {
	st := testStore(t)

	got, err := st.GetAvatar(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil when no avatar set, got %+v", got)
	}
}

func TestClearAvatarIdempotent(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	if err := st.ClearAvatar(ctx); err != nil {
		t.Fatalf("clear with no avatar: %v", err)
	}

	desc := &models.AvatarDescriptor{
		FileURL:   "/uploads/avatars/1_a.gif",
		FileName:  "1_a.gif",
		MediaKind: models.MediaKindGIF,
		UpdatedAt: time.Now(),
	}
	if err := st.PutAvatar(ctx, desc); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.ClearAvatar(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := st.GetAvatar(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no avatar after clear, got %+v", got)
	}
}
