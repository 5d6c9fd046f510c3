package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eniki/internal/api"
	"eniki/internal/emotion"
	"eniki/internal/genimage"
	"eniki/internal/models"
	"eniki/internal/store"
)

// DiaryService centralizes diary entry validation, image resolution
// and persistence.
type DiaryService struct {
	store     store.DiaryStore
	generator *genimage.Client
	now       func() time.Time
}

// NewDiaryService constructs a DiaryService.
func NewDiaryService(diaryStore store.DiaryStore, generator *genimage.Client) *DiaryService {
	return &DiaryService{store: diaryStore, generator: generator, now: time.Now}
}

// Create builds a diary entry from a request: resolves the image,
// assigns an id and timestamp, and persists the record.
func (s *DiaryService) Create(ctx context.Context, req api.EntryCreateRequest) (api.EntryResponse, error) {
	var resp api.EntryResponse

	if err := validateEntryText(req.Text); err != nil {
		return resp, err
	}

	imageURL, err := s.resolveImage(ctx, req.Text, req.ImageSource, req.ImageBase64)
	if err != nil {
		return resp, err
	}

	entry := &models.DiaryEntry{
		ID:        uuid.NewString(),
		Text:      req.Text,
		ImageURL:  imageURL,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.PutDiary(ctx, entry); err != nil {
		return resp, storeFailure(err)
	}

	return entryResponse(*entry), nil
}

// List returns all persisted entries. Ordering is left to the caller;
// entries come back in storage order.
func (s *DiaryService) List(ctx context.Context) ([]api.EntryResponse, error) {
	entries, err := s.store.GetAllDiaries(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]api.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse(entry))
	}
	return out, nil
}

// Get returns a single entry by id.
func (s *DiaryService) Get(ctx context.Context, id string) (api.EntryResponse, error) {
	var resp api.EntryResponse
	entry, err := s.store.GetDiary(ctx, id)
	if err != nil {
		return resp, storeFailure(err)
	}
	if entry == nil {
		return resp, notFound(fmt.Errorf("entry not found: %s", id))
	}
	return entryResponse(*entry), nil
}

// RegenerateImage replaces an entry's illustration. The entry text and
// created_at are left untouched.
func (s *DiaryService) RegenerateImage(ctx context.Context, id string, req api.EntryRegenImageRequest) (api.EntryResponse, error) {
	var resp api.EntryResponse

	entry, err := s.store.GetDiary(ctx, id)
	if err != nil {
		return resp, storeFailure(err)
	}
	if entry == nil {
		return resp, notFound(fmt.Errorf("entry not found: %s", id))
	}

	imageURL, err := s.resolveImage(ctx, entry.Text, req.ImageSource, req.ImageBase64)
	if err != nil {
		return resp, err
	}

	entry.ImageURL = imageURL
	if err := s.store.PutDiary(ctx, entry); err != nil {
		return resp, storeFailure(err)
	}

	return entryResponse(*entry), nil
}

// Delete removes an entry by id. Deleting an unknown id succeeds.
func (s *DiaryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDiary(ctx, id); err != nil {
		return storeFailure(err)
	}
	return nil
}

// Clear removes every entry.
func (s *DiaryService) Clear(ctx context.Context) error {
	if err := s.store.DeleteAllDiaries(ctx); err != nil {
		return storeFailure(err)
	}
	return nil
}

// Import loads previously exported entries. Records are replayed in
// order; dedupe controls collisions with existing ids.
func (s *DiaryService) Import(ctx context.Context, req api.ImportRequest) (api.ImportResponse, error) {
	resp := api.ImportResponse{DryRun: req.DryRun, EntryIDs: []string{}}

	if err := validateImportDedupe(req.Dedupe); err != nil {
		return resp, err
	}
	if len(req.Entries) == 0 {
		return resp, badRequestCode(fmt.Errorf("entries array is required"), ErrCodeMissingRequired)
	}

	for i, record := range req.Entries {
		id := strings.TrimSpace(record.ID)
		if !validateEntryID(id) {
			return resp, badRequestCode(fmt.Errorf("record %d: invalid id", i), ErrCodeInvalidID)
		}
		if strings.TrimSpace(record.Text) == "" {
			return resp, badRequestCode(fmt.Errorf("record %d: text is required", i), ErrCodeMissingRequired)
		}
		if record.ImageURL == "" {
			return resp, badRequestCode(fmt.Errorf("record %d: image_url is required", i), ErrCodeMissingRequired)
		}

		existing, err := s.store.GetDiary(ctx, id)
		if err != nil {
			return resp, storeFailure(err)
		}

		if existing != nil {
			switch req.Dedupe {
			case importDedupeError:
				return resp, badRequestCode(fmt.Errorf("record %d: id already exists: %s", i, id), ErrCodeInvalidImportMode)
			case "", importDedupeSkip:
				resp.Skipped++
				continue
			}
		}

		if !req.DryRun {
			entry := record.DiaryEntry
			entry.ID = id
			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = s.now().UTC()
			}
			if err := s.store.PutDiary(ctx, &entry); err != nil {
				return resp, storeFailure(err)
			}
		}

		if existing != nil {
			resp.Updated++
		} else {
			resp.Created++
		}
		resp.EntryIDs = append(resp.EntryIDs, id)
	}

	return resp, nil
}

// resolveImage picks the illustration for entry text. The predefined
// source is the pure classifier path; the generated source calls the
// upstream endpoint and propagates its failure unmodified.
func (s *DiaryService) resolveImage(ctx context.Context, text, source, imageBase64 string) (string, error) {
	switch source {
	case "", api.ImageSourcePredefined:
		return emotion.ImageForEmotion(emotion.Classify(text)), nil
	case api.ImageSourceGenerated:
		if !s.generator.Configured() {
			return "", badRequestCode(fmt.Errorf("image generation is not configured"), ErrCodeGeneratorDisabled)
		}
		imageURL, err := s.generator.Generate(ctx, text, imageBase64)
		if err != nil {
			return "", classifyUpstreamError(err)
		}
		return imageURL, nil
	default:
		return "", badRequest(fmt.Errorf("invalid image_source: %s", source))
	}
}

func entryResponse(entry models.DiaryEntry) api.EntryResponse {
	return api.EntryResponse{
		DiaryEntry: entry,
		Emotion:    string(emotion.Classify(entry.Text)),
	}
}
