package api

import "eniki/internal/models"

// ImageSource selects how an entry's illustration is produced.
const (
	ImageSourcePredefined = "predefined"
	ImageSourceGenerated  = "generated"
)

// EntryCreateRequest defines the payload for creating a diary entry.
type EntryCreateRequest struct {
	Text        string `json:"text"`
	ImageSource string `json:"image_source,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// EntryRegenImageRequest defines the payload for regenerating an
// entry's illustration. The entry text and created_at are unchanged.
type EntryRegenImageRequest struct {
	ImageSource string `json:"image_source,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// EntryResponse wraps a diary entry.
type EntryResponse struct {
	models.DiaryEntry
	Emotion string `json:"emotion,omitempty"`
}

// AvatarResponse is the response from GET /v1/avatar.
type AvatarResponse struct {
	models.AvatarDescriptor
}

// AvatarUploadResponse mirrors the upload endpoint contract.
type AvatarUploadResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Name     string `json:"name"`
}

// AvatarDeleteResponse mirrors the delete endpoint contract.
type AvatarDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InfoResponse is the response from GET /v1/info.
type InfoResponse struct {
	Version       string `json:"version"`
	DBPath        string `json:"db_path,omitempty"`
	SchemaVersion int    `json:"schema_version"`
	EntryCount    int    `json:"entry_count"`
	HasAvatar     bool   `json:"has_avatar"`
	Generator     bool   `json:"generator_configured"`
}

// EntryImportRecord represents one entry in an import payload.
type EntryImportRecord struct {
	models.DiaryEntry
}

// ImportRequest is the payload for POST /v1/import.
type ImportRequest struct {
	Entries []EntryImportRecord `json:"entries"`
	DryRun  bool                `json:"dry_run"`
	Dedupe  string              `json:"dedupe"`
}

// ImportResponse is the response from POST /v1/import.
type ImportResponse struct {
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	DryRun   bool     `json:"dry_run"`
	EntryIDs []string `json:"entry_ids"`
}

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}
