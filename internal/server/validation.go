package server

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxEntryIDLength   = 64
	maxEntryTextRunes  = 10000
	maxDisplayNameLen  = 100
	importDedupeSkip   = "skip"
	importDedupeError  = "error"
	importDedupeUpsert = "overwrite"
)

// validateEntryID accepts any opaque non-empty id without whitespace
// or path separators, capped in length.
func validateEntryID(id string) bool {
	if id == "" || len(id) > maxEntryIDLength {
		return false
	}
	return !strings.ContainsAny(id, " \t\n\r/\\")
}

func validateEntryText(text string) error {
	if strings.TrimSpace(text) == "" {
		return badRequestCode(fmt.Errorf("text is required"), ErrCodeMissingRequired)
	}
	if utf8.RuneCountInString(text) > maxEntryTextRunes {
		return badRequestCode(fmt.Errorf("text exceeds %d characters", maxEntryTextRunes), ErrCodeInvalidArgument)
	}
	return nil
}

func validateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return badRequestCode(fmt.Errorf("name is required"), ErrCodeMissingRequired)
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return badRequestCode(fmt.Errorf("name exceeds %d characters", maxDisplayNameLen), ErrCodeInvalidArgument)
	}
	return nil
}

func validateImportDedupe(dedupe string) error {
	switch dedupe {
	case "", importDedupeSkip, importDedupeUpsert, importDedupeError:
		return nil
	default:
		return badRequestCode(fmt.Errorf("invalid dedupe mode: %s", dedupe), ErrCodeInvalidImportMode)
	}
}
