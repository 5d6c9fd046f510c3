package main

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"eniki/internal/api"
	"eniki/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeEntryList(entries []api.EntryResponse) error {
	for _, entry := range entries {
		if err := writePlain("%s\n", formatEntryLine(entry)); err != nil {
			return err
		}
	}
	return nil
}

func writeEntryDetail(entry api.EntryResponse) error {
	lines := []string{
		fmt.Sprintf("id: %s", entry.ID),
		fmt.Sprintf("created_at: %s", formatTime(entry.CreatedAt)),
	}
	if entry.Emotion != "" {
		lines = append(lines, fmt.Sprintf("emotion: %s", entry.Emotion))
	}
	if entry.ImageURL != "" {
		lines = append(lines, fmt.Sprintf("image_url: %s", entry.ImageURL))
	}
	lines = append(lines, fmt.Sprintf("text: %s", entry.Text))

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatEntryLine(entry api.EntryResponse) string {
	return fmt.Sprintf("%s  %s  [%s]  %s",
		entry.ID, formatTime(entry.CreatedAt), entry.Emotion, truncateText(entry.Text, 60))
}

func truncateText(text string, max int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "…"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
