package models

import "time"

// DiaryEntry represents a single diary record in eniki.
type DiaryEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
