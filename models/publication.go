package models

import "time"

// Publication is a post authored by a user. The identity service never
// mutates publications; the table exists so that deleting a user cascades
// to their posts.
type Publication struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	File      string    `json:"file,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
