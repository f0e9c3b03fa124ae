package models

import "time"

// Suggestion is a piece of feedback left by a visitor. Records are append
// only; they are never updated after creation.
type Suggestion struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Suggestion string    `json:"suggestion"`
	CreatedAt  time.Time `json:"timestamp"`
}
