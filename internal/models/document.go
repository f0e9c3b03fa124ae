// Package models holds the shared domain types: the user-authored document
// and the suggestion records stored alongside links.
package models

import "encoding/json"

// Moment is one dated entry of the document's timeline.
type Moment struct {
	Date        string `json:"date,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// Document is the user-authored payload shared between author and recipient.
// No field is required; empty values are normalized away before encoding.
type Document struct {
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Msg      string   `json:"msg,omitempty"`
	About    string   `json:"about,omitempty"`
	Question string   `json:"question,omitempty"`
	World    string   `json:"world,omitempty"`
	Vibe     string   `json:"vibe,omitempty"`
	Template string   `json:"template,omitempty"`
	Reasons  []string `json:"reasons,omitempty"`
	Moments  []Moment `json:"moments,omitempty"`
	Photos   []string `json:"photos,omitempty"`
}

// Map converts the document to the generic tree form the codec operates on.
// The round trip through JSON keeps the shapes identical to what a decoded
// token produces.
func (d Document) Map() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
