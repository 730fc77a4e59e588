package note

import (
	"time"
)

const titleMaxSize = 32

// Note is a user-owned text note. A blank ID means the note was never
// persisted; SavedAt is assigned by the store and is zero until then.
// Notes compare by value: two notes are equal iff every field is equal.
type Note struct {
	ID      string    `json:"id" example:"7cbb6215-dc68-4d26-8055-4a8e03e32c1f"`
	Title   string    `json:"title" example:"my note"`
	Text    string    `json:"text" example:"my note text"`
	UserID  string    `json:"userId" example:"f4a24b51-e149-4a48-8a51-5b2e4c2b2a91"`
	SavedAt time.Time `json:"savedAt" example:"2006-01-02T15:04:05Z"`
}

// DisplayTitle returns the title for list rows: the full title when it fits,
// otherwise its first 32 characters.
func (n Note) DisplayTitle() string {
	runes := []rune(n.Title)
	if len(runes) <= titleMaxSize {
		return n.Title
	}
	return string(runes[:titleMaxSize])
}

// Event is the messaging envelope for note mutations applied out of band.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Data   any    `json:"data"`
}

// NewNote is the caller-supplied part of a note; the store owns the rest.
type NewNote struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
