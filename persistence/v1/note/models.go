package note

import "time"

const (
	noteKey     = "notes.%s"
	feedChannel = "notes.feed.%s"
)

type Note struct {
	ID      string
	Title   string
	Text    string
	UserID  string
	SavedAt time.Time
}
