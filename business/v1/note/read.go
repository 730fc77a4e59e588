package note

import (
	"context"

	"github.com/ribgsilva/note-sync/persistence/v1/note"
)

// Read fetches one note. Absence is not an error: a zero Note is returned
// when the id does not exist.
func Read(ctx context.Context, id string) (Note, error) {
	found, err := note.Find(ctx, id)
	if err != nil {
		return Note{}, unavailable(err)
	}
	return Note(found), nil
}
