package note

import (
	"context"

	"github.com/ribgsilva/note-sync/persistence/v1/note"
)

// Delete removes the note at id. Deleting an id that does not exist is
// not an error.
func Delete(ctx context.Context, id string) error {
	if err := note.Delete(ctx, id); err != nil {
		return unavailable(err)
	}
	return nil
}
