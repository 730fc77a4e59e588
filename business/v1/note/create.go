package note

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/persistence/v1/note"
)

// Create persists a new note for the session user. The store assigns the
// id, stamps the owner from the session and sets the save timestamp; any
// caller-supplied values for those fields are overwritten. Callers must
// route notes that already have an id to Update instead.
func Create(ctx context.Context, n Note) error {
	sess, ok := account.SessionFrom(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	n.ID = uuid.NewString()
	n.UserID = sess.UserID
	n.SavedAt = time.Now().UTC()

	if err := note.Insert(ctx, note.Note(n)); err != nil {
		return unavailable(err)
	}
	return nil
}
