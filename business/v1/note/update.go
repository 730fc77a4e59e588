package note

import (
	"context"
	"time"

	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/persistence/v1/note"
)

// Update replaces the whole record at n.ID with n. A blank id is a no-op
// with no backend call. The owner is re-stamped from the session, and a
// missing record is created at that id: the write is a set, not an
// update-or-fail.
func Update(ctx context.Context, n Note) error {
	if n.ID == "" {
		return nil
	}

	sess, ok := account.SessionFrom(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	n.UserID = sess.UserID
	n.SavedAt = time.Now().UTC()

	if err := note.Set(ctx, note.Note(n)); err != nil {
		return unavailable(err)
	}
	return nil
}
