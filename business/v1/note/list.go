package note

import (
	"context"

	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/persistence/v1/note"
)

// List returns one snapshot of the session user's notes.
func List(ctx context.Context) ([]Note, error) {
	sess, ok := account.SessionFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	found, err := note.FindByUser(ctx, sess.UserID)
	if err != nil {
		return nil, unavailable(err)
	}

	notes := make([]Note, 0, len(found))
	for _, f := range found {
		notes = append(notes, Note(f))
	}
	return notes, nil
}
