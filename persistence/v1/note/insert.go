package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/note-sync/sys"
)

func Insert(ctx context.Context, n Note) error {
	db := sys.R.Database

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "INSERT INTO notes (id, title, body, user_id, saved_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert stmt: %w", err)
	}
	if _, err := stmt.ExecContext(dbCtx, n.ID, n.Title, n.Text, n.UserID, n.SavedAt); err != nil {
		return fmt.Errorf("failed to exec insert stmt: %w", err)
	}

	invalidate(ctx, n.ID)
	PublishChange(ctx, n.UserID)
	return nil
}
