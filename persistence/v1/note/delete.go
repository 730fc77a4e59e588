package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/note-sync/sys"
)

// Delete removes the record at id. Deleting an id that does not exist is
// not an error.
func Delete(ctx context.Context, id string) error {
	db := sys.R.Database

	// The owner is needed to publish the change, and is gone after the delete.
	existing, err := Find(ctx, id)
	if err != nil {
		return err
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "DELETE FROM notes WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare delete stmt: %w", err)
	}
	if _, err := stmt.ExecContext(dbCtx, id); err != nil {
		return fmt.Errorf("failed to exec delete stmt: %w", err)
	}

	invalidate(ctx, id)
	if existing.ID != "" {
		PublishChange(ctx, existing.UserID)
	}
	return nil
}
