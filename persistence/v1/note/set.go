package note

import (
	"context"
	"fmt"
	"github.com/ribgsilva/note-sync/sys"
)

// Set replaces the whole record at n.ID, creating it when no record exists.
func Set(ctx context.Context, n Note) error {
	db := sys.R.Database

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	// saved_at must not be the last SET item: ramsql's date lexer scans to
	// the next comma, so a trailing timestamp swallows the WHERE clause.
	stmt, err := db.PrepareContext(dbCtx, "UPDATE notes SET saved_at = ?, title = ?, body = ?, user_id = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update stmt: %w", err)
	}
	res, err := stmt.ExecContext(dbCtx, n.SavedAt, n.Title, n.Text, n.UserID, n.ID)
	if err != nil {
		return fmt.Errorf("failed to exec update stmt: %w", err)
	}

	// RowsAffected must count matched rows, not changed ones, or an update
	// writing identical values would fall through to Insert and hit the
	// primary key. The mysql DSN sets clientFoundRows for that.
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return Insert(ctx, n)
	}

	invalidate(ctx, n.ID)
	PublishChange(ctx, n.UserID)
	return nil
}
