package user

import (
	"context"
	"fmt"
	"github.com/ribgsilva/note-sync/sys"
)

func Insert(ctx context.Context, u User) error {
	db := sys.R.Database

	disabled := 0
	if u.Disabled {
		disabled = 1
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "INSERT INTO users (id, email, password_hash, disabled) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert stmt: %w", err)
	}
	if _, err := stmt.ExecContext(dbCtx, u.ID, u.Email, u.PasswordHash, disabled); err != nil {
		return fmt.Errorf("failed to exec insert stmt: %w", err)
	}
	return nil
}
