package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ribgsilva/note-sync/sys"
)

// FindByEmail returns the user registered with email, or a zero User when
// no account exists.
func FindByEmail(ctx context.Context, email string) (User, error) {
	db := sys.R.Database

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "SELECT id, email, password_hash, disabled FROM users WHERE email = ?")
	if err != nil {
		return User{}, fmt.Errorf("failed to prepare find stmt: %w", err)
	}

	var u User
	var disabled int
	row := stmt.QueryRowContext(dbCtx, email)
	switch err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &disabled); {
	case errors.Is(err, sql.ErrNoRows):
		return User{}, nil
	case err != nil:
		return User{}, fmt.Errorf("error parsing db data: %w", err)
	}
	u.Disabled = disabled != 0

	return u, nil
}
