package schema

import (
	"context"
	"errors"
	"github.com/ribgsilva/note-sync/sys"
)

func Create(ctx context.Context) error {
	db := sys.R.Database

	for _, stmt := range createStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.New("create schema: " + err.Error())
		}
	}

	return nil
}
