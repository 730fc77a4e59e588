package schema

import (
	"context"
	"errors"
	"github.com/ribgsilva/note-sync/sys"
)

func Drop(ctx context.Context) error {
	db := sys.R.Database

	for _, stmt := range dropStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.New("drop schema: " + err.Error())
		}
	}

	return nil
}
