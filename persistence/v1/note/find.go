package note

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/note-sync/sys"
)

// Find returns the note stored at id, or a zero Note when it does not exist.
func Find(ctx context.Context, id string) (Note, error) {
	logger := sys.R.Log
	cache := sys.R.Cache
	db := sys.R.Database

	key := fmt.Sprintf(noteKey, id)

	tcCtx, tcCancel := context.WithTimeout(ctx, sys.Configs.Cache.OperationTimeout)
	defer tcCancel()
	get, err := cache.Get(tcCtx, key).Result()
	if err != nil && err != redis.Nil {
		logger.Error("failure to get note ", id, " from cache: ", err.Error())
	}
	if get != "" {
		var n Note
		if err := json.Unmarshal([]byte(get), &n); err != nil {
			logger.Error("error parsing cached response for key ", key, ": ", err)
		} else {
			return n, nil
		}
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "SELECT id, title, body, user_id, saved_at FROM notes WHERE id = ?")
	if err != nil {
		return Note{}, fmt.Errorf("failed to prepare find stmt: %w", err)
	}

	var n Note
	row := stmt.QueryRowContext(dbCtx, id)
	switch err := row.Scan(&n.ID, &n.Title, &n.Text, &n.UserID, &n.SavedAt); {
	case errors.Is(err, sql.ErrNoRows):
		return Note{}, nil
	case err != nil:
		return Note{}, fmt.Errorf("error parsing db data: %w", err)
	}

	if data, err := json.Marshal(n); err != nil {
		logger.Error("error parsing data to cache for key ", key, ": ", err)
	} else {
		tcCtx, tcCancel := context.WithTimeout(ctx, sys.Configs.Cache.OperationTimeout)
		defer tcCancel()

		if err := cache.Set(tcCtx, key, string(data), sys.Configs.Cache.CacheTTL).Err(); err != nil {
			logger.Error("failure to set note ", id, " into cache: ", err.Error())
		}
	}

	return n, nil
}

// FindByUser returns every note owned by userID. The result is sorted by
// save time for display only; callers must not depend on the order.
func FindByUser(ctx context.Context, userID string) ([]Note, error) {
	db := sys.R.Database

	dbCtx, dbCancel := context.WithTimeout(ctx, sys.Configs.Database.OperationTimeout)
	defer dbCancel()
	stmt, err := db.PrepareContext(dbCtx, "SELECT id, title, body, user_id, saved_at FROM notes WHERE user_id = ?")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare find by user stmt: %w", err)
	}

	rows, err := stmt.QueryContext(dbCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query find by user stmt: %w", err)
	}
	defer rows.Close()

	var found []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.UserID, &n.SavedAt); err != nil {
			return nil, fmt.Errorf("error parsing db data: %w", err)
		}
		found = append(found, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read find by user rows: %w", err)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].SavedAt.Equal(found[j].SavedAt) {
			return found[i].ID < found[j].ID
		}
		return found[i].SavedAt.Before(found[j].SavedAt)
	})

	return found, nil
}
