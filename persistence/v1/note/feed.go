package note

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/note-sync/sys"
)

// PublishChange tells every live subscriber of userID that their note set
// changed. Publishing is best effort: a write that landed must not fail
// because the feed is down, subscribers resync on the next event.
func PublishChange(ctx context.Context, userID string) {
	logger := sys.R.Log
	cache := sys.R.Cache

	tcCtx, tcCancel := context.WithTimeout(ctx, sys.Configs.Cache.OperationTimeout)
	defer tcCancel()
	if err := cache.Publish(tcCtx, fmt.Sprintf(feedChannel, userID), "sync").Err(); err != nil {
		logger.Error("failure to publish note change for user ", userID, ": ", err.Error())
	}
}

// SubscribeFeed opens a subscription to userID's change channel. The caller
// owns the returned PubSub and must Close it.
func SubscribeFeed(ctx context.Context, userID string) *redis.PubSub {
	return sys.R.Cache.Subscribe(ctx, fmt.Sprintf(feedChannel, userID))
}

// invalidate drops the cached copy of a note after a write.
func invalidate(ctx context.Context, id string) {
	logger := sys.R.Log
	cache := sys.R.Cache

	tcCtx, tcCancel := context.WithTimeout(ctx, sys.Configs.Cache.OperationTimeout)
	defer tcCancel()
	if err := cache.Del(tcCtx, fmt.Sprintf(noteKey, id)).Err(); err != nil {
		logger.Error("failure to invalidate note ", id, " in cache: ", err.Error())
	}
}
