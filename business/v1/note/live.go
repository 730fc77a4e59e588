package note

import (
	"context"

	"github.com/ribgsilva/note-sync/persistence/v1/note"
	"github.com/ribgsilva/note-sync/sys"
)

// Subscription is one live query over a user's notes. C delivers complete
// snapshots, never deltas; delivery conflates so a slow consumer always
// sees the latest set. C closes when the subscription is cancelled or when
// the backend fails; after it closes, Err reports the failure, if any.
type Subscription struct {
	C <-chan []Note

	cancel context.CancelFunc
	// err is written by the feed goroutine before it closes C, so reading
	// it after C closes is safe without locking.
	err error
}

// Cancel tears the subscription down. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Err returns the terminal error, valid once C is closed.
func (s *Subscription) Err() error {
	return s.err
}

// Live opens a live query over the notes owned by userID. The current
// snapshot is delivered first, then a fresh one after every change to that
// user's set. The subscription stays open until Cancel or ctx is done;
// backend failures surface through Err, they never end the stream silently.
func Live(ctx context.Context, userID string) *Subscription {
	logger := sys.R.Log

	ctx, cancel := context.WithCancel(ctx)
	feed := note.SubscribeFeed(ctx, userID)
	ch := make(chan []Note, 1)
	sub := &Subscription{C: ch, cancel: cancel}

	// Closing the feed is what unblocks a pending receive, so it hangs
	// off ctx instead of the receive loop.
	go func() {
		<-ctx.Done()
		if err := feed.Close(); err != nil {
			logger.Error("failure to close note feed for user ", userID, ": ", err.Error())
		}
	}()

	go func() {
		defer close(ch)
		defer cancel()

		if err := emit(ctx, userID, ch); err != nil {
			sub.err = unavailable(err)
			return
		}

		for {
			// ReceiveMessage hands connection failures to the caller,
			// so a dead backend ends the loop with an error instead of
			// stalling the stream.
			if _, err := feed.ReceiveMessage(ctx); err != nil {
				if ctx.Err() == nil {
					sub.err = unavailable(err)
				}
				return
			}
			if err := emit(ctx, userID, ch); err != nil {
				sub.err = unavailable(err)
				return
			}
		}
	}()

	return sub
}

// emit queries the complete current set and offers it on ch, replacing a
// snapshot the consumer has not drained yet.
func emit(ctx context.Context, userID string, ch chan []Note) error {
	found, err := note.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	snapshot := make([]Note, 0, len(found))
	for _, f := range found {
		snapshot = append(snapshot, Note(f))
	}

	for {
		select {
		case ch <- snapshot:
			return nil
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
