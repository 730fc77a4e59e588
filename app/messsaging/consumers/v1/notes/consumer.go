package notes

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/sys"
	"gocloud.dev/pubsub"
)

// Consume applies note events from the subscription until ctx is cancelled.
// Each event carries the owning user, and the mutation runs under that
// user's session, so the store stamps ownership the same way it does for
// interactive writes.
func Consume(ctx context.Context, sub *pubsub.Subscription, maxWorkers int) error {
	logger := sys.R.Log
	workers := make(chan int, maxWorkers)

	var err error
	for {
		var message *pubsub.Message
		message, err = sub.Receive(ctx)
		if err != nil {
			break
		}

		go func(m *pubsub.Message) {
			workers <- 1
			defer func() { <-workers }()
			defer m.Ack()

			logger.Infof("message received: %s", string(m.Body))
			var e note.Event
			if err := json.Unmarshal(m.Body, &e); err != nil {
				logger.Error("failed to parse body: ", err)
				return
			}

			if err := apply(ctx, e); err != nil {
				logger.Errorf("failed to apply event %+v: err: %s", e, err)
			}
		}(message)
	}

	for w := 0; w < maxWorkers; w++ {
		workers <- 1
	}

	if !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func apply(ctx context.Context, e note.Event) error {
	if e.UserID != "" {
		ctx = account.WithSession(ctx, account.Session{UserID: e.UserID})
	}

	// Data came out of the envelope as a generic map; round-trip it through
	// json into the concrete payload.
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}

	switch e.Type {
	case "create":
		var c note.NewNote
		if err := json.Unmarshal(payload, &c); err != nil {
			return err
		}
		return note.Create(ctx, note.Note{Title: c.Title, Text: c.Text})
	case "update":
		var n note.Note
		if err := json.Unmarshal(payload, &n); err != nil {
			return err
		}
		return note.Update(ctx, n)
	case "delete":
		var d struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &d); err != nil {
			return err
		}
		return note.Delete(ctx, d.ID)
	default:
		return errors.New("unknown event type: " + e.Type)
	}
}
