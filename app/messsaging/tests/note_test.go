package tests

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/note-sync/app/messsaging/consumers/v1/notes"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/persistence/v1/schema"
	"github.com/ribgsilva/note-sync/platform/env"
	"github.com/ribgsilva/note-sync/platform/logger"
	"github.com/ribgsilva/note-sync/sys"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"

	_ "github.com/proullon/ramsql/driver"
)

type NoteTests struct {
	topic *pubsub.Topic
}

func TestNote(t *testing.T) {
	log, err := logger.New("Note-Sync-Messaging-Tests")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	// =======================================================================================================
	// Mocks

	// miniredis
	s := miniredis.RunT(t)

	// =======================================================================================================
	// Setup configs
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "5s")
	sys.Configs.Cache.ConnectionURL = s.Addr()
	sys.Configs.Cache.User = env.OrDefault(log, "CACHE_USER", "")
	sys.Configs.Cache.Pass = env.OrDefault(log, "CACHE_PASS", "")
	sys.Configs.Cache.PingTimeout = env.DurationDefault(log, "CACHE_PING_TIMEOUT", "2s")
	sys.Configs.Cache.OperationTimeout = env.DurationDefault(log, "CACHE_OPERATION_TIMEOUT", "10s")
	sys.Configs.Cache.CacheTTL = env.DurationDefault(log, "CACHE_CACHE_TTL", "24h")
	sys.Configs.Messaging.ShutdownTimeout = env.DurationDefault(log, "MESSAGING_SHUTDOWN_TIMEOUT", "5s")

	// =======================================================================================================
	// Setup resources

	// logger
	sys.R.Log = log

	// mysql
	var db *sql.DB
	if err := func() error {
		ramDb, err := sql.Open("ramsql", "MessagingTest")
		if err != nil {
			return fmt.Errorf("error to connecto to database: %w", err)
		}
		dbCtx, dbCancel := context.WithTimeout(context.Background(), sys.Configs.Database.PingTimeout)
		defer dbCancel()
		if err := ramDb.PingContext(dbCtx); err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		db = ramDb
		return nil
	}(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = db.Close()
	}()
	sys.R.Database = db

	// redis
	// doing in a func, so I can use defer to cancel the contexts
	var rdb *redis.Client
	if err := func() error {
		rdb = redis.NewClient(&redis.Options{
			Addr:     sys.Configs.Cache.ConnectionURL,
			Username: sys.Configs.Cache.User,
			Password: sys.Configs.Cache.Pass,
		})
		rdsCtx, rdsCancel := context.WithTimeout(context.Background(), sys.Configs.Cache.PingTimeout)
		defer rdsCancel()
		if err := rdb.Ping(rdsCtx).Err(); err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		return nil
	}(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = rdb.Close()
	}()

	sys.R.Cache = rdb

	// =======================================================================================================
	// Database setup

	if err := schema.Create(context.Background()); err != nil {
		t.Fatalf("sql.Exec: Error: %s\n", err)
	}
	defer schema.Drop(context.Background())

	// =======================================================================================================
	// Messaging configuration

	topic := mempubsub.NewTopic()
	defer func() {
		_ = topic.Shutdown(context.Background())
	}()
	subscription := mempubsub.NewSubscription(topic, 1*time.Second)

	defer func() {
		stdCtx, stdCancel := context.WithTimeout(context.Background(), sys.Configs.Messaging.ShutdownTimeout)
		defer stdCancel()

		_ = subscription.Shutdown(stdCtx)
	}()

	withCancel, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	go func() {
		_ = notes.Consume(withCancel, subscription, 1)
	}()

	// =======================================================================================================
	// Run tests

	noteTests := NoteTests{topic: topic}

	noteTests.testCreateEvent(t)
	noteTests.testUpdateEvent(t)
	noteTests.testDeleteEvent(t)
}

func (nt *NoteTests) send(t *testing.T, event note.Event) {
	marshal, err := json.Marshal(event)
	if err != nil {
		t.Fatal("failed to marshal event: ", err)
	}

	if err := nt.topic.Send(context.Background(), &pubsub.Message{
		Body: marshal,
	}); err != nil {
		t.Fatal("failed to post message to topic: ", err)
	}
}

// waitNotes polls until cond accepts the user's notes or the deadline passes.
func waitNotes(t *testing.T, userID string, cond func([]note.Note) bool) []note.Note {
	ctx := account.WithSession(context.Background(), account.Session{UserID: userID})
	deadline := time.Now().Add(10 * time.Second)
	for {
		found, err := note.List(ctx)
		if err != nil {
			t.Fatal("failed to list notes: ", err)
		}
		if cond(found) {
			return found
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition never met, last state: %v", found)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (nt *NoteTests) testCreateEvent(t *testing.T) {
	nt.send(t, note.Event{
		Type:   "create",
		UserID: "consumer-user",
		Data: note.Note{
			Title: "other",
			Text:  "other text",
		},
	})

	found := waitNotes(t, "consumer-user", func(ns []note.Note) bool {
		return len(ns) == 1
	})

	if found[0].ID == "" {
		t.Fatalf("Test testCreateEvent: Should have received an assigned id: %v", found[0])
	}
	if found[0].UserID != "consumer-user" {
		t.Fatalf("Test testCreateEvent: Should have received \"consumer-user\" as owner: %v", found[0])
	}
	if found[0].Title != "other" {
		t.Fatalf("Test testCreateEvent: Should have received \"other\" as title: %v", found[0])
	}
	if found[0].Text != "other text" {
		t.Fatalf("Test testCreateEvent: Should have received \"other text\" as text: %v", found[0])
	}
}

func (nt *NoteTests) testUpdateEvent(t *testing.T) {
	existing := waitNotes(t, "consumer-user", func(ns []note.Note) bool {
		return len(ns) == 1
	})

	nt.send(t, note.Event{
		Type:   "update",
		UserID: "consumer-user",
		Data: note.Note{
			ID:    existing[0].ID,
			Title: "edited",
			Text:  existing[0].Text,
		},
	})

	waitNotes(t, "consumer-user", func(ns []note.Note) bool {
		return len(ns) == 1 && ns[0].Title == "edited"
	})
}

func (nt *NoteTests) testDeleteEvent(t *testing.T) {
	existing := waitNotes(t, "consumer-user", func(ns []note.Note) bool {
		return len(ns) == 1
	})

	nt.send(t, note.Event{
		Type:   "delete",
		UserID: "consumer-user",
		Data: note.Note{
			ID: existing[0].ID,
		},
	})

	waitNotes(t, "consumer-user", func(ns []note.Note) bool {
		return len(ns) == 0
	})
}
