package tests

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/ribgsilva/note-sync/app/api/handlers"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/persistence/v1/schema"
	"github.com/ribgsilva/note-sync/platform/env"
	"github.com/ribgsilva/note-sync/platform/logger"
	"github.com/ribgsilva/note-sync/sys"

	_ "github.com/proullon/ramsql/driver"
)

type ApiTests struct {
	app   http.Handler
	token string
}

type tokenResp struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type errorResp struct {
	Message string `json:"message"`
}

func TestApi(t *testing.T) {
	log, err := logger.New("Note-Sync-API-Tests")
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
	sys.Configs.Auth.TokenSecret = "api-test-secret"
	sys.Configs.Auth.TokenTTL = time.Hour

	// =======================================================================================================
	// Setup resources

	// logger
	sys.R.Log = log

	// mysql
	var db *sql.DB
	if err := func() error {
		ramDb, err := sql.Open("ramsql", "ApiTest")
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
	// Setup router
	engine := gin.Default()

	handlers.MapApi(engine)

	tests := ApiTests{app: engine}

	// =======================================================================================================
	// Run tests

	tests.signUp201(t)
	tests.signInWrongPassword401(t)
	tests.createNoteNoToken401(t)
	tests.createNote201(t)
	created := tests.listNotes200(t)
	tests.getNote200(t, created.ID)
	tests.getNote404(t)
	tests.updateNote200(t, created.ID)
	tests.liveStream200(t)
	tests.deleteNote204(t, created.ID)
}

func (at *ApiTests) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	at.app.ServeHTTP(w, r)
	return w
}

func (at *ApiTests) signUp201(t *testing.T) {
	w := at.do(http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"email":    "api@example.com",
		"password": "s3cret",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Test signUp201: Should receive a status code of 201 for the response : %v", w.Code)
	}

	var resp tokenResp
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Test signUp201: Should be able to unmarshal the response : %v", err)
	}
	if resp.Token == "" || resp.UserID == "" {
		t.Fatalf("Test signUp201: Should have received a token and a user id: %+v", resp)
	}

	at.token = resp.Token
}

func (at *ApiTests) signInWrongPassword401(t *testing.T) {
	w := at.do(http.MethodPost, "/v1/auth/signin", "", map[string]string{
		"email":    "api@example.com",
		"password": "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Test signInWrongPassword401: Should receive a status code of 401 for the response : %v", w.Code)
	}

	var resp errorResp
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Test signInWrongPassword401: Should be able to unmarshal the response : %v", err)
	}
	if resp.Message != "Invalid email or password." {
		t.Fatalf("Test signInWrongPassword401: Should have received the mapped credential message: %v", resp.Message)
	}
}

func (at *ApiTests) createNoteNoToken401(t *testing.T) {
	w := at.do(http.MethodPost, "/v1/notes", "", map[string]string{
		"title": "nope",
		"text":  "nope",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Test createNoteNoToken401: Should receive a status code of 401 for the response : %v", w.Code)
	}
}

func (at *ApiTests) createNote201(t *testing.T) {
	w := at.do(http.MethodPost, "/v1/notes", at.token, map[string]string{
		"title": "my note",
		"text":  "my note text",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Test createNote201: Should receive a status code of 201 for the response : %v", w.Code)
	}
}

func (at *ApiTests) listNotes200(t *testing.T) note.Note {
	w := at.do(http.MethodGet, "/v1/notes", at.token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Test listNotes200: Should receive a status code of 200 for the response : %v", w.Code)
	}

	var resp []note.Note
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Test listNotes200: Should be able to unmarshal the response : %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("Test listNotes200: Should have received exactly one note: %v", resp)
	}
	if resp[0].ID == "" {
		t.Fatalf("Test listNotes200: Should have received an assigned id: %v", resp[0])
	}
	if resp[0].UserID == "" {
		t.Fatalf("Test listNotes200: Should have received a stamped owner: %v", resp[0])
	}
	if resp[0].Title != "my note" {
		t.Fatalf("Test listNotes200: Should have received \"my note\" as title in the response: %v", resp[0])
	}

	return resp[0]
}

func (at *ApiTests) getNote200(t *testing.T, id string) {
	w := at.do(http.MethodGet, "/v1/notes/"+id, at.token, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Test getNote200: Should receive a status code of 200 for the response : %v", w.Code)
	}

	var resp note.Note
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Test getNote200: Should be able to unmarshal the response : %v", err)
	}
	if resp.ID != id {
		t.Fatalf("Test getNote200: Should have received %q as id in the response: %v", id, resp)
	}
	if resp.Text != "my note text" {
		t.Fatalf("Test getNote200: Should have received \"my note text\" as text in the response: %v", resp)
	}
}

func (at *ApiTests) getNote404(t *testing.T) {
	w := at.do(http.MethodGet, "/v1/notes/never-existed", at.token, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Test getNote404: Should receive a status code of 404 for the response : %v", w.Code)
	}
}

func (at *ApiTests) updateNote200(t *testing.T, id string) {
	w := at.do(http.MethodPut, "/v1/notes/"+id, at.token, map[string]string{
		"title": "my note",
		"text":  "edited text",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Test updateNote200: Should receive a status code of 200 for the response : %v", w.Code)
	}

	w = at.do(http.MethodGet, "/v1/notes/"+id, at.token, nil)
	var resp note.Note
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Test updateNote200: Should be able to unmarshal the response : %v", err)
	}
	if resp.Text != "edited text" {
		t.Fatalf("Test updateNote200: Should have received \"edited text\" as text in the response: %v", resp)
	}
}

func (at *ApiTests) liveStream200(t *testing.T) {
	// The stream handler needs a real connection; a recorder cannot
	// signal a gone client.
	srv := httptest.NewServer(at.app)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/notes/live", nil)
	if err != nil {
		t.Fatalf("Test liveStream200: Should be able to build the request : %v", err)
	}
	r.Header.Set("Authorization", "Bearer "+at.token)

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("Test liveStream200: Should be able to open the stream : %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Test liveStream200: Should receive a status code of 200 for the response : %v", resp.StatusCode)
	}

	reader := bufio.NewReader(resp.Body)
	var sawEvent, sawNote bool
	for !(sawEvent && sawNote) {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("Test liveStream200: Should receive a notes event before the stream ends : %v", err)
		}
		if strings.HasPrefix(line, "event:") && strings.Contains(line, "notes") {
			sawEvent = true
		}
		if strings.HasPrefix(line, "data:") && strings.Contains(line, "my note") {
			sawNote = true
		}
	}
}

func (at *ApiTests) deleteNote204(t *testing.T, id string) {
	w := at.do(http.MethodDelete, "/v1/notes/"+id, at.token, nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Test deleteNote204: Should receive a status code of 204 for the response : %v", w.Code)
	}

	w = at.do(http.MethodGet, "/v1/notes/"+id, at.token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Test deleteNote204: Should receive a status code of 404 after the delete : %v", w.Code)
	}

	// idempotent
	w = at.do(http.MethodDelete, "/v1/notes/"+id, at.token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Test deleteNote204: Should receive a status code of 204 for a repeated delete : %v", w.Code)
	}
}
