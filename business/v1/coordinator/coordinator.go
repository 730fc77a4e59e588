// Package coordinator is the single source of truth for client-observable
// state: the note list, the selection, the authentication state and the
// last error. It wires the account session stream to the note store's live
// query and exposes the mutation entry points the presentation layer calls.
package coordinator

import (
	"context"
	"sync"

	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/business/v1/note"
	"github.com/ribgsilva/note-sync/platform/watch"
	"github.com/ribgsilva/note-sync/sys"
)

// AuthState is the authentication state exposed to presentation layers.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
	InvalidAuthentication
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

// Coordinator owns the observable state fields. Create one with New and
// drive it with Run; it is torn down by cancelling Run's context.
type Coordinator struct {
	notes     *watch.Value[[]note.Note]
	selected  *watch.Value[*note.Note]
	authState *watch.Value[AuthState]
	lastError *watch.Value[string]

	// gen fences live snapshots: Run bumps it on every session change, and
	// a forwarder may only write notes while it still holds the current
	// generation. A cancelled subscription can therefore never overwrite
	// the list with a previous user's data.
	mu  sync.Mutex
	gen uint64
}

func New() *Coordinator {
	return &Coordinator{
		notes:     watch.NewValue[[]note.Note](nil),
		selected:  watch.NewValue[*note.Note](nil),
		authState: watch.NewValue(Unauthenticated),
		lastError: watch.NewValue(""),
	}
}

// Run consumes the session stream until ctx is done. On every session
// change it clears the note list immediately, cancels the previous live
// subscription and, when a user is present, opens a fresh one scoped to
// that user.
func (c *Coordinator) Run(ctx context.Context) {
	logger := sys.R.Log

	sess := account.Watch()
	defer sess.Cancel()

	var liveCancel context.CancelFunc
	defer func() {
		if liveCancel != nil {
			liveCancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sess.C:
			c.mu.Lock()
			c.gen++
			gen := c.gen
			c.notes.Set(nil)
			c.mu.Unlock()

			if liveCancel != nil {
				liveCancel()
				liveCancel = nil
			}

			if s.UserID == "" {
				c.authState.Set(Unauthenticated)
				continue
			}

			c.authState.Set(Authenticated)

			liveCtx, cancel := context.WithCancel(ctx)
			liveCancel = cancel
			sub := note.Live(liveCtx, s.UserID)
			go c.forward(gen, sub)

			logger.Infow("coordinator", "status", "live query opened", "user", s.UserID)
		}
	}
}

// forward pushes snapshots from one live subscription into the note list
// while its generation is still current.
func (c *Coordinator) forward(gen uint64, sub *note.Subscription) {
	for snapshot := range sub.C {
		c.mu.Lock()
		if c.gen == gen {
			c.notes.Set(snapshot)
		}
		c.mu.Unlock()
	}

	if err := sub.Err(); err != nil {
		sys.R.Log.Errorw("coordinator", "status", "live query failed", "ERROR", err)
		c.lastError.Set(genericErrorMessage)
	}
}

// CreateOrUpdate routes the note to the store: create when it was never
// persisted, full replace otherwise. Failures become LastError and never
// propagate to the caller.
func (c *Coordinator) CreateOrUpdate(ctx context.Context, n note.Note) {
	ctx = c.sessionCtx(ctx)

	var err error
	if n.ID == "" {
		err = note.Create(ctx, n)
	} else {
		err = note.Update(ctx, n)
	}
	if err != nil {
		sys.R.Log.Errorw("coordinator", "status", "save note failed", "ERROR", err)
		c.lastError.Set("Failed to save note. Please try again.")
	}
}

// Delete removes the note at id. Fire and forget: the caller learns of the
// outcome through the next live snapshot.
func (c *Coordinator) Delete(ctx context.Context, id string) {
	if err := note.Delete(c.sessionCtx(ctx), id); err != nil {
		sys.R.Log.Errorw("coordinator", "status", "delete note failed", "ERROR", err)
	}
}

// Select marks n as the selected note. Local state only, no I/O.
func (c *Coordinator) Select(n note.Note) {
	c.selected.Set(&n)
}

// ClearSelection clears the selected note.
func (c *Coordinator) ClearSelection() {
	c.selected.Set(nil)
}

// SignIn delegates to the account service. A credential error flips the
// state to InvalidAuthentication with its mapped message; anything else
// keeps the state and sets the generic message.
func (c *Coordinator) SignIn(ctx context.Context, email, password string) {
	if _, err := account.SignIn(ctx, email, password); err != nil {
		c.authFailed("sign in", err)
	}
}

// SignUp delegates to the account service, with the same error handling
// as SignIn.
func (c *Coordinator) SignUp(ctx context.Context, email, password string) {
	if _, err := account.SignUp(ctx, email, password); err != nil {
		c.authFailed("sign up", err)
	}
}

// SignOut delegates to the account service. The state converges to
// Unauthenticated through the session stream, not synchronously.
func (c *Coordinator) SignOut() {
	account.SignOut()
}

func (c *Coordinator) authFailed(op string, err error) {
	if account.IsAuthError(err) {
		c.authState.Set(InvalidAuthentication)
		c.lastError.Set(account.Message(err))
		return
	}
	sys.R.Log.Errorw("coordinator", "status", op+" failed", "ERROR", err)
	c.lastError.Set(genericErrorMessage)
}

// sessionCtx attaches the current session to ctx so store mutations run
// as the signed-in user.
func (c *Coordinator) sessionCtx(ctx context.Context) context.Context {
	if s, ok := account.Current(); ok {
		return account.WithSession(ctx, s)
	}
	return ctx
}

// Notes returns the current note list snapshot.
func (c *Coordinator) Notes() []note.Note {
	return c.notes.Get()
}

// WatchNotes subscribes to note list changes.
func (c *Coordinator) WatchNotes() *watch.Sub[[]note.Note] {
	return c.notes.Subscribe()
}

// Selected returns the selected note, if any.
func (c *Coordinator) Selected() (note.Note, bool) {
	if n := c.selected.Get(); n != nil {
		return *n, true
	}
	return note.Note{}, false
}

// AuthState returns the current authentication state.
func (c *Coordinator) AuthState() AuthState {
	return c.authState.Get()
}

// WatchAuthState subscribes to authentication state changes.
func (c *Coordinator) WatchAuthState() *watch.Sub[AuthState] {
	return c.authState.Subscribe()
}

// LastError returns the last user-facing error message, empty when none.
func (c *Coordinator) LastError() string {
	return c.lastError.Get()
}
