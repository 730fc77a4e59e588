// Package account authenticates users against the users table and exposes
// the current session as an observable stream, so the rest of the app can
// react to sign-in and sign-out.
package account

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/ribgsilva/note-sync/persistence/v1/user"
	"github.com/ribgsilva/note-sync/platform/watch"
	"github.com/ribgsilva/note-sync/sys"
	"golang.org/x/crypto/bcrypt"
)

// current holds the device session. A zero Session means signed out.
var current = watch.NewValue(Session{})

// Current returns the session snapshot.
func Current() (Session, bool) {
	s := current.Get()
	return s, s.UserID != ""
}

// Watch subscribes to the session stream. The current value is replayed
// to new subscribers.
func Watch() *watch.Sub[Session] {
	return current.Subscribe()
}

// SignUp registers a new account and signs it in.
func SignUp(ctx context.Context, email, password string) (Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, &Error{Code: CodeInvalidEmail}
	}

	existing, err := user.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if existing.ID != "" {
		return Session{}, fmt.Errorf("email %q already in use", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := user.Insert(ctx, u); err != nil {
		return Session{}, fmt.Errorf("insert user: %w", err)
	}

	s := Session{UserID: u.ID}
	current.Set(s)
	return s, nil
}

// SignIn verifies the credentials and publishes the new session.
func SignIn(ctx context.Context, email, password string) (Session, error) {
	u, err := user.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if u.ID == "" {
		return Session{}, &Error{Code: CodeUserNotFound}
	}
	if u.Disabled {
		return Session{}, &Error{Code: CodeUserDisabled}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, &Error{Code: CodeWrongPassword}
	}

	s := Session{UserID: u.ID}
	current.Set(s)
	return s, nil
}

// SignOut clears the session. It always succeeds locally; subscribers
// converge through the stream.
func SignOut() {
	sys.R.Log.Infow("account", "status", "signed out")
	current.Set(Session{})
}
