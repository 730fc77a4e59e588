package account_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/persistence/v1/schema"
	"github.com/ribgsilva/note-sync/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/proullon/ramsql/driver"
)

func TestAccount(t *testing.T) {
	// =======================================================================================================
	// Setup configs
	sys.Configs.Database.OperationTimeout = 5 * time.Second

	// =======================================================================================================
	// Setup resources

	sys.R.Log = zap.NewNop().Sugar()

	db, err := sql.Open("ramsql", "AccountTest")
	require.NoError(t, err)
	defer db.Close()
	sys.R.Database = db

	// =======================================================================================================
	// Database setup

	require.NoError(t, schema.Create(context.Background()))
	defer schema.Drop(context.Background())

	// =======================================================================================================
	// Run tests

	t.Run("sign up then sign in", testSignUpThenSignIn)
	t.Run("sign up invalid email", testSignUpInvalidEmail)
	t.Run("sign up duplicate email", testSignUpDuplicateEmail)
	t.Run("sign in unknown user", testSignInUnknownUser)
	t.Run("sign in wrong password", testSignInWrongPassword)
	t.Run("watch replays and follows", testWatchReplaysAndFollows)
}

func testSignUpThenSignIn(t *testing.T) {
	ctx := context.Background()

	created, err := account.SignUp(ctx, "ann@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, created.UserID)

	got, ok := account.Current()
	require.True(t, ok)
	assert.Equal(t, created.UserID, got.UserID)

	signedIn, err := account.SignIn(ctx, "ann@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, signedIn.UserID)
}

func testSignUpInvalidEmail(t *testing.T) {
	_, err := account.SignUp(context.Background(), "not-an-email", "s3cret")
	require.True(t, account.IsAuthError(err))
	assert.Equal(t, "The email address is badly formatted.", account.Message(err))
}

func testSignUpDuplicateEmail(t *testing.T) {
	_, err := account.SignUp(context.Background(), "ann@example.com", "another")
	require.Error(t, err)

	// Not part of the closed credential-error set, so the message falls
	// back to the generic one.
	assert.False(t, account.IsAuthError(err))
	assert.Equal(t, "An unknown error occurred. Please try again.", account.Message(err))
}

func testSignInUnknownUser(t *testing.T) {
	_, err := account.SignIn(context.Background(), "bad@x", "wrong")
	require.True(t, account.IsAuthError(err))
	assert.Equal(t, "Invalid email or password.", account.Message(err))
}

func testSignInWrongPassword(t *testing.T) {
	_, err := account.SignIn(context.Background(), "ann@example.com", "wrong")
	require.True(t, account.IsAuthError(err))

	// Indistinguishable from an unknown account on purpose.
	assert.Equal(t, "Invalid email or password.", account.Message(err))
}

func testWatchReplaysAndFollows(t *testing.T) {
	_, err := account.SignIn(context.Background(), "ann@example.com", "s3cret")
	require.NoError(t, err)

	sub := account.Watch()
	defer sub.Cancel()

	select {
	case s := <-sub.C:
		assert.NotEmpty(t, s.UserID)
	case <-time.After(time.Second):
		t.Fatal("current session was not replayed")
	}

	account.SignOut()

	select {
	case s := <-sub.C:
		assert.Empty(t, s.UserID)
	case <-time.After(time.Second):
		t.Fatal("sign out was not delivered")
	}

	_, ok := account.Current()
	assert.False(t, ok)
}
