package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developer9560/devigo-go/pkg/sessionstore"
)

func newTestSession() (*Session, *sessionstore.Memory) {
	store := sessionstore.NewMemory()
	return New(store), store
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("fresh session is logged out", func(t *testing.T) {
		sess, _ := newTestSession()

		assert.Empty(t, sess.AccessToken())
		assert.Empty(t, sess.RefreshToken())
		assert.Nil(t, sess.User())
	})

	t.Run("SetAll persists all three fields", func(t *testing.T) {
		sess, _ := newTestSession()
		user := &UserProfile{ID: 7, Username: "admin", Email: "admin@devigo.example"}

		require.NoError(t, sess.SetAll("acc", "ref", user))

		assert.Equal(t, "acc", sess.AccessToken())
		assert.Equal(t, "ref", sess.RefreshToken())
		require.NotNil(t, sess.User())
		assert.Equal(t, "admin", sess.User().Username)
	})

	t.Run("SetAll without profile clears a stale one", func(t *testing.T) {
		sess, _ := newTestSession()
		require.NoError(t, sess.SetAll("a1", "r1", &UserProfile{ID: 1, Username: "old"}))

		require.NoError(t, sess.SetAll("a2", "r2", nil))

		assert.Equal(t, "a2", sess.AccessToken())
		assert.Nil(t, sess.User())
	})

	t.Run("SetAll rejects empty tokens", func(t *testing.T) {
		sess, _ := newTestSession()

		assert.Error(t, sess.SetAll("", "ref", nil))
		assert.Error(t, sess.SetAll("acc", "", nil))
		assert.Empty(t, sess.AccessToken())
	})

	t.Run("SetAccessToken leaves the rest untouched", func(t *testing.T) {
		sess, _ := newTestSession()
		require.NoError(t, sess.SetAll("old-access", "ref", &UserProfile{ID: 1, Username: "u"}))

		require.NoError(t, sess.SetAccessToken("new-access"))

		assert.Equal(t, "new-access", sess.AccessToken())
		assert.Equal(t, "ref", sess.RefreshToken())
		assert.NotNil(t, sess.User())
	})

	t.Run("Clear removes everything and is idempotent", func(t *testing.T) {
		sess, _ := newTestSession()
		require.NoError(t, sess.SetAll("acc", "ref", &UserProfile{ID: 1}))

		sess.Clear()
		sess.Clear()

		assert.Empty(t, sess.AccessToken())
		assert.Empty(t, sess.RefreshToken())
		assert.Nil(t, sess.User())
	})
}

// failingStore rejects writes to one key so partial-write handling can be
// exercised.
type failingStore struct {
	*sessionstore.Memory
	failKey string
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestSetAllIsAllOrNothing(t *testing.T) {
	store := &failingStore{Memory: sessionstore.NewMemory(), failKey: keyRefreshToken}
	sess := New(store)

	err := sess.SetAll("acc", "ref", nil)

	require.Error(t, err)
	// The access token write succeeded before the failure; SetAll must not
	// leave it behind.
	assert.Empty(t, sess.AccessToken())
	assert.Empty(t, sess.RefreshToken())
}

func TestCorruptProfileIsIgnored(t *testing.T) {
	store := sessionstore.NewMemory()
	sess := New(store)
	require.NoError(t, sess.SetAll("acc", "ref", nil))
	require.NoError(t, store.Set(context.Background(), keyUserProfile, "{not json"))

	assert.Nil(t, sess.User())
	assert.Equal(t, "acc", sess.AccessToken())
}
