package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developer9560/devigo-go/internal/testutil"
	"github.com/developer9560/devigo-go/pkg/sessionstore"
	"github.com/developer9560/devigo-go/session"
	"github.com/developer9560/devigo-go/transport"
)

func newTestManager(t *testing.T, api *testutil.MockAPI) (*Manager, *session.Session) {
	t.Helper()

	sess := session.New(sessionstore.NewMemory())
	return NewManager(transport.New(api.URL(), sess), sess), sess
}

func TestLogin(t *testing.T) {
	t.Run("success persists the full session", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		mgr, sess := newTestManager(t, api)

		assert.False(t, mgr.IsAuthenticated())

		result, err := mgr.Login(context.Background(), Credentials{
			Username: testutil.DefaultUsername,
			Password: testutil.DefaultPassword,
		})
		require.NoError(t, err)

		assert.Equal(t, testutil.DefaultAccessToken, result.AccessToken)
		assert.Equal(t, testutil.DefaultRefreshToken, result.RefreshToken)
		require.NotNil(t, result.User)
		assert.Equal(t, "admin", result.User.Username)

		assert.True(t, mgr.IsAuthenticated())
		assert.Equal(t, testutil.DefaultAccessToken, sess.AccessToken())
		assert.Equal(t, testutil.DefaultRefreshToken, sess.RefreshToken())
		require.NotNil(t, mgr.User())
		assert.Equal(t, int64(1), mgr.User().ID)
	})

	t.Run("rejected credentials surface the server payload", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		mgr, _ := newTestManager(t, api)

		_, err := mgr.Login(context.Background(), Credentials{Username: "admin", Password: "wrong"})

		var apiErr *transport.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Detail())
		assert.False(t, mgr.IsAuthenticated())
	})

	t.Run("missing credentials fail before any network call", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		mgr, _ := newTestManager(t, api)

		_, err := mgr.Login(context.Background(), Credentials{Username: "admin"})
		assert.ErrorIs(t, err, ErrMissingCredentials)

		_, err = mgr.Login(context.Background(), Credentials{Password: "swordfish"})
		assert.ErrorIs(t, err, ErrMissingCredentials)

		assert.Equal(t, 0, api.TotalCalls())
	})

	t.Run("2xx response without tokens persists nothing", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		api.OmitTokens = true
		mgr, sess := newTestManager(t, api)

		_, err := mgr.Login(context.Background(), Credentials{
			Username: testutil.DefaultUsername,
			Password: testutil.DefaultPassword,
		})

		assert.ErrorIs(t, err, ErrInvalidServerResponse)
		assert.False(t, mgr.IsAuthenticated())
		assert.Empty(t, sess.AccessToken())
		assert.Empty(t, sess.RefreshToken())
		assert.Nil(t, sess.User())
	})
}

func TestLogout(t *testing.T) {
	api := testutil.NewMockAPI(t)
	mgr, sess := newTestManager(t, api)

	_, err := mgr.Login(context.Background(), Credentials{
		Username: testutil.DefaultUsername,
		Password: testutil.DefaultPassword,
	})
	require.NoError(t, err)
	before := api.TotalCalls()

	mgr.Logout()
	assert.False(t, mgr.IsAuthenticated())
	assert.Empty(t, sess.AccessToken())
	assert.Empty(t, sess.RefreshToken())
	assert.Nil(t, mgr.User())

	// Logging out again is a harmless no-op, and neither logout talks to
	// the server.
	mgr.Logout()
	assert.False(t, mgr.IsAuthenticated())
	assert.Equal(t, before, api.TotalCalls())
}

func TestRefreshUserProfile(t *testing.T) {
	t.Run("no-op when logged out", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		mgr, _ := newTestManager(t, api)

		profile, err := mgr.RefreshUserProfile(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, profile)
		assert.Equal(t, 0, api.TotalCalls())
	})

	t.Run("overwrites the cached profile", func(t *testing.T) {
		api := testutil.NewMockAPI(t)
		mgr, _ := newTestManager(t, api)

		_, err := mgr.Login(context.Background(), Credentials{
			Username: testutil.DefaultUsername,
			Password: testutil.DefaultPassword,
		})
		require.NoError(t, err)

		api.User = map[string]any{
			"id":         1,
			"username":   "admin",
			"email":      "admin@devigo.example",
			"first_name": "Ada",
		}

		profile, err := mgr.RefreshUserProfile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Ada", profile.FirstName)
		assert.Equal(t, "Ada", mgr.User().FirstName)
	})

	t.Run("failure leaves the cached profile untouched", func(t *testing.T) {
		// Authenticated session, but the API is unreachable.
		sess := session.New(sessionstore.NewMemory())
		require.NoError(t, sess.SetAll("token", "refresh", &session.UserProfile{ID: 7, Username: "cached"}))
		mgr := NewManager(transport.New("http://127.0.0.1:1", sess), sess)

		_, err := mgr.RefreshUserProfile(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, transport.ErrTransport)

		require.NotNil(t, mgr.User())
		assert.Equal(t, "cached", mgr.User().Username)
	})
}

func TestAccessTokenClaims(t *testing.T) {
	t.Run("requires a held token", func(t *testing.T) {
		sess := session.New(sessionstore.NewMemory())
		mgr := NewManager(nil, sess)

		_, err := mgr.AccessTokenClaims()
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("decodes standard claims without verification", func(t *testing.T) {
		issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		expires := issued.Add(30 * time.Minute)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "42",
			"jti": "token-id-7",
			"iat": issued.Unix(),
			"exp": expires.Unix(),
		})
		signed, err := token.SignedString([]byte("key-the-client-never-has"))
		require.NoError(t, err)

		sess := session.New(sessionstore.NewMemory())
		require.NoError(t, sess.SetAll(signed, "refresh", nil))
		mgr := NewManager(nil, sess)

		claims, err := mgr.AccessTokenClaims()
		require.NoError(t, err)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, "token-id-7", claims.TokenID)
		assert.True(t, claims.IssuedAt.Equal(issued))
		assert.True(t, claims.ExpiresAt.Equal(expires))
	})

	t.Run("rejects tokens that are not JWTs", func(t *testing.T) {
		sess := session.New(sessionstore.NewMemory())
		require.NoError(t, sess.SetAll("opaque-token", "refresh", nil))
		mgr := NewManager(nil, sess)

		_, err := mgr.AccessTokenClaims()
		assert.Error(t, err)
	})
}
