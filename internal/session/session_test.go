package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	t.Run("Missing file is an empty session", func(t *testing.T) {
		s, err := store.Get()
		require.NoError(t, err)
		assert.True(t, s.IsZero())
	})

	t.Run("Save and Get", func(t *testing.T) {
		require.NoError(t, store.Save(Session{Token: "tok-1", Username: "alice"}))

		s, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", s.Token)
		assert.Equal(t, "alice", s.Username)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear())

		s, err := store.Get()
		require.NoError(t, err)
		assert.True(t, s.IsZero())

		// clearing twice is fine
		assert.NoError(t, store.Clear())
	})

	t.Run("Empty token rejected", func(t *testing.T) {
		err := store.Save(Session{Username: "alice"})
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("Corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := store.Get()
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Session{Token: "tok", Username: "bob"})

	s, _ := store.Get()
	assert.Equal(t, "bob", s.Username)

	require.NoError(t, store.Clear())
	s, _ = store.Get()
	assert.True(t, s.IsZero())

	assert.ErrorIs(t, store.Save(Session{}), ErrEmptyToken)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "alice"}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestSessionClaims(t *testing.T) {
	now := time.Now()

	t.Run("Valid token", func(t *testing.T) {
		s := Session{Token: signedToken(t, now.Add(time.Hour))}
		claims, err := s.Claims()
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.False(t, claims.Expired(now))
		assert.WithinDuration(t, now.Add(time.Hour), claims.Expiry(), time.Second)
	})

	t.Run("Expired token", func(t *testing.T) {
		s := Session{Token: signedToken(t, now.Add(-time.Minute))}
		claims, err := s.Claims()
		require.NoError(t, err)
		assert.True(t, claims.Expired(now))
	})

	t.Run("No expiry", func(t *testing.T) {
		s := Session{Token: signedToken(t, time.Time{})}
		claims, err := s.Claims()
		require.NoError(t, err)
		assert.False(t, claims.Expired(now))
		assert.True(t, claims.Expiry().IsZero())
	})

	t.Run("Opaque token", func(t *testing.T) {
		_, err := Session{Token: "opaque"}.Claims()
		assert.ErrorIs(t, err, ErrNotJWT)
	})

	t.Run("Empty token", func(t *testing.T) {
		_, err := Session{}.Claims()
		assert.ErrorIs(t, err, ErrEmptyToken)
	})
}
