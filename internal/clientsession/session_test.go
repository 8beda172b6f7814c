package clientsession

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstablishAndCurrent(t *testing.T) {
	session := New(NewMemStore())

	require.NoError(t, session.Establish("token-abc"))

	token, ok := session.Current()
	assert.True(t, ok)
	assert.Equal(t, "token-abc", token)
	assert.True(t, session.Established())
}

func TestEstablishWritesLegacyFlag(t *testing.T) {
	store := NewMemStore()
	session := New(store)

	require.NoError(t, session.Establish("token-abc"))

	flag, ok := store.Get(LegacyAuthKey)
	assert.True(t, ok)
	assert.Equal(t, "true", flag)
}

func TestCurrent_NoSession(t *testing.T) {
	session := New(NewMemStore())

	_, ok := session.Current()
	assert.False(t, ok)
	assert.False(t, session.Established())
}

func TestCurrent_ExpiredSessionCleared(t *testing.T) {
	store := NewMemStore()
	session := New(store)

	require.NoError(t, session.Establish("token-abc"))

	session.now = func() time.Time {
		return time.Now().Add(SessionTTL + time.Minute)
	}

	_, ok := session.Current()
	assert.False(t, ok)

	// Expiry clears the cache, token and legacy flag included.
	_, ok = store.Get(TokenKey)
	assert.False(t, ok)
	_, ok = store.Get(LegacyAuthKey)
	assert.False(t, ok)
}

func TestCurrent_MalformedTimestampCleared(t *testing.T) {
	store := NewMemStore()
	session := New(store)

	require.NoError(t, store.Set(TokenKey, "token-abc"))
	require.NoError(t, store.Set(EstablishedAtKey, "not-a-number"))

	_, ok := session.Current()
	assert.False(t, ok)

	_, ok = store.Get(TokenKey)
	assert.False(t, ok)
}

func TestCurrent_TokenWithoutTimestampCleared(t *testing.T) {
	store := NewMemStore()
	session := New(store)

	require.NoError(t, store.Set(TokenKey, "token-abc"))

	_, ok := session.Current()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	session := New(NewMemStore())

	require.NoError(t, session.Establish("token-abc"))
	require.NoError(t, session.Clear())

	_, ok := session.Current()
	assert.False(t, ok)
}

func TestExpiresAt(t *testing.T) {
	session := New(NewMemStore())

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return fixed }

	require.NoError(t, session.Establish("token-abc"))

	expiresAt, ok := session.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, fixed.Add(SessionTTL).UnixMilli(), expiresAt.UnixMilli())
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	session := New(store)
	require.NoError(t, session.Establish("token-abc"))

	// A fresh store over the same file sees the persisted session.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	token, ok := New(reopened).Current()
	assert.True(t, ok)
	assert.Equal(t, "token-abc", token)
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(TokenKey, "token-abc"))

	// Corrupt the file behind the store's back.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := store.Get(TokenKey)
	assert.False(t, ok)

	// The store recovers: a new session can be established.
	session := New(store)
	require.NoError(t, session.Establish("token-new"))
	token, ok := session.Current()
	assert.True(t, ok)
	assert.Equal(t, "token-new", token)
}
