package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyara/voyara-client/internal/models"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	return store, path
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_EmptyByDefault(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.User()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = store.Token()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestStore_RoundTripThroughFile(t *testing.T) {
	store, path := newTestStore(t)

	user := models.User{ID: "user-1", Email: "sam@example.com", Role: "admin"}
	require.NoError(t, store.SetIdentity(user, "tok-abc"))

	// A fresh store reading the same file sees the same identity
	reloaded, err := NewStore(path)
	require.NoError(t, err)

	gotUser, err := reloaded.User()
	require.NoError(t, err)
	assert.Equal(t, "user-1", gotUser.ID)
	assert.Equal(t, "sam@example.com", gotUser.Email)
	assert.True(t, gotUser.IsLoggedIn)

	gotToken, err := reloaded.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", gotToken)
}

func TestStore_FilePermissions(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.SetIdentity(models.User{Email: "a@b.c"}, "tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.SetIdentity(models.User{Email: "a@b.c"}, "tok"))
	require.NoError(t, store.Clear())

	_, err := store.User()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	_, err = reloaded.Token()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestStore_CorruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path)
	assert.Error(t, err)
}

func TestTokenExpiresWithin(t *testing.T) {
	store, _ := newTestStore(t)

	// No token stored
	assert.False(t, store.TokenExpiresWithin(time.Hour))

	// Token expiring soon
	require.NoError(t, store.SetIdentity(models.User{Email: "a@b.c"}, signedToken(t, 5*time.Minute)))
	assert.True(t, store.TokenExpiresWithin(time.Hour))
	assert.False(t, store.TokenExpiresWithin(time.Minute))

	// Opaque non-JWT tokens never report expiry
	require.NoError(t, store.SetIdentity(models.User{Email: "a@b.c"}, "opaque-token"))
	assert.False(t, store.TokenExpiresWithin(time.Hour))
}
