package jwt_test

import (
	"testing"
	"time"

	"storefront/internal/lib/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := jwt.NewToken("admin", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := jwt.ParseSession(token, secret)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin)
}

func TestParseSession_WrongSecret(t *testing.T) {
	token, err := jwt.NewToken("admin", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = jwt.ParseSession(token, []byte("wrong"))
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParseSession_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := jwt.NewToken("admin", secret, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseSession(token, secret)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParseSession_Garbage(t *testing.T) {
	_, err := jwt.ParseSession("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
