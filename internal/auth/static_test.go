package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supportflow/opsdash/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "password123",
	}
}

func TestAuthenticateAcceptsConfiguredPair(t *testing.T) {
	creds, err := NewStaticCredentials(testAuthConfig())
	require.NoError(t, err)

	token, ok := creds.Authenticate("admin", "password123")
	require.True(t, ok)
	require.NotEmpty(t, token)
	require.Equal(t, creds.Token(), token)
}

func TestAuthenticateRejectsBadPairs(t *testing.T) {
	creds, err := NewStaticCredentials(testAuthConfig())
	require.NoError(t, err)

	cases := []struct{ username, password string }{
		{"admin", "wrong"},
		{"nobody", "password123"},
		{"", ""},
		{"ADMIN", "password123"},
	}
	for _, tc := range cases {
		token, ok := creds.Authenticate(tc.username, tc.password)
		require.False(t, ok, "pair %q/%q should fail", tc.username, tc.password)
		require.Empty(t, token)
	}
}

func TestTokenIsStableForASecret(t *testing.T) {
	first, err := NewStaticCredentials(testAuthConfig())
	require.NoError(t, err)
	second, err := NewStaticCredentials(testAuthConfig())
	require.NoError(t, err)
	require.Equal(t, first.Token(), second.Token())

	other := testAuthConfig()
	other.JWTSecret = "different-secret"
	third, err := NewStaticCredentials(other)
	require.NoError(t, err)
	require.NotEqual(t, first.Token(), third.Token())
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)

	require.NoError(t, ComparePassword(hashed, "s3cret"))
	require.Error(t, ComparePassword(hashed, "wrong"))
}
