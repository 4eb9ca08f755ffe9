package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gharinto/platform/internal/platform/httpx"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc := NewTokenService("top-secret", "gharinto-test", time.Hour)

	token, claims, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, claims.ID)

	parsed, err := svc.Verify(token)
	require.NoError(t, err)
	userID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "gharinto-test", parsed.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewTokenService("top-secret", "gharinto-test", -time.Minute)

	token, _, err := svc.Issue(42)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", "gharinto-test", time.Hour)
	verifier := NewTokenService("secret-b", "gharinto-test", time.Hour)

	token, _, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewTokenService("top-secret", "gharinto-test", time.Hour)

	_, err := svc.Verify("not.a.token")
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)
}

func TestExtractTokenHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	raw, err := ExtractToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", raw)
}

func TestExtractTokenCookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

	raw, err := ExtractToken(req)
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", raw)
}

func TestExtractTokenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractToken(req)
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)
}

func TestExtractTokenMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err := ExtractToken(req)
	require.ErrorIs(t, err, httpx.ErrUnauthenticated)
}
