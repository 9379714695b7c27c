package auth

import (
	"testing"
	"time"

	"GophMart/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// фиксированные часы, выровненные по секунде (NumericDate хранит секунды)
func newTestTokens(t *testing.T, secret string) (*TokenService, *time.Time) {
	t.Helper()
	s, err := NewTokenService(secret, "HS256", 30*time.Minute)
	require.NoError(t, err)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestTokenService_IssueValidate(t *testing.T) {
	s, _ := newTestTokens(t, "secret")
	tok, err := s.Issue("alice@x.com")
	require.NoError(t, err)

	sub, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", sub)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	s, now := newTestTokens(t, "secret")
	issuedAt := *now
	tok, err := s.IssueWithTTL("bob@y.com", time.Minute)
	require.NoError(t, err)

	// за секунду до истечения - валиден
	*now = issuedAt.Add(time.Minute - time.Second)
	_, err = s.Validate(tok)
	assert.NoError(t, err)

	// ровно в момент истечения и после - нет
	*now = issuedAt.Add(time.Minute)
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	*now = issuedAt.Add(time.Hour)
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestTokenService_RejectsForeignAndMalformed(t *testing.T) {
	a, _ := newTestTokens(t, "secret-A")
	b, _ := newTestTokens(t, "secret-B")

	tok, err := a.Issue("alice@x.com")
	require.NoError(t, err)

	_, err = b.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	for _, bad := range []string{"", "garbage", "a.b.c", tok + "x"} {
		_, err = a.Validate(bad)
		assert.ErrorIs(t, err, model.ErrUnauthenticated, "token %q", bad)
	}
}

func TestTokenService_RejectsOtherAlgorithm(t *testing.T) {
	s, now := newTestTokens(t, "secret")
	claims := jwt.RegisteredClaims{Subject: "alice@x.com", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestTokenService_MissingSubjectOrExpiry(t *testing.T) {
	s, now := newTestTokens(t, "secret")

	noSub := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noSub).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	noExp := jwt.RegisteredClaims{Subject: "alice@x.com"}
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, noExp).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("", "HS256", time.Minute)
	assert.Error(t, err)

	_, err = NewTokenService("s", "RS256", time.Minute)
	assert.Error(t, err)

	_, err = NewTokenService("s", "nope", time.Minute)
	assert.Error(t, err)

	s, err := NewTokenService("s", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, s.ttl)

	_, err = s.Issue("")
	assert.Error(t, err)
}
