package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(now time.Time) *HMACService {
	s := NewHMACService("campus-jobs", "access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newService(time.Now())
	id := Identity{UserID: uuid.New(), Role: "employer", ProfileID: uuid.New()}

	tok, err := s.GenerateAccessToken(id)
	require.NoError(t, err)

	c, err := s.ValidateAccessToken(tok)
	require.NoError(t, err)
	got, err := c.Identity()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	s := newService(time.Now())
	id := Identity{UserID: uuid.New(), Role: "student", ProfileID: uuid.New()}

	access, err := s.GenerateAccessToken(id)
	require.NoError(t, err)
	refresh, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)

	_, err = s.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = s.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestAccessToken_Expired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	s := newService(issued)
	tok, err := s.GenerateAccessToken(Identity{UserID: uuid.New(), Role: "student"})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	s := newService(time.Now())
	tok, err := s.GenerateAccessToken(Identity{UserID: uuid.New(), Role: "student"})
	require.NoError(t, err)

	other := NewHMACService("campus-jobs", "other", "refresh-secret", time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_RequiresUser(t *testing.T) {
	_, err := newService(time.Now()).GenerateAccessToken(Identity{Role: "student"})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
