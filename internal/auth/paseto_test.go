package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testIdentity() Identity {
	return Identity{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		UserName:     "ada",
		EmailAddress: "ada@example.com",
	}
}

func newTestPaseto(t *testing.T, now time.Time) *PasetoService {
	t.Helper()
	svc, err := NewPasetoService(testKey, 14*24*time.Hour)
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestPaseto_RoundTrip(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPaseto(t, issued)
	identity := testIdentity()

	token, created, err := svc.CreateToken(identity)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))
	assert.NotEmpty(t, created.TokenID)
	assert.Equal(t, issued.Add(14*24*time.Hour), created.ExpiresAt)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.Equal(t, created.TokenID, claims.TokenID)
	assert.True(t, created.ExpiresAt.Equal(claims.ExpiresAt))
	assert.True(t, created.IssuedAt.Equal(claims.IssuedAt))
}

func TestPaseto_ExpiresAfterSessionDuration(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPaseto(t, issued)

	token, _, err := svc.CreateToken(testIdentity())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(14*24*time.Hour - time.Second) }
	_, err = svc.VerifyToken(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(14 * 24 * time.Hour) }
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPaseto_RejectsTamperedToken(t *testing.T) {
	svc := newTestPaseto(t, time.Now())

	token, _, err := svc.CreateToken(testIdentity())
	require.NoError(t, err)

	b := []byte(token)
	i := len("v4.local.") + 10
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	_, err = svc.VerifyToken(string(b))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPaseto_RejectsForeignKeyAndGarbage(t *testing.T) {
	svc := newTestPaseto(t, time.Now())
	token, _, err := svc.CreateToken(testIdentity())
	require.NoError(t, err)

	other, err := NewPasetoService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	for _, bad := range []string{"", "not-a-token", "v4.local.", "v4.public.abc"} {
		_, err := svc.VerifyToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestNewPasetoService_Validation(t *testing.T) {
	_, err := NewPasetoService([]byte("short"), time.Hour)
	assert.Error(t, err)

	_, err = NewPasetoService(testKey, 0)
	assert.Error(t, err)

	svc, err := NewPasetoService(testKey, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.Duration())
}
