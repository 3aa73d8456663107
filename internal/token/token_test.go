package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknity/tasknity-api/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService("secret", time.Hour).WithClock(fixedClock(now))

	raw, err := svc.Issue("user-1", "a@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, now, claims.IssuedAt.Time.UTC())
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService("secret", time.Hour).WithClock(fixedClock(now))

	raw, err := svc.Issue("user-1", "a@example.com", models.RoleMember)
	require.NoError(t, err)

	svc.WithClock(fixedClock(now.Add(2 * time.Hour)))
	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UniformFailures(t *testing.T) {
	svc := NewService("secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	foreign, err := other.Issue("user-1", "a@example.com", models.RoleMember)
	require.NoError(t, err)

	valid, err := svc.Issue("user-1", "a@example.com", models.RoleMember)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: models.RoleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"tampered":     tampered,
		"alg none":     noneToken,
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.Verify(raw)
			assert.Nil(t, claims)
			assert.Equal(t, ErrInvalidToken, err)
		})
	}
}

func TestVerify_RejectsUnknownRole(t *testing.T) {
	svc := NewService("secret", time.Hour)

	raw, err := svc.Issue("user-1", "a@example.com", models.Role("SUPERUSER"))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	svc := NewService("secret", time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             models.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
