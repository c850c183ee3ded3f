package jwt

import (
	"testing"
	"time"

	"coffee-chronicles/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() JWTService {
	return &jwtService{
		secretKey: "test-secret",
		issuer:    "COFFEE_CHRONICLES",
		revoked:   make(map[string]time.Time),
	}
}

func TestGeneratedTokenValidates(t *testing.T) {
	svc := newTestJWTService()

	token, expiresAt, err := svc.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(sessionDuration), expiresAt, time.Minute)

	assert.NoError(t, svc.ValidateSessionToken(token))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	assert.ErrorIs(t, svc.ValidateSessionToken("not-a-token"), domain.ErrTokenInvalid)
	assert.ErrorIs(t, svc.ValidateSessionToken(""), domain.ErrTokenInvalid)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	other := &jwtService{
		secretKey: "different-secret",
		issuer:    "COFFEE_CHRONICLES",
		revoked:   make(map[string]time.Time),
	}
	token, _, err := other.GenerateSessionToken()
	require.NoError(t, err)

	svc := newTestJWTService()
	assert.ErrorIs(t, svc.ValidateSessionToken(token), domain.ErrTokenInvalid)
}

func TestRevokedTokenFailsValidation(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.GenerateSessionToken()
	require.NoError(t, err)
	require.NoError(t, svc.ValidateSessionToken(token))

	svc.RevokeSessionToken(token)
	assert.ErrorIs(t, svc.ValidateSessionToken(token), domain.ErrTokenRevoked)
}

func TestRevokeIsPerToken(t *testing.T) {
	svc := newTestJWTService()

	revokedToken, _, err := svc.GenerateSessionToken()
	require.NoError(t, err)
	liveToken, _, err := svc.GenerateSessionToken()
	require.NoError(t, err)

	svc.RevokeSessionToken(revokedToken)

	assert.ErrorIs(t, svc.ValidateSessionToken(revokedToken), domain.ErrTokenRevoked)
	assert.NoError(t, svc.ValidateSessionToken(liveToken))
}

func TestRevokeInvalidTokenIsNoOp(t *testing.T) {
	svc := newTestJWTService()

	svc.RevokeSessionToken("not-a-token")

	token, _, err := svc.GenerateSessionToken()
	require.NoError(t, err)
	assert.NoError(t, svc.ValidateSessionToken(token))
}
