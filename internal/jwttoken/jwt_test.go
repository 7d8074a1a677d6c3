package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bfcms/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-key", "bfcms-test", time.Hour)

	token, err := svc.GenerateAccessToken("user-123", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-key", "bfcms-test", time.Minute)

	token, err := svc.GenerateAccessToken("user-123", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewService("key-one", "bfcms-test", time.Hour)
	verifier := NewService("key-two", "bfcms-test", time.Hour)

	token, err := issuer.GenerateAccessToken("user-123", time.Now())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-key", "bfcms-test", time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
