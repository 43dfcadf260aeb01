package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := New("test-key", "stockbot")

	tok, err := svc.Issue("warehouse-dashboard", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "warehouse-dashboard", claims.Client)
	assert.Equal(t, "warehouse-dashboard", claims.Subject)
	assert.Equal(t, "stockbot", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueRequiresClient(t *testing.T) {
	_, err := New("k", "stockbot").Issue("", time.Hour)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	svc := New("test-key", "stockbot")

	expired, err := svc.Issue("c", -time.Minute)
	require.NoError(t, err)

	otherKey, err := New("other-key", "stockbot").Issue("c", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := New("test-key", "someone-else").Issue("c", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Client: "c"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"other key":    otherKey,
		"other issuer": otherIssuer,
		"alg none":     none,
		"garbage":      "not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateSigningKey(t *testing.T) {
	a, err := GenerateSigningKey()
	require.NoError(t, err)
	b, err := GenerateSigningKey()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
