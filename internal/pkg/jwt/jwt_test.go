package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	token, err := Sign("user-123")
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, issuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	foreign := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: "user-123",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	expired := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: "user-123",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsMissingExpiry(t *testing.T) {
	eternal := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: "user-123",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer: issuer,
		},
	})
	signed, err := eternal.SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsTampered(t *testing.T) {
	token, err := Sign("user-123")
	require.NoError(t, err)

	_, err = Parse(token + "x")
	assert.Error(t, err)
}
