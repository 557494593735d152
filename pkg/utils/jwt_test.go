package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("secret")
	userID := uuid.New()

	token, err := GenerateJWT(userID, secret, time.Hour)
	require.NoError(t, err)

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestJWTWithoutExpiry(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), []byte("secret"), 0)
	require.NoError(t, err)

	claims, err := DecodeJWT(token, []byte("secret"))
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTRejected(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = DecodeJWT(token, []byte("other"))
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = DecodeJWT(signed, []byte("secret"))
	assert.Error(t, err)

	otherAlg := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: uuid.New()})
	signed, err = otherAlg.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = DecodeJWT(signed, []byte("secret"))
	assert.Error(t, err)

	_, err = DecodeJWT("not-a-token", []byte("secret"))
	assert.Error(t, err)
}

func TestJWTEmptySecret(t *testing.T) {
	_, err := GenerateJWT(uuid.New(), nil, 0)
	assert.ErrorIs(t, err, ErrEmptySecret)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.New()}).SignedString([]byte("x"))
	require.NoError(t, err)
	_, err = DecodeJWT(forged, []byte{})
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = DecodeJWT(forged, nil)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
