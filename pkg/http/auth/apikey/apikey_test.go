package apikey

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenAndParseKey(t *testing.T) {
	key, keyId, err := GenKey([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, key)
	require.NotEmpty(t, keyId)

	claims, err := ParseKey(key, testSecret)
	require.NoError(t, err)
	assert.Equal(t, keyId, claims.KeyId)
	assert.Equal(t, "aiboard", claims.Issuer)
}

func TestParseKeyWrongSecret(t *testing.T) {
	key, _, err := GenKey([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	_, err = ParseKey(key, "a-different-secret")
	assert.Error(t, err)
}

func TestParseKeyExpired(t *testing.T) {
	key, _, err := GenKey([]byte(testSecret), -time.Hour)
	require.NoError(t, err)

	_, err = ParseKey(key, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseKeyGarbage(t *testing.T) {
	_, err := ParseKey("not-a-jwt", testSecret)
	assert.Error(t, err)
}

func TestGenKeyIdsAreUnique(t *testing.T) {
	_, id1, err := GenKey([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	_, id2, err := GenKey([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}
