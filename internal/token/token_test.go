package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/clinic-scheduler/internal/config"
)

func testManager() *Manager {
	return NewManager(&config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	})
}

func TestPairRoundTrip(t *testing.T) {
	m := testManager()

	access, refresh, err := m.Pair(7, 3, "owner")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.ClinicID)
	assert.Equal(t, "owner", claims.Role)

	rc, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), rc.UserID)
	assert.NotEmpty(t, rc.ID, "refresh token should carry a jti")
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := testManager()

	access, refresh, err := m.Pair(1, 1, "owner")
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	_, err = m.ParseRefresh(access)
	assert.Error(t, err, "access token must not pass as refresh token")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager()
	other := NewManager(&config.Config{
		JWTSecret:      "someone-elses-secret",
		AccessTokenTTL: time.Hour,
	})

	tok, err := other.Access(1, 1, "owner")
	require.NoError(t, err)

	_, err = m.ParseAccess(tok)
	assert.Error(t, err)
}

func TestParseRejectsNonHMAC(t *testing.T) {
	m := testManager()

	// alg=none style token, signed with nothing.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:   1,
		ClinicID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAccess(raw)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager(&config.Config{
		JWTSecret:      "access-secret",
		AccessTokenTTL: -time.Minute,
	})

	tok, err := m.Access(1, 1, "owner")
	require.NoError(t, err)

	_, err = m.ParseAccess(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := testManager()

	_, err := m.ParseAccess("not.a.token")
	assert.Error(t, err)
}
