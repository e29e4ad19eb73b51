package mirror

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	clinic, owner := registerTestClinic(t, s, "Alpha", "alpha@example.com")

	session, err := s.Authenticate(ctx, "alpha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, session.UserID)
	assert.Equal(t, clinic.ID, session.ClinicID)
	assert.Equal(t, clinic.Name, session.ClinicName)
	assert.Equal(t, "owner", session.Role)

	current, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.UserID, current.UserID)

	require.NoError(t, s.Logout(ctx))
	current, err = s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	registerTestClinic(t, s, "Alpha", "alpha@example.com")

	// Unknown email and wrong password produce the same error.
	_, err := s.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "alpha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	current, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current, "failed login must not set a session")
}

func TestAuthenticateFindsUserAcrossClinics(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	registerTestClinic(t, s, "Alpha", "alpha@example.com")
	beta, _ := registerTestClinic(t, s, "Beta", "beta@example.com")

	session, err := s.Authenticate(ctx, "beta@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, beta.ID, session.ClinicID)
}

func TestLanguageDefaultsToArabic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)

	require.NoError(t, s.SetLanguage(ctx, "en"))
	lang, err = s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}
