package mirror

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("mirror: not found")
	ErrEmailTaken         = errors.New("mirror: email already registered")
	ErrInvalidCredentials = errors.New("mirror: invalid credentials")
)

// Session is the explicit replacement for the original's ambient
// current-user global: set on login or register, cleared on logout, and
// passed through the call chain by whoever holds it.
type Session struct {
	UserID     uint   `json:"userId"`
	ClinicID   uint   `json:"clinicId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ClinicName string `json:"clinicName"`
}

// Authenticate checks the email against every clinic's staff list, exactly
// like the original walked all tenants. Success persists the session pointer
// and returns it.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	clinics, err := s.Clinics(ctx)
	if err != nil {
		return nil, err
	}

	for _, clinic := range clinics {
		users, err := s.UsersByClinic(ctx, clinic.ID)
		if err != nil {
			return nil, err
		}

		for _, u := range users {
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				// Same signal as unknown email, to avoid enumeration.
				return nil, ErrInvalidCredentials
			}

			session := Session{
				UserID:     u.ID,
				ClinicID:   clinic.ID,
				Name:       u.Name,
				Email:      u.Email,
				Role:       u.Role,
				ClinicName: clinic.Name,
			}
			if err := s.SetSession(ctx, &session); err != nil {
				return nil, err
			}
			return &session, nil
		}
	}

	return nil, ErrInvalidCredentials
}

func (s *Store) SetSession(ctx context.Context, session *Session) error {
	return s.setJSON(ctx, "current_user", session)
}

func (s *Store) CurrentSession(ctx context.Context) (*Session, error) {
	var session Session
	ok, err := s.getJSON(ctx, "current_user", &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *Store) Logout(ctx context.Context) error {
	return s.remove(ctx, "current_user")
}

// ===========================
// Language preference
// ===========================

func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	return s.setJSON(ctx, "language", lang)
}

func (s *Store) Language(ctx context.Context) (string, error) {
	var lang string
	ok, err := s.getJSON(ctx, "language", &lang)
	if err != nil {
		return "", err
	}
	if !ok {
		return "ar", nil // the original defaults to Arabic
	}
	return lang, nil
}
