package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clinicbook/clinic-scheduler/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims bind a token to (user, clinic, role); every clinic-scoped endpoint
// authorizes against the bound clinic id.
type Claims struct {
	UserID   uint   `json:"userId"`
	ClinicID uint   `json:"clinicId"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	cfg *config.Config
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Pair issues the short-lived access token and the longer-lived refresh
// token. The two use separate secrets so one can never stand in for the
// other.
func (m *Manager) Pair(userID, clinicID uint, role string) (access, refresh string, err error) {
	access, err = m.Access(userID, clinicID, role)
	if err != nil {
		return "", "", err
	}

	refreshClaims := Claims{
		UserID:   userID,
		ClinicID: clinicID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.cfg.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(m.cfg.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *Manager) Access(userID, clinicID uint, role string) (string, error) {
	claims := Claims{
		UserID:   userID,
		ClinicID: clinicID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(m.cfg.JWTSecret))
}

func (m *Manager) ParseAccess(raw string) (*Claims, error) {
	return parse(raw, m.cfg.JWTSecret)
}

func (m *Manager) ParseRefresh(raw string) (*Claims, error) {
	return parse(raw, m.cfg.JWTRefreshSecret)
}

func parse(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// Block alg confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
