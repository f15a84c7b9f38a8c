package auth

import (
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account identity and privilege flag inside the session
// token, plus the registered expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int64 `json:"uid"`
	IsAdmin bool  `json:"adm"`
}

// Manager issues and verifies stateless HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(userID int64, isAdmin bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	})

	return token.SignedString(m.secret)
}

// Verify parses and checks the token signature and expiry. A token that is
// not even parseable fails with ErrUnauthenticated; a well-formed token with
// a bad signature or expired claims fails with ErrInvalidSession. Callers
// never learn more than that.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, domain.ErrInvalidSession
	}
	if !token.Valid {
		return nil, domain.ErrInvalidSession
	}

	return claims, nil
}
