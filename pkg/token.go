package pkg

import (
	"errors"
	"fmt"
	"time"

	"taskboard-api/models"

	"github.com/golang-jwt/jwt/v5"
)

// Tiempo de expiración del token (24 horas)
const TokenExpiration = time.Hour * 24

var ErrTokenExpired = errors.New("token expirado")

// Claims del token de sesión: id y rol del usuario
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() models.Identity {
	return models.Identity{ID: c.UserID, Role: c.Role}
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: TokenExpiration, now: time.Now}
}

func (m *TokenManager) Secret() []byte {
	return m.secret
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) GenerateToken(id int64, role string) (string, error) {
	now := m.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: id,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	return token.SignedString(m.secret)
}

// GetUserFromToken valida el token y extrae la identidad del usuario
func (m *TokenManager) GetUserFromToken(tokenString string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, err
	}

	if !token.Valid {
		return models.Identity{}, jwt.ErrSignatureInvalid
	}

	return claims.Identity(), nil
}
