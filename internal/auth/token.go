package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	Issue(u *models.User) (string, error)
	Verify(token string) (policy.Caller, error)
}

// JWTIssuer signs HS256 tokens carrying the user id as subject.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *JWTIssuer) Issue(u *models.User) (string, error) {
	now := i.now()
	claims := Claims{
		Role:    u.Role,
		IsAdmin: u.HasAdminOverride(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *JWTIssuer) Verify(tokenString string) (policy.Caller, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return policy.Caller{}, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return policy.Caller{}, ErrInvalidToken
	}

	role := policy.Role(claims.Role)
	if !role.Valid() {
		return policy.Caller{}, ErrInvalidToken
	}

	return policy.Caller{
		UserID:        uint(id),
		Role:          role,
		AdminOverride: claims.IsAdmin,
	}, nil
}
