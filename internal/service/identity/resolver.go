package identity

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Claims полезная нагрузка токена: sub - идентификатор пользователя, role - роль
type Claims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

// Resolver проверяет подпись HS256 и превращает токен в Principal
type Resolver struct {
	secret    []byte
	adminRole string
}

// NewResolver создает новый экземпляр resolver
func NewResolver(secret, adminRole string) *Resolver {
	return &Resolver{
		secret:    []byte(secret),
		adminRole: adminRole,
	}
}

// Resolve возвращает администратора для роли adminRole, иначе пользователя с ID из sub
func (r *Resolver) Resolve(token string) (*domain.Principal, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return r.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims", domain.ErrUnauthorized)
	}

	if claims.Role == r.adminRole {
		return &domain.Principal{Kind: domain.PrincipalAdmin, UserID: claims.Subject}, nil
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}

	return &domain.Principal{Kind: domain.PrincipalUser, UserID: claims.Subject}, nil
}

// Issue подписывает токен (используется внутренними инструментами и тестами)
func (r *Resolver) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(r.secret)
}
