// Package jwt выпускает и проверяет токены сессий сотрудников.
// В claims токена хранятся имя пользователя и его роль (admin или staff),
// чтобы middleware могла авторизовать запрос без обращения к базе.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims — полезная нагрузка токена сессии сотрудника.
type CustomClaims struct {
	Username             string `json:"username"` // Имя учётной записи сотрудника
	Role                 string `json:"role"`     // Роль: admin или staff
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt)
}

// GenerateToken выпускает подписанный HS256 токен для сотрудника
// с заданной ролью. Срок действия ограничен tokenTTL.
func (j *MakerImpl) GenerateToken(username, role string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
