package jwt

import (
	"time"
)

// Maker описывает выпуск и разбор токенов сессий.
// Сервис аутентификации зависит от интерфейса, чтобы тесты могли
// подменять реализацию.
type Maker interface {
	// GenerateToken выпускает токен для сотрудника с заданной ролью.
	GenerateToken(username, role string) (string, error)
	// ParseToken возвращает *CustomClaims с username и role.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с подписью секретным ключом и фиксированным TTL.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт MakerImpl с заданным ключом и временем жизни токена.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
