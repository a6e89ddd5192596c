// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/password"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле.
// Неизвестный пользователь и несовпавший пароль неразличимы для клиента.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) error

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "staff".
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) error {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         "staff", // дефолтная роль при регистрации
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", "", fmt.Errorf("%w: unknown user", ErrInvalidCredentials)
	}
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе и роль.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
	}
	return user, claims.Role, nil
}
