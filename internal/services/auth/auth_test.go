package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/membership-ledger/internal/lib/password"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	services "github.com/magabrotheeeer/membership-ledger/internal/services/auth"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newService(repo *UserRepoMock) *services.AuthService {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)
	return services.NewAuthService(repo, maker)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	var saved models.User
	repo.On("CreateUser", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(models.User)
	}).Return(nil)

	err := svc.Register(context.Background(), "frontdesk", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "frontdesk", saved.Username)
	assert.Equal(t, "staff", saved.Role)
	// в базу уходит хэш, а не исходный пароль
	assert.NotEqual(t, "secret123", saved.PasswordHash)
	assert.NoError(t, password.CompareHash(saved.PasswordHash, "secret123"))
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(errors.New("duplicate username"))

	err := svc.Register(context.Background(), "frontdesk", "secret123")
	require.Error(t, err)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	repo.On("GetUserByUsername", mock.Anything, "frontdesk").Return(&models.User{
		Username:     "frontdesk",
		PasswordHash: hash,
		Role:         "staff",
	}, nil)

	token, role, err := svc.Login(context.Background(), "frontdesk", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "staff", role)

	user, gotRole, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", user.Username)
	assert.Equal(t, "staff", gotRole)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	repo.On("GetUserByUsername", mock.Anything, "frontdesk").Return(&models.User{
		Username:     "frontdesk",
		PasswordHash: hash,
		Role:         "staff",
	}, nil)

	_, _, err = svc.Login(context.Background(), "frontdesk", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	_, _, err := svc.Login(context.Background(), "ghost", "secret123")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login_RepoError(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	repo.On("GetUserByUsername", mock.Anything, "frontdesk").Return(nil, errors.New("db down"))

	_, _, err := svc.Login(context.Background(), "frontdesk", "secret123")
	require.Error(t, err)
	// ошибка хранилища не маскируется под неверные учетные данные
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	repo := new(UserRepoMock)
	svc := newService(repo)

	_, _, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
