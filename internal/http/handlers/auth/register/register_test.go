package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"frontdesk","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "frontdesk", "secret123").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"frontdesk"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{invalid`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "короткое имя пользователя",
			body:           `{"username":"ab","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Username`,
		},
		{
			name: "ошибка сервиса",
			body: `{"username":"frontdesk","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "frontdesk", "secret123").
					Return(errors.New("duplicate username"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
