package create

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

	"github.com/magabrotheeeer/membership-ledger/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyMember) (*models.Member, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{
		"name": "Ravi Kumar",
		"phone": "9990001111",
		"join_date": "2024-01-10",
		"membership_type": "Monthly",
		"fee": 1000
	}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация участника",
			body: validBody,
			setupMock: func(m *MockService) {
				member := &models.Member{
					ID:    "11111111-2222-3333-4444-555555555555",
					RegNo: 7,
					Name:  "Ravi Kumar",
					Fee:   1000,
				}
				m.On("Create", mock.Anything, mock.Anything).Return(member, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reg_no":7`,
		},
		{
			name:           "некорректный JSON",
			body:           `{invalid`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "отсутствует обязательное поле",
			body:           `{"phone": "9990001111"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
		{
			name:           "некорректный формат даты",
			body:           `{"name":"Ravi","phone":"9990001111","join_date":"10-01-2024","membership_type":"Monthly","fee":1000}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `format 2006-01-02`,
		},
		{
			name: "ошибка сервиса",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create member"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/members", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
