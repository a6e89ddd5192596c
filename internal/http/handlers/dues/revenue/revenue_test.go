package revenue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
)

// MockService реализует интерфейс revenue.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) MonthlyRevenue(ctx context.Context, monthKey string) (string, int, error) {
	args := m.Called(ctx, monthKey)
	return args.String(0), args.Int(1), args.Error(2)
}

func TestRevenueHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "выручка за указанный месяц",
			url:  "/api/v1/members/revenue?month=2024-05",
			setupMock: func(m *MockService) {
				m.On("MonthlyRevenue", mock.Anything, "2024-05").Return("2024-05", 2700, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"revenue":2700`,
		},
		{
			name: "выручка за текущий месяц по умолчанию",
			url:  "/api/v1/members/revenue",
			setupMock: func(m *MockService) {
				m.On("MonthlyRevenue", mock.Anything, "").Return("2024-06", 0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"month":"2024-06"`,
		},
		{
			name: "некорректный формат месяца",
			url:  "/api/v1/members/revenue?month=May",
			setupMock: func(m *MockService) {
				m.On("MonthlyRevenue", mock.Anything, "May").
					Return("", 0, fmt.Errorf("%w: %q", ledger.ErrInvalidMonth, "May"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid month, expected YYYY-MM"`,
		},
		{
			name: "ошибка хранилища возвращает 500",
			url:  "/api/v1/members/revenue?month=2024-05",
			setupMock: func(m *MockService) {
				m.On("MonthlyRevenue", mock.Anything, "2024-05").
					Return("", 0, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not compute revenue"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
