package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/membership-ledger/internal/ledger"
	"github.com/magabrotheeeer/membership-ledger/internal/models"
	"github.com/magabrotheeeer/membership-ledger/internal/storage/repository"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ApplyPayment(ctx context.Context, memberID string, req models.DummyPaymentUpdate) (*models.PaymentFields, error) {
	args := m.Called(ctx, memberID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.PaymentFields), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отметка оплаты",
			id:   "m1",
			body: `{"month":"2024-03","status":"paid","amount":1000}`,
			setupMock: func(m *MockService) {
				fields := &models.PaymentFields{
					Payments:        map[string]bool{"2024-03": true},
					PaymentsAmounts: map[string]int{"2024-03": 1000},
				}
				m.On("ApplyPayment", mock.Anything, "m1", mock.Anything).Return(fields, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"2024-03":true`,
		},
		{
			name:           "некорректный JSON",
			id:             "m1",
			body:           `{invalid`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "неизвестный статус не проходит валидацию",
			id:             "m1",
			body:           `{"month":"2024-03","status":"cancelled"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Status must be one of`,
		},
		{
			name:           "некорректный формат месяца",
			id:             "m1",
			body:           `{"month":"03-2024","status":"paid"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `format 2006-01`,
		},
		{
			name: "участник не найден",
			id:   "missing",
			body: `{"month":"2024-03","status":"paid"}`,
			setupMock: func(m *MockService) {
				m.On("ApplyPayment", mock.Anything, "missing", mock.Anything).
					Return(nil, repository.ErrMemberNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"member not found"`,
		},
		{
			name: "защита первого месяца",
			id:   "m1",
			body: `{"month":"2024-02","status":"unpaid"}`,
			setupMock: func(m *MockService) {
				m.On("ApplyPayment", mock.Anything, "m1", mock.Anything).
					Return(nil, ledger.ErrFirstMonthLocked)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `first liability month`,
		},
		{
			name: "конфликт версий",
			id:   "m1",
			body: `{"month":"2024-03","status":"paid"}`,
			setupMock: func(m *MockService) {
				m.On("ApplyPayment", mock.Anything, "m1", mock.Anything).
					Return(nil, repository.ErrVersionConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"concurrent update, try again"`,
		},
		{
			name: "ошибка сервиса",
			id:   "m1",
			body: `{"month":"2024-03","status":"paid"}`,
			setupMock: func(m *MockService) {
				m.On("ApplyPayment", mock.Anything, "m1", mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not apply payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/members/"+tt.id+"/payment", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
