package current

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

// MockService реализует интерфейс current.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Current(ctx context.Context, accountUID string) (*models.SubscriptionRecord, bool, error) {
	args := m.Called(ctx, accountUID)
	if res := args.Get(0); res != nil {
		return res.(*models.SubscriptionRecord), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func TestCurrentHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		subjectID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "активная подписка",
			subjectID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Current", mock.Anything, "uid-1").Return(&models.SubscriptionRecord{
					AccountUID:             "uid-1",
					ProviderSubscriptionID: "sub-42",
					PlanID:                 "standard",
					Status:                 models.SubscriptionActive,
					CurrentPeriodEnd:       time.Now().Add(24 * time.Hour),
				}, true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"qualifies":true`,
		},
		{
			name:      "подписки нет",
			subjectID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("Current", mock.Anything, "uid-2").Return(nil, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription":null`,
		},
		{
			name:           "нет субъекта в контексте",
			subjectID:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthenticated"`,
		},
		{
			name:      "ошибка хранилища",
			subjectID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Current", mock.Anything, "uid-1").Return(nil, false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscription", nil)
			if tt.subjectID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.SubjectID, tt.subjectID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
