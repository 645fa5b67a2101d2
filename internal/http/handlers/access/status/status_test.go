package status

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

	"github.com/magabrotheeeer/access-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ProjectStatus(ctx context.Context, subjectID string) (*models.StatusProjection, error) {
	args := m.Called(ctx, subjectID)
	if res := args.Get(0); res != nil {
		return res.(*models.StatusProjection), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		subjectID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "полный доступ",
			subjectID: "subject-1",
			setupMock: func(m *MockService) {
				m.On("ProjectStatus", mock.Anything, "subject-1").Return(&models.StatusProjection{
					Found:                     true,
					Role:                      models.RoleClient,
					OnboardingCompleted:       true,
					HasQualifyingSubscription: true,
					PlanName:                  "standard",
					HasAccess:                 true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_access":true`,
		},
		{
			name:      "аккаунт не найден отдается как found=false",
			subjectID: "ghost",
			setupMock: func(m *MockService) {
				m.On("ProjectStatus", mock.Anything, "ghost").Return(&models.StatusProjection{
					Found:     false,
					HasAccess: false,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"found":false`,
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
			subjectID: "subject-1",
			setupMock: func(m *MockService) {
				m.On("ProjectStatus", mock.Anything, "subject-1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not read account status"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/access/status", nil)
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
