package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/access-gate/internal/models"
	"github.com/magabrotheeeer/access-gate/internal/storage/repository"
)

// MockRepo реализует интерфейс StatusRepository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetAccountStatus(ctx context.Context, subjectID string) (*models.AccountStatus, error) {
	args := m.Called(ctx, subjectID)
	if st := args.Get(0); st != nil {
		return st.(*models.AccountStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if p := args.Get(0); p != nil {
		return p.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func allCheckSets() []models.CheckSet {
	return []models.CheckSet{
		models.NewCheckSet(),
		models.NewCheckSet(models.CheckOnboarding),
		models.NewCheckSet(models.CheckSubscription),
		models.NewCheckSet(models.CheckOnboarding, models.CheckSubscription),
	}
}

func TestEvaluate_PrivilegedRolesAlwaysAllow(t *testing.T) {
	for _, role := range []string{models.RoleAdmin, models.RoleStaff} {
		for _, onboarding := range []bool{false, true} {
			for _, subscription := range []bool{false, true} {
				for _, checks := range allCheckSets() {
					st := &models.AccountStatus{
						AccountUID:                "uid-1",
						Role:                      role,
						OnboardingCompleted:       onboarding,
						HasQualifyingSubscription: subscription,
					}
					d := Evaluate(st, checks)
					assert.True(t, d.Allowed,
						"role=%s onboarding=%v subscription=%v checks=%v", role, onboarding, subscription, checks)
				}
			}
		}
	}
}

func TestEvaluate_ClientAllowedIffAllChecksSatisfied(t *testing.T) {
	for _, onboarding := range []bool{false, true} {
		for _, subscription := range []bool{false, true} {
			for _, checks := range allCheckSets() {
				st := &models.AccountStatus{
					AccountUID:                "uid-1",
					Role:                      models.RoleClient,
					OnboardingCompleted:       onboarding,
					HasQualifyingSubscription: subscription,
				}
				want := (!checks.Has(models.CheckOnboarding) || onboarding) &&
					(!checks.Has(models.CheckSubscription) || subscription)

				d := Evaluate(st, checks)
				assert.Equal(t, want, d.Allowed,
					"onboarding=%v subscription=%v checks=%v", onboarding, subscription, checks)
			}
		}
	}
}

func TestEvaluate_OnboardingCheckedBeforeSubscription(t *testing.T) {
	st := &models.AccountStatus{
		AccountUID:                "uid-1",
		Role:                      models.RoleClient,
		OnboardingCompleted:       false,
		HasQualifyingSubscription: false,
	}

	d := Evaluate(st, AllChecks)

	require.False(t, d.Allowed)
	assert.Equal(t, models.ReasonOnboardingIncomplete, d.Reason)
	assert.Equal(t, "/onboarding", d.RedirectHint)
}

func TestEvaluate_DenyReasonsAndRedirects(t *testing.T) {
	tests := []struct {
		name         string
		status       *models.AccountStatus
		checks       models.CheckSet
		wantAllowed  bool
		wantReason   models.Reason
		wantRedirect string
	}{
		{
			name:         "аккаунт не найден",
			status:       nil,
			checks:       AllChecks,
			wantAllowed:  false,
			wantReason:   models.ReasonNotFound,
			wantRedirect: "",
		},
		{
			name: "онбординг не завершен",
			status: &models.AccountStatus{
				Role: models.RoleClient,
			},
			checks:       models.NewCheckSet(models.CheckOnboarding),
			wantAllowed:  false,
			wantReason:   models.ReasonOnboardingIncomplete,
			wantRedirect: "/onboarding",
		},
		{
			name: "нет активной подписки",
			status: &models.AccountStatus{
				Role:                models.RoleClient,
				OnboardingCompleted: true,
			},
			checks:       models.NewCheckSet(models.CheckSubscription),
			wantAllowed:  false,
			wantReason:   models.ReasonNoActiveSubscription,
			wantRedirect: "/pricing",
		},
		{
			name: "полный доступ клиента",
			status: &models.AccountStatus{
				Role:                      models.RoleClient,
				OnboardingCompleted:       true,
				HasQualifyingSubscription: true,
			},
			checks:      AllChecks,
			wantAllowed: true,
		},
		{
			name: "staff без онбординга и подписки",
			status: &models.AccountStatus{
				Role: models.RoleStaff,
			},
			checks:      AllChecks,
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.status, tt.checks)

			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.wantRedirect, d.RedirectHint)
		})
	}
}

func TestCheck_EmptySubjectIsUnauthenticated(t *testing.T) {
	repo := new(MockRepo)
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	d, st, err := svc.Check(context.Background(), "", AllChecks)

	require.NoError(t, err)
	assert.Nil(t, st)
	assert.False(t, d.Allowed)
	assert.Equal(t, models.ReasonUnauthenticated, d.Reason)
	repo.AssertNotCalled(t, "GetAccountStatus")
}

func TestCheck_UnknownSubjectIsNotFound(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-unknown").
		Return(nil, repository.ErrAccountNotFound)
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	d, st, err := svc.Check(context.Background(), "subj-unknown", AllChecks)

	require.NoError(t, err)
	assert.Nil(t, st)
	assert.False(t, d.Allowed)
	assert.Equal(t, models.ReasonNotFound, d.Reason)
	repo.AssertExpectations(t)
}

func TestCheck_StorageFailureIsError(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-1").
		Return(nil, errors.New("connection refused"))
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	d, st, err := svc.Check(context.Background(), "subj-1", AllChecks)

	require.Error(t, err)
	assert.Nil(t, st)
	assert.False(t, d.Allowed)
	assert.Empty(t, d.Reason)
	repo.AssertExpectations(t)
}

func TestCheck_AllowReturnsResolvedStatus(t *testing.T) {
	status := &models.AccountStatus{
		AccountUID:                "uid-1",
		Role:                      models.RoleClient,
		OnboardingCompleted:       true,
		HasQualifyingSubscription: true,
	}
	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-1").Return(status, nil)
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	d, st, err := svc.Check(context.Background(), "subj-1", AllChecks)

	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, status, st)
	repo.AssertExpectations(t)
}

// Проекция и комбинированный гейт обязаны давать один и тот же ответ
// для любой комбинации роли и фактов.
func TestProjectStatus_HasAccessMatchesCombinedGate(t *testing.T) {
	for _, role := range []string{models.RoleClient, models.RoleStaff, models.RoleAdmin} {
		for _, onboarding := range []bool{false, true} {
			for _, subscription := range []bool{false, true} {
				status := &models.AccountStatus{
					AccountUID:                "uid-1",
					Role:                      role,
					OnboardingCompleted:       onboarding,
					HasQualifyingSubscription: subscription,
				}
				repo := new(MockRepo)
				repo.On("GetAccountStatus", mock.Anything, "subj-1").Return(status, nil)
				svc := NewAccessService(repo, new(MockCache), newNoopLogger())

				proj, err := svc.ProjectStatus(context.Background(), "subj-1")
				require.NoError(t, err)

				assert.True(t, proj.Found)
				assert.Equal(t, Evaluate(status, AllChecks).Allowed, proj.HasAccess,
					"role=%s onboarding=%v subscription=%v", role, onboarding, subscription)
			}
		}
	}
}

func TestProjectStatus_UnknownSubjectReturnsNotFoundProjection(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-unknown").
		Return(nil, repository.ErrAccountNotFound)
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	proj, err := svc.ProjectStatus(context.Background(), "subj-unknown")

	require.NoError(t, err)
	assert.False(t, proj.Found)
	assert.False(t, proj.HasAccess)
}

func TestProjectStatus_StorageFailurePropagates(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-1").
		Return(nil, errors.New("db down"))
	svc := NewAccessService(repo, new(MockCache), newNoopLogger())

	proj, err := svc.ProjectStatus(context.Background(), "subj-1")

	require.Error(t, err)
	assert.Nil(t, proj)
}

func TestProjectStatus_PlanNameFromRepositoryAndCache(t *testing.T) {
	status := &models.AccountStatus{
		AccountUID:                "uid-1",
		Role:                      models.RoleClient,
		OnboardingCompleted:       true,
		HasQualifyingSubscription: true,
		Subscription: &models.SubscriptionSnapshot{
			Status:           models.SubscriptionActive,
			PlanID:           "premium",
			CurrentPeriodEnd: time.Now().Add(30 * 24 * time.Hour),
		},
	}

	repo := new(MockRepo)
	repo.On("GetAccountStatus", mock.Anything, "subj-1").Return(status, nil)
	repo.On("GetPlan", mock.Anything, "premium").
		Return(&models.Plan{ID: "premium", Name: "Premium", PriceCents: 14900}, nil)

	cache := new(MockCache)
	cache.On("Get", "plan:premium", mock.Anything).Return(false, nil)
	cache.On("Set", "plan:premium", mock.Anything, planCacheTTL).Return(nil)

	svc := NewAccessService(repo, cache, newNoopLogger())

	proj, err := svc.ProjectStatus(context.Background(), "subj-1")

	require.NoError(t, err)
	assert.Equal(t, "Premium", proj.PlanName)
	assert.True(t, proj.HasAccess)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
