package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/access-gate/internal/lib/jwt"
	"github.com/magabrotheeeer/access-gate/internal/lib/password"
	"github.com/magabrotheeeer/access-gate/internal/models"
	"github.com/magabrotheeeer/access-gate/internal/storage/repository"
)

// MockAccountRepo реализует интерфейс AccountRepository
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) RegisterAccount(ctx context.Context, account models.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepo) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if a := args.Get(0); a != nil {
		return a.(*models.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegister_CreatesClientAccount(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("RegisterAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.Role == models.RoleClient &&
			a.Username == "newclient" &&
			a.Email == "client@example.com" &&
			a.ExternalSubjectID != "" &&
			a.PasswordHash != "" &&
			a.PasswordHash != "secret123"
	})).Return("uid-1", nil)

	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	uid, err := svc.Register(context.Background(), "client@example.com", "newclient", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	account := &models.Account{
		UID:               "uid-1",
		ExternalSubjectID: "subj-1",
		Username:          "client",
		PasswordHash:      hash,
		Role:              models.RoleClient,
	}
	repo := new(MockAccountRepo)
	repo.On("GetAccountByUsername", mock.Anything, "client").Return(account, nil)

	maker := jwt.NewJWTMaker("secret", time.Hour)
	svc := NewAuthService(repo, maker)

	token, role, err := svc.Login(context.Background(), "client", "secret123")

	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, role)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client", claims.Username)
	assert.Equal(t, models.RoleClient, claims.Role)
	assert.Equal(t, "subj-1", claims.SubjectID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	account := &models.Account{
		Username:     "client",
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
	repo := new(MockAccountRepo)
	repo.On("GetAccountByUsername", mock.Anything, "client").Return(account, nil)

	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	_, _, err = svc.Login(context.Background(), "client", "wrong_password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownAccount(t *testing.T) {
	repo := new(MockAccountRepo)
	repo.On("GetAccountByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrAccountNotFound)

	svc := NewAuthService(repo, jwt.NewJWTMaker("secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	svc := NewAuthService(new(MockAccountRepo), maker)

	token, err := maker.GenerateToken("client", models.RoleClient, "subj-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "subj-1", claims.SubjectID)
}
