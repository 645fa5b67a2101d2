// Package auth содержит логику бизнес-уровня для регистрации, входа
// и валидации JWT. Гейт доверяет субъекту из токена: проверка подлинности
// учетных данных заканчивается здесь, до принятия решения о доступе.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/access-gate/internal/lib/jwt"
	"github.com/magabrotheeeer/access-gate/internal/lib/password"
	"github.com/magabrotheeeer/access-gate/internal/models"
)

// AccountRepository описывает контракт для работы с аккаунтами в базе данных.
type AccountRepository interface {
	// RegisterAccount сохраняет новый аккаунт и возвращает его UID.
	RegisterAccount(ctx context.Context, account models.Account) (string, error)

	// GetAccountByUsername возвращает аккаунт по имени пользователя
	// или repository.ErrAccountNotFound.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Не раскрывает, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	accounts AccountRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(accounts AccountRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwtMaker: jwtMaker,
	}
}

// Register создает новый клиентский аккаунт с хэшированием пароля.
// Роль всегда client: повышение роли — привилегированная операция
// вне этого сервиса. Идентификатор субъекта выдается здесь и далее
// служит ключом поиска аккаунта для гейта.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	account := models.Account{
		ExternalSubjectID: uuid.NewString(),
		Username:          username,
		Email:             email,
		PasswordHash:      hashed,
		Role:              models.RoleClient,
	}
	return s.accounts.RegisterAccount(ctx, account)
}

// Login проверяет пароль и генерирует JWT с username, ролью и
// идентификатором субъекта.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(account.Username, account.Role, account.ExternalSubjectID)
	if err != nil {
		return "", "", err
	}
	return token, account.Role, nil
}

// ValidateToken проверяет JWT и возвращает claims с данными субъекта.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
