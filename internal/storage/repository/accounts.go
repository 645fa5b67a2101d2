package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/access-gate/internal/models"
)

// qualifyingSubscription — предикат квалифицирующей подписки. Единое правило
// для гейта и проекции статуса: active или trialing с неистёкшим периодом.
const qualifyingSubscription = `EXISTS (
		SELECT 1 FROM subscription_records s
		WHERE s.account_uid = a.uid
		  AND s.status IN ('active', 'trialing')
		  AND s.current_period_end > now()
	)`

// RegisterAccount сохраняет новый аккаунт вместе с пустым состоянием
// онбординга и возвращает его UID. Обе строки пишутся в одной транзакции.
func (s *Storage) RegisterAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.RegisterAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newUID string
	query := `INSERT INTO accounts (external_subject_id, username, email, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	if err := tx.QueryRowContext(ctx, query,
		account.ExternalSubjectID, account.Username, account.Email,
		account.PasswordHash, account.Role).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO onboarding_states (account_uid, completed)
			 VALUES ($1, FALSE)`
	if _, err := tx.ExecContext(ctx, query, newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAccountByUsername возвращает аккаунт по имени пользователя.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.GetAccountByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, external_subject_id, username, email, password_hash, role, created_at
			  FROM accounts
			  WHERE username = $1`
	a := &models.Account{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&a.UID, &a.ExternalSubjectID, &a.Username, &a.Email,
		&a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccountStatus разрешает идентификатор субъекта в нормализованный кортеж
// фактов доступа. Оба факта и срез последней подписки читаются одним
// запросом: два последовательных чтения могли бы увидеть завершение
// онбординга между собой.
//
// Отсутствие строки онбординга эквивалентно незавершённому онбордингу,
// отсутствие записей подписки — отсутствию квалифицирующей подписки.
func (s *Storage) GetAccountStatus(ctx context.Context, subjectID string) (*models.AccountStatus, error) {
	const op = "storage.GetAccountStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.uid, a.role,
			      COALESCE(o.completed, FALSE),
			      ` + qualifyingSubscription + `,
			      latest.status, latest.plan_id, latest.current_period_end
			  FROM accounts a
			  LEFT JOIN onboarding_states o ON o.account_uid = a.uid
			  LEFT JOIN LATERAL (
			      SELECT s.status, s.plan_id, s.current_period_end
			      FROM subscription_records s
			      WHERE s.account_uid = a.uid
			      ORDER BY s.created_at DESC, s.id DESC
			      LIMIT 1
			  ) latest ON TRUE
			  WHERE a.external_subject_id = $1`

	st := &models.AccountStatus{}
	var latestStatus, latestPlanID sql.NullString
	var latestPeriodEnd sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, subjectID)
	if err := row.Scan(&st.AccountUID, &st.Role, &st.OnboardingCompleted,
		&st.HasQualifyingSubscription, &latestStatus, &latestPlanID, &latestPeriodEnd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if latestStatus.Valid {
		st.Subscription = &models.SubscriptionSnapshot{
			Status:           latestStatus.String,
			PlanID:           latestPlanID.String,
			CurrentPeriodEnd: latestPeriodEnd.Time,
		}
	}
	return st, nil
}

// CompleteOnboarding переводит состояние онбординга аккаунта в завершённое.
// Переход одноразовый, false→true: повторный вызов не меняет completed_at
// и не возвращает состояние назад.
func (s *Storage) CompleteOnboarding(ctx context.Context, accountUID string) error {
	const op = "storage.CompleteOnboarding"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO onboarding_states (account_uid, completed, completed_at)
			  VALUES ($1, TRUE, now())
			  ON CONFLICT (account_uid) DO UPDATE
			  SET completed = TRUE,
			      completed_at = COALESCE(onboarding_states.completed_at, now())`
	if _, err := s.DB.ExecContext(ctx, query, accountUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListAccountOverviews возвращает список аккаунтов с их фактами доступа
// с пагинацией. Источник данных для комплаенс-панели.
func (s *Storage) ListAccountOverviews(ctx context.Context, limit, offset int) ([]*models.AccountOverview, error) {
	const op = "storage.ListAccountOverviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.uid, a.username, a.email, a.role,
			      COALESCE(o.completed, FALSE),
			      ` + qualifyingSubscription + `,
			      a.created_at
			  FROM accounts a
			  LEFT JOIN onboarding_states o ON o.account_uid = a.uid
			  ORDER BY a.created_at, a.uid
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AccountOverview
	for rows.Next() {
		var item models.AccountOverview
		if err := rows.Scan(&item.AccountUID, &item.Username, &item.Email, &item.Role,
			&item.OnboardingCompleted, &item.HasQualifyingSubscription, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
