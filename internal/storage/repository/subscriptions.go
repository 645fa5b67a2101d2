package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/access-gate/internal/models"
)

// UpsertSubscriptionRecord добавляет запись подписки или обновляет её статус
// и конец периода по идентификатору подписки у провайдера. История продлений
// хранится как отдельные записи: новая подписка у провайдера — новая строка.
func (s *Storage) UpsertSubscriptionRecord(ctx context.Context, rec models.SubscriptionRecord) (int, error) {
	const op = "storage.UpsertSubscriptionRecord"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_records
			      (account_uid, plan_id, status, current_period_end, provider_subscription_id)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (provider_subscription_id) DO UPDATE
			  SET status = EXCLUDED.status,
			      current_period_end = EXCLUDED.current_period_end,
			      plan_id = EXCLUDED.plan_id
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		rec.AccountUID, rec.PlanID, rec.Status, rec.CurrentPeriodEnd,
		rec.ProviderSubscriptionID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetLatestSubscription возвращает последнюю по времени создания запись
// подписки аккаунта или nil, если записей нет.
func (s *Storage) GetLatestSubscription(ctx context.Context, accountUID string) (*models.SubscriptionRecord, error) {
	const op = "storage.GetLatestSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, plan_id, status, current_period_end,
			      provider_subscription_id, created_at
			  FROM subscription_records
			  WHERE account_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT 1`
	rec := &models.SubscriptionRecord{}
	var planID, providerID sql.NullString
	row := s.DB.QueryRowContext(ctx, query, accountUID)
	if err := row.Scan(&rec.ID, &rec.AccountUID, &planID, &rec.Status,
		&rec.CurrentPeriodEnd, &providerID, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.PlanID = planID.String
	rec.ProviderSubscriptionID = providerID.String
	return rec, nil
}

// GetPlan возвращает метаданные плана по его идентификатору
// или nil, если план неизвестен.
func (s *Storage) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price_cents FROM plans WHERE id = $1`
	p := &models.Plan{}
	row := s.DB.QueryRowContext(ctx, query, planID)
	if err := row.Scan(&p.ID, &p.Name, &p.PriceCents); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
