package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionRecord_Qualifies(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    string
		periodEnd time.Time
		want      bool
	}{
		{
			name:      "active with future period end",
			status:    SubscriptionActive,
			periodEnd: now.Add(30 * 24 * time.Hour),
			want:      true,
		},
		{
			name:      "trialing with future period end",
			status:    SubscriptionTrialing,
			periodEnd: now.Add(7 * 24 * time.Hour),
			want:      true,
		},
		{
			name:      "active with expired period",
			status:    SubscriptionActive,
			periodEnd: now.Add(-24 * time.Hour),
			want:      false,
		},
		{
			name:      "trialing with expired period",
			status:    SubscriptionTrialing,
			periodEnd: now.Add(-time.Minute),
			want:      false,
		},
		{
			name:      "past_due with future period end",
			status:    SubscriptionPastDue,
			periodEnd: now.Add(30 * 24 * time.Hour),
			want:      false,
		},
		{
			name:      "canceled with future period end",
			status:    SubscriptionCanceled,
			periodEnd: now.Add(30 * 24 * time.Hour),
			want:      false,
		},
		{
			name:      "period end exactly now",
			status:    SubscriptionActive,
			periodEnd: now,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &SubscriptionRecord{
				Status:           tt.status,
				CurrentPeriodEnd: tt.periodEnd,
			}
			assert.Equal(t, tt.want, rec.Qualifies(now))
		})
	}
}

func TestRoleBypassesGate(t *testing.T) {
	assert.True(t, RoleBypassesGate(RoleAdmin))
	assert.True(t, RoleBypassesGate(RoleStaff))
	assert.False(t, RoleBypassesGate(RoleClient))
	assert.False(t, RoleBypassesGate(""))
	assert.False(t, RoleBypassesGate("support"))
}
