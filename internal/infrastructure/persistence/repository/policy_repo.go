package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// PolicyRepository implements port.PolicyStore over the single-row
// payout_hold_policy table.
type PolicyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *sql.DB, logger *zap.Logger) *PolicyRepository {
	return &PolicyRepository{
		db:     db,
		logger: logger,
	}
}

// CurrentHoldPolicy returns the single current hold policy
func (r *PolicyRepository) CurrentHoldPolicy(ctx context.Context) (*entity.PayoutHoldPolicy, error) {
	query := `
		SELECT enabled, minimum_hold_hours, business_days_only,
			processing_time_of_day, allow_admin_bypass, require_bypass_reason,
			audit_bypass, hold_days, default_hold_days, updated_at
		FROM payout_hold_policy
		WHERE id = 1
	`

	var policy entity.PayoutHoldPolicy
	var holdDaysJSON string

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query).Scan(
		&policy.Enabled,
		&policy.MinimumHoldHours,
		&policy.BusinessDaysOnly,
		&policy.ProcessingTimeOfDay,
		&policy.AllowAdminBypass,
		&policy.RequireBypassReason,
		&policy.AuditBypass,
		&holdDaysJSON,
		&policy.DefaultHoldDays,
		&policy.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to load hold policy", zap.Error(err))
		return nil, fmt.Errorf("failed to load hold policy: %w", err)
	}

	if err := json.Unmarshal([]byte(holdDaysJSON), &policy.HoldDays); err != nil {
		return nil, fmt.Errorf("failed to decode hold days: %w", err)
	}
	return &policy, nil
}

// Seed inserts the policy row from configured defaults if absent. Called
// once at startup; an existing row is left untouched.
func (r *PolicyRepository) Seed(ctx context.Context, policy *entity.PayoutHoldPolicy) error {
	holdDaysJSON, err := json.Marshal(policy.HoldDays)
	if err != nil {
		return fmt.Errorf("failed to encode hold days: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO payout_hold_policy (
			id, enabled, minimum_hold_hours, business_days_only,
			processing_time_of_day, allow_admin_bypass, require_bypass_reason,
			audit_bypass, hold_days, default_hold_days
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		policy.Enabled,
		policy.MinimumHoldHours,
		policy.BusinessDaysOnly,
		policy.ProcessingTimeOfDay,
		policy.AllowAdminBypass,
		policy.RequireBypassReason,
		policy.AuditBypass,
		string(holdDaysJSON),
		policy.DefaultHoldDays,
	)
	if err != nil {
		r.logger.Error("Failed to seed hold policy", zap.Error(err))
		return fmt.Errorf("failed to seed hold policy: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.PolicyStore = (*PolicyRepository)(nil)
