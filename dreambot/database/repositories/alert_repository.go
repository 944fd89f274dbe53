package repositories

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
	"github.com/prd11/dream11-bot/dreambot/access"
	"github.com/prd11/dream11-bot/dreambot/database/models"
	"github.com/uptrace/bun"
)

const alertEntity = "user_alert"

// AlertRepository stores match alert preferences. Every method runs as caller and
// only ever sees rows that caller owns.
type AlertRepository interface {
	Upsert(ctx context.Context, caller access.Caller, userID snowflake.ID, enabled bool) (*models.UserAlert, error)
	Insert(ctx context.Context, caller access.Caller, alert *models.UserAlert) error
	Update(ctx context.Context, caller access.Caller, userID snowflake.ID, enabled bool) (*models.UserAlert, error)
	Get(ctx context.Context, caller access.Caller, userID snowflake.ID) (*models.UserAlert, error)
	ListEnabled(ctx context.Context, caller access.Caller) ([]snowflake.ID, error)
}

type alertRepository struct {
	*BaseRepository
}

func NewAlertRepository(db *bun.DB) AlertRepository {
	return &alertRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *alertRepository) Upsert(ctx context.Context, caller access.Caller, userID snowflake.ID, enabled bool) (*models.UserAlert, error) {
	if !caller.Owns(userID) {
		return nil, r.denied("upsert", caller, userID)
	}

	now := r.now()
	alert := &models.UserAlert{
		UserID:    int64(userID),
		Enabled:   enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.bindCaller(ctx, tx, caller); err != nil {
			return err
		}
		_, err := tx.NewInsert().
			Model(alert).
			On("CONFLICT (user_id) DO UPDATE").
			Set("enabled = EXCLUDED.enabled").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return err
		}
		return r.scoped(tx.NewSelect().Model(alert), caller).
			Where("ua.user_id = ?", int64(userID)).
			Scan(ctx)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("upsert", alertEntity, userID, err)
	}
	return alert, nil
}

// Insert creates the row and fails with a conflict when it already exists.
func (r *alertRepository) Insert(ctx context.Context, caller access.Caller, alert *models.UserAlert) error {
	userID := snowflake.ID(alert.UserID)
	if !caller.Owns(userID) {
		return r.denied("insert", caller, userID)
	}

	now := r.now()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = now
	}
	alert.UpdatedAt = alert.CreatedAt

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.bindCaller(ctx, tx, caller); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(alert).Exec(ctx)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return &ConflictError{Entity: alertEntity, Field: "user_id", Value: alert.UserID}
		}
		return r.HandleErrorWithID("insert", alertEntity, userID, err)
	}
	return nil
}

// Update changes an existing row only. updated_at is always rewritten, even when
// enabled keeps its value.
func (r *alertRepository) Update(ctx context.Context, caller access.Caller, userID snowflake.ID, enabled bool) (*models.UserAlert, error) {
	if !caller.Owns(userID) {
		return nil, r.denied("update", caller, userID)
	}

	alert := new(models.UserAlert)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.bindCaller(ctx, tx, caller); err != nil {
			return err
		}
		q := tx.NewUpdate().
			Model((*models.UserAlert)(nil)).
			Set("enabled = ?", enabled).
			Set("updated_at = ?", r.now()).
			Where("user_id = ?", int64(userID))
		if !caller.Service {
			q = q.Where("user_id = ?", int64(caller.ID))
		}
		res, err := q.Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &NotFoundError{Entity: alertEntity, ID: userID}
		}
		return r.scoped(tx.NewSelect().Model(alert), caller).
			Where("ua.user_id = ?", int64(userID)).
			Scan(ctx)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("update", alertEntity, userID, err)
	}
	return alert, nil
}

// Get returns the caller's row. Rows of other members are invisible and read as
// not found.
func (r *alertRepository) Get(ctx context.Context, caller access.Caller, userID snowflake.ID) (*models.UserAlert, error) {
	if !caller.Owns(userID) {
		return nil, &NotFoundError{Entity: alertEntity, ID: userID}
	}

	alert := new(models.UserAlert)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.bindCaller(ctx, tx, caller); err != nil {
			return err
		}
		return r.scoped(tx.NewSelect().Model(alert), caller).
			Where("ua.user_id = ?", int64(userID)).
			Scan(ctx)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("get", alertEntity, userID, err)
	}
	return alert, nil
}

// ListEnabled is reserved for the service identity.
func (r *alertRepository) ListEnabled(ctx context.Context, caller access.Caller) ([]snowflake.ID, error) {
	if !caller.Service {
		return nil, r.denied("list_enabled", caller, 0)
	}

	var alerts []models.UserAlert
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := r.bindCaller(ctx, tx, caller); err != nil {
			return err
		}
		return tx.NewSelect().
			Model(&alerts).
			Where("ua.enabled = ?", true).
			OrderExpr("ua.user_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, r.HandleErrorWithID("list_enabled", alertEntity, "enabled", err)
	}

	ids := make([]snowflake.ID, len(alerts))
	for i, a := range alerts {
		ids[i] = snowflake.ID(a.UserID)
	}
	return ids, nil
}

func (r *alertRepository) scoped(q *bun.SelectQuery, caller access.Caller) *bun.SelectQuery {
	if caller.Service {
		return q
	}
	return q.Where("ua.user_id = ?", int64(caller.ID))
}

// bindCaller hands the caller identity to PostgreSQL row level security for the
// rest of the transaction.
func (r *alertRepository) bindCaller(ctx context.Context, tx bun.Tx, caller access.Caller) error {
	if !r.isPostgres() {
		return nil
	}
	userID, role := "", "off"
	if caller.Service {
		role = "on"
	} else {
		userID = strconv.FormatUint(uint64(caller.ID), 10)
	}
	_, err := tx.ExecContext(ctx,
		"SELECT set_config('app.user_id', ?, true), set_config('app.service_role', ?, true)",
		userID, role)
	return err
}

func (r *alertRepository) denied(operation string, caller access.Caller, userID snowflake.ID) error {
	slog.Warn("Alert preference access denied",
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("caller_id", caller.ID.String()),
		slog.String("row_user_id", userID.String()))
	return &RepositoryError{Operation: operation, Entity: alertEntity, Err: ErrAccessDenied}
}
