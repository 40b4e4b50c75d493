package order_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"esimprocessor/internal/domain/fulfillment"
	"esimprocessor/pkg/postgres"
)

// db is satisfied by *pgxpool.Pool and by pgxmock in tests.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo struct {
	db      db
	builder squirrel.StatementBuilderType
}

var _ fulfillment.OrderRepo = (*Repo)(nil)

func NewPgOrderRepo(pg *postgres.Postgres) *Repo {
	return &Repo{db: pg.Pool, builder: pg.Builder}
}

func (r *Repo) FindByProviderOrderID(ctx context.Context, providerOrderID string) (fulfillment.Order, error) {
	query, args, err := r.builder.
		Select("provider_order_id", "order_type", "customer_email", "iccid", "plan_name", "status", "metadata", "created_at", "updated_at").
		From("esim_orders").
		Where(squirrel.Eq{"provider_order_id": providerOrderID}).
		ToSql()
	if err != nil {
		return fulfillment.Order{}, fmt.Errorf("build query: %w", err)
	}

	var (
		order     fulfillment.Order
		orderType *string
		iccid     *string
		planName  *string
		metadata  []byte
	)
	row := r.db.QueryRow(ctx, query, args...)
	err = row.Scan(
		&order.ProviderOrderID,
		&orderType,
		&order.CustomerEmail,
		&iccid,
		&planName,
		&order.Status,
		&metadata,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fulfillment.Order{}, fulfillment.ErrOrderNotFound
		}
		return fulfillment.Order{}, fmt.Errorf("scan order: %w", err)
	}

	if orderType != nil {
		order.OrderType = fulfillment.OrderType(*orderType)
	}
	if iccid != nil {
		order.ICCID = *iccid
	}
	if planName != nil {
		order.PlanName = *planName
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &order.Metadata); err != nil {
			return fulfillment.Order{}, fmt.Errorf("decode metadata: %w", err)
		}
	}

	return order, nil
}

// UpdateByProviderOrderID applies all changed fields in one statement.
func (r *Repo) UpdateByProviderOrderID(ctx context.Context, providerOrderID string, update fulfillment.OrderUpdate) error {
	q := r.builder.
		Update("esim_orders").
		Set("updated_at", squirrel.Expr("now()"))

	if update.ICCID != nil {
		q = q.Set("iccid", *update.ICCID)
	}
	if update.PlanName != nil {
		q = q.Set("plan_name", *update.PlanName)
	}
	if update.LPA != nil {
		q = q.Set("lpa", *update.LPA)
	}
	if update.QRCodeURL != nil {
		q = q.Set("qr_code_url", *update.QRCodeURL)
	}
	if update.QRCode != nil {
		q = q.Set("qr_code", *update.QRCode)
	}
	if update.AppleInstallURL != nil {
		q = q.Set("direct_apple_installation_url", *update.AppleInstallURL)
	}
	if update.Status != nil {
		q = q.Set("status", string(*update.Status))
	}

	query, args, err := q.Where(squirrel.Eq{"provider_order_id": providerOrderID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fulfillment.ErrOrderNotFound
	}

	return nil
}
