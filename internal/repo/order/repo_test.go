package order_repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esimprocessor/internal/domain/fulfillment"
)

func mockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := &Repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	return repo, mock
}

const findQuery = `SELECT provider_order_id, order_type, customer_email, iccid, plan_name, status, metadata, created_at, updated_at FROM esim_orders WHERE provider_order_id = \$1`

func orderColumns() []string {
	return []string{"provider_order_id", "order_type", "customer_email", "iccid", "plan_name", "status", "metadata", "created_at", "updated_at"}
}

func TestFindByProviderOrderID(t *testing.T) {
	ctx := context.Background()

	t.Run("should return order with decoded metadata", func(t *testing.T) {
		repo, mock := mockRepo(t)
		now := time.Now()
		iccid := "8944500612345678901"
		orderType := "esim_topup"

		rows := mock.NewRows(orderColumns()).
			AddRow("4839201746502", &orderType, "buyer@example.com", &iccid, nil, "pending",
				[]byte(`{"package_slug":"kallur-digital-7days-1gb","existingEsimIccid":"8944500677777777777"}`), now, now)

		mock.ExpectQuery(findQuery).
			WithArgs("4839201746502").
			WillReturnRows(rows)

		order, err := repo.FindByProviderOrderID(ctx, "4839201746502")

		require.NoError(t, err)
		assert.Equal(t, "4839201746502", order.ProviderOrderID)
		assert.Equal(t, fulfillment.TypeTopup, order.OrderType)
		assert.Equal(t, "buyer@example.com", order.CustomerEmail)
		assert.Equal(t, iccid, order.ICCID)
		assert.Empty(t, order.PlanName)
		assert.Equal(t, fulfillment.StatusPending, order.Status)
		assert.Equal(t, "kallur-digital-7days-1gb", order.PackageSlug())
		assert.Equal(t, "8944500677777777777", order.TopupICCID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should tolerate null optional columns", func(t *testing.T) {
		repo, mock := mockRepo(t)
		now := time.Now()

		rows := mock.NewRows(orderColumns()).
			AddRow("4839201746502", nil, "buyer@example.com", nil, nil, "pending", nil, now, now)

		mock.ExpectQuery(findQuery).
			WithArgs("4839201746502").
			WillReturnRows(rows)

		order, err := repo.FindByProviderOrderID(ctx, "4839201746502")

		require.NoError(t, err)
		assert.Empty(t, order.OrderType)
		assert.Empty(t, order.ICCID)
		assert.Nil(t, order.Metadata)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should map no rows to ErrOrderNotFound", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectQuery(findQuery).
			WithArgs("0000000000000").
			WillReturnRows(mock.NewRows(orderColumns()))

		_, err := repo.FindByProviderOrderID(ctx, "0000000000000")

		assert.ErrorIs(t, err, fulfillment.ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should wrap query failure", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectQuery(findQuery).
			WithArgs("4839201746502").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByProviderOrderID(ctx, "4839201746502")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateByProviderOrderID(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }
	active := fulfillment.StatusActive

	t.Run("should write topup fields in one statement", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectExec(`UPDATE esim_orders SET updated_at = now\(\), iccid = \$1, status = \$2 WHERE provider_order_id = \$3`).
			WithArgs("8944500677777777777", "active", "4839201746502").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateByProviderOrderID(ctx, "4839201746502", fulfillment.OrderUpdate{
			ICCID:  strPtr("8944500677777777777"),
			Status: &active,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should write full new-order field set in one statement", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectExec(`UPDATE esim_orders SET updated_at = now\(\), iccid = \$1, plan_name = \$2, lpa = \$3, qr_code_url = \$4, qr_code = \$5, direct_apple_installation_url = \$6, status = \$7 WHERE provider_order_id = \$8`).
			WithArgs("8944500612345678901", "Kallur Digital 7 Days 1GB", "LPA:1$lpa.airalo.com$X",
				"https://cdn.example.com/qr/1.png", "LPA:1$lpa.airalo.com$X", "https://esimsetup.apple.com/x",
				"active", "4839201746502").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateByProviderOrderID(ctx, "4839201746502", fulfillment.OrderUpdate{
			ICCID:           strPtr("8944500612345678901"),
			PlanName:        strPtr("Kallur Digital 7 Days 1GB"),
			LPA:             strPtr("LPA:1$lpa.airalo.com$X"),
			QRCodeURL:       strPtr("https://cdn.example.com/qr/1.png"),
			QRCode:          strPtr("LPA:1$lpa.airalo.com$X"),
			AppleInstallURL: strPtr("https://esimsetup.apple.com/x"),
			Status:          &active,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should report ErrOrderNotFound when nothing matched", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectExec(`UPDATE esim_orders SET updated_at = now\(\), status = \$1 WHERE provider_order_id = \$2`).
			WithArgs("active", "0000000000000").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateByProviderOrderID(ctx, "0000000000000", fulfillment.OrderUpdate{Status: &active})

		assert.ErrorIs(t, err, fulfillment.ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should wrap exec failure", func(t *testing.T) {
		repo, mock := mockRepo(t)

		mock.ExpectExec(`UPDATE esim_orders SET`).
			WithArgs("active", "4839201746502").
			WillReturnError(errors.New("connection refused"))

		err := repo.UpdateByProviderOrderID(ctx, "4839201746502", fulfillment.OrderUpdate{Status: &active})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
