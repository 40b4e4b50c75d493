package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Outcome classifies a pipeline run.
type Outcome string

const (
	OutcomeFulfilled           Outcome = "fulfilled"
	OutcomeSkippedNoInvoice    Outcome = "skipped_no_invoice"
	OutcomeSkippedUnknownOrder Outcome = "skipped_unknown_order"
	OutcomeFailed              Outcome = "failed"
)

// Service runs the fulfillment pipeline: extract invoice number, look the
// order up, provision through the partner API, record the result.
//
// There is no dedup guard: a second email carrying the same invoice while the
// order is still pending triggers a second provisioning call. The seen-flag on
// the mailbox is the only thing preventing reprocessing in practice.
type Service struct {
	orders      OrderRepo
	provisioner Provisioner
	events      EventSink
}

func NewService(orders OrderRepo, provisioner Provisioner, events EventSink) *Service {
	return &Service{
		orders:      orders,
		provisioner: provisioner,
		events:      events,
	}
}

// ProcessEmail runs one email body through the pipeline. Skips are not
// errors: a body without an invoice number, or an invoice without a matching
// order, is simply not a payment notification for this shop. A non-nil error
// means fulfillment was aborted and the order is still pending.
func (s *Service) ProcessEmail(ctx context.Context, body string) (Outcome, error) {
	invoice, ok := ExtractInvoiceNumber(body)
	if !ok {
		slog.WarnContext(ctx, "No 13-digit invoice number found, skipping")
		return OutcomeSkippedNoInvoice, nil
	}

	slog.InfoContext(ctx, "Extracted invoice number", "invoice", invoice)

	order, err := s.orders.FindByProviderOrderID(ctx, invoice)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			slog.WarnContext(ctx, "No order found for invoice, skipping", "invoice", invoice)
			s.emit(ctx, Event{ProviderOrderID: invoice, Outcome: OutcomeSkippedUnknownOrder})
			return OutcomeSkippedUnknownOrder, nil
		}
		return s.failed(ctx, invoice, fmt.Errorf("find order %s: %w", invoice, err))
	}

	slog.InfoContext(ctx, "Order found",
		"provider_order_id", order.ProviderOrderID,
		"order_type", string(order.OrderType))

	token, err := s.provisioner.Authenticate(ctx)
	if err != nil {
		return s.failed(ctx, invoice, fmt.Errorf("authenticate: %w", err))
	}

	var update OrderUpdate
	switch order.OrderType {
	case TypeTopup:
		update, err = s.provisionTopup(ctx, token, order)
	default:
		if order.OrderType != TypeNew && order.OrderType != "" {
			// Preserved fallback from the original flow: unrecognized types
			// take the new-order path. Possibly masks a data-entry error.
			slog.WarnContext(ctx, "Unrecognized order type, provisioning as new order",
				"provider_order_id", order.ProviderOrderID,
				"order_type", string(order.OrderType))
		}
		update, err = s.provisionNew(ctx, token, order)
	}
	if err != nil {
		return s.failed(ctx, invoice, err)
	}

	if err := s.orders.UpdateByProviderOrderID(ctx, invoice, update); err != nil {
		return s.failed(ctx, invoice, fmt.Errorf("update order %s: %w", invoice, err))
	}

	slog.InfoContext(ctx, "Invoice processed", "invoice", invoice)
	s.emit(ctx, Event{ProviderOrderID: invoice, Outcome: OutcomeFulfilled})

	return OutcomeFulfilled, nil
}

func (s *Service) provisionNew(ctx context.Context, token string, order Order) (OrderUpdate, error) {
	result, err := s.provisioner.CreateOrder(ctx, token, order.PackageSlug(), order.CustomerEmail)
	if err != nil {
		return OrderUpdate{}, fmt.Errorf("create order: %w", err)
	}
	if len(result.Sims) == 0 {
		return OrderUpdate{}, ErrNoSims
	}

	sim := result.Sims[0]
	status := StatusActive
	return OrderUpdate{
		ICCID:           &sim.ICCID,
		PlanName:        &result.PackageName,
		LPA:             &sim.LPA,
		QRCodeURL:       &sim.QRCodeURL,
		QRCode:          &sim.QRCode,
		AppleInstallURL: &sim.AppleInstallURL,
		Status:          &status,
	}, nil
}

func (s *Service) provisionTopup(ctx context.Context, token string, order Order) (OrderUpdate, error) {
	_, err := s.provisioner.CreateTopup(ctx, token, order.PackageSlug(), order.ICCID)
	if err != nil {
		return OrderUpdate{}, fmt.Errorf("create topup: %w", err)
	}

	iccid := order.TopupICCID()
	status := StatusActive
	return OrderUpdate{
		ICCID:  &iccid,
		Status: &status,
	}, nil
}

func (s *Service) failed(ctx context.Context, invoice string, err error) (Outcome, error) {
	s.emit(ctx, Event{ProviderOrderID: invoice, Outcome: OutcomeFailed, Error: err.Error()})
	return OutcomeFailed, err
}

func (s *Service) emit(ctx context.Context, event Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish fulfillment event",
			"provider_order_id", event.ProviderOrderID,
			"outcome", string(event.Outcome),
			"error", err)
	}
}
