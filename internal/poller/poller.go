// Package poller drives the fulfillment pipeline from an IMAP inbox.
package poller

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"esimprocessor/internal/domain/fulfillment"
	"esimprocessor/pkg/correlation"
	"esimprocessor/pkg/metrics"
)

//go:generate mockgen -source poller.go -destination mock_mailbox.go -package poller

// Message is one inbox entry, body already negotiated down to plain text.
type Message struct {
	UID     uint32
	Subject string
	Body    string
}

// Session is one authenticated mailbox connection, owned by a single poll
// cycle and torn down at its end.
type Session interface {
	UnseenMessageIDs(ctx context.Context) ([]uint32, error)
	Fetch(ctx context.Context, uid uint32) (Message, error)
	MarkSeen(ctx context.Context, uid uint32) error
	Logout() error
}

// Mailbox opens sessions against the mail server.
type Mailbox interface {
	Connect(ctx context.Context) (Session, error)
}

// Handler runs one email body through the fulfillment pipeline.
type Handler func(ctx context.Context, body string) (fulfillment.Outcome, error)

// Poller polls the mailbox on a fixed interval and feeds each unseen message
// into the handler. Cycles are strictly sequential: a slow cycle delays the
// next tick, it never overlaps it.
type Poller struct {
	mailbox  Mailbox
	handler  Handler
	interval time.Duration
}

func New(mailbox Mailbox, handler Handler, interval time.Duration) *Poller {
	return &Poller{
		mailbox:  mailbox,
		handler:  handler,
		interval: interval,
	}
}

// Run polls until the context is cancelled. Cycle failures are logged and
// retried on the next tick; they never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	slog.Info("Poller started", "interval", p.interval.String())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)")
			return nil
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	metrics.PollCycles.Inc()

	session, err := p.mailbox.Connect(ctx)
	if err != nil {
		metrics.PollCycleErrors.Inc()
		slog.Error("Failed to connect to mailbox", "error", err)
		return
	}
	defer func() {
		if err := session.Logout(); err != nil {
			slog.Error("Failed to log out of mailbox", "error", err)
		}
	}()

	uids, err := session.UnseenMessageIDs(ctx)
	if err != nil {
		metrics.PollCycleErrors.Inc()
		slog.Error("Failed to search for unseen messages", "error", err)
		return
	}
	if len(uids) == 0 {
		slog.Debug("No unseen messages")
		return
	}

	slog.Info("Found unseen messages", "count", len(uids))

	for _, uid := range uids {
		msgCtx := correlation.WithID(ctx, correlation.NewID())

		p.processMessage(msgCtx, session, uid)

		// Marked seen regardless of outcome so a poisoned message is never
		// reprocessed. There is no retry path beyond operator intervention.
		if err := session.MarkSeen(msgCtx, uid); err != nil {
			slog.ErrorContext(msgCtx, "Failed to mark message seen", "uid", uid, "error", err)
		}
	}
}

func (p *Poller) processMessage(ctx context.Context, session Session, uid uint32) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.EmailsProcessed.WithLabelValues(string(fulfillment.OutcomeFailed)).Inc()
			slog.ErrorContext(ctx, "Panic while processing message",
				"uid", uid,
				"panic", rec,
				"stack", string(debug.Stack()))
		}
	}()

	msg, err := session.Fetch(ctx, uid)
	if err != nil {
		metrics.EmailsProcessed.WithLabelValues(string(fulfillment.OutcomeFailed)).Inc()
		slog.ErrorContext(ctx, "Failed to fetch message", "uid", uid, "error", err)
		return
	}

	slog.InfoContext(ctx, "Processing email", "uid", uid, "subject", msg.Subject)

	outcome, err := p.handler(ctx, msg.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to process email", "uid", uid, "error", err)
	}
	metrics.EmailsProcessed.WithLabelValues(string(outcome)).Inc()
}
