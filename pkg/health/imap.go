package health

import (
	"context"
	"crypto/tls"
	"net"
)

// IMAPChecker verifies that the mail server accepts TLS connections.
// It does not log in; the poll cycle owns the authenticated session.
type IMAPChecker struct {
	addr string
}

func NewIMAPChecker(addr string) *IMAPChecker {
	return &IMAPChecker{addr: addr}
}

func (c *IMAPChecker) Name() string {
	return "imap"
}

func (c *IMAPChecker) Check(ctx context.Context) Result {
	dialer := tls.Dialer{NetDialer: &net.Dialer{}}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	conn.Close()
	return Result{Status: StatusUp}
}
