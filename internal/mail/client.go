// Package mail implements the mailbox collaborator over IMAP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"mime"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/charset"

	"esimprocessor/internal/poller"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Mailbox  string
}

// Client dials a fresh IMAP session per poll cycle. Sessions are not reused:
// the poll driver owns exactly one at a time and logs it out when done.
type Client struct {
	cfg Config
}

var _ poller.Mailbox = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Client{cfg: cfg}
}

// Addr returns the host:port the client dials, for health checks.
func (c *Client) Addr() string {
	return fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
}

// Connect dials the server over TLS, logs in and selects the inbox.
func (c *Client) Connect(ctx context.Context) (poller.Session, error) {
	options := &imapclient.Options{
		WordDecoder: &mime.WordDecoder{CharsetReader: charset.Reader},
	}

	slog.DebugContext(ctx, "Connecting to IMAP server", "addr", c.Addr())

	conn, err := imapclient.DialTLS(c.Addr(), options)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.Addr(), err)
	}

	if err := conn.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("login: %w", err)
	}

	if _, err := conn.Select(c.cfg.Mailbox, nil).Wait(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("select %s: %w", c.cfg.Mailbox, err)
	}

	return &session{conn: conn}, nil
}

type session struct {
	conn *imapclient.Client
}

func (s *session) UnseenMessageIDs(_ context.Context) ([]uint32, error) {
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}

	data, err := s.conn.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search unseen: %w", err)
	}

	var uids []uint32
	for _, uid := range data.AllUIDs() {
		uids = append(uids, uint32(uid))
	}
	return uids, nil
}

func (s *session) Fetch(_ context.Context, uid uint32) (poller.Message, error) {
	bodySection := &imap.FetchItemBodySection{}
	options := &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	msgs, err := s.conn.Fetch(imap.UIDSetNum(imap.UID(uid)), options).Collect()
	if err != nil {
		return poller.Message{}, fmt.Errorf("fetch uid %d: %w", uid, err)
	}
	if len(msgs) == 0 {
		return poller.Message{}, fmt.Errorf("fetch uid %d: no data returned", uid)
	}

	buf := msgs[0]

	subject := "(no subject)"
	if buf.Envelope != nil && buf.Envelope.Subject != "" {
		subject = buf.Envelope.Subject
	}

	raw := buf.FindBodySection(bodySection)
	body, err := ExtractBody(raw)
	if err != nil {
		return poller.Message{}, fmt.Errorf("extract body of uid %d: %w", uid, err)
	}

	return poller.Message{
		UID:     uid,
		Subject: subject,
		Body:    body,
	}, nil
}

func (s *session) MarkSeen(_ context.Context, uid uint32) error {
	flags := &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Flags:  []imap.Flag{imap.FlagSeen},
		Silent: true,
	}

	if err := s.conn.Store(imap.UIDSetNum(imap.UID(uid)), flags, nil).Close(); err != nil {
		return fmt.Errorf("store \\Seen on uid %d: %w", uid, err)
	}
	return nil
}

func (s *session) Logout() error {
	err := s.conn.Logout().Wait()
	s.conn.Close()
	return err
}
