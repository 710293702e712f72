// Package notify delivers staff notifications by email.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/retshidi-radebe/bzfitness/internal/config"
)

// Message is one outgoing email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers a Message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// New returns a Resend-backed sender when cfg is complete, and a sender
// that only logs otherwise. The returned recipients are cfg.To split on
// commas.
func New(cfg config.NotifySettings, logger *slog.Logger) (Sender, []string) {
	to := Recipients(cfg.To)
	if !cfg.Enabled() || len(to) == 0 {
		return &NoopSender{logger: logger}, to
	}
	return NewResendSender(cfg.ResendAPIKey, cfg.From), to
}

// Recipients splits a comma separated address list, dropping blanks.
func Recipients(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// ResendSender sends through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender returns a sender using apiKey with from as the sender
// address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}

// NoopSender logs messages instead of sending them.
type NoopSender struct {
	logger *slog.Logger
}

func (s *NoopSender) Send(_ context.Context, msg Message) (string, error) {
	if s.logger != nil {
		s.logger.Debug("notification email not sent, notify is not configured",
			"to", msg.To, "subject", msg.Subject)
	}
	return "", nil
}
