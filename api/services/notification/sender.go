package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/bayanlab/bayanlab-commerce/api/services/catalog"
)

// FromName is the display name on every outgoing email.
const FromName = "BayanLab by Multimode AI"

// ErrNotificationFailed indicates the email provider did not accept the message.
var ErrNotificationFailed = errors.New("notification failed")

// Purchase is the content of a purchase confirmation.
type Purchase struct {
	To       string
	Tier     string
	Datasets []string
	APIKey   string
}

// Sender delivers purchase emails.
type Sender interface {
	SendPurchase(ctx context.Context, p Purchase) error
}

// Message represents an email to send.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// BuildPurchaseMessage renders the purchase email with the key in both bodies.
func BuildPurchaseMessage(p Purchase, now time.Time) (Message, error) {
	tierName := catalog.TierDisplayName(p.Tier)
	data := newPurchaseData(tierName, p.APIKey, catalog.DisplayNames(p.Datasets), now.Year())
	html, text, err := renderPurchaseEmail(data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      p.To,
		Subject: fmt.Sprintf("Your BayanLab API Key - %s License", tierName),
		HTML:    html,
		Text:    text,
	}, nil
}

// mailClient is the subset of *sendgrid.Client used here.
type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends purchase emails through the SendGrid v3 API.
type SendGridSender struct {
	client    mailClient
	fromEmail string
	timeout   time.Duration
	now       func() time.Time
}

// NewSendGridSender creates a SendGrid-backed sender.
func NewSendGridSender(apiKey, fromEmail string, timeout time.Duration) *SendGridSender {
	return newSendGridSender(sendgrid.NewSendClient(apiKey), fromEmail, timeout)
}

func newSendGridSender(client mailClient, fromEmail string, timeout time.Duration) *SendGridSender {
	return &SendGridSender{client: client, fromEmail: fromEmail, timeout: timeout, now: time.Now}
}

// SendPurchase renders and sends the purchase email.
func (s *SendGridSender) SendPurchase(ctx context.Context, p Purchase) error {
	msg, err := BuildPurchaseMessage(p, s.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	from := mail.NewEmail(FromName, s.fromEmail)
	to := mail.NewEmail("", msg.To)
	sg := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.SendWithContext(ctx, sg)
	if err != nil {
		return fmt.Errorf("%w: sendgrid request failed: %v", ErrNotificationFailed, err)
	}
	// SendGrid reports rejected messages through the status code, not err.
	if resp == nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status, body := 0, ""
		if resp != nil {
			status, body = resp.StatusCode, resp.Body
		}
		if len(body) > 512 {
			body = body[:512]
		}
		return fmt.Errorf("%w: sendgrid status=%d body=%s", ErrNotificationFailed, status, strings.TrimSpace(body))
	}

	log.Info().Str("to", msg.To).Str("tier", p.Tier).Msg("Purchase email sent")
	return nil
}

// LogSender logs emails instead of sending them. Used as fallback when no email provider is configured.
// The key is never written to the log.
type LogSender struct {
	logFn func(to, subject string)
	now   func() time.Time
}

// NewLogSender creates a sender that logs emails. A nil logFn logs through zerolog.
func NewLogSender(logFn func(to, subject string)) *LogSender {
	if logFn == nil {
		logFn = func(to, subject string) {
			log.Warn().Str("to", to).Str("subject", subject).Msg("SENDGRID_API_KEY not configured, purchase email logged only")
		}
	}
	return &LogSender{logFn: logFn, now: time.Now}
}

// SendPurchase logs the email instead of sending it.
func (l *LogSender) SendPurchase(_ context.Context, p Purchase) error {
	msg, err := BuildPurchaseMessage(p, l.now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	l.logFn(msg.To, msg.Subject)
	return nil
}
