package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/config"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
)

var _ adapter.MailTransport = (*SMTPMail)(nil)

// templates maps a template id to subject and body. Placeholders of the
// form {key} are filled from the dispatch data.
var templates = map[string]struct {
	subject string
	body    string
}{
	"job_quoted":     {"Your quote is ready", "Job {job_id} ({filename}, {pair}) has been priced. Please review and approve the quote."},
	"quote_approved": {"Quote approved", "The client approved the quote for job {job_id} ({pair}). The job is ready for assignment."},
	"quote_rejected": {"Quote rejected", "The client rejected the quote for job {job_id} ({pair})."},
	"job_assigned":   {"Job assigned", "Job {job_id} ({filename}, {pair}) has been assigned."},
	"job_delivered":  {"Translation delivered", "The translation for job {job_id} ({pair}) has been delivered and awaits review."},
	"job_returned":   {"Revision requested", "Job {job_id} was returned for revision. Check the manager's comment."},
	"job_accepted":   {"Translation accepted", "The translation for job {job_id} has been accepted."},
	"invoice_issued": {"Invoice issued", "The invoice for job {job_id} has been issued."},
	"job_due_soon":   {"Deadline approaching", "Job {job_id} is due at {due}."},
}

// SMTPMail sends notification mail through a plain SMTP relay.
type SMTPMail struct {
	addr string
	auth smtp.Auth
	from string
	log  *zerolog.Logger
}

func NewSMTPMail(cfg config.MailConfig, logger *zerolog.Logger) *SMTPMail {
	compLog := logger.With().Str("component", "SMTPMail").Logger()
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMail{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
		log:  &compLog,
	}
}

func (m *SMTPMail) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	tpl, ok := templates[templateID]
	if !ok {
		return fmt.Errorf("unknown mail template %q: %w", templateID, domain.ErrInvalidArgument)
	}
	subject := fill(tpl.subject, data)
	body := fill(tpl.body, data)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{recipient}, []byte(msg))
	}()
	select {
	case err := <-done:
		if err != nil {
			m.log.Warn().Err(err).Str("recipient", recipient).Str("template", templateID).Msg("smtp send failed")
			return fmt.Errorf("smtp send: %w", domain.ErrCollaboratorUnavailable)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fill(s string, data map[string]string) string {
	for k, v := range data {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
