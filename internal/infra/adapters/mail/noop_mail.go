package mail

import (
	"context"
	"log"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
)

var _ adapter.MailTransport = (*NoopMail)(nil)

// NoopMail implements adapter.MailTransport for local/dev runs.
// It logs messages instead of talking to a real SMTP relay.
type NoopMail struct{}

func NewNoopMail() *NoopMail {
	return &NoopMail{}
}

func (m *NoopMail) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	log.Printf("[noop-mail] template=%s to=%s data=%v\n", templateID, recipient, data)
	return nil
}
