package adapter

import "context"

// MailTransport sends templated notification emails. Implementations fail
// with domain.ErrCollaboratorUnavailable when the transport is down; the
// caller records the failure and may retry the dispatch alone.
type MailTransport interface {
	Send(ctx context.Context, templateID, recipient string, data map[string]string) error
}
