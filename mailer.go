package remind

import "context"

// Mailer delivers one message to a set of recipients in a single call.
type Mailer interface {
	// Send delivers the message to all recipients together and returns an
	// error when the transport rejects it.
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, recipients []string, subject, body string) error

// Send implements Mailer.
func (fn MailerFunc) Send(ctx context.Context, recipients []string, subject, body string) error {
	return fn(ctx, recipients, subject, body)
}
