package email

import "context"

// Sender is the interface that all delivery providers must implement.
// A single call to Send is a single outbound delivery; implementations do
// not retry.
type Sender interface {
	// Send delivers msg.
	Send(ctx context.Context, msg Message) error
	// Name identifies the provider in logs and receipts.
	Name() string
}

// Message represents a notification to be delivered.
//
// Providers that deliver raw mail use the rendered bodies; providers that
// render a hosted template (EmailJS) use Params.
type Message struct {
	To       string            // recipient email address, may be empty for hosted templates
	Subject  string            // email subject
	HTMLBody string            // HTML email body
	TextBody string            // plain-text fallback body
	Params   map[string]string // template parameters
}
