package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Email is one transactional message. Categories and CustomArgs are passed
// through to SendGrid for delivery tracking.
type Email struct {
	To          string
	ToName      string
	Subject     string
	Content     string
	HTMLContent string
	Categories  []string
	CustomArgs  map[string]string
}

type EmailService interface {
	Send(ctx context.Context, req *Email) error
}

type Option func(*emailService)

// WithBaseURL points the client at another mail/send endpoint.
func WithBaseURL(url string) Option {
	return func(e *emailService) {
		e.client.Request.BaseURL = url
	}
}

// WithSandbox makes SendGrid validate messages without delivering them.
func WithSandbox(enabled bool) Option {
	return func(e *emailService) {
		e.sandbox = enabled
	}
}

type emailService struct {
	client  *sendgrid.Client
	from    *mail.Email
	sandbox bool
}

func NewEmailService(apiKey, fromEmail, fromName string, opts ...Option) EmailService {
	e := &emailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *emailService) Send(ctx context.Context, req *Email) error {

	response, err := e.client.SendWithContext(ctx, e.buildMessage(req))
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", req.To, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email to %s: status %d: %s", req.To, response.StatusCode, response.Body)
	}

	return nil
}

func (e *emailService) buildMessage(req *Email) *mail.SGMailV3 {

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(req.ToName, req.To))
	p.Subject = req.Subject

	for key, value := range req.CustomArgs {
		p.SetCustomArg(key, value)
	}

	message := mail.NewV3Mail()
	message.SetFrom(e.from)
	message.AddPersonalizations(p)

	// text/plain has to come before text/html
	message.AddContent(mail.NewContent("text/plain", req.Content))
	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	if len(req.Categories) > 0 {
		message.AddCategories(req.Categories...)
	}

	if e.sandbox {
		message.SetMailSettings(mail.NewMailSettings().SetSandboxMode(mail.NewSetting(true)))
	}

	return message
}
