// Package mail delivers transactional notifications (registration alerts
// and contact-form messages) over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Mailer is the outbound-mail collaborator handlers depend on.
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// Sender sends notification email to the configured recipients. With no
// host configured the sender is disabled: sends are logged and dropped so
// registration and contact still succeed without an SMTP server.
type Sender struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// Send builds and dispatches one HTML message to all recipients.
func (s *Sender) Send(ctx context.Context, subject, htmlBody string) error {
	if s.Host == "" || len(s.Recipients) == 0 {
		slog.Info("mail disabled, dropping notification", "subject", subject)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.From); err != nil {
		return fmt.Errorf("setting mail sender: %w", err)
	}
	if err := msg.To(s.Recipients...); err != nil {
		return fmt.Errorf("setting mail recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// RegistrationSubject is the subject line of the admin alert sent when a new
// account registers and waits for activation.
const RegistrationSubject = "New User Registered For Inventory App"

// RegistrationBody builds the admin alert for a new registration.
func RegistrationBody(firstName, lastName, username, email string) string {
	return fmt.Sprintf(`<p>Greetings!</p>
<p>The following user registered:</p>
<ul>
<li><strong>First Name:</strong> %s</li>
<li><strong>Last Name:</strong> %s</li>
<li><strong>Username:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
</ul>
`, firstName, lastName, username, email)
}

// ContactBody builds the forwarded contact-form message.
func ContactBody(fullName, email, message string) string {
	return fmt.Sprintf(`<p>Message from Inventory App Contact Form...</p>

<p><strong>Full Name:</strong> %s</p>
<p><strong>Email Address:</strong> %s</p>
<p><strong>Message:</strong> %s</p>
`, fullName, email, message)
}
