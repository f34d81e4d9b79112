package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"learnify_backend/internals/configs"
)

type sendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
	appURL string
}

var _ Mailer = (*sendgridMailer)(nil)

// NewMailer returns the SendGrid mailer when an API key is configured and the
// console mailer otherwise (local dev).
func NewMailer() Mailer {
	if configs.SendgridAPIKey == "" {
		return NewConsoleMailer()
	}
	return &sendgridMailer{
		client: sendgrid.NewSendClient(configs.SendgridAPIKey),
		from:   sgmail.NewEmail(configs.SendgridFromName, configs.SendgridFromEmail),
		appURL: configs.AppBaseURL,
	}
}

func (m *sendgridMailer) SendEnrollmentEmail(toEmail, toName, courseTitle, courseSlug string) error {
	return m.send(enrollmentMessage(m.appURL, toEmail, toName, courseTitle, courseSlug))
}

func (m *sendgridMailer) SendPaymentReceiptEmail(toEmail, toName, courseTitle string, amount float64, currency, orderID string) error {
	return m.send(receiptMessage(toEmail, toName, courseTitle, amount, currency, orderID))
}

func (m *sendgridMailer) SendCertificateEmail(toEmail, toName, courseTitle, certificateID string) error {
	return m.send(certificateMessage(m.appURL, toEmail, toName, courseTitle, certificateID))
}

func (m *sendgridMailer) send(msg message) error {
	if msg.To == "" {
		return nil
	}
	sg := sgmail.NewSingleEmail(m.from, msg.Subject, sgmail.NewEmail(msg.ToName, msg.To), msg.Text, msg.HTML)
	resp, err := m.client.Send(sg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
