package email

import (
	"log"
	"sync"
)

// ConsoleMailer logs mail instead of sending it and records what it "sent".
// Used in local dev and as the recording fake in service tests.
type ConsoleMailer struct {
	mu   sync.Mutex
	Sent []message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) SendEnrollmentEmail(toEmail, toName, courseTitle, courseSlug string) error {
	return m.record(enrollmentMessage("http://localhost:3000", toEmail, toName, courseTitle, courseSlug))
}

func (m *ConsoleMailer) SendPaymentReceiptEmail(toEmail, toName, courseTitle string, amount float64, currency, orderID string) error {
	return m.record(receiptMessage(toEmail, toName, courseTitle, amount, currency, orderID))
}

func (m *ConsoleMailer) SendCertificateEmail(toEmail, toName, courseTitle, certificateID string) error {
	return m.record(certificateMessage("http://localhost:3000", toEmail, toName, courseTitle, certificateID))
}

func (m *ConsoleMailer) record(msg message) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	log.Printf("📧 [MAIL] to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// SentCount is safe to call concurrently with sends.
func (m *ConsoleMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
