package email

import "fmt"

// Mailer sends transactional mail. Senders are called after the state-changing
// write commits; callers log and swallow the returned error so a failing mail
// provider never fails or rolls back the core operation.
type Mailer interface {
	SendEnrollmentEmail(toEmail, toName, courseTitle, courseSlug string) error
	SendPaymentReceiptEmail(toEmail, toName, courseTitle string, amount float64, currency, orderID string) error
	SendCertificateEmail(toEmail, toName, courseTitle, certificateID string) error
}

type message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

func enrollmentMessage(appURL, toEmail, toName, courseTitle, courseSlug string) message {
	courseURL := fmt.Sprintf("%s/courses/%s", appURL, courseSlug)
	return message{
		To:      toEmail,
		ToName:  toName,
		Subject: fmt.Sprintf("You're enrolled in %s! 🎉", courseTitle),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>You now have full access to <strong>%s</strong>.</p><p><a href="%s">Start learning</a></p>`,
			toName, courseTitle, courseURL),
		Text: fmt.Sprintf("Hi %s, you now have full access to %s. Start learning: %s", toName, courseTitle, courseURL),
	}
}

func receiptMessage(toEmail, toName, courseTitle string, amount float64, currency, orderID string) message {
	return message{
		To:      toEmail,
		ToName:  toName,
		Subject: fmt.Sprintf("Payment received for %s", courseTitle),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>We received your payment of <strong>%.2f %s</strong> for <strong>%s</strong>.</p><p>Order reference: %s</p>`,
			toName, amount, currency, courseTitle, orderID),
		Text: fmt.Sprintf("Hi %s, we received your payment of %.2f %s for %s. Order reference: %s",
			toName, amount, currency, courseTitle, orderID),
	}
}

func certificateMessage(appURL, toEmail, toName, courseTitle, certificateID string) message {
	certURL := fmt.Sprintf("%s/certificates/%s", appURL, certificateID)
	return message{
		To:      toEmail,
		ToName:  toName,
		Subject: fmt.Sprintf("Your certificate for %s 🎓", courseTitle),
		HTML: fmt.Sprintf(
			`<p>Congratulations %s!</p><p>You completed <strong>%s</strong>.</p><p><a href="%s">View your certificate</a></p>`,
			toName, courseTitle, certURL),
		Text: fmt.Sprintf("Congratulations %s! You completed %s. View your certificate: %s", toName, courseTitle, certURL),
	}
}
