package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"academy/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Fluent Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendEnrollmentReceipt mails a payment receipt after a successful
// enrollment commit. Best effort: callers fire it in a goroutine and a
// failure only logs. Skipped entirely when no sender is configured.
func SendEnrollmentReceipt(email, classTitle, receiptID, transactionRef string, amount float64) {
	if config.AppConfig.EmailSender == "" {
		return
	}

	body := getEmailTemplate("Enrollment Confirmed", fmt.Sprintf(`
		<h2>You're enrolled!</h2>
		<p>Your payment has been received and your seat is booked.</p>
		<div class="info-box">
			<p><strong>Class:</strong> %s</p>
			<p><strong>Amount:</strong> $%.2f</p>
			<p><strong>Receipt:</strong> %s</p>
			<p><strong>Transaction:</strong> %s</p>
		</div>
		<p>You can find this class under "My Enrolled Classes" in your dashboard.</p>
	`, classTitle, amount, receiptID, transactionRef))

	if err := SendEmail([]string{email}, "Your Fluent Academy enrollment receipt", body); err != nil {
		log.Printf("Failed to send enrollment receipt to %s: %v", email, err)
	}
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1D2B53; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1D2B53; line-height: 1.6; }
			.content h2 { color: #1D2B53; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5C9DFF; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Fluent Academy &middot; This is an automated message, please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
