package utils

import (
	"fmt"
	"net/smtp"

	"github.com/smartstudy/smartstudy-backend/config"
)

// SendEmail delivers an HTML mail through the configured SMTP relay.
func SendEmail(cfg *config.Config, to, subject, body string) error {
	from := cfg.SMTPEmail

	// Headers: UTF-8 and HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		cfg.SMTPHost+":"+cfg.SMTPPort,
		smtp.PlainAuth("", from, cfg.SMTPPassword, cfg.SMTPHost),
		from,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// WelcomeEmailBody renders the greeting sent after registration.
func WelcomeEmailBody(firstName string) string {
	return `
	<h2>Welcome to SmartStudy, ` + firstName + `!</h2>
	<p>Thank you for joining our AI-powered learning platform.</p>
	<p>Here's what you can do:</p>
	<ul>
		<li>Take AI-generated quizzes</li>
		<li>Chat with your personal AI tutor</li>
		<li>Track your learning progress</li>
	</ul>
	<p>Happy learning!</p>
	<p>The SmartStudy Team</p>
	`
}
