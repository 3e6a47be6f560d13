package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through SendGrid. A missing API
// key disables outgoing mail rather than failing the caller.
func SendEmail(toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Course Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user. Fire-and-forget.
func SendWelcomeEmail(email, name, role string) {
	subject := "Welcome to the Course Platform"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your %s account has been created successfully.</p>
		<p>You can now log in and start exploring courses.</p>
	`, name, role)

	go SendEmail(email, subject, body)
}
