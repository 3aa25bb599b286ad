package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"educonnect/config"
)

// SendEmail delivers a single HTML email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	from := mail.NewEmail("EduConnect", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, response.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", response.StatusCode)
	}
	return nil
}

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C6E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C6E; line-height: 1.6; }
			.content h2 { color: #1A3C6E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4A90D9; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUCONNECT</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EduConnect. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Signup verification code
func SendVerificationEmail(email, name, code string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to EduConnect! Use the code below to verify your email address.</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>The code expires in 10 minutes.</p>
	`, name, code)
	SendEmail(email, name, "Verify your email", body)
}

// 2. Enrollment confirmation
func SendEnrollmentConfirmationEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Head to your dashboard to start learning.</p>
	`, name, courseTitle)
	SendEmail(email, name, "Enrollment confirmed", body)
}

// 3. Certificate issued
func SendCertificateIssuedEmail(email, name, courseTitle, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
		<p>You can download your certificate from your dashboard.</p>
	`, name, courseTitle, certificateNumber)
	SendEmail(email, name, "Your certificate is ready", body)
}

// 4. Upcoming session reminder
func SendSessionReminderEmail(email, name, sessionTitle, startTime string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>This is a reminder that <strong>%s</strong> starts at %s (UTC).</p>
	`, name, sessionTitle, startTime)
	SendEmail(email, name, "Upcoming session reminder", body)
}
