package utils

import (
	"certportal/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Training Cell <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all portal emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>TRAINING CERTIFICATE PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Training &amp; Placement Cell. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Password Reset
func SendPasswordResetEmail(email, name, resetURL string) {
	subject := "Password Reset Request"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received a password reset request for your account.</p>
		<p>Please use the button below to reset your password. This link is valid for 10 minutes.</p>
		<a href="%s" class="btn">Reset Password</a>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, name, resetURL)

	go SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}

// 2. Request Approved (To Student)
func SendRequestApprovedEmail(email, name, trainingType, companyName string) {
	subject := "Certificate Request Approved: " + companyName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Great news! Your certificate request for <strong>%s</strong> at <strong>%s</strong> has been APPROVED.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Login to the portal to download your certificate and upload your offer/confirmation letter.
		</div>
	`, name, trainingType, companyName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Request Approved", body))
}

// 3. Request Rejected (To Student)
func SendRequestRejectedEmail(email, name, companyName, remarks string) {
	subject := "Certificate Request Rejected: " + companyName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your certificate request for <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Remarks: %s</div>
		<p>Please review the remarks and submit a new request if applicable.</p>
	`, name, companyName, remarks)

	go SendEmail([]string{email}, subject, getEmailTemplate("Request Rejected", body))
}

// 4. Pending Requests Digest (To Admin)
func SendPendingDigestEmail(email, name, department string, pendingCount int64) {
	subject := fmt.Sprintf("Pending Certificate Requests: %s", department)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>There are <strong>%d</strong> certificate request(s) awaiting review in the <strong>%s</strong> department.</p>
		<a href="#" class="btn">Review Requests</a>
	`, name, pendingCount, department)

	go SendEmail([]string{email}, subject, getEmailTemplate("Pending Requests", body))
}
