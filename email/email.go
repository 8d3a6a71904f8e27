package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"frontline-rating-server/config"
)

// All sending here is best-effort: callers log and swallow errors so a mail
// outage never fails the primary operation.

func send(toEmail, subject, body string) error {
	smtpConfig := config.AppConfig.SMTP
	if smtpConfig.Host == "" || smtpConfig.Sender == "" {
		return fmt.Errorf("SMTP is not configured (SMTP_HOST, SMTP_SENDER_EMAIL)")
	}

	// CRLF line endings are required by the SMTP message format
	msg := []byte(strings.Join([]string{
		"To: " + toEmail,
		"From: " + smtpConfig.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n"))

	var auth smtp.Auth
	if smtpConfig.Username != "" {
		auth = smtp.PlainAuth("", smtpConfig.Username, smtpConfig.Password, smtpConfig.Host)
	}

	addr := fmt.Sprintf("%s:%d", smtpConfig.Host, smtpConfig.Port)
	if err := smtp.SendMail(addr, auth, smtpConfig.Sender, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendNewRatingNotification tells an agent they received a rating or complaint
func SendNewRatingNotification(toEmail, agentName string, averageScore float64, isComplaint bool) error {
	kind := "rating"
	if isComplaint {
		kind = "complaint"
	}
	subject := fmt.Sprintf("New %s received", kind)
	body := fmt.Sprintf(`
<html>
<body>
    <p>Hi %s,</p>
    <p>You just received a new %s with an average score of %.1f out of 5.</p>
    <p>Log in to your dashboard to see the details.</p>
</body>
</html>
`, agentName, kind, averageScore)
	return send(toEmail, subject, body)
}

// SendApprovalNotification tells a user their registration was approved or rejected
func SendApprovalNotification(toEmail, name string, approved bool) error {
	subject := "Your account has been approved"
	verdict := "approved. You can now log in to the system."
	if !approved {
		subject = "Your account registration was rejected"
		verdict = "rejected. Contact an administrator if you believe this is a mistake."
	}
	body := fmt.Sprintf(`
<html>
<body>
    <p>Hi %s,</p>
    <p>Your account registration has been %s</p>
</body>
</html>
`, name, verdict)
	return send(toEmail, subject, body)
}

// SendPasswordReset emails a password reset link
func SendPasswordReset(toEmail, name, resetLink string) error {
	subject := "Password reset request"
	body := fmt.Sprintf(`
<html>
<body>
    <p>Hi %s,</p>
    <p>A password reset was requested for your account. Click the link below to choose a new password:</p>
    <p><a href="%s">%s</a></p>
    <p>The link expires in 24 hours. If you did not request this, you can ignore this email.</p>
</body>
</html>
`, name, resetLink, resetLink)
	return send(toEmail, subject, body)
}
