package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outgoing mail. Every method maps
// to one notification the platform sends; implementations are expected to
// be safe for concurrent use.
type EmailService interface {
	SendMentorOffer(toEmail, toName, vacancyTitle string) error
	SendInternInvite(toEmail, toName string) error
	SendSchoolInvite(toEmail, toName, message string) error
	SendEventInfo(toEmail, toName, eventTitle string, startsAt time.Time) error
	SendEventReminder(toEmail, toName, eventTitle string, startsAt time.Time) error
	SendCredentials(toEmail, toName, password string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// EmailServiceImpl implements EmailService over plain SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// devMode is true when SMTP credentials are missing. Outgoing mail is
// logged instead of sent so local environments work without a relay.
func (s *EmailServiceImpl) devMode(toEmail, subject string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	s.logger.Warn().
		Str("toEmail", toEmail).
		Str("subject", subject).
		Msg("SMTP credentials not configured - email logged instead of sent")
	return true
}

// SendMentorOffer notifies a mentor that an HR proposed them a vacancy.
func (s *EmailServiceImpl) SendMentorOffer(toEmail, toName, vacancyTitle string) error {
	subject := "New mentorship offer"
	if s.devMode(toEmail, subject) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">You have a mentorship offer</h2>
				<p>Hello %s,</p>
				<p>An HR manager proposed you as the mentor for the vacancy <strong>%s</strong>.</p>
				<p>Sign in to your account to accept or decline the offer.</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, toName, vacancyTitle)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendInternInvite congratulates an approved applicant.
func (s *EmailServiceImpl) SendInternInvite(toEmail, toName string) error {
	subject := "Your internship application is approved"
	if s.devMode(toEmail, subject) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Congratulations, %s!</h2>
				<p>Your internship application has been approved by the curators.</p>
				<p>Further instructions about the internship school will follow shortly.</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendSchoolInvite delivers a curator-authored school invitation.
func (s *EmailServiceImpl) SendSchoolInvite(toEmail, toName, message string) error {
	subject := "Internship school invitation"
	if s.devMode(toEmail, subject) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Internship school</h2>
				<p>Hello %s,</p>
				<p>%s</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, toName, message)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendEventInfo announces an event to a candidate.
func (s *EmailServiceImpl) SendEventInfo(toEmail, toName, eventTitle string, startsAt time.Time) error {
	subject := fmt.Sprintf("Upcoming event: %s", eventTitle)
	if s.devMode(toEmail, subject) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">%s</h2>
				<p>Hello %s,</p>
				<p>You are invited to <strong>%s</strong> on %s.</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, eventTitle, toName, eventTitle, startsAt.Format("02.01.2006 15:04"))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendEventReminder reminds a candidate about an event they signed up for.
func (s *EmailServiceImpl) SendEventReminder(toEmail, toName, eventTitle string, startsAt time.Time) error {
	subject := fmt.Sprintf("Reminder: %s", eventTitle)
	if s.devMode(toEmail, subject) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Don't forget: %s</h2>
				<p>Hello %s,</p>
				<p>The event <strong>%s</strong> starts on %s.</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, eventTitle, toName, eventTitle, startsAt.Format("02.01.2006 15:04"))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendCredentials delivers a freshly generated account password.
func (s *EmailServiceImpl) SendCredentials(toEmail, toName, password string) error {
	subject := "Your account credentials"
	if s.config.Username == "" || s.config.Password == "" {
		// Never log generated passwords, even in dev mode
		s.logger.Warn().
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - credentials email not sent")
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome aboard</h2>
				<p>Hello %s,</p>
				<p>An account has been created for you. Sign in with:</p>
				<p>Login: <strong>%s</strong><br>Password: <strong>%s</strong></p>
				<p>Please change the password after your first sign-in.</p>
				<p>Best regards,<br>The Internship Team</p>
			</div>
		</body>
		</html>
	`, toName, toEmail, password)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
