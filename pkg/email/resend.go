package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(cfg.Email.APIKey),
		from:     cfg.Email.FromAddress,
		fromName: cfg.Email.FromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(to, name string) error {
	return s.send(to, "Welcome to Cramr!", "welcome.html", map[string]interface{}{
		"Name": name,
	})
}

func (s *EmailService) SendOTPEmail(to, name, code string, ttl time.Duration) error {
	return s.send(to, "Your Cramr verification code", "otp.html", map[string]interface{}{
		"Name":      name,
		"Code":      code,
		"ExpiresIn": humanize(ttl),
	})
}

func (s *EmailService) SendPasswordResetEmail(to, name, code string, ttl time.Duration) error {
	return s.send(to, "Reset your Cramr password", "reset-password.html", map[string]interface{}{
		"Name":      name,
		"Code":      code,
		"ExpiresIn": humanize(ttl),
	})
}

func (s *EmailService) send(to, subject, templateName string, data map[string]interface{}) error {
	data["Year"] = time.Now().Year()

	html, err := Render(templateName, data)
	if err != nil {
		s.logger.Error("failed to render template", zap.String("template", templateName), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("id", resp.Id))
	return nil
}

// Render executes one of the embedded templates.
func Render(templateName string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", fmt.Errorf("render %s: %w", templateName, err)
	}
	return body.String(), nil
}

func humanize(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
