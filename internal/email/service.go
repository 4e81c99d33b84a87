package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/redmonkez12/go-blog-api/internal/config"
	"github.com/redmonkez12/go-blog-api/internal/logging"
)

// sendFunc matches smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service sends account notices over SMTP
type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	frontendURL  string
	send         sendFunc
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUser:     cfg.SMTPUser,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.SMTPUser,
		frontendURL:  cfg.FrontendURL,
		send:         smtp.SendMail,
	}
}

type noticeData struct {
	Name        string
	Heading     string
	Body        string
	Link        string
	LinkLabel   string
	FooterNotes string
}

// SendPasswordChangedEmail tells the user their password was replaced.
// This method is designed to be called in a goroutine
func (s *Service) SendPasswordChangedEmail(ctx context.Context, toEmail, name string) error {
	return s.sendNotice(ctx, toEmail, "Your password was changed", noticeData{
		Name:        name,
		Heading:     "Your password was changed",
		Body:        "The password for your account was just changed. Sessions that were already signed in stay signed in until they expire.",
		Link:        s.frontendURL + "/login",
		LinkLabel:   "Sign in",
		FooterNotes: "If you did not make this change, contact support immediately.",
	})
}

// SendAccountDeletedEmail confirms that the account was closed. The data is kept.
func (s *Service) SendAccountDeletedEmail(ctx context.Context, toEmail, name string) error {
	return s.sendNotice(ctx, toEmail, "Your account was deleted", noticeData{
		Name:        name,
		Heading:     "Your account was deleted",
		Body:        "Your account has been closed and you can no longer sign in. Your blogs were not removed.",
		FooterNotes: "If you did not request this, contact support.",
	})
}

// SendAccountErasedEmail confirms that the account and all of its blogs are gone for good
func (s *Service) SendAccountErasedEmail(ctx context.Context, toEmail, name string) error {
	return s.sendNotice(ctx, toEmail, "Your account was permanently deleted", noticeData{
		Name:        name,
		Heading:     "Your account was permanently deleted",
		Body:        "Your account and all of your blogs, including those in the trash, have been permanently erased. This cannot be undone.",
		FooterNotes: "If you did not request this, contact support.",
	})
}

func (s *Service) sendNotice(ctx context.Context, toEmail, subject string, data noticeData) error {
	logger := logging.GetLoggerFromContext(ctx)

	body, err := renderNotice(data)
	if err != nil {
		logger.Error("failed to render email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, subject, body); err != nil {
		logger.Error("failed to send email", "email", toEmail, "subject", subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("email sent", "email", toEmail, "subject", subject)
	return nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	// Build message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return s.send(addr, auth, s.fromEmail, []string{to}, msg)
}

var noticeTemplate = template.Must(template.New("notice").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
        .button { display: inline-block; background-color: #4F46E5; color: white !important; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Heading}}</h1>
    </div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>{{.Body}}</p>
        {{if .Link}}<a href="{{.Link}}" class="button" style="color: white !important;">{{.LinkLabel}}</a>{{end}}
    </div>
    <div class="footer">
        <p>{{.FooterNotes}}</p>
    </div>
</body>
</html>
`))

func renderNotice(data noticeData) (string, error) {
	var buf bytes.Buffer
	if err := noticeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// NopService stands in when SMTP is not configured
type NopService struct {
	logger *logging.Logger
}

func NewNopService(logger *logging.Logger) *NopService {
	return &NopService{logger: logger}
}

func (n *NopService) SendPasswordChangedEmail(_ context.Context, toEmail, _ string) error {
	n.logger.Debug("email disabled, skipping password changed notice", "email", toEmail)
	return nil
}

func (n *NopService) SendAccountDeletedEmail(_ context.Context, toEmail, _ string) error {
	n.logger.Debug("email disabled, skipping account deleted notice", "email", toEmail)
	return nil
}

func (n *NopService) SendAccountErasedEmail(_ context.Context, toEmail, _ string) error {
	n.logger.Debug("email disabled, skipping account erased notice", "email", toEmail)
	return nil
}
