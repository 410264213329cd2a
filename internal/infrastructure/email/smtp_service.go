package email

import (
	"context"
	"fmt"
	"net/smtp"

	"library-backend/internal/config"
	"library-backend/pkg/logger"
)

// Sender delivers article-publication notification emails.
type Sender interface {
	SendArticleNotification(ctx context.Context, data NotificationData) error
}

// NotificationData carries everything the notification template needs.
type NotificationData struct {
	To           string
	AuthorName   string
	ArticleTitle string
	EventName    string
}

// Subject builds the subject line used for the email and the log row.
func (d NotificationData) Subject() string {
	return fmt.Sprintf("Novo artigo publicado - %s", d.ArticleTitle)
}

type smtpSender struct {
	host     string
	port     string
	from     string
	password string
}

// NewSMTPSender builds a Sender backed by plain SMTP with STARTTLS auth when
// a password is configured.
func NewSMTPSender(cfg config.EmailConfig) Sender {
	return &smtpSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.From,
		password: cfg.Password,
	}
}

func (s *smtpSender) SendArticleNotification(ctx context.Context, data NotificationData) error {
	body := fmt.Sprintf(`Olá %s,

Temos o prazer de informar que um novo artigo de sua autoria foi publicado em nossa biblioteca digital:

Título: %s
Evento: %s

Você pode visualizar o artigo acessando nossa plataforma.

Atenciosamente,
Equipe da Biblioteca Digital`,
		data.AuthorName, data.ArticleTitle, data.EventName)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, data.To, data.Subject(), body))

	var auth smtp.Auth
	if s.password != "" {
		auth = smtp.PlainAuth("", s.from, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{data.To}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.To,
			"smtp_addr": addr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
