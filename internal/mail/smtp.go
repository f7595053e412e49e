package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"devjobs/internal/config"
)

type SMTPSender struct {
	lg  zerolog.Logger
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig, lg zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		lg:  lg.With().Str("component", "smtp_sender").Logger(),
		cfg: cfg,
	}
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, toEmail, displayName, resetURL string) error {
	subject := "Reestablece tu password en devJobs"
	text := fmt.Sprintf(
		"Hola %s,\n\nPara reestablecer tu password abre este enlace (válido por 1 hora):\n\n%s\n",
		displayName, resetURL,
	)
	htmlBody := fmt.Sprintf(
		`<p>Hola %s,</p><p>Para reestablecer tu password haz clic en el enlace (válido por 1 hora):</p><p><a href="%s">Reestablecer password</a></p>`,
		html.EscapeString(displayName), html.EscapeString(resetURL),
	)
	return s.send(ctx, toEmail, subject, text, htmlBody)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, text, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	if htmlBody != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.lg.Error().Err(err).Str("to", to).Msg("failed to send email")
		return err
	}

	s.lg.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
