// Package mailer sends transactional email through SMTP or AWS SES.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/config"
)

// ErrDisabled mail provider is "none"
var ErrDisabled = errors.New("email delivery is disabled")

// Message one HTML email
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a Message synchronously
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the implementation named by cfg.Provider
func New(ctx context.Context, cfg *config.MailConfig, logger *zap.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTP(cfg, logger)
	case "ses":
		return NewSES(ctx, cfg, logger)
	default:
		return NewNoop(logger), nil
	}
}

// ── SMTP ──

// SMTPMailer go-mail client
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSMTP builds a client with PLAIN auth when credentials are set
func NewSMTP(cfg *config.MailConfig, logger *zap.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	c, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}
	return &SMTPMailer{client: c, from: cfg.From, fromName: cfg.FromName, logger: logger}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := mm.To(msg.To...); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)
	if msg.Text != "" {
		mm.AddAlternativeString(mail.TypeTextPlain, msg.Text)
	}
	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.logger.Info("email sent", zap.String("provider", "smtp"), zap.Strings("to", msg.To))
	return nil
}

// ── SES ──

// SESMailer AWS SES client
type SESMailer struct {
	client *ses.Client
	source string
	logger *zap.Logger
}

// NewSES loads the default AWS config chain
func NewSES(ctx context.Context, cfg *config.MailConfig, logger *zap.Logger) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	source := cfg.From
	if cfg.FromName != "" {
		source = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}
	return &SESMailer{client: ses.NewFromConfig(awsCfg), source: source, logger: logger}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	body := &types.Body{
		Html: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.HTML)},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Text)}
	}
	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.source),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Subject)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	m.logger.Info("email sent",
		zap.String("provider", "ses"),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

// ── none ──

// NoopMailer rejects every send so callers report the failure
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoop(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(_ context.Context, msg Message) error {
	m.logger.Warn("email not sent, provider is none", zap.String("subject", msg.Subject))
	return ErrDisabled
}
