package mail

import (
	"context"
	"fmt"
	"net/smtp"

	appcfg "github.com/sheetbrief/core/internal/config"
)

// Config holds mail delivery settings.
type Config struct {
	Backend         string // "ses" | "smtp"
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // override for the SES API endpoint
	Host            string
	Port            int
	User            string
	Pass            string
	From            string
}

// BuildConfig maps the application's mail options onto a Config so every
// caller constructs the mailer consistently.
func BuildConfig(opts appcfg.MailOptions) Config {
	return Config{
		Backend:         opts.Backend,
		Region:          opts.Region,
		AccessKeyID:     opts.AccessKeyID,
		SecretAccessKey: opts.SecretAccessKey,
		Endpoint:        opts.Endpoint,
		Host:            opts.SMTP.Host,
		Port:            opts.SMTP.Port,
		User:            opts.SMTP.User,
		Pass:            opts.SMTP.Pass,
		From:            opts.From,
	}
}

// Attachment is a single binary attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a single email to send: text and HTML alternatives plus an
// optional attachment, one recipient.
type Message struct {
	To         string
	Subject    string
	Text       string
	HTML       string
	Attachment *Attachment
}

// SendError is a structured rejection from the mail API.
type SendError struct {
	StatusCode int
	Message    string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mail send rejected (%d): %s", e.StatusCode, e.Message)
}

// Sender sends emails via SES or SMTP.
type Sender struct {
	cfg Config
	ses *sesClient
}

func New(cfg Config) (*Sender, error) {
	s := &Sender{cfg: cfg}
	if cfg.Backend == "ses" {
		ses, err := newSESClient(cfg)
		if err != nil {
			return nil, err
		}
		s.ses = ses
	}
	return s, nil
}

// Send dispatches the message as one raw multipart email and returns the
// provider message ID (empty for SMTP).
func (s *Sender) Send(ctx context.Context, msg Message) (string, error) {
	raw := BuildRawMessage(s.cfg.From, msg)
	if s.ses != nil {
		return s.ses.SendRaw(ctx, s.cfg.From, msg.To, raw)
	}
	return "", s.sendSMTP(msg.To, raw)
}

func (s *Sender) sendSMTP(to string, raw []byte) error {
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, raw)
}
