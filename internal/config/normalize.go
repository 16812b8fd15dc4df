package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment overrides for the externally provisioned settings. These match
// the variable names the hosting platform injects, and they always win over
// the YAML values.
const (
	EnvBucketName     = "BUCKET_NAME"
	EnvFileName       = "FILE_NAME"
	EnvSenderEmail    = "SENDER_EMAIL"
	EnvRecipientEmail = "RECIPIENT_EMAIL"
)

const (
	defaultChunkRows       = 1000
	defaultMaxChunkChars   = 48000
	defaultMaxOutputTokens = 2048
	defaultTemperature     = 0.5
	defaultTopP            = 0.9
	defaultModelAttempts   = 3
	defaultRetryBaseMS     = 500
	defaultRequestTimeoutS = 60
	defaultMailSubject     = "Your report summary"
)

func (c *AppConfig) normalize() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	c.Env = strings.TrimSpace(c.Env)
	if c.Env == "" {
		c.Env = defaultEnv
	}

	if v := strings.TrimSpace(os.Getenv(EnvBucketName)); v != "" {
		c.Storage.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFileName)); v != "" {
		c.Storage.Key = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSenderEmail)); v != "" {
		c.Mail.From = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRecipientEmail)); v != "" {
		c.Mail.To = v
	}

	c.Mail.Backend = strings.ToLower(strings.TrimSpace(c.Mail.Backend))
	if c.Mail.Backend == "" {
		c.Mail.Backend = "ses"
	}
	if strings.TrimSpace(c.Mail.Subject) == "" {
		c.Mail.Subject = defaultMailSubject
	}
	// Mail credentials default to the storage credentials so a single
	// key pair covers both managed services.
	if c.Mail.Region == "" {
		c.Mail.Region = c.Storage.Region
	}
	if c.Mail.AccessKeyID == "" && c.Mail.SecretAccessKey == "" {
		c.Mail.AccessKeyID = c.Storage.AccessKeyID
		c.Mail.SecretAccessKey = c.Storage.SecretAccessKey
	}

	p := &c.Pipeline
	if p.ChunkRows <= 0 {
		p.ChunkRows = defaultChunkRows
	}
	if p.MaxChunkChars <= 0 {
		p.MaxChunkChars = defaultMaxChunkChars
	}
	if p.MaxOutputTokens <= 0 {
		p.MaxOutputTokens = defaultMaxOutputTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = defaultTemperature
	}
	if p.TopP <= 0 {
		p.TopP = defaultTopP
	}
	if p.ModelAttempts <= 0 {
		p.ModelAttempts = defaultModelAttempts
	}
	if p.ModelRetryBaseMS <= 0 {
		p.ModelRetryBaseMS = defaultRetryBaseMS
	}
	if p.RequestTimeoutS <= 0 {
		p.RequestTimeoutS = defaultRequestTimeoutS
	}
}

func (c *AppConfig) validate() error {
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required (or set %s)", EnvBucketName)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required (or set %s)", EnvFileName)
	}
	if c.Mail.From == "" {
		return fmt.Errorf("mail.from is required (or set %s)", EnvSenderEmail)
	}
	if c.Mail.To == "" {
		return fmt.Errorf("mail.to is required (or set %s)", EnvRecipientEmail)
	}
	if c.Mail.Backend != "ses" && c.Mail.Backend != "smtp" {
		return fmt.Errorf("mail.backend must be \"ses\" or \"smtp\", got %q", c.Mail.Backend)
	}
	return nil
}
