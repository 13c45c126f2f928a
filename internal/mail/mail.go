// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mail provides the email-sending collaborator used for OTP
// delivery. The core only depends on the Sender interface; the SMTP
// implementation lives here so transport details stay out of the lifecycle
// operations.
package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Sender sends a single plain-text message.
type Sender interface {
	Send(to, subject, body string) error
}

// Config holds SMTP transport settings, typically loaded from adminctl.yaml
// or ADMINCTL_SMTP_* environment variables.
type Config struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from" yaml:"from"`
	UseTLS   bool   `mapstructure:"use_tls" yaml:"use_tls"`
}

// SMTPSender is the production Sender backed by go-mail.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender validates the config and returns a ready Sender.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host must be configured")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address must be configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send delivers one message. Each call dials a fresh connection; the CLI is
// one-shot so there is nothing to pool.
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	if s.cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
