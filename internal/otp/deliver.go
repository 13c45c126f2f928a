// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package otp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recruitd/adminctl/internal/i18n"
	"github.com/recruitd/adminctl/internal/mail"
	"github.com/recruitd/adminctl/internal/secret"
)

// Receipt records where a secret was delivered. It never contains the
// secret itself, so it is safe to log.
type Receipt struct {
	Destination Destination
	DeliveredAt time.Time
}

// Deliverer writes secrets to their destination. The mail sender may be nil
// when only file delivery is used.
type Deliverer struct {
	Sender mail.Sender
}

// Deliver hands the secret to the selected destination and returns a
// receipt. A "none" destination is an error here; the caller decides
// whether terminal output is an acceptable fallback before calling.
func (d Deliverer) Deliver(sec secret.Secret, dest Destination, accountEmail string) (Receipt, error) {
	switch {
	case dest.None():
		return Receipt{}, ErrNoDestination
	default:
		if path, ok := dest.IsFile(); ok {
			if err := WriteSecretFile(path, sec, accountEmail); err != nil {
				return Receipt{}, err
			}
			return Receipt{Destination: dest, DeliveredAt: time.Now().UTC()}, nil
		}
		addr, _ := dest.IsEmail()
		if d.Sender == nil {
			return Receipt{}, fmt.Errorf("email delivery requested but no mail sender is configured")
		}
		subject := i18n.T("mail.otp_subject")
		body := i18n.T("mail.otp_body", accountEmail, sec.Reveal())
		if err := d.Sender.Send(addr, subject, body); err != nil {
			return Receipt{}, fmt.Errorf("otp email delivery failed: %w", err)
		}
		return Receipt{Destination: dest, DeliveredAt: time.Now().UTC()}, nil
	}
}

// WriteSecretFile writes the secret to path with owner-only permissions.
// The restrictive mode is set at creation time via OpenFile, so the file is
// never world-readable, even transiently. Parent directories are created as
// needed.
func WriteSecretFile(path string, sec secret.Secret, accountEmail string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create otp directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open otp file %s: %w", path, err)
	}

	header := fmt.Sprintf("# account %s rotated %s\n", accountEmail, time.Now().UTC().Format(time.RFC3339))
	if _, err := f.WriteString(header + sec.Reveal() + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write otp file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close otp file %s: %w", path, err)
	}
	return nil
}

// ReadSecretFile reads the secret back out of an OTP artifact, skipping
// header comment lines. Useful for operators scripting first-login flows
// and for verifying artifacts in tests.
func ReadSecretFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no secret found in %s", path)
}
