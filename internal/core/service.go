// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core implements the admin credential lifecycle operations:
// creating accounts, listing them, and rotating passwords one at a time or
// in bulk. Each operation is a short-lived, one-shot flow; no state is held
// across invocations.
package core

import (
	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/mail"
	"github.com/recruitd/adminctl/internal/otp"
	"github.com/recruitd/adminctl/internal/secret"
)

// Service bundles the collaborators of the lifecycle operations. All
// dependencies are explicit; the core never reads ambient configuration.
type Service struct {
	Store     db.Store
	Sender    mail.Sender
	Policy    secret.Policy
	OTPLength int
}

// NewService returns a Service with the default generation policy applied
// where the caller left zero values.
func NewService(store db.Store, sender mail.Sender) *Service {
	return &Service{
		Store:     store,
		Sender:    sender,
		Policy:    secret.DefaultPolicy(),
		OTPLength: secret.DefaultLength,
	}
}

func (s *Service) deliverer() otp.Deliverer {
	return otp.Deliverer{Sender: s.Sender}
}

// logAction writes an audit entry, ignoring audit failures: provisioning
// must not fail because the audit insert did.
func (s *Service) logAction(action, details string) {
	_ = s.Store.LogAction(action, details)
}
