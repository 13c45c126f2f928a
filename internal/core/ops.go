// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/recruitd/adminctl/internal/auth"
	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/model"
	"github.com/recruitd/adminctl/internal/otp"
	"github.com/recruitd/adminctl/internal/secret"
)

// ErrNoPasswordSource is returned when neither an operator-supplied
// password nor generation was requested. The CLI resolves this by prompting
// before it reaches the core.
var ErrNoPasswordSource = errors.New("no password supplied and generation not requested")

// CreateParams describes one create_admin invocation.
type CreateParams struct {
	Email    string
	Password string // operator-supplied secret; wins over Generate
	Generate bool
	Role     string
	Force    bool // update the account if the email already exists
	Dest     otp.Destination
}

// RotateParams describes one rotate_admin_password invocation.
type RotateParams struct {
	Email    string
	Password string
	Generate bool
	Dest     otp.Destination
}

// Result is the outcome of a single-account operation. When a secret was
// generated and no destination was selected, Secret carries it so the CLI
// can print it to the terminal (the designated channel in that case).
// DeliveryErr is set when the hash was committed but OTP delivery failed:
// the rotation stands and the operator retrieves the secret manually.
type Result struct {
	Account     *model.AdminAccount
	Updated     bool // force-path: an existing account was updated
	Generated   bool
	Secret      secret.Secret
	Receipt     otp.Receipt
	DeliveryErr error
}

// resolveSecret picks the password source: operator-supplied wins, else a
// generated one. Returns the secret and whether it was generated.
func (s *Service) resolveSecret(supplied string, generate bool) (secret.Secret, bool, error) {
	if supplied != "" {
		return secret.FromString(supplied), false, nil
	}
	if !generate {
		return nil, false, ErrNoPasswordSource
	}
	sec, err := secret.Generate(s.OTPLength, s.Policy)
	if err != nil {
		return nil, false, err
	}
	return sec, true, nil
}

// CreateAdmin provisions a new admin account. With Force it updates an
// existing account instead of failing on a duplicate email. OTP delivery
// only happens for generated secrets; an operator-supplied password is
// already known out-of-band.
func (s *Service) CreateAdmin(ctx context.Context, p CreateParams) (*Result, error) {
	email := db.NormalizeEmail(p.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	role := p.Role
	if role == "" {
		role = model.RoleAdmin
	}

	sec, generated, err := s.resolveSecret(p.Password, p.Generate)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(sec.Reveal())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res := &Result{Generated: generated, Secret: sec}

	account, err := s.Store.CreateAdmin(email, hash, role)
	switch {
	case err == nil:
		res.Account = account
		s.logAction("CREATE_ADMIN", fmt.Sprintf("email: %s, role: %s", email, role))
	case errors.Is(err, db.ErrDuplicate) && p.Force:
		if err := s.Store.UpdateAdmin(email, hash, role); err != nil {
			return nil, fmt.Errorf("update existing admin: %w", err)
		}
		account, err := s.Store.FindByEmail(email)
		if err != nil {
			return nil, err
		}
		res.Account = account
		res.Updated = true
		s.logAction("UPDATE_ADMIN", fmt.Sprintf("email: %s, role: %s", email, role))
	default:
		return nil, err
	}

	// The account is committed; from here on delivery failure is fail-open.
	if generated && !p.Dest.None() {
		receipt, err := s.deliverer().Deliver(sec, p.Dest, email)
		if err != nil {
			res.DeliveryErr = err
			s.logAction("OTP_DELIVERY_FAIL", fmt.Sprintf("email: %s, destination: %s", email, p.Dest))
			return res, nil
		}
		res.Receipt = receipt
		s.logAction("OTP_DELIVERED", fmt.Sprintf("email: %s, destination: %s", email, p.Dest))
	}
	return res, nil
}

// ListAdmins returns all admin accounts, oldest first. No secrets are
// included; the account struct carries only the hash.
func (s *Service) ListAdmins(ctx context.Context) ([]model.AdminAccount, error) {
	return s.Store.ListAdmins()
}

// RotateAdminPassword replaces an existing account's credential. A fresh
// generated secret always produces a different hash, so re-running after a
// failure is safe and the previous credential is always invalidated.
// Returns db.ErrNotFound when the account does not exist.
func (s *Service) RotateAdminPassword(ctx context.Context, p RotateParams) (*Result, error) {
	email := db.NormalizeEmail(p.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	sec, generated, err := s.resolveSecret(p.Password, p.Generate)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(sec.Reveal())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.UpdatePasswordHash(email, hash); err != nil {
		return nil, err
	}
	s.logAction("ROTATE_PASSWORD", fmt.Sprintf("email: %s", email))

	res := &Result{Generated: generated, Secret: sec}
	account, err := s.Store.FindByEmail(email)
	if err == nil {
		res.Account = account
	}

	// Hash is committed; delivery failure surfaces but never rolls back.
	if generated && !p.Dest.None() {
		receipt, err := s.deliverer().Deliver(sec, p.Dest, email)
		if err != nil {
			res.DeliveryErr = err
			s.logAction("OTP_DELIVERY_FAIL", fmt.Sprintf("email: %s, destination: %s", email, p.Dest))
			return res, nil
		}
		res.Receipt = receipt
		s.logAction("OTP_DELIVERED", fmt.Sprintf("email: %s, destination: %s", email, p.Dest))
	}
	return res, nil
}
