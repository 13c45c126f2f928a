// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/recruitd/adminctl/internal/auth"
	"github.com/recruitd/adminctl/internal/model"
	"github.com/recruitd/adminctl/internal/otp"
	"github.com/recruitd/adminctl/internal/secret"
)

// defaultBulkWorkers bounds the fan-out of bulk rotation. Per-record store
// writes are independently atomic, so workers need no shared locking.
const defaultBulkWorkers = 4

// BulkParams describes one rotate_all_admins invocation. OTPDir and
// EmailOTP are mutually exclusive; with OTPDir each account's secret is
// written to <dir>/<sanitized-email>.txt, with EmailOTP it is mailed to the
// account's own address.
type BulkParams struct {
	OTPDir   string
	EmailOTP bool
	Workers  int
}

// Outcome is the per-account result of a bulk rotation. Err marks a failed
// rotation (credential unchanged); DeliveryErr marks a rotated credential
// whose OTP could not be delivered.
type Outcome struct {
	Email       string
	Err         error
	DeliveryErr error
}

// Failed reports whether this account's rotation counts as a failure for
// the command exit code. Delivery failure counts: the operator must know.
func (o Outcome) Failed() bool { return o.Err != nil || o.DeliveryErr != nil }

// RotateAllAdmins rotates every active admin account independently. One
// account's failure is recorded and never halts the remaining accounts
// (fail-open batch). The returned outcomes are sorted by email for stable
// reporting; there is one outcome per active account.
func (s *Service) RotateAllAdmins(ctx context.Context, p BulkParams) ([]Outcome, error) {
	if p.OTPDir != "" && p.EmailOTP {
		return nil, otp.ErrAmbiguousDestination
	}
	if p.OTPDir == "" && !p.EmailOTP {
		return nil, otp.ErrNoDestination
	}

	accounts, err := s.Store.ListActiveAdmins()
	if err != nil {
		return nil, fmt.Errorf("list active admins: %w", err)
	}
	if len(accounts) == 0 {
		return nil, nil
	}

	workers := p.Workers
	if workers <= 0 {
		workers = defaultBulkWorkers
	}
	if workers > len(accounts) {
		workers = len(accounts)
	}

	jobs := make(chan model.AdminAccount)
	results := make(chan Outcome, len(accounts))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for acc := range jobs {
				results <- s.rotateOne(acc, p)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, acc := range accounts {
			select {
			case jobs <- acc:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, 0, len(accounts))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Email < outcomes[j].Email })
	return outcomes, nil
}

// rotateOne performs the rotation for a single account within a bulk run.
// Each step failure is captured in the outcome, not propagated.
func (s *Service) rotateOne(acc model.AdminAccount, p BulkParams) Outcome {
	out := Outcome{Email: acc.Email}

	sec, err := secret.Generate(s.OTPLength, s.Policy)
	if err != nil {
		out.Err = err
		return out
	}
	hash, err := auth.HashPassword(sec.Reveal())
	if err != nil {
		out.Err = fmt.Errorf("hash password: %w", err)
		return out
	}
	if err := s.Store.UpdatePasswordHash(acc.Email, hash); err != nil {
		out.Err = err
		s.logAction("ROTATE_PASSWORD_FAIL", fmt.Sprintf("email: %s, error: %v", acc.Email, err))
		return out
	}
	s.logAction("ROTATE_PASSWORD", fmt.Sprintf("email: %s", acc.Email))

	var dest otp.Destination
	if p.OTPDir != "" {
		dest = otp.FileDestination(filepath.Join(p.OTPDir, otp.SanitizeEmailFilename(acc.Email)))
	} else {
		dest = otp.EmailDestination(acc.Email)
	}

	if _, err := s.deliverer().Deliver(sec, dest, acc.Email); err != nil {
		out.DeliveryErr = err
		s.logAction("OTP_DELIVERY_FAIL", fmt.Sprintf("email: %s, destination: %s", acc.Email, dest))
		return out
	}
	s.logAction("OTP_DELIVERED", fmt.Sprintf("email: %s, destination: %s", acc.Email, dest))
	return out
}
