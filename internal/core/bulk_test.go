package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/recruitd/adminctl/internal/auth"
	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/otp"
)

// failingStore wraps a real store and fails password updates for one email.
type failingStore struct {
	db.Store
	failEmail string
}

var errInjected = errors.New("injected store failure")

func (f *failingStore) UpdatePasswordHash(email, hash string) error {
	if email == f.failEmail {
		return errInjected
	}
	return f.Store.UpdatePasswordHash(email, hash)
}

func seedAdmins(t *testing.T, s *Service, n int) []string {
	t.Helper()
	emails := make([]string, 0, n)
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("admin%02d@x.com", i)
		if _, err := s.CreateAdmin(context.Background(), CreateParams{Email: email, Password: "seed-password"}); err != nil {
			t.Fatal(err)
		}
		emails = append(emails, email)
	}
	return emails
}

func TestRotateAllAdmins_DestinationValidation(t *testing.T) {
	s := newTestService(t)
	seedAdmins(t, s, 1)

	if _, err := s.RotateAllAdmins(context.Background(), BulkParams{}); !errors.Is(err, otp.ErrNoDestination) {
		t.Errorf("no destination: expected ErrNoDestination, got %v", err)
	}
	if _, err := s.RotateAllAdmins(context.Background(), BulkParams{OTPDir: t.TempDir(), EmailOTP: true}); !errors.Is(err, otp.ErrAmbiguousDestination) {
		t.Errorf("both destinations: expected ErrAmbiguousDestination, got %v", err)
	}
}

func TestRotateAllAdmins_EmptySet(t *testing.T) {
	s := newTestService(t)
	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{OTPDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if outcomes != nil {
		t.Fatalf("expected no outcomes for empty set, got %d", len(outcomes))
	}
}

func TestRotateAllAdmins_OTPDir(t *testing.T) {
	s := newTestService(t)
	emails := seedAdmins(t, s, 5)
	dir := t.TempDir()

	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{OTPDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != len(emails) {
		t.Fatalf("expected %d outcomes, got %d", len(emails), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Failed() {
			t.Fatalf("outcome %s failed: err=%v deliveryErr=%v", o.Email, o.Err, o.DeliveryErr)
		}
		if o.Email != emails[i] {
			t.Errorf("outcome %d: expected %s, got %s", i, emails[i], o.Email)
		}
	}

	// Every account gets its own artifact, and each verifies against its hash.
	for _, email := range emails {
		path := filepath.Join(dir, otp.SanitizeEmailFilename(email))
		plain, err := otp.ReadSecretFile(path)
		if err != nil {
			t.Fatalf("missing artifact for %s: %v", email, err)
		}
		acc, err := s.Store.FindByEmail(email)
		if err != nil {
			t.Fatal(err)
		}
		if !auth.CheckPassword(acc.PasswordHash, plain) {
			t.Errorf("artifact secret for %s does not verify", email)
		}
		if auth.CheckPassword(acc.PasswordHash, "seed-password") {
			t.Errorf("seed password still verifies for %s", email)
		}
	}
}

func TestRotateAllAdmins_SkipsInactive(t *testing.T) {
	s := newTestService(t)
	emails := seedAdmins(t, s, 3)
	if err := s.Store.SetActive(emails[1], false); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{OTPDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if _, err := os.Stat(filepath.Join(dir, otp.SanitizeEmailFilename(emails[1]))); !os.IsNotExist(err) {
		t.Error("inactive account received an artifact")
	}
}

func TestRotateAllAdmins_PartialFailure(t *testing.T) {
	s := newTestService(t)
	emails := seedAdmins(t, s, 6)
	victim := emails[2]
	s.Store = &failingStore{Store: s.Store, failEmail: victim}
	dir := t.TempDir()

	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{OTPDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != len(emails) {
		t.Fatalf("expected %d outcomes, got %d", len(emails), len(outcomes))
	}

	failed := 0
	for _, o := range outcomes {
		if o.Email == victim {
			if !errors.Is(o.Err, errInjected) {
				t.Errorf("victim outcome: expected injected error, got %v", o.Err)
			}
			failed++
			continue
		}
		if o.Failed() {
			t.Errorf("unrelated account %s failed: %v", o.Email, o.Err)
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly one failed outcome, got %d", failed)
	}

	// The victim keeps its old credential; the rest were rotated.
	acc, err := s.Store.FindByEmail(victim)
	if err != nil {
		t.Fatal(err)
	}
	if !auth.CheckPassword(acc.PasswordHash, "seed-password") {
		t.Error("victim credential changed despite store failure")
	}
	if _, err := os.Stat(filepath.Join(dir, otp.SanitizeEmailFilename(victim))); !os.IsNotExist(err) {
		t.Error("victim received an artifact despite failed rotation")
	}
}

func TestRotateAllAdmins_EmailOTP(t *testing.T) {
	s := newTestService(t)
	sender := newRecordingSender()
	s.Sender = sender
	emails := seedAdmins(t, s, 3)

	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{EmailOTP: true, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != len(emails) {
		t.Fatalf("expected %d outcomes, got %d", len(emails), len(outcomes))
	}
	for _, o := range outcomes {
		if o.Failed() {
			t.Fatalf("outcome %s failed: err=%v deliveryErr=%v", o.Email, o.Err, o.DeliveryErr)
		}
	}
	if len(sender.sent) != len(emails) {
		t.Fatalf("expected %d mails, got %d", len(emails), len(sender.sent))
	}
}

func TestRotateAllAdmins_DeliveryFailureCountsAsFailed(t *testing.T) {
	s := newTestService(t)
	sender := newRecordingSender()
	sender.fail = true
	s.Sender = sender
	seedAdmins(t, s, 2)

	outcomes, err := s.RotateAllAdmins(context.Background(), BulkParams{EmailOTP: true, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("rotation error for %s: %v", o.Email, o.Err)
		}
		if o.DeliveryErr == nil {
			t.Errorf("expected delivery error for %s", o.Email)
		}
		if !o.Failed() {
			t.Errorf("delivery failure for %s must count as failed", o.Email)
		}
		// Rotated anyway: seed password no longer verifies.
		acc, ferr := s.Store.FindByEmail(o.Email)
		if ferr != nil {
			t.Fatal(ferr)
		}
		if auth.CheckPassword(acc.PasswordHash, "seed-password") {
			t.Errorf("credential for %s not rotated", o.Email)
		}
	}
}
