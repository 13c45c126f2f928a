// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/recruitd/adminctl/internal/model"
	"github.com/uptrace/bun"
)

// AdminModel maps the `admins` table for Bun queries.
type AdminModel struct {
	bun.BaseModel `bun:"table:admins"`
	ID            int       `bun:"id,pk,autoincrement"`
	Email         string    `bun:"email"`
	PasswordHash  string    `bun:"password_hash"`
	Role          string    `bun:"role"`
	IsActive      bool      `bun:"is_active"`
	CreatedAt     time.Time `bun:"created_at"`
	RotatedAt     time.Time `bun:"password_rotated_at"`
}

// AuditLogModel maps the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

// BunStore is the bun-backed implementation of the Store interface. The
// dialect is chosen at construction time, so one implementation serves
// SQLite, PostgreSQL and MySQL.
type BunStore struct {
	bun *bun.DB
}

// NormalizeEmail lowercases and trims an email so that lookups and the
// unique constraint behave case-insensitively across backends.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func adminModelToModel(a AdminModel) model.AdminAccount {
	return model.AdminAccount{
		ID:                a.ID,
		Email:             a.Email,
		PasswordHash:      a.PasswordHash,
		Role:              a.Role,
		IsActive:          a.IsActive,
		CreatedAt:         a.CreatedAt,
		PasswordRotatedAt: a.RotatedAt,
	}
}

// FindByEmail returns the admin account for the given email, or ErrNotFound.
func (s *BunStore) FindByEmail(email string) (*model.AdminAccount, error) {
	ctx := context.Background()

	var am AdminModel
	err := s.bun.NewSelect().Model(&am).Where("email = ?", NormalizeEmail(email)).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m := adminModelToModel(am)
	return &m, nil
}

// CreateAdmin inserts a new admin account. The password hash must already be
// computed by the caller; this layer never sees a plaintext secret.
// Returns ErrDuplicate if the email is already taken.
func (s *BunStore) CreateAdmin(email, passwordHash, role string) (*model.AdminAccount, error) {
	ctx := context.Background()

	now := time.Now().UTC()
	am := AdminModel{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		RotatedAt:    now,
	}
	if _, err := s.bun.NewInsert().Model(&am).Exec(ctx); err != nil {
		return nil, MapDBError(err)
	}
	m := adminModelToModel(am)
	return &m, nil
}

// UpdatePasswordHash replaces the stored hash for an existing account and
// advances password_rotated_at. Returns ErrNotFound when no such account
// exists. The write is a single UPDATE, so a failed call leaves the prior
// hash intact.
func (s *BunStore) UpdatePasswordHash(email, newHash string) error {
	ctx := context.Background()

	res, err := s.bun.NewUpdate().Model((*AdminModel)(nil)).
		Set("password_hash = ?", newHash).
		Set("password_rotated_at = ?", time.Now().UTC()).
		Where("email = ?", NormalizeEmail(email)).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	return requireRowAffected(res)
}

// UpdateAdmin updates role and, when non-empty, the password hash of an
// existing account. Used by the force-update path of create_admin.
func (s *BunStore) UpdateAdmin(email, passwordHash, role string) error {
	ctx := context.Background()

	q := s.bun.NewUpdate().Model((*AdminModel)(nil)).
		Set("role = ?", role).
		Where("email = ?", NormalizeEmail(email))
	if passwordHash != "" {
		q = q.Set("password_hash = ?", passwordHash).
			Set("password_rotated_at = ?", time.Now().UTC())
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	return requireRowAffected(res)
}

// ListAdmins returns all admin accounts ordered by creation time. The id is
// a tiebreaker so listing stays stable when two accounts share a timestamp.
func (s *BunStore) ListAdmins() ([]model.AdminAccount, error) {
	return s.listAdmins(false)
}

// ListActiveAdmins returns only active accounts; bulk rotation iterates these.
func (s *BunStore) ListActiveAdmins() ([]model.AdminAccount, error) {
	return s.listAdmins(true)
}

func (s *BunStore) listAdmins(activeOnly bool) ([]model.AdminAccount, error) {
	ctx := context.Background()

	var ams []AdminModel
	q := s.bun.NewSelect().Model(&ams).Order("created_at ASC", "id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AdminAccount, 0, len(ams))
	for _, am := range ams {
		out = append(out, adminModelToModel(am))
	}
	return out, nil
}

// SetActive flips the active flag; inactive accounts are skipped by bulk rotation.
func (s *BunStore) SetActive(email string, active bool) error {
	ctx := context.Background()

	res, err := s.bun.NewUpdate().Model((*AdminModel)(nil)).
		Set("is_active = ?", active).
		Where("email = ?", NormalizeEmail(email)).
		Exec(ctx)
	if err != nil {
		return MapDBError(err)
	}
	return requireRowAffected(res)
}

// LogAction appends a provisioning action to the audit log. Details must
// never contain plaintext secrets.
func (s *BunStore) LogAction(action, details string) error {
	ctx := context.Background()

	entry := AuditLogModel{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    action,
		Details:   details,
	}
	_, err := s.bun.NewInsert().Model(&entry).Exec(ctx)
	return err
}

// ListAuditLog returns all audit entries, oldest first.
func (s *BunStore) ListAuditLog() ([]model.AuditLogEntry, error) {
	ctx := context.Background()

	var entries []AuditLogModel
	if err := s.bun.NewSelect().Model(&entries).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.AuditLogEntry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Action:    e.Action,
			Details:   e.Details,
		})
	}
	return out, nil
}

// ExportForBackup collects all admin accounts and audit entries. Password
// hashes are included (they are hashes, not secrets); plaintext never exists
// in the store.
func (s *BunStore) ExportForBackup() (*model.BackupData, error) {
	admins, err := s.ListAdmins()
	if err != nil {
		return nil, fmt.Errorf("export admins: %w", err)
	}
	entries, err := s.ListAuditLog()
	if err != nil {
		return nil, fmt.Errorf("export audit log: %w", err)
	}
	return &model.BackupData{
		SchemaVersion:   1,
		Admins:          admins,
		AuditLogEntries: entries,
	}, nil
}

// ImportFromBackup inserts backup records, skipping admins whose email
// already exists. Used by the restore command.
func (s *BunStore) ImportFromBackup(data *model.BackupData) error {
	ctx := context.Background()

	for _, a := range data.Admins {
		am := AdminModel{
			Email:        NormalizeEmail(a.Email),
			PasswordHash: a.PasswordHash,
			Role:         a.Role,
			IsActive:     a.IsActive,
			CreatedAt:    a.CreatedAt,
			RotatedAt:    a.PasswordRotatedAt,
		}
		if _, err := s.bun.NewInsert().Model(&am).Exec(ctx); err != nil {
			if MapDBError(err) == ErrDuplicate {
				continue
			}
			return fmt.Errorf("import admin %s: %w", am.Email, err)
		}
	}
	for _, e := range data.AuditLogEntries {
		entry := AuditLogModel{
			Timestamp: e.Timestamp,
			Action:    e.Action,
			Details:   e.Details,
		}
		if _, err := s.bun.NewInsert().Model(&entry).Exec(ctx); err != nil {
			return fmt.Errorf("import audit entry: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *BunStore) Close() error {
	return s.bun.Close()
}

// requireRowAffected converts a zero-row UPDATE result into ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
