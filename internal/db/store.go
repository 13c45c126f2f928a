// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/recruitd/adminctl/internal/model"

// Store defines the interface for all database operations in adminctl.
// This allows for multiple database backends to be implemented.
//
// Every write is atomic per record; the store does not offer multi-record
// transactions. Bulk rotation is a sequence of independent per-record
// updates with its own partial-failure semantics in the core package.
type Store interface {
	// Admin account methods
	FindByEmail(email string) (*model.AdminAccount, error)
	CreateAdmin(email, passwordHash, role string) (*model.AdminAccount, error)
	UpdatePasswordHash(email, newHash string) error
	ListAdmins() ([]model.AdminAccount, error)
	ListActiveAdmins() ([]model.AdminAccount, error)
	SetActive(email string, active bool) error
	UpdateAdmin(email, passwordHash, role string) error

	// Audit log methods
	LogAction(action string, details string) error
	ListAuditLog() ([]model.AuditLogEntry, error)

	// Backup methods
	ExportForBackup() (*model.BackupData, error)
	ImportFromBackup(data *model.BackupData) error

	// Close releases the underlying database handle.
	Close() error
}
