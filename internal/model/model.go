// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// AdminAccount represents a privileged account in the recruitment platform.
// This is the core entity whose credentials we manage. The raw password is
// never part of this struct; only the bcrypt hash is persisted.
type AdminAccount struct {
	ID                int
	Email             string
	PasswordHash      string
	Role              string
	IsActive          bool
	CreatedAt         time.Time
	PasswordRotatedAt time.Time
}

// Roles an account may hold. The original platform distinguishes full
// administrators from HR staff; both are provisioned through this tool.
const (
	RoleAdmin = "admin"
	RoleHR    = "hr"
)

// AuditLogEntry records one provisioning action. Details never contain
// plaintext secrets.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Action    string
	Details   string
}
