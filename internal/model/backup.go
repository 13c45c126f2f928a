// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// BackupData is a container for all data exported by the backup command.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	Admins          []AdminAccount  `json:"admins"`
	AuditLogEntries []AuditLogEntry `json:"audit_log_entries"`
}
