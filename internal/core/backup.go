// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/recruitd/adminctl/internal/model"
)

// Backup exports admin accounts and the audit log as zstd-compressed JSON.
// Only hashes are exported; the store never holds a plaintext secret.
func (s *Service) Backup(ctx context.Context, w io.Writer) error {
	data, err := s.Store.ExportForBackup()
	if err != nil {
		return fmt.Errorf("export backup: %w", err)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush backup: %w", err)
	}
	s.logAction("BACKUP", fmt.Sprintf("admins: %d", len(data.Admins)))
	return nil
}

// Restore reads a zstd-compressed JSON backup and imports it. Accounts
// whose email already exists are skipped, so restore never overwrites a
// live credential.
func (s *Service) Restore(ctx context.Context, r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if err := s.Store.ImportFromBackup(&data); err != nil {
		return nil, fmt.Errorf("import backup: %w", err)
	}
	s.logAction("RESTORE", fmt.Sprintf("admins: %d", len(data.Admins)))
	return &data, nil
}
