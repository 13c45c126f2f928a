// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitd/adminctl/internal/i18n"
)

// backupCmd represents the 'backup' command. The archive holds account
// records (hashes only) and the audit log as zstd-compressed JSON.
var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write a compressed backup of accounts and audit log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("backup.error", err))
		}
		defer f.Close()

		svc := newService()
		if err := svc.Backup(cmd.Context(), f); err != nil {
			return fmt.Errorf("%s", i18n.T("backup.error", err))
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%s", i18n.T("backup.error", err))
		}
		fmt.Println(i18n.T("backup.written", path))
		return nil
	},
}

// restoreCmd represents the 'restore' command. Accounts that already exist
// are skipped; restore never overwrites a live credential.
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Import accounts and audit log from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%s", i18n.T("restore.error", err))
		}
		defer f.Close()

		svc := newService()
		data, err := svc.Restore(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("restore.error", err))
		}
		fmt.Println(i18n.T("restore.done", len(data.Admins), len(data.AuditLogEntries)))
		return nil
	},
}
