// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for adminctl using the
// Cobra library. It defines the root command, the lifecycle subcommands
// (create_admin, rotate_admin_password, ...), flags, and the entry point.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recruitd/adminctl/internal/config"
	"github.com/recruitd/adminctl/internal/core"
	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/i18n"
	"github.com/recruitd/adminctl/internal/logging"
	"github.com/recruitd/adminctl/internal/mail"
)

var version = "dev" // this will be set by the linker

var (
	cfgFile string
	cfg     config.Config
)

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command. This function
// is used for the main command as well as fresh instances for isolated
// testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl manages administrator accounts for the Recruitd platform.",
		Long: `Adminctl provisions and maintains administrator credentials.
It creates admin accounts, lists them, and rotates passwords one at a
time or for every active account at once. Generated one-time passwords
are handed to the operator through a restricted file or by email; the
database only ever holds bcrypt hashes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(cmd.Root(), cfgFile)
			if err != nil {
				return err
			}
			i18n.Init(cfg.Language)
			logging.SetDebug(cfg.Debug)
			db.SetDebug(cfg.Debug)
			if err := db.InitDB(cfg.Database.Type, cfg.Database.DSN); err != nil {
				return fmt.Errorf("%s", i18n.T("config.error_init_db", err))
			}
			return nil
		},
	}

	cmd.AddCommand(createAdminCmd)
	cmd.AddCommand(listAdminsCmd)
	cmd.AddCommand(rotateCmd)
	cmd.AddCommand(rotateAllCmd)
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(restoreCmd)
	cmd.AddCommand(debugCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the adminctl version",
		// No store needed just to print the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("adminctl %s\n", version)
		},
	})

	cmd.Version = version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is adminctl.yaml in the user config dir or current dir)")
	cmd.PersistentFlags().String("db-type", "sqlite", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("db-dsn", "file:adminctl.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("lang", "en", `Output language ("en", "de")`)
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return cmd
}

// newService builds the lifecycle service from the resolved configuration.
// The SMTP sender is only wired when a host is configured; email delivery
// without one fails at delivery time, not at startup.
func newService() *core.Service {
	var sender mail.Sender
	if cfg.SMTP.Host != "" {
		if s, err := mail.NewSMTPSender(cfg.SMTP); err == nil {
			sender = s
		} else {
			logging.Warnf("smtp config ignored: %v", err)
		}
	}
	return core.NewService(db.DefaultStore(), sender)
}
