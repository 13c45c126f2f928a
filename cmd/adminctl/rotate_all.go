// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recruitd/adminctl/internal/core"
	"github.com/recruitd/adminctl/internal/i18n"
)

var rotateAllFlags struct {
	otpDir   string
	emailOTP bool
	workers  int
}

// rotateAllCmd represents the 'rotate_all_admins' command. Every active
// account is rotated independently; one account's failure never stops the
// rest. The command prints a line per account and exits non-zero when any
// rotation or delivery failed.
var rotateAllCmd = &cobra.Command{
	Use:   "rotate_all_admins",
	Short: "Rotate the passwords of all active admin accounts",
	Long: `Generates a fresh password for every active admin account. Each secret
is written to <otp-dir>/<sanitized-email>.txt or mailed to the account's
own address; exactly one of --otp-dir and --email-otp must be given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		outcomes, err := svc.RotateAllAdmins(cmd.Context(), core.BulkParams{
			OTPDir:   rotateAllFlags.otpDir,
			EmailOTP: rotateAllFlags.emailOTP,
			Workers:  rotateAllFlags.workers,
		})
		if err != nil {
			return err
		}
		if len(outcomes) == 0 {
			fmt.Println(i18n.T("rotate_all.none"))
			return nil
		}

		fmt.Println(i18n.T("rotate_all.start", len(outcomes)))
		failed := 0
		for _, o := range outcomes {
			switch {
			case o.Err != nil:
				fmt.Println(i18n.T("rotate_all.fail", o.Email, o.Err))
				failed++
			case o.DeliveryErr != nil:
				fmt.Println(i18n.T("rotate_all.delivery_warn", o.Email, o.DeliveryErr))
				failed++
			default:
				fmt.Println(i18n.T("rotate_all.success", o.Email))
			}
		}
		fmt.Println(i18n.T("rotate_all.summary", len(outcomes)-failed, failed))

		if failed > 0 {
			return fmt.Errorf("%d of %d rotations failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	f := rotateAllCmd.Flags()
	f.StringVar(&rotateAllFlags.otpDir, "otp-dir", "", "Directory receiving one OTP file per account (mode 0600)")
	f.BoolVar(&rotateAllFlags.emailOTP, "email-otp", false, "Mail each account its new password")
	f.IntVar(&rotateAllFlags.workers, "workers", 0, "Number of concurrent rotations (0 = default)")
}
