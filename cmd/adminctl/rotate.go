// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recruitd/adminctl/internal/core"
	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/i18n"
	"github.com/recruitd/adminctl/internal/otp"
)

var rotateFlags struct {
	email    string
	password string
	generate bool
	otpFile  string
	emailOTP bool
}

// rotateCmd represents the 'rotate_admin_password' command. The previous
// credential is invalidated even when OTP delivery later fails; the
// command reports the delivery failure and exits non-zero so the operator
// retrieves the secret another way.
var rotateCmd = &cobra.Command{
	Use:   "rotate_admin_password",
	Short: "Rotate the password of one admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &rotateFlags

		dest, err := otp.ParseDestination(f.otpFile, f.emailOTP, f.email)
		if err != nil {
			return err
		}

		password, generate, err := resolvePasswordFlags(f.password, f.generate)
		if err != nil {
			return err
		}

		svc := newService()
		res, err := svc.RotateAdminPassword(cmd.Context(), core.RotateParams{
			Email:    f.email,
			Password: password,
			Generate: generate,
			Dest:     dest,
		})
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return errors.New(i18n.T("rotate.not_found", f.email))
			}
			return fmt.Errorf("%s", i18n.T("rotate.error", err))
		}

		fmt.Println(i18n.T("rotate.rotated", res.Account.Email))
		reportDelivery(res, dest)
		if res.DeliveryErr != nil {
			// The hash is committed; surface the delivery failure in the
			// exit code without undoing the rotation.
			return fmt.Errorf("otp delivery failed: %w", res.DeliveryErr)
		}
		return nil
	},
}

func init() {
	f := rotateCmd.Flags()
	f.StringVar(&rotateFlags.email, "email", "", "Email address of the account to rotate")
	f.StringVar(&rotateFlags.password, "password", "", "New password (omit to prompt or generate)")
	f.BoolVar(&rotateFlags.generate, "generate-password", false, "Generate a policy-compliant one-time password")
	f.StringVar(&rotateFlags.otpFile, "otp-file", "", "Write the generated password to this file (mode 0600)")
	f.BoolVar(&rotateFlags.emailOTP, "email-otp", false, "Send the generated password to the account's email address")
	_ = rotateCmd.MarkFlagRequired("email")
}
