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
	"github.com/recruitd/adminctl/internal/model"
	"github.com/recruitd/adminctl/internal/otp"
)

var createAdminFlags struct {
	email    string
	password string
	generate bool
	otpFile  string
	emailOTP bool
	role     string
	force    bool
}

// createAdminCmd represents the 'create_admin' command. It provisions one
// admin account, optionally generating a one-time password and handing it
// to the operator through a restricted file, by email, or on stdout.
var createAdminCmd = &cobra.Command{
	Use:   "create_admin",
	Short: "Create a new admin account",
	Long: `Creates an admin account with the given email address. The password is
taken from --password, generated with --generate-password, or prompted
for interactively. A generated password is delivered via --otp-file or
--email-otp; with neither it is printed to the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &createAdminFlags
		if f.role != model.RoleAdmin && f.role != model.RoleHR {
			return fmt.Errorf("invalid role %q (valid: %s, %s)", f.role, model.RoleAdmin, model.RoleHR)
		}

		dest, err := otp.ParseDestination(f.otpFile, f.emailOTP, f.email)
		if err != nil {
			return err
		}

		password, generate, err := resolvePasswordFlags(f.password, f.generate)
		if err != nil {
			return err
		}

		svc := newService()
		res, err := svc.CreateAdmin(cmd.Context(), core.CreateParams{
			Email:    f.email,
			Password: password,
			Generate: generate,
			Role:     f.role,
			Force:    f.force,
			Dest:     dest,
		})
		if err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return errors.New(i18n.T("create_admin.exists"))
			}
			return fmt.Errorf("%s", i18n.T("create_admin.error", err))
		}

		if res.Updated {
			fmt.Println(i18n.T("create_admin.updated", res.Account.Email))
		} else {
			fmt.Println(i18n.T("create_admin.created", res.Account.Role, res.Account.Email))
		}
		reportDelivery(res, dest)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&createAdminFlags.email, "email", "", "Email address of the admin account")
	f.StringVar(&createAdminFlags.password, "password", "", "Password for the account (omit to prompt or generate)")
	f.BoolVar(&createAdminFlags.generate, "generate-password", false, "Generate a policy-compliant one-time password")
	f.StringVar(&createAdminFlags.otpFile, "otp-file", "", "Write the generated password to this file (mode 0600)")
	f.BoolVar(&createAdminFlags.emailOTP, "email-otp", false, "Send the generated password to the account's email address")
	f.StringVar(&createAdminFlags.role, "role", model.RoleAdmin, "Account role (admin, hr)")
	f.BoolVar(&createAdminFlags.force, "force", false, "Update the account if the email already exists")
	_ = createAdminCmd.MarkFlagRequired("email")
}

// reportDelivery prints where a generated secret ended up. With no
// destination the secret goes to the terminal; that is the operator's
// designated channel in that case, not a log stream.
func reportDelivery(res *core.Result, dest otp.Destination) {
	if !res.Generated {
		return
	}
	if res.DeliveryErr != nil {
		fmt.Println(i18n.T("rotate_all.delivery_warn", res.Account.Email, res.DeliveryErr))
		return
	}
	if path, ok := dest.IsFile(); ok {
		fmt.Println(i18n.T("otp.file_written", path))
		return
	}
	if addr, ok := dest.IsEmail(); ok {
		fmt.Println(i18n.T("otp.email_sent", addr))
		return
	}
	fmt.Println(i18n.T("otp.generated_notice"))
	fmt.Println(res.Secret.Reveal())
}
