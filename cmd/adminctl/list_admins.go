// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/recruitd/adminctl/internal/db"
	"github.com/recruitd/adminctl/internal/i18n"
)

// listAdminsCmd represents the 'list_admins' command. Output carries no
// secret material; only account metadata is shown.
var listAdminsCmd = &cobra.Command{
	Use:   "list_admins",
	Short: "List all admin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		admins, err := db.ListAdmins()
		if err != nil {
			return err
		}
		if len(admins) == 0 {
			fmt.Println(i18n.T("list_admins.none"))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, i18n.T("list_admins.header"))
		for _, a := range admins {
			active := "yes"
			if !a.IsActive {
				active = "no"
			}
			rotated := "-"
			if !a.PasswordRotatedAt.IsZero() {
				rotated = a.PasswordRotatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				a.Email, a.Role, active,
				a.CreatedAt.Format("2006-01-02 15:04"), rotated)
		}
		return w.Flush()
	},
}
