// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/recruitd/adminctl/internal/logging"
)

var debugCmd = &cobra.Command{
	Use:    "debug",
	Short:  "Dump debug information about config, env and flags",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("--- ADMINCTL DEBUG ---")

		// Resolved configuration, with the SMTP password redacted.
		shown := cfg
		if shown.SMTP.Password != "" {
			shown.SMTP.Password = "[REDACTED]"
		}
		b, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			logging.Errorf("could not marshal config: %v", err)
		} else {
			fmt.Println("-- resolved config --")
			fmt.Println(string(b))
		}

		fmt.Println("-- flags --")
		cmd.Root().PersistentFlags().VisitAll(func(f *pflag.Flag) {
			fmt.Printf("%s = %s\n", f.Name, f.Value.String())
		})

		fmt.Println("-- environment (ADMINCTL_*) --")
		for _, e := range os.Environ() {
			if !strings.HasPrefix(e, "ADMINCTL_") {
				continue
			}
			if name, _, ok := strings.Cut(e, "="); ok && strings.Contains(name, "PASSWORD") {
				fmt.Printf("%s=[REDACTED]\n", name)
				continue
			}
			fmt.Println(e)
		}

		fmt.Println("--- END DEBUG ---")
		return nil
	},
}
