// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/recruitd/adminctl/internal/i18n"
)

var (
	errNotATerminal     = errors.New("stdin is not a terminal")
	errPasswordMismatch = errors.New("passwords do not match")
	errEmptyPassword    = errors.New("empty password")
)

// promptForPassword reads a password twice from the terminal with echo
// disabled. It refuses to prompt when stdin is not a terminal so scripted
// invocations fail fast instead of hanging.
func promptForPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errNotATerminal
	}

	fmt.Print(i18n.T("prompt.enter_password"))
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print(i18n.T("prompt.confirm_password"))
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	if len(first) == 0 {
		return "", errEmptyPassword
	}
	return string(first), nil
}

// resolvePasswordFlags decides the password source for a single-account
// command: explicit --password wins, --generate-password defers to the
// core, otherwise the operator is prompted interactively.
func resolvePasswordFlags(password string, generate bool) (string, bool, error) {
	if password != "" || generate {
		return password, generate, nil
	}
	pw, err := promptForPassword()
	if err != nil {
		switch {
		case errors.Is(err, errNotATerminal):
			return "", false, errors.New(i18n.T("prompt.not_a_terminal"))
		case errors.Is(err, errPasswordMismatch):
			return "", false, errors.New(i18n.T("prompt.mismatch"))
		case errors.Is(err, errEmptyPassword):
			return "", false, errors.New(i18n.T("prompt.empty"))
		}
		return "", false, err
	}
	return pw, false, nil
}
