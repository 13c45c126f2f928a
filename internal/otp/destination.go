// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package otp delivers generated one-time passwords to their destination:
// a permission-restricted file or an email to the account owner. The
// destination is a tagged variant validated once at the CLI boundary, so
// "both" and "neither" cannot reach the delivery code as ambiguous state.
package otp

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for destination selection. Both are configuration errors surfaced
// before any secret is generated.
var (
	ErrNoDestination        = errors.New("no OTP destination selected")
	ErrAmbiguousDestination = errors.New("more than one OTP destination selected")
)

type kind int

const (
	kindNone kind = iota
	kindFile
	kindEmail
)

// Destination says where a generated secret goes. The zero value is "none".
type Destination struct {
	kind kind
	path string
	addr string
}

// FileDestination delivers the secret to a file at path.
func FileDestination(path string) Destination {
	return Destination{kind: kindFile, path: path}
}

// EmailDestination delivers the secret to the given address.
func EmailDestination(addr string) Destination {
	return Destination{kind: kindEmail, addr: addr}
}

// None returns the empty destination, meaning no delivery channel was
// selected.
func None() Destination { return Destination{} }

// None reports whether no destination was selected.
func (d Destination) None() bool { return d.kind == kindNone }

// IsFile reports whether the destination is a file, returning its path.
func (d Destination) IsFile() (string, bool) { return d.path, d.kind == kindFile }

// IsEmail reports whether the destination is an email, returning the address.
func (d Destination) IsEmail() (string, bool) { return d.addr, d.kind == kindEmail }

// String describes the destination without revealing any secret.
func (d Destination) String() string {
	switch d.kind {
	case kindFile:
		return fmt.Sprintf("file:%s", d.path)
	case kindEmail:
		return fmt.Sprintf("email:%s", d.addr)
	default:
		return "none"
	}
}

// ParseDestination builds a Destination from CLI flags. Selecting both a
// file and email delivery is rejected; selecting neither yields the "none"
// destination, which single-account commands render as terminal output.
func ParseDestination(otpFile string, emailOTP bool, addr string) (Destination, error) {
	if otpFile != "" && emailOTP {
		return Destination{}, ErrAmbiguousDestination
	}
	if otpFile != "" {
		return FileDestination(otpFile), nil
	}
	if emailOTP {
		if addr == "" {
			return Destination{}, fmt.Errorf("%w: email delivery requires an account email", ErrNoDestination)
		}
		return EmailDestination(addr), nil
	}
	return Destination{}, nil
}

// SanitizeEmailFilename turns an email address into a safe file name for
// per-account OTP files in bulk mode: a@x.com becomes a_at_x_com.txt.
func SanitizeEmailFilename(email string) string {
	s := strings.ReplaceAll(email, "@", "_at_")
	s = strings.ReplaceAll(s, ".", "_")
	return s + ".txt"
}
