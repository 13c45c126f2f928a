// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidEmail is returned when an operation receives a malformed email.
var ErrInvalidEmail = errors.New("invalid email address")

// emailRe is deliberately loose: one @, no whitespace, a dot in the domain.
// The mail transport is the real validator; this only catches typos before
// a record is created.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the minimal shape of an admin email address.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}
