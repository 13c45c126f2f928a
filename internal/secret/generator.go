// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package secret generates one-time passwords from a cryptographically
// secure random source and wraps them in a redacting container.
package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Character classes a generated password is drawn from.
const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!#$%&*+-=?@_"
)

// ErrPolicyUnsatisfiable is returned when the requested length is too short
// to satisfy the minimum character-class counts of the policy.
var ErrPolicyUnsatisfiable = errors.New("password policy unsatisfiable for requested length")

// Policy describes the minimum composition of a generated password.
type Policy struct {
	MinUpper  int
	MinLower  int
	MinDigit  int
	MinSymbol int
}

// DefaultLength is the length used when the caller does not override it.
// The original management tool generated 24-character one-time passwords.
const DefaultLength = 24

// DefaultPolicy requires at least one character of every class.
func DefaultPolicy() Policy {
	return Policy{MinUpper: 1, MinLower: 1, MinDigit: 1, MinSymbol: 1}
}

// Generate produces a password of the given length satisfying the policy.
// It only ever reads randomness from crypto/rand; a seedable source would
// make rotation predictable.
func Generate(length int, p Policy) (Secret, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: length %d", ErrPolicyUnsatisfiable, length)
	}
	required := p.MinUpper + p.MinLower + p.MinDigit + p.MinSymbol
	if required > length {
		return nil, fmt.Errorf("%w: need %d characters for policy, length is %d", ErrPolicyUnsatisfiable, required, length)
	}

	out := make([]byte, 0, length)
	classes := []struct {
		min     int
		alphabet string
	}{
		{p.MinUpper, upperChars},
		{p.MinLower, lowerChars},
		{p.MinDigit, digitChars},
		{p.MinSymbol, symbolChars},
	}
	for _, c := range classes {
		for i := 0; i < c.min; i++ {
			ch, err := randomChar(c.alphabet)
			if err != nil {
				return nil, err
			}
			out = append(out, ch)
		}
	}

	all := upperChars + lowerChars + digitChars + symbolChars
	for len(out) < length {
		ch, err := randomChar(all)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}

	if err := shuffle(out); err != nil {
		return nil, err
	}
	return Secret(out), nil
}

// randomChar picks one character from the alphabet uniformly.
func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle so the policy-mandated characters
// do not cluster at the front of the password.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to read random source: %w", err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
