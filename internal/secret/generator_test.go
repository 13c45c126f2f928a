package secret

import (
	"errors"
	"strings"
	"testing"
)

func countClass(s, alphabet string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(alphabet, r) {
			n++
		}
	}
	return n
}

func TestGenerate_SatisfiesPolicy(t *testing.T) {
	p := Policy{MinUpper: 2, MinLower: 3, MinDigit: 2, MinSymbol: 1}
	sec, err := Generate(16, p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	pw := sec.Reveal()
	if len(pw) != 16 {
		t.Fatalf("expected length 16, got %d", len(pw))
	}
	if got := countClass(pw, upperChars); got < p.MinUpper {
		t.Errorf("uppercase count %d below minimum %d", got, p.MinUpper)
	}
	if got := countClass(pw, lowerChars); got < p.MinLower {
		t.Errorf("lowercase count %d below minimum %d", got, p.MinLower)
	}
	if got := countClass(pw, digitChars); got < p.MinDigit {
		t.Errorf("digit count %d below minimum %d", got, p.MinDigit)
	}
	if got := countClass(pw, symbolChars); got < p.MinSymbol {
		t.Errorf("symbol count %d below minimum %d", got, p.MinSymbol)
	}
}

func TestGenerate_NonDeterministic(t *testing.T) {
	a, err := Generate(DefaultLength, DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(DefaultLength, DefaultPolicy())
	if err != nil {
		t.Fatal(err)
	}
	if a.Reveal() == b.Reveal() {
		t.Error("two consecutive generations produced an identical password")
	}
}

func TestGenerate_PolicyUnsatisfiable(t *testing.T) {
	p := Policy{MinUpper: 4, MinLower: 4, MinDigit: 4, MinSymbol: 4}
	if _, err := Generate(8, p); !errors.Is(err, ErrPolicyUnsatisfiable) {
		t.Fatalf("expected ErrPolicyUnsatisfiable, got %v", err)
	}
	if _, err := Generate(0, DefaultPolicy()); !errors.Is(err, ErrPolicyUnsatisfiable) {
		t.Fatalf("expected ErrPolicyUnsatisfiable for zero length, got %v", err)
	}
}

func TestGenerate_ExactPolicyLength(t *testing.T) {
	p := Policy{MinUpper: 1, MinLower: 1, MinDigit: 1, MinSymbol: 1}
	sec, err := Generate(4, p)
	if err != nil {
		t.Fatalf("Generate failed at exact policy length: %v", err)
	}
	if len(sec.Reveal()) != 4 {
		t.Errorf("expected length 4, got %d", len(sec.Reveal()))
	}
}
