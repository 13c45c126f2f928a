package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFlattenNestedKeys(t *testing.T) {
	m := map[string]interface{}{
		"top": map[string]interface{}{
			"sub":  "value",
			"deep": map[string]interface{}{"leaf": "v"},
		},
		"other": "v",
	}
	keys := make(map[string]struct{})
	flatten("", m, keys)

	for _, want := range []string{"top.sub", "top.deep.leaf", "other"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("expected key %s", want)
		}
	}
}

func TestLoadLocaleKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "test.yaml")
	yaml := "rotate:\n  rotated: \"done %s\"\n  error: \"failed %v\"\n"
	if err := os.WriteFile(p, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := loadLocaleKeys(p)
	if err != nil {
		t.Fatalf("loadLocaleKeys failed: %v", err)
	}
	if _, ok := got["rotate.rotated"]; !ok {
		t.Fatalf("expected rotate.rotated, got %v", got)
	}
}

func TestFindUsedKeys(t *testing.T) {
	dir := t.TempDir()
	src := `package foo
func f() {
	_ = i18n.T("my.key")
	_ = i18n.T("other.key", arg)
}`
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	// Test files must be skipped.
	if err := os.WriteFile(filepath.Join(dir, "sub", "a_test.go"), []byte(`package foo
func g() { _ = i18n.T("test.only") }`), 0o644); err != nil {
		t.Fatal(err)
	}

	used, err := findUsedKeys(dir)
	if err != nil {
		t.Fatalf("findUsedKeys failed: %v", err)
	}
	if _, ok := used["my.key"]; !ok {
		t.Errorf("expected my.key in used keys")
	}
	if _, ok := used["other.key"]; !ok {
		t.Errorf("expected other.key in used keys")
	}
	if _, ok := used["test.only"]; ok {
		t.Errorf("keys from test files must be ignored")
	}
}

func TestDiffKeys(t *testing.T) {
	a := map[string]struct{}{"x": {}, "y": {}}
	b := map[string]struct{}{"y": {}}
	got := diffKeys(a, b)
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected [x], got %v", got)
	}
}

func TestRunAgainstConsistentTree(t *testing.T) {
	root := t.TempDir()
	locDir := filepath.Join(root, localesDir)
	if err := os.MkdirAll(locDir, 0o755); err != nil {
		t.Fatal(err)
	}
	en := "greet:\n  hello: \"Hello %s\"\n"
	de := "greet:\n  hello: \"Hallo %s\"\n"
	if err := os.WriteFile(filepath.Join(locDir, "en.yaml"), []byte(en), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(locDir, "de.yaml"), []byte(de), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `package foo
func f() { _ = i18n.T("greet.hello", name) }`
	if err := os.WriteFile(filepath.Join(root, "a.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(root); err != nil {
		t.Fatalf("run failed on a consistent tree: %v", err)
	}
}

func TestRunFlagsMissingKey(t *testing.T) {
	root := t.TempDir()
	locDir := filepath.Join(root, localesDir)
	if err := os.MkdirAll(locDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(locDir, "en.yaml"), []byte("greet:\n  hello: \"Hello\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `package foo
func f() { _ = i18n.T("greet.missing") }`
	if err := os.WriteFile(filepath.Join(root, "a.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(root); err == nil {
		t.Fatal("expected an error for a key missing from the primary locale")
	}
}
