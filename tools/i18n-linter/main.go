// Copyright (c) 2025 Recruitd
// adminctl - admin credential lifecycle manager
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files for consistency. It scans the Go
// source for i18n.T() calls, reports keys used in code but absent from the
// primary locale, keys present in the primary locale but never used, and
// keys missing from the secondary locales.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var tCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

func main() {
	if err := run("."); err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(1)
	}
}

func run(root string) error {
	used, err := findUsedKeys(root)
	if err != nil {
		return fmt.Errorf("scan source: %w", err)
	}

	primaryPath := filepath.Join(root, localesDir, primaryLocale)
	primary, err := loadLocaleKeys(primaryPath)
	if err != nil {
		return fmt.Errorf("load primary locale: %w", err)
	}

	missing := diffKeys(used, primary)
	orphaned := diffKeys(primary, used)

	for _, key := range missing {
		fmt.Printf("missing from %s: %s\n", primaryLocale, key)
	}
	for _, key := range orphaned {
		fmt.Printf("orphaned in %s: %s\n", primaryLocale, key)
	}

	locales, err := filepath.Glob(filepath.Join(root, localesDir, "*.yaml"))
	if err != nil {
		return err
	}
	var untranslated []string
	for _, file := range locales {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadLocaleKeys(file)
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		for _, key := range diffKeys(primary, keys) {
			untranslated = append(untranslated, fmt.Sprintf("missing from %s: %s", filepath.Base(file), key))
		}
	}
	for _, line := range untranslated {
		fmt.Println(line)
	}

	if len(missing) > 0 || len(untranslated) > 0 {
		return fmt.Errorf("%d missing, %d untranslated keys", len(missing), len(untranslated))
	}
	if len(orphaned) > 0 {
		fmt.Printf("%d orphaned keys (not fatal)\n", len(orphaned))
	}
	fmt.Println("locale files are consistent")
	return nil
}

// findUsedKeys walks the Go source and collects every message ID passed to
// i18n.T. Test files and this tool itself are skipped.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && (info.Name() == "tools" || strings.HasPrefix(info.Name(), "_") || strings.HasPrefix(info.Name(), ".")) {
			if path != root {
				return filepath.SkipDir
			}
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range tCallRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadLocaleKeys reads a locale file and returns its dot-separated keys.
func loadLocaleKeys(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flatten("", data, keys)
	return keys, nil
}

func flatten(prefix string, node interface{}, keys map[string]struct{}) {
	m, ok := node.(map[string]interface{})
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		flatten(key, v, keys)
	}
}

// diffKeys returns the keys of a that are absent from b, sorted.
func diffKeys(a, b map[string]struct{}) []string {
	var out []string
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
