package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/recruitd/adminctl/internal/core"
	"github.com/recruitd/adminctl/internal/i18n"
	"github.com/recruitd/adminctl/internal/model"
	"github.com/recruitd/adminctl/internal/otp"
	"github.com/recruitd/adminctl/internal/secret"
	"github.com/spf13/cobra"
)

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestNewRootCmd_RegistersSubcommandsAndVersion(t *testing.T) {
	oldV := version
	version = "v9.9.9"
	defer func() { version = oldV }()

	cmd := newRootCmd()
	if cmd == nil {
		t.Fatalf("newRootCmd returned nil")
	}
	if cmd.Version != "v9.9.9" {
		t.Fatalf("expected version v9.9.9, got %s", cmd.Version)
	}

	names := []string{"create_admin", "list_admins", "rotate_admin_password", "rotate_all_admins", "backup", "restore", "version"}
	for _, n := range names {
		if findSubcommand(cmd, n) == nil {
			t.Fatalf("expected subcommand %s to be registered", n)
		}
	}
}

func TestCreateAdminCmd_HelpText(t *testing.T) {
	cmd := findSubcommand(newRootCmd(), "create_admin")
	if cmd == nil {
		t.Fatalf("create_admin command not found")
	}
	if cmd.Short == "" {
		t.Fatalf("create_admin command missing short help")
	}
	if !strings.Contains(cmd.Long, "password") {
		t.Fatalf("create_admin help should mention password, got: %s", cmd.Long)
	}
	for _, flag := range []string{"email", "password", "generate-password", "otp-file", "email-otp", "role", "force"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Fatalf("create_admin missing --%s flag", flag)
		}
	}
}

func TestRotateAllCmd_Flags(t *testing.T) {
	cmd := findSubcommand(newRootCmd(), "rotate_all_admins")
	if cmd == nil {
		t.Fatalf("rotate_all_admins command not found")
	}
	for _, flag := range []string{"otp-dir", "email-otp", "workers"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Fatalf("rotate_all_admins missing --%s flag", flag)
		}
	}
}

// captureStdout runs f while stdout is redirected to a pipe and returns
// everything written.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	f()

	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestReportDelivery_PrintsSecretWithoutDestination(t *testing.T) {
	i18n.Init("en")
	res := &core.Result{
		Account:   &model.AdminAccount{Email: "a@x.com"},
		Generated: true,
		Secret:    secret.FromString("printed-one-time-password"),
	}

	out := captureStdout(t, func() { reportDelivery(res, otp.None()) })
	if !strings.Contains(out, "printed-one-time-password") {
		t.Fatalf("expected the secret on stdout with no destination, got: %s", out)
	}
}

func TestReportDelivery_FileDestinationNamesPath(t *testing.T) {
	i18n.Init("en")
	res := &core.Result{
		Account:   &model.AdminAccount{Email: "a@x.com"},
		Generated: true,
		Secret:    secret.FromString("hidden-one-time-password"),
	}

	out := captureStdout(t, func() { reportDelivery(res, otp.FileDestination("/tmp/otp.txt")) })
	if !strings.Contains(out, "/tmp/otp.txt") {
		t.Fatalf("expected the file path on stdout, got: %s", out)
	}
	if strings.Contains(out, "hidden-one-time-password") {
		t.Fatalf("secret leaked to stdout when a file destination was used: %s", out)
	}
}

func TestReportDelivery_SilentForSuppliedPassword(t *testing.T) {
	i18n.Init("en")
	res := &core.Result{Account: &model.AdminAccount{Email: "a@x.com"}}

	out := captureStdout(t, func() { reportDelivery(res, otp.None()) })
	if out != "" {
		t.Fatalf("expected no delivery output for a supplied password, got: %s", out)
	}
}

func TestResolvePasswordFlags_NonInteractive(t *testing.T) {
	i18n.Init("en")
	// Test stdin is never a terminal, so prompting must fail fast.
	if _, _, err := resolvePasswordFlags("", false); err == nil {
		t.Fatalf("expected an error when no password source is given off-terminal")
	}
	pw, gen, err := resolvePasswordFlags("given", false)
	if err != nil || pw != "given" || gen {
		t.Fatalf("explicit password must pass through, got %q %v %v", pw, gen, err)
	}
	pw, gen, err = resolvePasswordFlags("", true)
	if err != nil || pw != "" || !gen {
		t.Fatalf("generate flag must pass through, got %q %v %v", pw, gen, err)
	}
}

func TestRootCmd_CreateListRotate_EndToEnd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	dsn := "file:cli_e2e?mode=memory&cache=shared"
	run := func(args ...string) (string, error) {
		cmd := newRootCmd()
		cmd.SetArgs(append(args, "--db-type", "sqlite", "--db-dsn", dsn))
		var execErr error
		out := captureStdout(t, func() { execErr = cmd.Execute() })
		return out, execErr
	}

	out, err := run("create_admin", "--email", "e2e@x.com", "--password", "a-long-enough-password")
	if err != nil {
		t.Fatalf("create_admin failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "e2e@x.com") {
		t.Fatalf("create_admin output should name the account, got: %s", out)
	}

	out, err = run("list_admins")
	if err != nil {
		t.Fatalf("list_admins failed: %v", err)
	}
	if !strings.Contains(out, "e2e@x.com") || !strings.Contains(out, "admin") {
		t.Fatalf("list_admins output missing account: %s", out)
	}

	otpFile := t.TempDir() + "/otp.txt"
	rotateFlags = struct {
		email    string
		password string
		generate bool
		otpFile  string
		emailOTP bool
	}{}
	out, err = run("rotate_admin_password", "--email", "e2e@x.com", "--generate-password", "--otp-file", otpFile)
	if err != nil {
		t.Fatalf("rotate_admin_password failed: %v (output: %s)", err, out)
	}
	plain, err := otp.ReadSecretFile(otpFile)
	if err != nil {
		t.Fatalf("expected an OTP artifact: %v", err)
	}
	if len(plain) != secret.DefaultLength {
		t.Fatalf("expected a %d-char generated password, got %d", secret.DefaultLength, len(plain))
	}
	if strings.Contains(out, plain) {
		t.Fatalf("generated secret leaked to stdout despite file destination")
	}
}

func TestRootCmd_CreateAdmin_InvalidRole(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"create_admin", "--email", "r@x.com", "--password", "some-password",
		"--role", "superuser", "--db-type", "sqlite", "--db-dsn", ":memory:",
	})
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an invalid role")
	}
}

func TestRootCmd_RotateAll_RequiresDestination(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	dsn := fmt.Sprintf("file:cli_dest_%d?mode=memory&cache=shared", os.Getpid())
	cmd := newRootCmd()
	cmd.SetArgs([]string{"rotate_all_admins", "--db-type", "sqlite", "--db-dsn", dsn})
	cmd.SetErr(io.Discard)
	cmd.SetOut(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no destination flag is given")
	}
}
