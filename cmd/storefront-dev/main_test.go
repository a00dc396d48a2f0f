package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRoutesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want header plus 8 routes:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[len(lines)-1], "/offline") {
		t.Errorf("last route = %q, want /offline", lines[len(lines)-1])
	}
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: not-a-url\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "--config", path})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("Execute() error = %v, want invalid base_url", err)
	}
}
