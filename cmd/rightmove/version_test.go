package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCmd tests version output.
func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "rightmove version") {
		t.Errorf("output %q missing version line", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("output %q missing commit line", output)
	}
}

// TestGetVersion tests version resolution fallbacks.
func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("getVersion() returned empty string")
	}
	if got := getCommit(); got == "" {
		t.Error("getCommit() returned empty string")
	}
	if got := getDate(); got == "" {
		t.Error("getDate() returned empty string")
	}
}
