package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestElfhdrHelpText(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "root help",
			args: []string{"--help"},
			contains: []string{
				`"readelf -h"`,
				"Usage:\n  elfhdr [flags] <elf-file>",
				"Examples:",
				"elfhdr --pid 1234",
				"Output formats:",
				"table - two-column table",
				"ELFHDR_*",
				"98 - File unreadable",
				"--format",
				"--full",
				"--pad-addresses",
				"--color",
				"--config",
				"--verbose",
				"check",
				"version",
			},
		},
		{
			name: "check command help",
			args: []string{"check", "--help"},
			contains: []string{
				"HEADER CHECKS:",
				"ident-class",
				"header-layout",
				"shstrndx",
				"entry-point",
				"OUTPUT FORMATS:",
				"text - Human-readable report",
				"json - Machine-readable report",
				"EXIT CODES:",
				"1  - One or more checks failed",
				"--only",
				"--pid",
			},
		},
		{
			name: "version command help",
			args: []string{"version", "--help"},
			contains: []string{
				"Show version information",
				"elfhdr version",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(""), &stdout, &stderr)
			if code != exitOK {
				t.Fatalf("help exited with %d: %s", code, stderr.String())
			}

			output := stdout.String()
			for _, expected := range tt.contains {
				if !strings.Contains(output, expected) {
					t.Errorf("Help output missing expected text: %q\nFull output:\n%s", expected, output)
				}
			}
		})
	}
}
