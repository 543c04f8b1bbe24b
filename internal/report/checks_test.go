package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raven-betanet/elfhdr/internal/checks"
)

func TestRenderChecks_Text(t *testing.T) {
	rep := checks.NewCheckRunner(checks.NewDefaultRegistry()).RunAll("libfoo.so", decodeSample(t))

	tests := []struct {
		name string
		mode ColorMode
	}{
		{"plain", ColorNever},
		{"colored", ColorAlways},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderChecks(&buf, rep, FormatText, tt.mode))

			if tt.mode == ColorAlways {
				assert.Regexp(t, ansi, buf.String())
			}
			out := ansi.ReplaceAllString(buf.String(), "")
			assert.Contains(t, out, "ELF header checks: libfoo.so\n")
			assert.Contains(t, out, "[PASS] ident-class: EI_CLASS is ELF32 or ELF64\n       class ELF64\n")
			assert.Contains(t, out, "[SKIP] entry-point:")
			assert.Contains(t, out, "Summary: 10 checks, 9 passed, 0 failed, 1 skipped\n")
		})
	}
}

func TestRenderChecks_JSON(t *testing.T) {
	rep := checks.NewCheckRunner(checks.NewDefaultRegistry()).RunAll("odd", decodeUnknownClass(t))

	var buf bytes.Buffer
	require.NoError(t, RenderChecks(&buf, rep, FormatJSON, ColorAlways))

	var decoded checks.CheckReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "odd", decoded.File)
	assert.Equal(t, rep.Summary, decoded.Summary)
	require.Len(t, decoded.Results, len(rep.Results))
	assert.Equal(t, checks.StatusFail, decoded.Results[0].Status)
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderChecks_UnsupportedFormat(t *testing.T) {
	rep := &checks.CheckReport{File: "x"}
	err := RenderChecks(&bytes.Buffer{}, rep, FormatYAML, ColorNever)
	assert.EqualError(t, err, "unsupported check report format: yaml")
}
