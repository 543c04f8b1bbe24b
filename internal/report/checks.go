package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/raven-betanet/elfhdr/internal/checks"
)

// RenderChecks writes a check report as text or JSON
func RenderChecks(w io.Writer, rep *checks.CheckReport, format Format, mode ColorMode) error {
	switch format {
	case FormatText, "":
		return renderChecksText(w, rep, useColor(w, mode))
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(rep)
	default:
		return fmt.Errorf("unsupported check report format: %s", format)
	}
}

func renderChecksText(w io.Writer, rep *checks.CheckReport, colored bool) error {
	statuses := map[checks.CheckStatus]*color.Color{
		checks.StatusPass: color.New(color.FgGreen),
		checks.StatusFail: color.New(color.FgRed, color.Bold),
		checks.StatusSkip: color.New(color.FgYellow),
	}
	for _, c := range statuses {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	title := "ELF header checks: " + rep.File
	fmt.Fprintf(&sb, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))

	for _, result := range rep.Results {
		tag := fmt.Sprintf("[%s]", strings.ToUpper(string(result.Status)))
		if c, ok := statuses[result.Status]; ok {
			tag = c.Sprint(tag)
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", tag, result.ID, result.Description)
		if result.Message != "" {
			fmt.Fprintf(&sb, "       %s\n", result.Message)
		}
	}

	fmt.Fprintf(&sb, "\nSummary: %d checks, %d passed, %d failed, %d skipped\n",
		rep.Summary.Total, rep.Summary.Passed, rep.Summary.Failed, rep.Summary.Skipped)

	_, err := io.WriteString(w, sb.String())
	return err
}
