// Package report renders decoded ELF headers in the supported output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/raven-betanet/elfhdr/internal/elfheader"
)

// Format is an output format
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ColorMode decides when text output is colored
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseFormat parses an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// ParseColorMode parses a color mode name
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported color mode: %s", s)
	}
}

// Options controls rendering
type Options struct {
	Format Format
	Color  ColorMode
	elfheader.RenderOptions
}

// Render writes the report for v to w. When the class-dependent fields cannot
// be decoded, everything that could be rendered is written first and the
// decode error is returned.
func Render(w io.Writer, name string, v *elfheader.View, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, v, opts)
	case FormatTable:
		return renderTable(w, v, opts)
	case FormatJSON:
		return renderJSON(w, name, v, opts)
	case FormatYAML:
		return renderYAML(w, name, v, opts)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// useColor resolves the color mode against the writer
func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorAuto:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

func renderText(w io.Writer, v *elfheader.View, opts Options) error {
	if !useColor(w, opts.Color) {
		return v.WriteText(w, opts.RenderOptions)
	}

	heading := color.New(color.Bold)
	label := color.New(color.FgCyan)
	heading.EnableColor()
	label.EnableColor()

	fields, ferr := v.Fields(opts.RenderOptions)
	var sb strings.Builder
	sb.WriteString(heading.Sprint(elfheader.Heading) + "\n")
	for _, f := range fields {
		sb.WriteString("  " + label.Sprint(f.PaddedLabel()) + f.Value + "\n")
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	return ferr
}

func renderTable(w io.Writer, v *elfheader.View, opts Options) error {
	fields, ferr := v.Fields(opts.RenderOptions)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	if useColor(w, opts.Color) {
		table.SetHeaderColor(tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor})
	}
	for _, f := range fields {
		table.Append([]string{f.Label, strings.TrimSpace(f.Value)})
	}
	table.Render()
	return ferr
}

func renderJSON(w io.Writer, name string, v *elfheader.View, opts Options) error {
	doc, ferr := NewDocument(name, v, opts.RenderOptions)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return ferr
}

func renderYAML(w io.Writer, name string, v *elfheader.View, opts Options) error {
	doc, ferr := NewDocument(name, v, opts.RenderOptions)
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return ferr
}
