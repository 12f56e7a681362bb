// Package output formats command results as tables, JSON, or YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is the output format selected by the --output flag.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string { return string(f) }

// Printer writes formatted output to a writer.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// NewPrinter creates a new Printer with the given options.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, format: format, color: color}
}

// DefaultPrinter creates a Printer that writes to stdout in table format.
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout, FormatTable, true)
}

func (p *Printer) Format() Format     { return p.format }
func (p *Printer) Writer() io.Writer  { return p.out }
func (p *Printer) ColorEnabled() bool { return p.color }

// Print outputs data in the configured format. For table format, data
// should implement TableRenderer.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// PrintValue writes a single formatted scalar under label, honoring the
// printer's format. A cache Get result is one decoded wire value
// with no rows or columns to tabulate, so table format prints it bare
// while JSON/YAML wrap it in a one-field object keyed by label — giving
// scripted callers a stable lookup key regardless of the chosen format.
func (p *Printer) PrintValue(label, text string) error {
	switch p.format {
	case FormatJSON:
		return PrintJSON(p.out, map[string]string{label: text})
	case FormatYAML:
		return PrintYAML(p.out, map[string]string{label: text})
	default:
		_, err := fmt.Fprintln(p.out, text)
		return err
	}
}

func (p *Printer) Println(args ...any) { _, _ = fmt.Fprintln(p.out, args...) }

func (p *Printer) Printf(format string, args ...any) { _, _ = fmt.Fprintf(p.out, format, args...) }

func (p *Printer) Success(msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[32m%s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, msg)
	}
}

func (p *Printer) Error(msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[31m%s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, msg)
	}
}

func (p *Printer) Warning(msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[33m%s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, msg)
	}
}
