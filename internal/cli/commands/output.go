package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by -o
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// render writes v in the selected machine format, or calls table for the human one
func (d *Deps) render(v any, table func(w io.Writer)) error {
	switch d.Format {
	case FormatJSON:
		enc := json.NewEncoder(d.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(d.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		w := tabwriter.NewWriter(d.Out, 0, 0, 2, ' ', 0)
		table(w)
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", d.Format)
	}
}

// human reports whether output is meant for a person rather than a parser
func (d *Deps) human() bool {
	return d.Format == FormatTable || d.Format == ""
}

// printf writes human-only chatter; machine formats stay clean
func (d *Deps) printf(format string, args ...any) {
	if d.human() {
		fmt.Fprintf(d.Out, format, args...)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatLab(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
