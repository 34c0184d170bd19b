package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"sqlsplit/internal/sqlparse"
)

// outputFormat is the --output flag value.
type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func (o *outputFormat) String() string { return string(*o) }

func (o *outputFormat) Set(s string) error {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputText, outputJSON, outputYAML:
		*o = f
		return nil
	case "table":
		*o = outputText
		return nil
	default:
		return fmt.Errorf("unsupported output format %q: use 'text', 'json' or 'yaml'", s)
	}
}

func (o *outputFormat) Type() string { return "format" }

// dialectFlag is the --dialect flag value.
type dialectFlag struct {
	d sqlparse.Dialect
}

func (f *dialectFlag) String() string { return f.d.String() }

func (f *dialectFlag) Set(s string) error {
	d, err := sqlparse.ParseDialect(s)
	if err != nil {
		return err
	}
	f.d = d
	return nil
}

func (f *dialectFlag) Type() string { return "dialect" }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML renders v through its JSON encoding so field names and order
// follow the json tags, then re-emits the document in block style.
func printYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	clearStyle(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// printStructured writes v as JSON or YAML. It reports false for text output
// so the caller can render its own layout.
func printStructured(w io.Writer, format outputFormat, v any) (bool, error) {
	switch format {
	case outputJSON:
		return true, printJSON(w, v)
	case outputYAML:
		return true, printYAML(w, v)
	default:
		return false, nil
	}
}

// styler adds ANSI styling when writing to a terminal.
type styler struct {
	enabled bool
}

func newStyler(w io.Writer) styler {
	if os.Getenv("NO_COLOR") != "" {
		return styler{}
	}
	f, ok := w.(*os.File)
	return styler{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (s styler) dim(text string) string { return s.wrap("2", text) }
func (s styler) red(text string) string { return s.wrap("31", text) }

func (s styler) wrap(code, text string) string {
	if !s.enabled {
		return text
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

// printTable writes an aligned table. Cells are not styled: escape codes
// would break tabwriter's width accounting.
func printTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	hdr := make([]string, len(headers))
	for i, h := range headers {
		hdr[i] = strings.ToUpper(h)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(hdr, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "\t", " ")
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
