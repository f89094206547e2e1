package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes aligned columns, rows are flushed by Flush
type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	if len(header) > 0 {
		t.row(header...)
	}
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) Flush() error {
	return t.tw.Flush()
}

// printFields writes a titled name/value list
func printFields(w io.Writer, title string, fields []models.Field) error {
	if title != "" {
		fmt.Fprintf(w, "%s\n", title)
	}
	t := newTable(w)
	for _, f := range fields {
		t.row("  "+f.Name, f.Value)
	}
	return t.Flush()
}
