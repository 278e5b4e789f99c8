package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Result es la salida de cualquier subcomando.
type Result struct {
	Action   string         `json:"action"`
	File     string         `json:"file,omitempty"`
	Location string         `json:"location,omitempty"`
	Counts   map[string]int `json:"counts"`
	Ignored  []string       `json:"ignored"`
}

func writeResult(w io.Writer, format string, r Result) error {
	if r.Ignored == nil {
		r.Ignored = []string{}
	}
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	switch {
	case r.Location != "":
		fmt.Fprintf(w, "%s: %s\n", r.Action, r.Location)
	case r.File != "":
		fmt.Fprintf(w, "%s: %s\n", r.Action, r.File)
	default:
		fmt.Fprintf(w, "%s\n", r.Action)
	}
	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	total := 0
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %d\n", name, r.Counts[name])
		total += r.Counts[name]
	}
	fmt.Fprintf(w, "  %-16s %d\n", "total", total)
	for _, name := range r.Ignored {
		fmt.Fprintf(w, "  ignorada: %s\n", name)
	}
	return nil
}
