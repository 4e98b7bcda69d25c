package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/internal/recordio"
)

// printer writes entries in one output format. Flush must be called once the
// entries of a batch have been printed.
type printer interface {
	Print(s *sdjournal.Snapshot) error
	Flush() error
}

func newPrinter(format string, w io.Writer) (printer, error) {
	switch format {
	case "short":
		return &shortPrinter{w: w}, nil
	case "json":
		return &jsonPrinter{enc: json.NewEncoder(w)}, nil
	case "yaml":
		return &yamlPrinter{w: w}, nil
	case "table":
		return &tablePrinter{w: w}, nil
	case "export":
		return &exportPrinter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type shortPrinter struct {
	w io.Writer
}

func (p *shortPrinter) Print(s *sdjournal.Snapshot) error {
	_, err := fmt.Fprintln(p.w, shortLine(s))
	return err
}

func (p *shortPrinter) Flush() error { return nil }

// shortLine formats an entry like a syslog line:
// "Jan  2 15:04:05 host ident[pid]: message".
func shortLine(s *sdjournal.Snapshot) string {
	var b strings.Builder
	b.WriteString(s.Realtime.Local().Format(time.Stamp))
	if host, ok := s.Get("_HOSTNAME"); ok {
		b.WriteString(" ")
		b.WriteString(host)
	}
	b.WriteString(" ")
	b.WriteString(identifier(s))
	if pid, ok := s.Get("_PID"); ok {
		fmt.Fprintf(&b, "[%s]", pid)
	} else if pid, ok := s.Get("SYSLOG_PID"); ok {
		fmt.Fprintf(&b, "[%s]", pid)
	}
	b.WriteString(": ")
	msg, _ := s.Get("MESSAGE")
	b.WriteString(msg)
	return b.String()
}

func identifier(s *sdjournal.Snapshot) string {
	if id, ok := s.Get("SYSLOG_IDENTIFIER"); ok {
		return id
	}
	if comm, ok := s.Get("_COMM"); ok {
		return comm
	}
	return "unknown"
}

func priority(s *sdjournal.Snapshot) string {
	v, ok := s.Get("PRIORITY")
	if !ok {
		return ""
	}
	if l, ok := sdjournal.ParseLevel(v); ok {
		return l.String()
	}
	return v
}

type jsonPrinter struct {
	enc *json.Encoder
}

func (p *jsonPrinter) Print(s *sdjournal.Snapshot) error {
	return p.enc.Encode(exportFields(s))
}

func (p *jsonPrinter) Flush() error { return nil }

// exportFields flattens an entry into the shape journalctl -o json uses.
// Fields that occur more than once become arrays.
func exportFields(s *sdjournal.Snapshot) map[string]any {
	m := make(map[string]any, len(s.Fields)+4)
	for _, f := range s.Fields {
		switch v := m[f.Name].(type) {
		case nil:
			m[f.Name] = f.Value
		case string:
			m[f.Name] = []string{v, f.Value}
		case []string:
			m[f.Name] = append(v, f.Value)
		}
	}

	m["__CURSOR"] = s.Cursor
	m["__REALTIME_TIMESTAMP"] = strconv.FormatInt(s.Realtime.UnixMicro(), 10)
	m["__MONOTONIC_TIMESTAMP"] = strconv.FormatInt(s.Monotonic.Elapsed.Microseconds(), 10)
	if _, ok := m["_BOOT_ID"]; !ok {
		m["_BOOT_ID"] = s.Monotonic.BootID.String()
	}
	return m
}

type exportPrinter struct {
	w io.Writer
}

func (p *exportPrinter) Print(s *sdjournal.Snapshot) error {
	return recordio.WriteExport(p.w, exportRecords(s))
}

func (p *exportPrinter) Flush() error { return nil }

// exportRecords lists the address fields journalctl -o export starts an entry
// with, followed by the entry's fields.
func exportRecords(s *sdjournal.Snapshot) []recordio.Record {
	records := make([]recordio.Record, 0, len(s.Fields)+4)
	records = append(records,
		recordio.Record{Field: "__CURSOR", Value: []byte(s.Cursor)},
		recordio.Record{Field: "__REALTIME_TIMESTAMP", Value: strconv.AppendInt(nil, s.Realtime.UnixMicro(), 10)},
		recordio.Record{Field: "__MONOTONIC_TIMESTAMP", Value: strconv.AppendInt(nil, s.Monotonic.Elapsed.Microseconds(), 10)},
	)
	if _, ok := s.Get("_BOOT_ID"); !ok {
		records = append(records, recordio.Record{Field: "_BOOT_ID", Value: []byte(s.Monotonic.BootID.String())})
	}
	for _, f := range s.Fields {
		records = append(records, recordio.Record{Field: f.Name, Value: []byte(f.Value)})
	}
	return records
}

type yamlPrinter struct {
	w   io.Writer
	enc *yaml.Encoder
}

func (p *yamlPrinter) Print(s *sdjournal.Snapshot) error {
	if p.enc == nil {
		p.enc = yaml.NewEncoder(p.w)
		p.enc.SetIndent(2)
	}
	return p.enc.Encode(s)
}

func (p *yamlPrinter) Flush() error {
	if p.enc == nil {
		return nil
	}
	err := p.enc.Close()
	p.enc = nil
	return err
}

type tablePrinter struct {
	w    io.Writer
	rows [][]string
}

func (p *tablePrinter) Print(s *sdjournal.Snapshot) error {
	msg, _ := s.Get("MESSAGE")
	p.rows = append(p.rows, []string{
		s.Realtime.Local().Format(time.StampMilli),
		priority(s),
		identifier(s),
		msg,
	})
	return nil
}

func (p *tablePrinter) Flush() error {
	if len(p.rows) == 0 {
		return nil
	}
	renderTable(p.w, []string{"Time", "Priority", "Identifier", "Message"}, p.rows)
	p.rows = nil
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// printList writes a list of strings, such as field names, in format.
func printList(format string, w io.Writer, header string, items []string) error {
	if items == nil {
		items = []string{}
	}
	switch format {
	case "short":
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return err
			}
		}
		return nil
	case "json":
		return json.NewEncoder(w).Encode(items)
	case "yaml":
		return encodeYAML(w, items)
	case "table":
		rows := make([][]string, len(items))
		for i, item := range items {
			rows[i] = []string{item}
		}
		renderTable(w, []string{header}, rows)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

type usageReport struct {
	Source     string    `json:"source" yaml:"source"`
	Bytes      uint64    `json:"bytes" yaml:"bytes"`
	Runtime    bool      `json:"runtime" yaml:"runtime"`
	Persistent bool      `json:"persistent" yaml:"persistent"`
	From       time.Time `json:"from,omitzero" yaml:"from,omitempty"`
	To         time.Time `json:"to,omitzero" yaml:"to,omitempty"`
}

func printUsage(format string, w io.Writer, r usageReport) error {
	switch format {
	case "short":
		_, err := fmt.Fprintf(w, "Archived and active journals take up %s in the file system.\n", formatBytes(r.Bytes))
		return err
	case "json":
		return json.NewEncoder(w).Encode(r)
	case "yaml":
		return encodeYAML(w, r)
	case "table":
		rows := [][]string{
			{"source", r.Source},
			{"bytes", formatBytes(r.Bytes)},
			{"runtime", strconv.FormatBool(r.Runtime)},
			{"persistent", strconv.FormatBool(r.Persistent)},
		}
		if !r.From.IsZero() {
			rows = append(rows,
				[]string{"from", r.From.Format(time.RFC3339)},
				[]string{"to", r.To.Format(time.RFC3339)},
			)
		}
		renderTable(w, []string{"Key", "Value"}, rows)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// formatBytes renders n with a binary unit suffix the way journalctl does:
// 512B, 1.5K, 24.0M.
func formatBytes(n uint64) string {
	const units = "KMGTPE"
	if n < 1024 {
		return strconv.FormatUint(n, 10) + "B"
	}
	v := float64(n)
	i := -1
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + units[i:i+1]
}
