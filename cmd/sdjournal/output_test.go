package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/id128"
)

func snapshot(fields ...sdjournal.Field) *sdjournal.Snapshot {
	return &sdjournal.Snapshot{
		Cursor:   "s=1",
		Realtime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Monotonic: sdjournal.Monotonic{
			Elapsed: 1500 * time.Microsecond,
			BootID:  id128.MustParse("39f53479d3a045ac8e11786248231fbf"),
		},
		Fields: fields,
	}
}

func TestShortLine(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Local().Format(time.Stamp)

	tests := []struct {
		name   string
		fields []sdjournal.Field
		want   string
	}{
		{
			"syslog",
			[]sdjournal.Field{{Name: "_HOSTNAME", Value: "box"}, {Name: "SYSLOG_IDENTIFIER", Value: "sshd"}, {Name: "_PID", Value: "7"}, {Name: "MESSAGE", Value: "hi"}},
			stamp + " box sshd[7]: hi",
		},
		{
			"comm and syslog pid",
			[]sdjournal.Field{{Name: "_COMM", Value: "cron"}, {Name: "SYSLOG_PID", Value: "9"}, {Name: "MESSAGE", Value: "tick"}},
			stamp + " cron[9]: tick",
		},
		{"bare", nil, stamp + " unknown: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortLine(snapshot(tt.fields...)))
		})
	}
}

func TestExportFields(t *testing.T) {
	got := exportFields(snapshot(
		sdjournal.Field{Name: "MESSAGE", Value: "hi"},
		sdjournal.Field{Name: "TAG", Value: "a"},
		sdjournal.Field{Name: "TAG", Value: "b"},
		sdjournal.Field{Name: "TAG", Value: "c"},
	))
	assert.Equal(t, map[string]any{
		"MESSAGE":               "hi",
		"TAG":                   []string{"a", "b", "c"},
		"__CURSOR":              "s=1",
		"__REALTIME_TIMESTAMP":  "1709294400000000",
		"__MONOTONIC_TIMESTAMP": "1500",
		"_BOOT_ID":              "39f53479d3a045ac8e11786248231fbf",
	}, got)

	got = exportFields(snapshot(sdjournal.Field{Name: "_BOOT_ID", Value: "from-entry"}))
	assert.Equal(t, "from-entry", got["_BOOT_ID"])
}

func TestPrintList(t *testing.T) {
	items := []string{"MESSAGE", "_PID"}
	tests := []struct {
		format string
		want   string
	}{
		{"short", "MESSAGE\n_PID\n"},
		{"json", "[\"MESSAGE\",\"_PID\"]\n"},
		{"yaml", "- MESSAGE\n- _PID\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printList(tt.format, &buf, "Field", items))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, printList("table", &buf, "Field", items))
	assert.Contains(t, buf.String(), "FIELD")
	assert.Contains(t, buf.String(), "_PID")

	require.Error(t, printList("xml", &buf, "Field", items))
}

func TestYAMLPrinterFlush(t *testing.T) {
	var buf bytes.Buffer
	p, err := newPrinter("yaml", &buf)
	require.NoError(t, err)
	require.NoError(t, p.Flush())
	assert.Empty(t, buf.String())

	require.NoError(t, p.Print(snapshot(sdjournal.Field{Name: "MESSAGE", Value: "one"})))
	require.NoError(t, p.Print(snapshot(sdjournal.Field{Name: "MESSAGE", Value: "two"})))
	require.NoError(t, p.Flush())
	assert.Contains(t, buf.String(), "---\n")
	assert.Contains(t, buf.String(), "value: two")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{24 << 20, "24.0M"},
		{3 << 30, "3.0G"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.n), tt.n)
	}
}
