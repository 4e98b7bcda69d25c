package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native/nativetest"
	"github.com/dynoinc/sdjournal/internal/source"
	"github.com/dynoinc/sdjournal/raw"
)

func setup(t *testing.T) *nativetest.Library {
	t.Helper()

	fake := nativetest.New()
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		assert.Zero(t, fake.Outstanding(), "native buffers leaked")
		assert.Zero(t, fake.OpenHandles(), "journals left open")
	})
	return fake
}

func runContext(ctx context.Context, t *testing.T, fake *nativetest.Library, args ...string) (string, error) {
	t.Helper()

	lib, err := sdjournal.NewLibrary(raw.New(fake), sdjournal.Config{CatalogCacheBytes: 1 << 16})
	require.NoError(t, err)

	a := &app{
		cfg: config{
			Source:        source.Default,
			Output:        "short",
			LogTarget:     "stderr",
			DataThreshold: 65536,
		},
		lib:    lib,
		stderr: io.Discard,
	}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, fake *nativetest.Library, args ...string) (string, error) {
	t.Helper()
	return runContext(t.Context(), t, fake, args...)
}

// messages returns the message part of short output lines.
func messages(out string) []string {
	var msgs []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		_, msg, _ := strings.Cut(line, ": ")
		msgs = append(msgs, msg)
	}
	return msgs
}

func appendMessages(fake *nativetest.Library, msgs ...string) {
	for _, m := range msgs {
		fake.System().Append("MESSAGE="+m, "SYSLOG_IDENTIFIER=app", "_PID=42", "PRIORITY=6")
	}
}

func TestShow(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one", "two", "three")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all", []string{"show"}, []string{"one", "two", "three"}},
		{"reverse", []string{"show", "-r"}, []string{"three", "two", "one"}},
		{"reverse limited", []string{"show", "-r", "-n", "2"}, []string{"three", "two"}},
		{"limited", []string{"show", "-n", "1"}, []string{"one"}},
		{"disjunction", []string{"show", "MESSAGE=one", "+", "MESSAGE=three"}, []string{"one", "three"}},
		{"same field", []string{"show", "MESSAGE=one", "MESSAGE=two"}, []string{"one", "two"}},
		{"no match", []string{"show", "MESSAGE=four"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, fake, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages(out))
		})
	}

	out, err := run(t, fake, "show", "-n", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), " app[42]: one"), out)

	_, err = run(t, fake, "show", "oops")
	require.ErrorContains(t, err, `match "oops": expected FIELD=VALUE`)

	_, err = run(t, fake, "show", "-o", "xml")
	require.ErrorContains(t, err, "unsupported output format: xml")
}

func TestShowCursor(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one", "two", "three")

	out, err := run(t, fake, "cursor", "--head")
	require.NoError(t, err)
	head := strings.TrimSpace(out)

	out, err = run(t, fake, "show", "--cursor", head)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, messages(out))

	out, err = run(t, fake, "cursor")
	require.NoError(t, err)
	tail := strings.TrimSpace(out)
	assert.NotEqual(t, head, tail)

	out, err = run(t, fake, "show", "-r", "--cursor", tail)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, messages(out))

	// The cursor's entry is filtered out, so the entry landed on is shown.
	out, err = run(t, fake, "show", "--cursor", head, "MESSAGE=two")
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, messages(out))

	_, err = run(t, fake, "show", "--cursor", "garbage")
	require.ErrorIs(t, err, syscall.EINVAL)
}

func TestShowSince(t *testing.T) {
	fake := setup(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, m := range []string{"one", "two", "three"} {
		fake.System().AppendAt(base.Add(time.Duration(i)*time.Hour), "MESSAGE="+m)
	}

	out, err := run(t, fake, "show", "--since", base.Add(90*time.Minute).Format(time.RFC3339))
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, messages(out))

	out, err = run(t, fake, "show", "--since", base.Add(time.Hour).Format(time.RFC3339))
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, messages(out))

	_, err = run(t, fake, "show", "--since", "yesterday-ish")
	require.ErrorContains(t, err, "unrecognized time")

	_, err = run(t, fake, "show", "--since", "1h", "--cursor", "x")
	require.Error(t, err)
}

func TestShowJSON(t *testing.T) {
	fake := setup(t)
	fake.System().Append("MESSAGE=tagged", "TAG=a", "TAG=b")

	out, err := run(t, fake, "show", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "tagged", got["MESSAGE"])
	assert.Equal(t, []any{"a", "b"}, got["TAG"])
	assert.NotEmpty(t, got["__CURSOR"])
	assert.NotEmpty(t, got["__REALTIME_TIMESTAMP"])
	assert.Equal(t, fake.BootID().String(), got["_BOOT_ID"])
}

func TestShowYAMLAndTable(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one", "two")

	out, err := run(t, fake, "show", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "cursor: "))
	assert.Contains(t, out, "value: one")
	assert.Contains(t, out, "boot_id: "+fake.BootID().String())

	out, err = run(t, fake, "show", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "IDENTIFIER")
	assert.Contains(t, out, "info")
	assert.Contains(t, out, "two")
}

func TestTail(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one", "two", "three", "four", "five")

	out, err := run(t, fake, "tail", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"four", "five"}, messages(out))

	out, err = run(t, fake, "tail", "-n", "10")
	require.NoError(t, err)
	assert.Len(t, messages(out), 5)

	out, err = run(t, fake, "tail", "-n", "0")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTailFollow(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "old")

	ctx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		appendMessages(fake, "new")
	}()
	out, err := runContext(ctx, t, fake, "tail", "-f", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, messages(out))
}

func TestFieldsAndUnique(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one")
	fake.System().Append("MESSAGE=two", "SYSLOG_IDENTIFIER=other")

	out, err := run(t, fake, "fields")
	require.NoError(t, err)
	assert.Equal(t, "MESSAGE\nPRIORITY\nSYSLOG_IDENTIFIER\n_PID\n", out)

	out, err = run(t, fake, "-o", "json", "unique", "SYSLOG_IDENTIFIER")
	require.NoError(t, err)
	var values []string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []string{"app", "other"}, values)

	out, err = run(t, fake, "-o", "json", "unique", "NOPE")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = run(t, fake, "unique")
	require.Error(t, err)
}

func TestSend(t *testing.T) {
	fake := setup(t)

	_, err := run(t, fake, "send", "hello", "world")
	require.NoError(t, err)

	_, err = run(t, fake, "send", "-p", "warning", "--field", "UNIT=backup.service", "-f", "ATTEMPT=2", "took", "3h")
	require.NoError(t, err)

	out, err := run(t, fake, "show", "-o", "json", "UNIT=backup.service")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "took 3h", got["MESSAGE"])
	assert.Equal(t, "4", got["PRIORITY"])
	assert.Equal(t, "2", got["ATTEMPT"])

	out, err = run(t, fake, "show")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world", "took 3h"}, messages(out))

	_, err = run(t, fake, "send", "-p", "loud", "x")
	require.ErrorContains(t, err, "unsupported priority: loud")

	_, err = run(t, fake, "send", "-f", "NOVALUE", "x")
	require.ErrorContains(t, err, "expected KEY=VALUE")

	_, err = run(t, fake, "send", "-f", "lower=x", "x")
	require.ErrorIs(t, err, sdjournal.ErrInvalidFieldName)
}

func TestExportAndImport(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "one")
	fake.System().Append("MESSAGE=two\nlines", "SYSLOG_IDENTIFIER=app")

	out, err := run(t, fake, "show", "-o", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "__CURSOR=")
	assert.Contains(t, out, "_BOOT_ID="+fake.BootID().String()+"\n")
	assert.Contains(t, out, "MESSAGE=one\n")
	assert.Contains(t, out, "MESSAGE\n", "multi-line values use the binary form")

	path := filepath.Join(t.TempDir(), "entries.export")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	_, err = run(t, fake, "import", path)
	require.NoError(t, err)
	assert.Equal(t, 4, fake.System().Len())

	out, err = run(t, fake, "-o", "json", "show", "-r", "-n", "1")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "two\nlines", got["MESSAGE"])
	assert.Equal(t, "journal", got["_TRANSPORT"])
	assert.NotContains(t, got, "_PID", "trusted fields are not imported")

	_, err = run(t, fake, "import", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	truncated := filepath.Join(t.TempDir(), "truncated.export")
	require.NoError(t, os.WriteFile(truncated, []byte("MESSAGE\n\x05\x00"), 0o600))
	_, err = run(t, fake, "import", truncated)
	require.ErrorContains(t, err, "reading size of field MESSAGE")
}

func TestUsage(t *testing.T) {
	fake := setup(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake.System().AppendAt(base, "MESSAGE=one")
	fake.System().AppendAt(base.Add(time.Hour), "MESSAGE=two")

	out, err := run(t, fake, "-o", "json", "usage")
	require.NoError(t, err)
	var got usageReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, source.Default, got.Source)
	assert.Equal(t, uint64(len("MESSAGE=one")+len("MESSAGE=two")), got.Bytes)
	assert.True(t, got.Persistent)
	assert.True(t, base.Equal(got.From))
	assert.True(t, base.Add(time.Hour).Equal(got.To))

	out, err = run(t, fake, "usage")
	require.NoError(t, err)
	assert.Equal(t, "Archived and active journals take up 22B in the file system.\n", out)
}

func TestCatalogCommand(t *testing.T) {
	fake := setup(t)
	id := id128.MustParse("39f53479d3a045ac8e11786248231fbf")
	fake.AddCatalog(id, "Subject: Unit @UNIT@ has begun start-up\n")

	out, err := run(t, fake, "catalog", id.String())
	require.NoError(t, err)
	assert.Equal(t, "Subject: Unit @UNIT@ has begun start-up\n", out)

	_, err = run(t, fake, "catalog", "00000000000000000000000000000abc")
	require.ErrorIs(t, err, syscall.ENOENT)

	_, err = run(t, fake, "catalog", "not-an-id")
	require.Error(t, err)
}

func TestCursorEmpty(t *testing.T) {
	fake := setup(t)

	_, err := run(t, fake, "cursor")
	require.ErrorIs(t, err, errEmptyJournal)
}

func TestSource(t *testing.T) {
	fake := setup(t)
	appendMessages(fake, "default")
	fake.Namespace("app").Append("MESSAGE=namespaced")

	out, err := run(t, fake, "--source", "namespace://app", "show")
	require.NoError(t, err)
	assert.Equal(t, []string{"namespaced"}, messages(out))

	_, err = run(t, fake, "--source", "s3://bucket", "show")
	require.ErrorContains(t, err, "unsupported source scheme")
}

func TestEnvAndVersion(t *testing.T) {
	fake := setup(t)

	out, err := run(t, fake, "env")
	require.NoError(t, err)
	for _, name := range []string{
		"SDJOURNAL_SOURCE",
		"SDJOURNAL_OUTPUT",
		"SDJOURNAL_METRICS_ADDR",
		"SDJOURNAL_LOG_TARGET",
		"SDJOURNAL_DATA_THRESHOLD",
		"SDJOURNAL_CATALOG_CACHE_BYTES",
	} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, fake, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.Zero(t, fake.Opened(), "version and env do not open journals")
}

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1h", now.Add(-time.Hour)},
		{"90s", now.Add(-90 * time.Second)},
		{"2024-02-29T10:00:00Z", time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)},
		{"2024-02-29 10:00:00", time.Date(2024, 2, 29, 10, 0, 0, 0, time.Local)},
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSince(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
