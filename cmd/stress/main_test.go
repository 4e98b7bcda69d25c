package main

import (
	"bytes"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/internal/native/nativetest"
	"github.com/dynoinc/sdjournal/internal/source"
	"github.com/dynoinc/sdjournal/raw"
)

func setup(t *testing.T) (*nativetest.Library, *sdjournal.Library, config) {
	t.Helper()

	fake := nativetest.New()
	lib, err := sdjournal.NewLibrary(raw.New(fake), sdjournal.Config{CatalogCacheBytes: 1024})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.Zero(t, fake.Outstanding(), "native buffers leaked")
		assert.Zero(t, fake.OpenHandles(), "journals left open")
	})

	cfg := config{
		Source:      source.Default,
		Run:         "run1",
		Concurrency: 3,
		Duration:    30 * time.Millisecond,
		Settle:      20 * time.Millisecond,
		ValueSize:   64,
		Fields:      2,
	}
	return fake, lib, cfg
}

func TestWriteAndVerify(t *testing.T) {
	fake, lib, cfg := setup(t)
	fake.System().Append("MESSAGE=unrelated", "STRESS_RUN=other")

	wm := newMetrics("write")
	written := stressWrite(t.Context(), cfg, lib, wm)
	require.Positive(t, written)
	assert.Equal(t, written, wm.requestCount)
	assert.Zero(t, wm.errorCount)

	rm := newMetrics("read")
	r, err := verify(t.Context(), cfg, lib, rm)
	require.NoError(t, err)
	assert.Equal(t, report{entries: written}, r)
	assert.Equal(t, written, rm.requestCount)

	var out bytes.Buffer
	printResults(&out, []*metrics{wm, rm})
	assert.Contains(t, out.String(), "Test Results:")
	assert.Contains(t, out.String(), "write")
	assert.Contains(t, out.String(), strconv.FormatInt(written, 10))
}

func TestVerifyDetectsCorruption(t *testing.T) {
	fake, lib, cfg := setup(t)

	items, err := entry(cfg, 0, 0)
	require.NoError(t, err)
	require.NoError(t, lib.LogRecord(items...))
	require.NoError(t, lib.LogRecord(items...))

	fake.System().Append(
		"STRESS_RUN=run1",
		"STRESS_WORKER=1",
		"STRESS_SEQ=0",
		"STRESS_PAYLOAD=tampered",
		"STRESS_CHECKSUM="+strconv.FormatUint(xxhash.Sum64String("original"), 16),
	)

	r, err := verify(t.Context(), cfg, lib, newMetrics("read"))
	require.NoError(t, err)
	assert.Equal(t, report{entries: 3, corrupt: 1, duplicate: 1}, r)
}

func TestWriteErrors(t *testing.T) {
	fake, lib, cfg := setup(t)
	cfg.Concurrency = 1
	fake.FailNext("Sendv", syscall.EAGAIN)

	m := newMetrics("write")
	written := stressWrite(t.Context(), cfg, lib, m)
	assert.EqualValues(t, 1, m.errorCount)
	assert.Equal(t, written+1, m.requestCount)
}

func TestVerifyMissingField(t *testing.T) {
	fake, lib, cfg := setup(t)
	fake.System().Append("STRESS_RUN=run1", "MESSAGE=no payload")

	_, err := verify(t.Context(), cfg, lib, newMetrics("read"))
	require.ErrorIs(t, err, syscall.ENOENT)
}

func TestEntry(t *testing.T) {
	_, _, cfg := setup(t)

	items, err := entry(cfg, 2, 5)
	require.NoError(t, err)
	assert.Len(t, items, 8+cfg.Fields)
	assert.Contains(t, items, []byte("MESSAGE=stress run1 2/5"))
	assert.Contains(t, items, []byte("STRESS_EXTRA_1=1"))
	assert.NotEqual(t, payload(16, 2, 5), payload(16, 2, 6))
}
