package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/influxdata/tdigest"
	"github.com/lithammer/shortuuid/v4"
	"github.com/olekukonko/tablewriter"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/internal/recordio"
	"github.com/dynoinc/sdjournal/internal/source"
	"github.com/dynoinc/sdjournal/raw"
)

// Configuration options for the stress test
type config struct {
	Mode        string // "write", "read" or "both"
	Source      string
	Run         string
	Concurrency int
	Duration    time.Duration
	Settle      time.Duration
	ValueSize   int
	Fields      int
	Debug       bool
}

// Metrics collected during one phase of the test
type metrics struct {
	sync.Mutex
	phase        string
	requestCount int64
	errorCount   int64
	startTime    time.Time
	endTime      time.Time
	minLatency   float64
	maxLatency   float64
	totalLatency float64
	digest       *tdigest.TDigest
}

func newMetrics(phase string) *metrics {
	return &metrics{
		phase:      phase,
		minLatency: float64(time.Hour),
		digest:     tdigest.NewWithCompression(100),
	}
}

func (m *metrics) addLatency(latency float64) {
	m.Lock()
	defer m.Unlock()

	m.requestCount++
	m.totalLatency += latency

	if latency < m.minLatency {
		m.minLatency = latency
	}
	if latency > m.maxLatency {
		m.maxLatency = latency
	}

	m.digest.Add(latency, 1)
}

func (m *metrics) addError() {
	m.Lock()
	defer m.Unlock()
	m.errorCount++
	m.requestCount++
}

func (m *metrics) calculatePercentile(p float64) float64 {
	m.Lock()
	defer m.Unlock()
	if m.requestCount == m.errorCount {
		return 0
	}
	return m.digest.Quantile(p / 100)
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.Mode, "mode", "both", "Phases to run (write, read, both)")
	flag.StringVar(&cfg.Source, "source", source.Default, "Journal source URL to read back from")
	flag.StringVar(&cfg.Run, "run", "", "Run id to read back (defaults to a new id)")
	flag.IntVar(&cfg.Concurrency, "concurrency", 10, "Number of concurrent writers")
	flag.DurationVar(&cfg.Duration, "duration", 10*time.Second, "Write duration")
	flag.DurationVar(&cfg.Settle, "settle", 5*time.Second, "How long the reader waits for missing entries")
	flag.IntVar(&cfg.ValueSize, "value-size", 100, "Size of the payload field in bytes")
	flag.IntVar(&cfg.Fields, "fields", 4, "Number of extra fields per entry")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug output")
	flag.Parse()

	if cfg.Run == "" {
		cfg.Run = shortuuid.New()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lib, err := sdjournal.NewLibrary(raw.Default(), sdjournal.Config{CatalogCacheBytes: 1 << 20})
	if err != nil {
		log.Fatalf("Failed to set up library: %v", err)
	}

	fmt.Printf("Stress run: %s (mode %s)\n", cfg.Run, cfg.Mode)
	fmt.Printf("Concurrency: %d, Duration: %s\n", cfg.Concurrency, cfg.Duration)
	fmt.Printf("Value size: %d bytes, Extra fields: %d\n", cfg.ValueSize, cfg.Fields)
	fmt.Println("Press Ctrl+C to stop the test early")
	fmt.Println()

	var (
		allMetrics []*metrics
		written    int64
	)
	if cfg.Mode == "write" || cfg.Mode == "both" {
		m := newMetrics("write")
		written = stressWrite(ctx, cfg, lib, m)
		allMetrics = append(allMetrics, m)
	}

	failed := false
	if cfg.Mode == "read" || cfg.Mode == "both" {
		m := newMetrics("read")
		r, err := verify(ctx, cfg, lib, m)
		if err != nil {
			log.Fatalf("Failed to read back run %s: %v", cfg.Run, err)
		}
		allMetrics = append(allMetrics, m)

		fmt.Printf("Read back %d entries (%d corrupt, %d duplicate)\n", r.entries, r.corrupt, r.duplicate)
		if written > 0 && r.entries-r.duplicate != written {
			fmt.Printf("Missing entries: wrote %d, found %d\n", written, r.entries-r.duplicate)
			failed = true
		}
		failed = failed || r.corrupt > 0 || r.duplicate > 0
	}

	printResults(os.Stdout, allMetrics)
	if failed {
		os.Exit(1)
	}
}

// payload returns a printable payload of n bytes that differs per entry.
func payload(n int, worker, seq int64) []byte {
	const validChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = validChars[(int64(i)+worker*31+seq*7)%int64(len(validChars))]
	}
	return b
}

// entry builds the fields of one stress entry.
func entry(cfg config, worker, seq int64) ([][]byte, error) {
	body := payload(cfg.ValueSize, worker, seq)
	records := []recordio.Record{
		{Field: "MESSAGE", Value: fmt.Appendf(nil, "stress %s %d/%d", cfg.Run, worker, seq)},
		{Field: "PRIORITY", Value: []byte(strconv.Itoa(int(sdjournal.LevelDebug)))},
		{Field: "SYSLOG_IDENTIFIER", Value: []byte("sdjournal-stress")},
		{Field: "STRESS_RUN", Value: []byte(cfg.Run)},
		{Field: "STRESS_WORKER", Value: []byte(strconv.FormatInt(worker, 10))},
		{Field: "STRESS_SEQ", Value: []byte(strconv.FormatInt(seq, 10))},
		{Field: "STRESS_PAYLOAD", Value: body},
		{Field: "STRESS_CHECKSUM", Value: []byte(strconv.FormatUint(xxhash.Sum64(body), 16))},
	}
	for i := range cfg.Fields {
		records = append(records, recordio.Record{
			Field: "STRESS_EXTRA_" + strconv.Itoa(i),
			Value: []byte(strconv.Itoa(i)),
		})
	}
	return recordio.WriteRecords(records)
}

// stressWrite runs cfg.Concurrency writers for cfg.Duration and returns the
// number of entries written.
func stressWrite(ctx context.Context, cfg config, lib *sdjournal.Library, m *metrics) int64 {
	m.startTime = time.Now()
	defer func() { m.endTime = time.Now() }()

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	var (
		wg      sync.WaitGroup
		written atomic.Int64
	)
	for i := range cfg.Concurrency {
		wg.Add(1)
		go func(worker int64) {
			defer wg.Done()

			for seq := int64(0); ctx.Err() == nil; seq++ {
				items, err := entry(cfg, worker, seq)
				if err != nil {
					m.addError()
					continue
				}

				start := time.Now()
				err = lib.LogRecord(items...)
				latency := time.Since(start).Seconds() * 1000 // convert to ms

				if err != nil {
					if cfg.Debug {
						fmt.Printf("Write error: worker=%d seq=%d: %v\n", worker, seq, err)
					}
					m.addError()
					continue
				}
				m.addLatency(latency)
				written.Add(1)
			}
		}(int64(i))
	}

	wg.Wait()
	return written.Load()
}

type report struct {
	entries   int64
	corrupt   int64
	duplicate int64
}

// verify reads back the entries of cfg.Run and checks their payloads. It keeps
// waiting for new entries until cfg.Settle passes without any arriving.
func verify(ctx context.Context, cfg config, lib *sdjournal.Library, m *metrics) (report, error) {
	m.startTime = time.Now()
	defer func() { m.endTime = time.Now() }()

	j, err := source.Open(lib, cfg.Source)
	if err != nil {
		return report{}, err
	}
	defer j.Close()

	if err := j.AddMatchField("STRESS_RUN", cfg.Run); err != nil {
		return report{}, err
	}

	var r report
	seen := make(map[string]struct{})
	for {
		start := time.Now()
		for e, err := range j.Entries() {
			if err != nil {
				return r, err
			}
			ok, key, err := check(e)
			latency := time.Since(start).Seconds() * 1000 // convert to ms
			start = time.Now()
			if err != nil {
				return r, err
			}

			r.entries++
			if _, dup := seen[key]; dup {
				r.duplicate++
			}
			seen[key] = struct{}{}
			if !ok {
				if cfg.Debug {
					fmt.Printf("Checksum mismatch: %s\n", key)
				}
				r.corrupt++
				m.addError()
				continue
			}
			m.addLatency(latency)
		}

		waitCtx, cancel := context.WithTimeout(ctx, cfg.Settle)
		_, err := j.WaitContext(waitCtx)
		cancel()
		switch {
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			return r, nil
		case err != nil:
			return r, err
		}
	}
}

// check verifies the checksum of the current entry and returns its
// worker/seq key.
func check(e sdjournal.Entry) (bool, string, error) {
	worker, err := e.Data("STRESS_WORKER")
	if err != nil {
		return false, "", err
	}
	seq, err := e.Data("STRESS_SEQ")
	if err != nil {
		return false, "", err
	}
	key := worker + "/" + seq

	body, err := e.DataBytes("STRESS_PAYLOAD")
	if err != nil {
		return false, key, err
	}
	sum, err := e.Data("STRESS_CHECKSUM")
	if err != nil {
		return false, key, err
	}
	return strconv.FormatUint(xxhash.Sum64(body), 16) == sum, key, nil
}

func printResults(w io.Writer, allMetrics []*metrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Phase", "Total", "Success", "Failed", "Throughput", "Min", "Max", "Avg", "P50", "P90", "P99"})
	table.SetBorder(true)

	for _, m := range allMetrics {
		duration := m.endTime.Sub(m.startTime).Seconds()
		success := m.requestCount - m.errorCount

		table.Append([]string{
			m.phase,
			fmt.Sprintf("%d", m.requestCount),
			fmt.Sprintf("%d (%.2f%%)", success, 100-float64(m.errorCount)/float64(max(m.requestCount, 1))*100),
			fmt.Sprintf("%d (%.2f%%)", m.errorCount, float64(m.errorCount)/float64(max(m.requestCount, 1))*100),
			fmt.Sprintf("%.2f/s", float64(m.requestCount)/max(duration, 1e-9)),
			fmt.Sprintf("%.2fms", m.minLatency),
			fmt.Sprintf("%.2fms", m.maxLatency),
			fmt.Sprintf("%.2fms", m.totalLatency/float64(max(success, 1))),
			fmt.Sprintf("%.2fms", m.calculatePercentile(50)),
			fmt.Sprintf("%.2fms", m.calculatePercentile(90)),
			fmt.Sprintf("%.2fms", m.calculatePercentile(99)),
		})
	}

	fmt.Fprintln(w, "\nTest Results:")
	table.Render()
}
