package raw

import (
	"errors"
	"math"
	"runtime"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native/nativetest"
)

func setup(t *testing.T) (*nativetest.Library, *Library) {
	t.Helper()

	fake := nativetest.New()
	t.Cleanup(func() {
		assert.Zero(t, fake.Outstanding(), "native buffers leaked")
	})
	return fake, New(fake)
}

func openDefault(t *testing.T, lib *Library) *Journal {
	t.Helper()

	j, err := lib.Open(AllFiles, AllUsers)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func appendMessages(fake *nativetest.Library, n int) {
	for i := 1; i <= n; i++ {
		fake.System().Append("MESSAGE="+strconv.Itoa(i), "N="+strconv.Itoa(i))
	}
}

func message(t *testing.T, j *Journal) string {
	t.Helper()

	d, err := j.GetData("MESSAGE")
	require.NoError(t, err)
	return string(d)
}

func TestUnpositionedAccessFails(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 1)
	j := openDefault(t, lib)

	_, err := j.GetData("MESSAGE")
	require.ErrorIs(t, err, syscall.EADDRNOTAVAIL)

	var nerr *NativeError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "sd_journal_get_data", nerr.Op)
	assert.Equal(t, -int(syscall.EADDRNOTAVAIL), nerr.Code)

	_, err = j.GetCursor()
	require.ErrorIs(t, err, syscall.EADDRNOTAVAIL)
	_, err = j.GetRealtimeUsec()
	require.ErrorIs(t, err, syscall.EADDRNOTAVAIL)
}

func TestMovement(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 5)
	j := openDefault(t, lib)

	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Done, Count: 1}, m)
	assert.Equal(t, "MESSAGE=1", message(t, j))

	m, err = j.NextSkip(2)
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Done, Count: 2}, m)
	assert.Equal(t, "MESSAGE=3", message(t, j))

	m, err = j.NextSkip(5)
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Limited, Count: 2}, m)
	assert.Equal(t, "MESSAGE=5", message(t, j))

	m, err = j.Next()
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: EOF}, m)

	m, err = j.PreviousSkip(0)
	require.NoError(t, err)
	assert.Equal(t, EOF, m.Kind)
	assert.Equal(t, "MESSAGE=5", message(t, j))

	_, err = j.NextSkip(-1)
	require.ErrorIs(t, err, ErrRange)
	_, err = j.PreviousSkip(-3)
	require.ErrorIs(t, err, ErrRange)
	assert.Equal(t, "MESSAGE=5", message(t, j), "rejected skips do not move")

	m, err = j.PreviousSkip(3)
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Done, Count: 3}, m)
	assert.Equal(t, "MESSAGE=2", message(t, j))

	m, err = j.Previous()
	require.NoError(t, err)
	assert.Equal(t, Done, m.Kind)
	m, err = j.Previous()
	require.NoError(t, err)
	assert.Equal(t, EOF, m.Kind)
}

func TestHelloWorld(t *testing.T) {
	_, lib := setup(t)

	require.NoError(t, lib.Print(LevelInfo, "Hello World!"))

	j := openDefault(t, lib)
	require.NoError(t, j.AddMatch([]byte("MESSAGE=Hello World!")))

	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, Done, m.Kind)
	assert.Equal(t, "MESSAGE=Hello World!", message(t, j))

	d, err := j.GetData("PRIORITY")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo.Field(), string(d))
}

func TestNonexistentNamespace(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 3)

	j, err := lib.OpenNamespace("doesnotexist", SelectedNamespaceOnly, AllFiles, AllUsers)
	require.NoError(t, err)
	defer j.Close()

	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, EOF, m.Kind)
}

func TestOpenVariants(t *testing.T) {
	fake, lib := setup(t)
	fake.System().Append("MESSAGE=default")
	fake.Namespace("app").Append("MESSAGE=app")
	fake.Directory("/var/log/journal/abc").Append("MESSAGE=dir")
	fake.File("/tmp/a.journal").Append("MESSAGE=file a")
	fake.File("/tmp/b.journal").Append("MESSAGE=file b")

	collect := func(j *Journal, err error) []string {
		require.NoError(t, err)
		defer j.Close()

		var out []string
		for {
			m, err := j.Next()
			require.NoError(t, err)
			if m.Kind == EOF {
				return out
			}
			out = append(out, message(t, j))
		}
	}

	assert.Equal(t, []string{"MESSAGE=app"},
		collect(lib.OpenNamespace("app", SelectedNamespaceOnly, AllFiles, AllUsers)))
	assert.Equal(t, []string{"MESSAGE=default", "MESSAGE=app"},
		collect(lib.OpenNamespace("app", DefaultNamespaceIncluded, AllFiles, AllUsers)))
	assert.Equal(t, []string{"MESSAGE=default", "MESSAGE=app"},
		collect(lib.OpenAllNamespaces(AllFiles, AllUsers)))
	assert.Equal(t, []string{"MESSAGE=dir"},
		collect(lib.OpenDirectory("/var/log/journal/abc", FullPath, AllUsers)))
	assert.Equal(t, []string{"MESSAGE=file a", "MESSAGE=file b"},
		collect(lib.OpenFiles([]string{"/tmp/a.journal", "/tmp/b.journal"})))
	assert.Empty(t, collect(lib.Open(RuntimeOnly, SystemOnly)))

	_, err := lib.OpenDirectory("/missing", FullPath, AllUsers)
	require.ErrorIs(t, err, syscall.ENOENT)
	_, err = lib.OpenFiles([]string{"/tmp/a.journal", "/missing.journal"})
	require.ErrorIs(t, err, syscall.ENOENT)
	assert.Zero(t, fake.OpenHandles())
}

func TestDataThreshold(t *testing.T) {
	_, lib := setup(t)
	j := openDefault(t, lib)

	n, err := j.GetDataThreshold()
	require.NoError(t, err)
	assert.EqualValues(t, nativetest.DefaultDataThreshold, n)

	require.NoError(t, j.SetDataThreshold(5))
	n, err = j.GetDataThreshold()
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	require.NoError(t, j.SetDataThreshold(0))
	n, err = j.GetDataThreshold()
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestDataEnumeration(t *testing.T) {
	fake, lib := setup(t)
	fake.System().Append("A=1", "B=2", "C=3")
	j := openDefault(t, lib)

	_, err := j.Next()
	require.NoError(t, err)
	before, err := j.GetCursor()
	require.NoError(t, err)

	var got []string
	var kept [][]byte
	for {
		e, err := j.EnumerateData()
		require.NoError(t, err)
		v, ok := e.Get()
		if !ok {
			break
		}
		kept = append(kept, v)
		got = append(got, string(v))
	}
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, got)
	assert.Equal(t, "A=1", string(kept[0]), "enumerated values are copies")

	// Exhausted enumerations stay exhausted
	for range 3 {
		e, err := j.EnumerateData()
		require.NoError(t, err)
		assert.True(t, e.EOF())
	}

	// Restart is idempotent and does not move the entry cursor
	require.NoError(t, j.RestartData())
	require.NoError(t, j.RestartData())
	e, err := j.EnumerateAvailableData()
	require.NoError(t, err)
	v, ok := e.Get()
	require.True(t, ok)
	assert.Equal(t, "A=1", string(v))

	after, err := j.GetCursor()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFieldAndUniqueEnumeration(t *testing.T) {
	fake, lib := setup(t)
	fake.System().Append("MESSAGE=a", "UNIT=x.service")
	fake.System().Append("MESSAGE=b", "UNIT=y.service")
	fake.System().Append("MESSAGE=c", "UNIT=x.service", "EXTRA=1")
	j := openDefault(t, lib)

	drain := func(next func() (Enumeration[[]byte], error)) []string {
		var out []string
		for {
			e, err := next()
			require.NoError(t, err)
			v, ok := e.Get()
			if !ok {
				return out
			}
			out = append(out, string(v))
		}
	}

	assert.Equal(t, []string{"MESSAGE", "UNIT", "EXTRA"}, drain(j.EnumerateFields))
	assert.Empty(t, drain(j.EnumerateFields))
	require.NoError(t, j.RestartFields())
	assert.Len(t, drain(j.EnumerateFields), 3)

	_, err := j.EnumerateUnique()
	require.ErrorIs(t, err, syscall.EINVAL, "unique enumeration needs a query")

	require.NoError(t, j.QueryUnique("UNIT"))
	assert.Equal(t, []string{"UNIT=x.service", "UNIT=y.service"}, drain(j.EnumerateUnique))
	require.NoError(t, j.RestartUnique())
	assert.Equal(t, []string{"UNIT=x.service", "UNIT=y.service"}, drain(j.EnumerateAvailableUnique))

	require.ErrorIs(t, j.QueryUnique("bad field"), syscall.EINVAL)
}

func TestCursorRoundTrip(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 5)
	j := openDefault(t, lib)

	_, err := j.NextSkip(3)
	require.NoError(t, err)
	cursor, err := j.GetCursor()
	require.NoError(t, err)

	ok, err := j.TestCursor(string(cursor))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = j.NextSkip(2)
	require.NoError(t, err)
	ok, err = j.TestCursor(string(cursor))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, j.SeekCursor(string(cursor)))
	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, Done, m.Kind)
	again, err := j.GetCursor()
	require.NoError(t, err)
	assert.Equal(t, cursor, again)
	assert.Equal(t, "MESSAGE=3", message(t, j))

	// Cursors survive reopening
	j2 := openDefault(t, lib)
	require.NoError(t, j2.SeekCursor(string(cursor)))
	_, err = j2.Next()
	require.NoError(t, err)
	assert.Equal(t, "MESSAGE=3", message(t, j2))

	require.ErrorIs(t, j.SeekCursor("not a cursor"), syscall.EINVAL)
}

func TestMatchFiltering(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 3)
	j := openDefault(t, lib)

	require.NoError(t, j.AddMatch([]byte("N=2")))
	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, Done, m.Kind)
	assert.Equal(t, "MESSAGE=2", message(t, j))
	m, err = j.Next()
	require.NoError(t, err)
	assert.Equal(t, EOF, m.Kind)

	require.NoError(t, j.FlushMatches())
	require.NoError(t, j.SeekHead())
	m, err = j.NextSkip(3)
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Done, Count: 3}, m)

	require.NoError(t, j.SeekHead())
	require.NoError(t, j.AddMatch([]byte("N=1")))
	require.NoError(t, j.AddConjunction())
	require.NoError(t, j.AddMatch([]byte("N=2")))
	m, err = j.Next()
	require.NoError(t, err)
	assert.Equal(t, EOF, m.Kind)

	require.NoError(t, j.FlushMatches())
	require.NoError(t, j.AddMatch([]byte("N=1")))
	require.NoError(t, j.AddDisjunction())
	require.NoError(t, j.AddMatch([]byte("N=3")))
	require.NoError(t, j.SeekHead())
	m, err = j.NextSkip(5)
	require.NoError(t, err)
	assert.Equal(t, Movement{Kind: Limited, Count: 2}, m)

	require.ErrorIs(t, j.AddMatch([]byte("missing separator")), syscall.EINVAL)
}

func TestTimestamps(t *testing.T) {
	fake, lib := setup(t)
	boot := fake.BootID()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		fake.System().AppendAt(base.Add(time.Duration(i)*time.Minute), "MESSAGE="+strconv.Itoa(i))
	}
	j := openDefault(t, lib)

	_, _, ok, err := j.GetCutoffMonotonicUsec(id128.MustParse("00000000000000000000000000000001"))
	require.NoError(t, err)
	assert.False(t, ok)

	from, to, ok, err := j.GetCutoffRealtimeUsec()
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, base.UnixMicro(), from)
	assert.EqualValues(t, base.Add(2*time.Minute).UnixMicro(), to)

	require.NoError(t, j.SeekRealtimeUsec(uint64(base.Add(30*time.Second).UnixMicro())))
	_, err = j.Next()
	require.NoError(t, err)
	assert.Equal(t, "MESSAGE=1", message(t, j))

	usec, gotBoot, err := j.GetMonotonicUsec()
	require.NoError(t, err)
	assert.Equal(t, boot, gotBoot)

	mfrom, mto, ok, err := j.GetCutoffMonotonicUsec(boot)
	require.NoError(t, err)
	require.True(t, ok)
	assert.LessOrEqual(t, mfrom, usec)
	assert.GreaterOrEqual(t, mto, usec)

	require.NoError(t, j.SeekHead())
	require.NoError(t, j.SeekMonotonicUsec(boot, usec))
	_, err = j.Next()
	require.NoError(t, err)
	assert.Equal(t, "MESSAGE=1", message(t, j))

	rt, err := j.GetRealtimeUsec()
	require.NoError(t, err)
	assert.EqualValues(t, base.Add(time.Minute).UnixMicro(), rt)
}

func TestEmptyJournalCutoff(t *testing.T) {
	_, lib := setup(t)
	j := openDefault(t, lib)

	_, _, ok, err := j.GetCutoffRealtimeUsec()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbeddedNUL(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 1)
	j := openDefault(t, lib)
	_, err := j.Next()
	require.NoError(t, err)

	_, err = j.GetData("MESS\x00AGE")
	require.ErrorIs(t, err, ErrEmbeddedNUL)
	require.ErrorIs(t, j.SeekCursor("s=\x00"), ErrEmbeddedNUL)
	_, err = j.TestCursor("\x00")
	require.ErrorIs(t, err, ErrEmbeddedNUL)
	require.ErrorIs(t, j.QueryUnique("A\x00"), ErrEmbeddedNUL)
	require.ErrorIs(t, lib.Print(LevelInfo, "a\x00b"), ErrEmbeddedNUL)
	_, err = lib.OpenNamespace("a\x00", SelectedNamespaceOnly, AllFiles, AllUsers)
	require.ErrorIs(t, err, ErrEmbeddedNUL)
	_, err = lib.OpenDirectory("/a\x00", FullPath, AllUsers)
	require.ErrorIs(t, err, ErrEmbeddedNUL)
	_, err = lib.OpenFiles([]string{"/ok", "/a\x00"})
	require.ErrorIs(t, err, ErrEmbeddedNUL)

	// Length delimited inputs may carry any byte
	require.NoError(t, j.AddMatch([]byte("MESSAGE=a\x00b")))
	require.NoError(t, lib.Sendv([][]byte{[]byte("MESSAGE=a\x00b")}))
}

func TestSendv(t *testing.T) {
	fake, lib := setup(t)

	require.NoError(t, lib.Sendv([][]byte{
		[]byte("MESSAGE=structured"),
		[]byte("REQUEST_ID=42"),
		[]byte("_PID=1"),
	}))
	require.ErrorIs(t, lib.Sendv([][]byte{[]byte("NOSEPARATOR")}), syscall.EINVAL)
	assert.Equal(t, 1, fake.System().Len())

	j := openDefault(t, lib)
	_, err := j.Next()
	require.NoError(t, err)
	d, err := j.GetData("REQUEST_ID")
	require.NoError(t, err)
	assert.Equal(t, "REQUEST_ID=42", string(d))

	_, err = j.GetData("_PID")
	require.ErrorIs(t, err, syscall.ENOENT, "trusted fields are not accepted from clients")
}

func TestCatalog(t *testing.T) {
	fake, lib := setup(t)
	id := id128.MustParse("fc2e22bc6ee647b6b90729ab34a250b1")
	fake.AddCatalog(id, "-- fc2e22bc6ee647b6b90729ab34a250b1\nSubject: Process @COMM@ dumped core")
	fake.System().Append("MESSAGE=core", "MESSAGE_ID="+id.String(), "COMM=bash")

	text, err := lib.CatalogForMessageID(id)
	require.NoError(t, err)
	assert.Contains(t, string(text), "@COMM@")

	_, err = lib.CatalogForMessageID(id128.Null)
	require.ErrorIs(t, err, syscall.ENOENT)

	j := openDefault(t, lib)
	_, err = j.Next()
	require.NoError(t, err)
	text, err = j.GetCatalog()
	require.NoError(t, err)
	assert.Contains(t, string(text), "Process bash dumped core")
}

func TestWaitAndProcess(t *testing.T) {
	fake, lib := setup(t)
	j := openDefault(t, lib)

	fd, err := j.GetFd()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fd, 0)

	events, err := j.GetEvents()
	require.NoError(t, err)
	assert.Equal(t, 0x1, events) // POLLIN

	timeout, err := j.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), timeout)

	ev, err := j.Wait(0)
	require.NoError(t, err)
	assert.Equal(t, EventNOP, ev)

	fake.System().Append("MESSAGE=new")
	ev, err = j.Wait(math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, EventAppend, ev)

	fake.System().Rotate()
	ev, err = j.Process()
	require.NoError(t, err)
	assert.Equal(t, EventInvalidate, ev)
}

func TestUsageAndFiles(t *testing.T) {
	fake, lib := setup(t)
	fake.System().Append("MESSAGE=12345")
	j := openDefault(t, lib)

	n, err := j.GetUsage()
	require.NoError(t, err)
	assert.EqualValues(t, len("MESSAGE=12345"), n)

	persistent, err := j.HasPersistentFiles()
	require.NoError(t, err)
	assert.True(t, persistent)
	runtimeFiles, err := j.HasRuntimeFiles()
	require.NoError(t, err)
	assert.False(t, runtimeFiles)
}

func TestClose(t *testing.T) {
	fake, lib := setup(t)
	j, err := lib.Open(AllFiles, AllUsers)
	require.NoError(t, err)
	require.Equal(t, 1, fake.OpenHandles())

	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
	assert.Zero(t, fake.OpenHandles())

	_, err = j.Next()
	require.ErrorIs(t, err, ErrClosed)
	_, err = j.NextSkip(-1)
	require.ErrorIs(t, err, ErrClosed)
	_, err = j.GetData("MESSAGE")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, j.RestartData(), ErrClosed)
	_, err = j.Wait(0)
	require.ErrorIs(t, err, ErrClosed)
}

func TestUnreachableJournalIsClosed(t *testing.T) {
	fake, lib := setup(t)

	func() {
		_, err := lib.Open(AllFiles, AllUsers)
		require.NoError(t, err)
	}()
	require.Eventually(t, func() bool {
		runtime.GC()
		return fake.OpenHandles() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestFaultPropagation(t *testing.T) {
	fake, lib := setup(t)
	appendMessages(fake, 2)
	j := openDefault(t, lib)

	fake.FailNext("Next", syscall.EIO)
	_, err := j.Next()
	require.ErrorIs(t, err, syscall.EIO)

	var nerr *NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "sd_journal_next: input/output error", nerr.Error())

	// The failed call did not move
	m, err := j.Next()
	require.NoError(t, err)
	assert.Equal(t, Done, m.Kind)
	assert.Equal(t, "MESSAGE=1", message(t, j))

	fake.FailNext("GetCursor", syscall.ENOMEM)
	_, err = j.GetCursor()
	require.ErrorIs(t, err, syscall.ENOMEM)

	fake.FailNext("Open", syscall.EACCES)
	_, err = lib.Open(AllFiles, AllUsers)
	require.ErrorIs(t, err, syscall.EACCES)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "PRIORITY=0", LevelEmergency.Field())
	assert.Equal(t, "PRIORITY=7", LevelDebug.Field())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.False(t, Level(8).Valid())

	l, ok := ParseLevel("err")
	assert.True(t, ok)
	assert.Equal(t, LevelError, l)
	l, ok = ParseLevel("6")
	assert.True(t, ok)
	assert.Equal(t, LevelInfo, l)
	_, ok = ParseLevel("9")
	assert.False(t, ok)

	_, lib := setup(t)
	require.ErrorIs(t, lib.Print(Level(9), "x"), syscall.EINVAL)
}
