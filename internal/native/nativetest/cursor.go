package nativetest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/dynoinc/sdjournal/id128"
)

// cursor is the parsed form of the text produced by formatCursor. Any item
// may be missing from tokens supplied by callers.
type cursor struct {
	store    *id128.ID
	seqnum   *uint64
	boot     *id128.ID
	mono     *uint64
	realtime *uint64
}

func formatCursor(e *Entry) string {
	h := xxhash.New()
	for _, f := range e.Fields {
		_, _ = h.Write(f)
	}
	return fmt.Sprintf("s=%s;i=%x;b=%s;m=%x;t=%x;x=%x",
		e.store.ID, e.Seqnum, e.BootID, e.Monotonic, e.Realtime, h.Sum64())
}

func parseCursor(s string) (cursor, bool) {
	var c cursor
	if s == "" {
		return c, false
	}
	for _, item := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(item, "=")
		if !ok || len(k) != 1 {
			return c, false
		}
		switch k {
		case "s", "b":
			id, err := id128.Parse(v)
			if err != nil {
				return c, false
			}
			if k == "s" {
				c.store = &id
			} else {
				c.boot = &id
			}
		case "i", "m", "t":
			n, err := strconv.ParseUint(v, 16, 64)
			if err != nil {
				return c, false
			}
			switch k {
			case "i":
				c.seqnum = &n
			case "m":
				c.mono = &n
			default:
				c.realtime = &n
			}
		case "x":
			if _, err := strconv.ParseUint(v, 16, 64); err != nil {
				return c, false
			}
		default:
			return c, false
		}
	}
	if c.seqnum == nil && c.realtime == nil && c.mono == nil {
		return c, false
	}
	return c, true
}

func (c cursor) matches(e *Entry) bool {
	if c.store != nil && *c.store != e.store.ID {
		return false
	}
	if c.seqnum != nil && *c.seqnum != e.Seqnum {
		return false
	}
	if c.boot != nil && *c.boot != e.BootID {
		return false
	}
	if c.mono != nil && *c.mono != e.Monotonic {
		return false
	}
	if c.realtime != nil && *c.realtime != e.Realtime {
		return false
	}
	return true
}
