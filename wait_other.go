//go:build !linux

package sdjournal

import (
	"context"
	"time"
)

const waitSlice = 250 * time.Millisecond

// WaitContext blocks until the journal changes or ctx is done.
func (j *Journal) WaitContext(ctx context.Context) (Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return EventNOP, err
		}
		ev, err := j.Wait(waitSlice)
		if err != nil || ev != EventNOP {
			return ev, err
		}
	}
}
