//go:build linux

package sdjournal

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sys/unix"
)

// WaitContext blocks until the journal changes, the journal's own timeout
// passes or ctx is done. It polls Fd and then calls Process.
func (j *Journal) WaitContext(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return EventNOP, err
	}

	fd, err := j.Fd()
	if err != nil {
		return EventNOP, err
	}
	events, err := j.Events()
	if err != nil {
		return EventNOP, err
	}
	deadline, err := j.Timeout()
	if err != nil {
		return EventNOP, err
	}

	wake, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return EventNOP, fmt.Errorf("creating eventfd: %w", err)
	}
	defer unix.Close(wake)

	stop := context.AfterFunc(ctx, func() {
		var one [8]byte
		binary.NativeEndian.PutUint64(one[:], 1)
		_, _ = unix.Write(wake, one[:])
	})
	defer stop()

	fds := []unix.PollFd{
		{Fd: int32(fd), Events: int16(events)},
		{Fd: int32(wake), Events: unix.POLLIN},
	}
	for {
		timeout, err := pollTimeout(deadline)
		if err != nil {
			return EventNOP, err
		}
		_, err = unix.Poll(fds, timeout)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return EventNOP, fmt.Errorf("polling journal: %w", err)
		}
		break
	}

	if fds[1].Revents != 0 {
		return EventNOP, ctx.Err()
	}
	return j.Process()
}

// pollTimeout converts a CLOCK_MONOTONIC deadline into milliseconds from
// now, -1 meaning no deadline.
func pollTimeout(deadline time.Duration) (int, error) {
	if deadline == IndefiniteWait {
		return -1, nil
	}

	var now unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &now); err != nil {
		return 0, fmt.Errorf("reading monotonic clock: %w", err)
	}
	remaining := deadline - time.Duration(now.Nano())
	if remaining <= 0 {
		return 0, nil
	}
	ms := (remaining + time.Millisecond - 1) / time.Millisecond
	return int(min(ms, math.MaxInt32)), nil
}
