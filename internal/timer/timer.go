package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is how often the cached time is refreshed. It is precise enough for
// I/O deadlines, which are counted in seconds.
const Resolution = 500 * time.Millisecond

var (
	millis = new(atomic.Int64)
	start  sync.Once
)

// Now returns the cached current time. The refreshing goroutine is started on the first
// call, so the first deadline is never zero.
func Now() time.Time {
	start.Do(run)

	ms := millis.Load()
	return time.UnixMilli(ms)
}

func run() {
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}
