package windowstate

import "time"

// DefaultEventDelay is how long resize and move bursts must settle before the
// window geometry is read.
const DefaultEventDelay = 100 * time.Millisecond

// Timer is a pending delayed task.
type Timer interface {
	// Stop cancels the task. It reports false if the task already ran or was
	// stopped.
	Stop() bool
}

// Scheduler creates delayed tasks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealScheduler runs tasks on Go timers.
var RealScheduler Scheduler = realScheduler{}
