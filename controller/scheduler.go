package controller

import "time"

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler uses the runtime timers.
var RealScheduler Scheduler = realScheduler{}

type ImmediateScheduler struct{}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

// AfterFunc ignores d and runs f on the calling goroutine.
func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	f()
	return firedTimer{}
}
