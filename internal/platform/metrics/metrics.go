package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	entriesCreated  uint64
	entriesApproved uint64
	entriesRejected uint64
	reviewConflicts uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) EntryCreated()   { atomic.AddUint64(&c.entriesCreated, 1) }
func (c *Collector) EntryApproved()  { atomic.AddUint64(&c.entriesApproved, 1) }
func (c *Collector) EntryRejected()  { atomic.AddUint64(&c.entriesRejected, 1) }
func (c *Collector) ReviewConflict() { atomic.AddUint64(&c.reviewConflicts, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":   total,
		"errorsTotal":     errs,
		"avgDurationMs":   avg,
		"entriesCreated":  atomic.LoadUint64(&c.entriesCreated),
		"entriesApproved": atomic.LoadUint64(&c.entriesApproved),
		"entriesRejected": atomic.LoadUint64(&c.entriesRejected),
		"reviewConflicts": atomic.LoadUint64(&c.reviewConflicts),
	}
}
