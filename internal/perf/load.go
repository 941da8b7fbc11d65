// Package perf drives a fixed number of paced virtual users against one
// request and checks the latency and success thresholds of the run.
package perf

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/simplecom/storefront-smoke/internal/logging"
	"github.com/simplecom/storefront-smoke/internal/scenario"
)

// Options sizes a load run and sets its pass thresholds.
type Options struct {
	// VUs is the number of concurrent virtual users.
	VUs int
	// Duration bounds the whole run.
	Duration time.Duration
	// Pace is the minimum gap between two requests of one user.
	Pace time.Duration
	// MaxP95 is the exclusive upper bound on the 95th percentile latency.
	MaxP95 time.Duration
	// MinCheckRate is the exclusive lower bound on the share of passing
	// requests.
	MinCheckRate float64
}

// DefaultOptions watches the users listing with five users for two minutes.
// The p95 bound is loose so that public API variance does not trip it.
func DefaultOptions() Options {
	return Options{
		VUs:          5,
		Duration:     2 * time.Minute,
		Pace:         time.Second,
		MaxP95:       18 * time.Second,
		MinCheckRate: 0.99,
	}
}

// Stats is what a run observed.
type Stats struct {
	Latencies []time.Duration
	Passed    int
	Failed    int
}

// Requests is the number of requests that completed.
func (s Stats) Requests() int {
	return s.Passed + s.Failed
}

// P95 returns the nearest-rank 95th percentile latency, or zero when no
// request completed.
func (s Stats) P95() time.Duration {
	if len(s.Latencies) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), s.Latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rank := int(math.Ceil(0.95 * float64(len(sorted))))
	return sorted[rank-1]
}

// CheckRate returns the share of requests that passed.
func (s Stats) CheckRate() float64 {
	if s.Requests() == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Requests())
}

// Run starts opts.VUs users that each call request at most once per
// opts.Pace until opts.Duration has passed or ctx is cancelled. A request
// that returns an error counts as failed; its latency is still recorded.
func Run(ctx context.Context, opts Options, request func() error, logger logging.Logger) Stats {
	logger = logging.OrDefault(logger)
	ctx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	var (
		mu    sync.Mutex
		stats Stats
	)
	record := func(vu logging.Logger, elapsed time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.Latencies = append(stats.Latencies, elapsed)
		if err != nil {
			stats.Failed++
			vu.Printf("Request failed after %s: %v", elapsed, err)
			return
		}
		stats.Passed++
	}

	logger.Printf("Starting %d virtual users for %s", opts.VUs, opts.Duration)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.VUs; i++ {
		limiter := rate.NewLimiter(rate.Every(opts.Pace), 1)
		vu := logging.Prefixed(logger, fmt.Sprintf("[vu %d] ", i+1))
		g.Go(func() error {
			for {
				// Wait fails once the next slot would land past the deadline.
				if err := limiter.Wait(ctx); err != nil {
					return nil
				}
				start := time.Now()
				err := request()
				record(vu, time.Since(start), err)
			}
		})
	}
	_ = g.Wait()

	logger.Printf("Load run finished: %d requests, %d failed, p95 %s", stats.Requests(), stats.Failed, stats.P95())
	return stats
}

// Checks turns the thresholds of opts into checks against stats. A run that
// completed no requests fails both.
func Checks(stats Stats, opts Options) []scenario.Check {
	return []scenario.Check{
		{
			Name: fmt.Sprintf("p95 latency below %s", opts.MaxP95),
			Run: func() error {
				if stats.Requests() == 0 {
					return scenario.Failf("no requests completed")
				}
				if p95 := stats.P95(); p95 >= opts.MaxP95 {
					return scenario.Failf("p95 was %s over %d requests", p95, stats.Requests())
				}
				return nil
			},
		},
		{
			Name: fmt.Sprintf("check rate above %.2f", opts.MinCheckRate),
			Run: func() error {
				if stats.Requests() == 0 {
					return scenario.Failf("no requests completed")
				}
				if r := stats.CheckRate(); r <= opts.MinCheckRate {
					return scenario.Failf("%d of %d requests failed (rate %.3f)", stats.Failed, stats.Requests(), r)
				}
				return nil
			},
		},
	}
}
