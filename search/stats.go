package search

import "github.com/trieminer/trieminer/metrics"

// Stats tracks a search engine's hashrate using the same 1/5/15-minute EWMA
// meter the rest of the mining engine uses for throughput reporting. A
// worker calls Mark periodically (not per-attempt, to avoid lock
// contention) with the number of attempts completed since the last mark.
type Stats struct {
	meter *metrics.Meter
}

// NewStats constructs a Stats tracker.
func NewStats() *Stats {
	return &Stats{meter: metrics.NewMeter()}
}

// Mark records n attempts.
func (s *Stats) Mark(n int64) { s.meter.Mark(n) }

// Attempts returns the total number of attempts recorded.
func (s *Stats) Attempts() int64 { return s.meter.Count() }

// HashesPerSecond returns the 1-minute EWMA attempt rate.
func (s *Stats) HashesPerSecond() float64 { return s.meter.Rate1() }

// MeanHashesPerSecond returns the mean attempt rate since the tracker was
// created.
func (s *Stats) MeanHashesPerSecond() float64 { return s.meter.RateMean() }
