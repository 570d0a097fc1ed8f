package pipeline

import (
	"fmt"
	"time"
)

// BlockReport records the outcome of one block's encode-corrupt-decode
// cycle.
type BlockReport struct {
	Index           int
	ErrorsCorrected int
	Err             error
}

// Stats aggregates the per-block reports of one Process run.
type Stats struct {
	TotalBlocks     int
	FailedBlocks    int
	ErrorsCorrected int
	InputLength     int // bases, before padding
	Workers         int
	Duration        time.Duration
	Reports         []BlockReport
	Err             error // every per-block failure, combined
}

// OK reports whether every block decoded successfully.
func (s *Stats) OK() bool { return s.FailedBlocks == 0 }

// CorrectionRate returns the fraction of blocks that decoded successfully.
func (s *Stats) CorrectionRate() float64 {
	if s.TotalBlocks == 0 {
		return 0
	}
	return float64(s.TotalBlocks-s.FailedBlocks) / float64(s.TotalBlocks)
}

// Throughput returns processed bases per second.
func (s *Stats) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.InputLength) / s.Duration.Seconds()
}

func (s *Stats) String() string {
	return fmt.Sprintf(
		"blocks=%d failed=%d corrected=%d rate=%.2f%% workers=%d duration=%s throughput=%.0f bases/s",
		s.TotalBlocks, s.FailedBlocks, s.ErrorsCorrected,
		100*s.CorrectionRate(), s.Workers, s.Duration.Round(time.Millisecond), s.Throughput(),
	)
}
