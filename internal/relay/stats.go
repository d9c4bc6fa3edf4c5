package relay

import "sync/atomic"

// Stats counts relay outcomes for the ops health endpoint.
type Stats struct {
	relayed  atomic.Int64
	failed   atomic.Int64
	rejected atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Relayed  int64 `json:"relayed"`
	Failed   int64 `json:"failed"`
	Rejected int64 `json:"rejected"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Relayed:  s.relayed.Load(),
		Failed:   s.failed.Load(),
		Rejected: s.rejected.Load(),
	}
}
