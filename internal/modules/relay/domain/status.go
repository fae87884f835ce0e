package domain

import (
	"sync"
	"time"
)

// Skip reasons reported when a cycle ends early
const (
	SkipDestinationUnavailable = "destination_unavailable"
	SkipFetchFailed            = "fetch_failed"
)

// CycleReport summarizes one poll-and-announce cycle
type CycleReport struct {
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	ChannelID   int64     `json:"channel_id,omitempty"`
	Fetched     int       `json:"fetched"`
	New         int       `json:"new"`
	Delivered   int       `json:"delivered"`
	Failed      int       `json:"failed"`
	Interrupted bool      `json:"interrupted,omitempty"`
	SkipReason  string    `json:"skip_reason,omitempty"`
}

// Skipped reports whether the cycle exited before delivery.
func (r CycleReport) Skipped() bool {
	return r.SkipReason != ""
}

// Snapshot is a point-in-time copy of Status
type Snapshot struct {
	State            CycleState   `json:"state"`
	Ready            bool         `json:"ready"`
	CyclesRun        int          `json:"cycles_run"`
	CyclesSkipped    int          `json:"cycles_skipped"`
	Announced        int          `json:"announced"`
	DeliveryFailures int          `json:"delivery_failures"`
	Seen             int          `json:"seen"`
	LastCycle        *CycleReport `json:"last_cycle,omitempty"`
}

// Status tracks the relay for operators. Safe for concurrent use.
type Status struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStatus() *Status {
	return &Status{snap: Snapshot{State: CycleStateIdle}}
}

func (s *Status) SetState(state CycleState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.State = state
}

func (s *Status) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Ready = ready
}

// Record stores a finished cycle and returns the state to idle.
func (s *Status) Record(report CycleReport, seen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.State = CycleStateIdle
	s.snap.CyclesRun++
	if report.Skipped() {
		s.snap.CyclesSkipped++
	}
	s.snap.Announced += report.Delivered
	s.snap.DeliveryFailures += report.Failed
	s.snap.Seen = seen
	s.snap.LastCycle = &report
}

func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	if snap.LastCycle != nil {
		last := *snap.LastCycle
		snap.LastCycle = &last
	}
	return snap
}
