package walls

import "time"

// Snapshot is the read-only view of the machine handed to renderers once
// per frame. It shares no memory with the machine.
type Snapshot struct {
	Session      uint64        `json:"session"`
	Frame        uint64        `json:"frame"`
	State        State         `json:"state"`
	Board        Board         `json:"board"`
	Walls        WallGrowth    `json:"walls"`
	Ball         Ball          `json:"ball"`
	BallRadius   float64       `json:"ball_radius"`
	Held         Direction     `json:"held"`
	Coverage     int           `json:"coverage"`
	TimeLeft     int           `json:"time_left"`
	TimeBudget   int           `json:"time_budget"`
	Elapsed      int           `json:"elapsed"`
	CurrentScore int           `json:"current_score"`
	Final        *Breakdown    `json:"final,omitempty"`
	Rank         *Rank         `json:"rank,omitempty"`
	Ending       Ending        `json:"ending"`
	StateAge     time.Duration `json:"state_age"`
}

// Snapshot captures the current state.
func (m *Machine) Snapshot() Snapshot {
	s := m.session
	elapsed := m.Elapsed()
	snap := Snapshot{
		Session:      s.ID,
		Frame:        m.frame,
		State:        s.State,
		Board:        m.board(),
		Walls:        s.Walls,
		Ball:         s.Ball,
		BallRadius:   m.cfg.Ball.Radius,
		Held:         s.Held,
		Coverage:     s.Coverage,
		TimeLeft:     m.countdown.Left(),
		TimeBudget:   m.countdown.Budget(),
		Elapsed:      elapsed,
		CurrentScore: CalculateScore(s.Coverage, elapsed, false).Total,
		Ending:       s.Ending,
		StateAge:     m.sched.Now().Sub(s.EnteredAt),
	}
	if s.Final != nil {
		final := *s.Final
		rank := RankFor(final.Total)
		snap.Final = &final
		snap.Rank = &rank
	}
	return snap
}

// Finished reports whether the snapshot carries a final score.
func (s Snapshot) Finished() bool {
	return s.Final != nil
}
