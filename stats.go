package main

import "go.uber.org/atomic"

// ServerStats tracks performance counters with lock-free atomics rather
// than a mutex: every field is updated far more often than it's read, and
// go.uber.org/atomic's typed wrappers keep the call sites free of raw
// uintptr casts.
type ServerStats struct {
	TotalOps     atomic.Uint64
	PingOps      atomic.Uint64
	EchoOps      atomic.Uint64
	GetOps       atomic.Uint64
	SetOps       atomic.Uint64
	ListOps      atomic.Uint64
	Connections  atomic.Uint64
	BytesRead    atomic.Uint64
	BytesWritten atomic.Uint64
}

func NewServerStats() *ServerStats {
	return &ServerStats{}
}

func (s *ServerStats) recordCommand(cmd CommandKind) {
	s.TotalOps.Inc()
	switch cmd {
	case CmdPing:
		s.PingOps.Inc()
	case CmdEcho:
		s.EchoOps.Inc()
	case CmdGet:
		s.GetOps.Inc()
	case CmdSet:
		s.SetOps.Inc()
	case CmdRPush, CmdLPush, CmdLRange, CmdLLen:
		s.ListOps.Inc()
	}
}

// StatsSnapshot is a point-in-time copy of the counters, safe to hand to
// callers outside the hot path. It does not include PingOps or EchoOps.
type StatsSnapshot struct {
	TotalOps     uint64
	GetOps       uint64
	SetOps       uint64
	ListOps      uint64
	Connections  uint64
	BytesRead    uint64
	BytesWritten uint64
}

func (s *ServerStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		TotalOps:     s.TotalOps.Load(),
		GetOps:       s.GetOps.Load(),
		SetOps:       s.SetOps.Load(),
		ListOps:      s.ListOps.Load(),
		Connections:  s.Connections.Load(),
		BytesRead:    s.BytesRead.Load(),
		BytesWritten: s.BytesWritten.Load(),
	}
}
