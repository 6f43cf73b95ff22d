package constants

import "time"

const (
	ExternalAPITimeout  = 10 * time.Second
	MaxConnsPerHost     = 16
	MaxIdleConnDuration = 1 * time.Minute
	UserAgent           = "ranking-dashboard/1.0"
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	PodiumSize = 3
)

// simulated elo history
const (
	HistoryDays      = 7
	HistoryDeltaMin  = -10
	HistoryDeltaSpan = 30 // deltas fall in [HistoryDeltaMin, HistoryDeltaMin+HistoryDeltaSpan)
	HistoryFloorLP   = 0
	HistoryCeilLP    = 100
	HistoryLabel     = "today"
	HistoryDateFmt   = "02 Jan"
)
