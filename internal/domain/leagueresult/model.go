package leagueresult

import (
	"time"

	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
)

// EventResult is one enriched league result row, keyed by
// (league id, league type, event id, entry id). Captaincy and highest-score
// fields are nil when the underlying pick or live stat is missing.
type EventResult struct {
	LeagueID   int64
	LeagueType tournament.LeagueType
	EventID    int
	EntryID    int64

	EntryName  string
	PlayerName string

	OverallPoints int
	OverallRank   int
	TeamValue     int
	Bank          int

	EventPoints        int
	EventTransfers     int
	EventTransfersCost int
	EventNetPoints     int
	EventBenchPoints   int
	EventAutoSubPoints int
	EventRank          int
	EventChip          string

	CaptainID         *int64
	CaptainPoints     *int
	CaptainBlank      bool
	ViceCaptainID     *int64
	ViceCaptainPoints *int
	ViceCaptainBlank  bool
	PlayedCaptainID   *int64

	HighestScoreElementID *int64
	HighestScorePoints    *int
	HighestScoreBlank     bool

	UpdatedAt time.Time
}
