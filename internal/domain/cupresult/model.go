package cupresult

import "time"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Result is one entry's resolved cup outcome for a gameweek, keyed by
// (entry id, event id).
type Result struct {
	EntryID     int64
	EventID     int
	EntryName   string
	PlayerName  string
	EventPoints int

	AgainstEntryID     int64
	AgainstEntryName   string
	AgainstPlayerName  string
	AgainstEventPoints int

	Outcome   Outcome
	UpdatedAt time.Time
}
