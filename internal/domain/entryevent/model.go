package entryevent

// Pick is one squad selection inside a gameweek team sheet.
type Pick struct {
	Element       int64
	Position      int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

// AutoSub records a bench player automatically swapped in for a starter
// who did not play.
type AutoSub struct {
	ElementIn  int64
	ElementOut int64
}

// Result is the authoritative per-entry gameweek result as previously
// persisted by the ingestion pipeline. When present it wins over a live
// picks fetch during result computation.
type Result struct {
	EntryID            int64
	EventID            int
	Picks              []Pick
	AutoSubs           []AutoSub
	ActiveChip         string
	EventPoints        int
	EventTransfers     int
	EventTransfersCost int
	EventNetPoints     int
	EventBenchPoints   int
	EventAutoSubPoints int
	EventRank          int
	OverallPoints      int
	OverallRank        int
	TeamValue          int
	Bank               int
}
