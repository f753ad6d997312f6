package postgres

import (
	"time"

	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
)

type leagueEventResultInsertModel struct {
	LeagueID   int64  `db:"league_id"`
	LeagueType string `db:"league_type"`
	EventID    int    `db:"event_id"`
	EntryID    int64  `db:"entry_id"`
	EntryName  string `db:"entry_name"`
	PlayerName string `db:"player_name"`

	OverallPoints int `db:"overall_points"`
	OverallRank   int `db:"overall_rank"`
	TeamValue     int `db:"team_value"`
	Bank          int `db:"bank"`

	EventPoints        int    `db:"event_points"`
	EventTransfers     int    `db:"event_transfers"`
	EventTransfersCost int    `db:"event_transfers_cost"`
	EventNetPoints     int    `db:"event_net_points"`
	EventBenchPoints   int    `db:"event_bench_points"`
	EventAutoSubPoints int    `db:"event_auto_sub_points"`
	EventRank          int    `db:"event_rank"`
	EventChip          string `db:"event_chip"`

	CaptainID         *int64 `db:"captain_id"`
	CaptainPoints     *int   `db:"captain_points"`
	CaptainBlank      bool   `db:"captain_blank"`
	ViceCaptainID     *int64 `db:"vice_captain_id"`
	ViceCaptainPoints *int   `db:"vice_captain_points"`
	ViceCaptainBlank  bool   `db:"vice_captain_blank"`
	PlayedCaptainID   *int64 `db:"played_captain_id"`

	HighestScoreElementID *int64 `db:"highest_score_element_id"`
	HighestScorePoints    *int   `db:"highest_score_points"`
	HighestScoreBlank     bool   `db:"highest_score_blank"`

	UpdatedAt time.Time `db:"updated_at"`
}

func newLeagueEventResultInsertModel(row leagueresult.EventResult) leagueEventResultInsertModel {
	return leagueEventResultInsertModel{
		LeagueID:   row.LeagueID,
		LeagueType: string(row.LeagueType),
		EventID:    row.EventID,
		EntryID:    row.EntryID,
		EntryName:  row.EntryName,
		PlayerName: row.PlayerName,

		OverallPoints: row.OverallPoints,
		OverallRank:   row.OverallRank,
		TeamValue:     row.TeamValue,
		Bank:          row.Bank,

		EventPoints:        row.EventPoints,
		EventTransfers:     row.EventTransfers,
		EventTransfersCost: row.EventTransfersCost,
		EventNetPoints:     row.EventNetPoints,
		EventBenchPoints:   row.EventBenchPoints,
		EventAutoSubPoints: row.EventAutoSubPoints,
		EventRank:          row.EventRank,
		EventChip:          row.EventChip,

		CaptainID:         row.CaptainID,
		CaptainPoints:     row.CaptainPoints,
		CaptainBlank:      row.CaptainBlank,
		ViceCaptainID:     row.ViceCaptainID,
		ViceCaptainPoints: row.ViceCaptainPoints,
		ViceCaptainBlank:  row.ViceCaptainBlank,
		PlayedCaptainID:   row.PlayedCaptainID,

		HighestScoreElementID: row.HighestScoreElementID,
		HighestScorePoints:    row.HighestScorePoints,
		HighestScoreBlank:     row.HighestScoreBlank,

		UpdatedAt: row.UpdatedAt,
	}
}
