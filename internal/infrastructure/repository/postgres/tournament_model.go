package postgres

import (
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
)

// tournamentColumns mirrors tournamentTableModel's db tags. The table also
// carries created_at/updated_at, which sqlx would refuse to scan into the
// model, so reads must never select *.
var tournamentColumns = []string{
	"id",
	"name",
	"league_id",
	"league_type",
	"total_team_num",
	"is_active",
}

type tournamentTableModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	LeagueID     int64  `db:"league_id"`
	LeagueType   string `db:"league_type"`
	TotalTeamNum int    `db:"total_team_num"`
	IsActive     bool   `db:"is_active"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:           m.ID,
		Name:         m.Name,
		LeagueID:     m.LeagueID,
		LeagueType:   tournament.LeagueType(m.LeagueType),
		TotalTeamNum: m.TotalTeamNum,
		IsActive:     m.IsActive,
	}
}
