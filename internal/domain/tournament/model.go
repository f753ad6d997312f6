package tournament

import "fmt"

type LeagueType string

const (
	LeagueTypeClassic LeagueType = "classic"
	LeagueTypeH2H     LeagueType = "h2h"
)

// Tournament groups participant entries competing against each other in one
// upstream FPL league.
type Tournament struct {
	ID           int64
	Name         string
	LeagueID     int64
	LeagueType   LeagueType
	TotalTeamNum int // 0 means unbounded
	IsActive     bool
}

func (t Tournament) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("tournament id must be greater than zero")
	}
	if t.LeagueID <= 0 {
		return fmt.Errorf("tournament league id must be greater than zero")
	}
	if t.LeagueType != LeagueTypeClassic && t.LeagueType != LeagueTypeH2H {
		return fmt.Errorf("unsupported league type %q", t.LeagueType)
	}
	if t.TotalTeamNum < 0 {
		return fmt.Errorf("total team num cannot be negative")
	}
	return nil
}
