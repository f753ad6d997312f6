package fplapi

import (
	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	"github.com/fpltools/fpl-tournament/internal/usecase"
)

// Wire envelopes follow the public FPL API payloads verbatim; only the
// fields the engine consumes are declared.

type entryPicksEnvelope struct {
	ActiveChip    string             `json:"active_chip"`
	AutomaticSubs []automaticSubItem `json:"automatic_subs"`
	EntryHistory  *entryHistoryItem  `json:"entry_history"`
	Picks         []pickItem         `json:"picks"`
}

type automaticSubItem struct {
	ElementIn  int64 `json:"element_in"`
	ElementOut int64 `json:"element_out"`
}

type entryHistoryItem struct {
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type pickItem struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}

type standingsEnvelope struct {
	Standings standingsBlock `json:"standings"`
}

type standingsBlock struct {
	HasNext bool               `json:"has_next"`
	Results []standingsRowItem `json:"results"`
}

type standingsRowItem struct {
	Entry int64 `json:"entry"`
}

type cupEnvelope struct {
	CupMatches []cupMatchItem `json:"cup_matches"`
}

type cupMatchItem struct {
	Event            int    `json:"event"`
	Entry1ID         int64  `json:"entry_1_entry"`
	Entry1Name       string `json:"entry_1_name"`
	Entry1PlayerName string `json:"entry_1_player_name"`
	Entry1Points     int    `json:"entry_1_points"`
	Entry2ID         int64  `json:"entry_2_entry"`
	Entry2Name       string `json:"entry_2_name"`
	Entry2PlayerName string `json:"entry_2_player_name"`
	Entry2Points     int    `json:"entry_2_points"`
	Winner           *int64 `json:"winner"`
}

func mapEntryPicks(envelope entryPicksEnvelope) usecase.EntryPicksResponse {
	out := usecase.EntryPicksResponse{
		ActiveChip: envelope.ActiveChip,
	}

	if len(envelope.AutomaticSubs) > 0 {
		out.AutomaticSubs = make([]entryevent.AutoSub, 0, len(envelope.AutomaticSubs))
		for _, sub := range envelope.AutomaticSubs {
			out.AutomaticSubs = append(out.AutomaticSubs, entryevent.AutoSub{
				ElementIn:  sub.ElementIn,
				ElementOut: sub.ElementOut,
			})
		}
	}

	if history := envelope.EntryHistory; history != nil {
		out.History = &usecase.EntryEventHistory{
			EventPoints:        history.Points,
			EventTransfers:     history.EventTransfers,
			EventTransfersCost: history.EventTransfersCost,
			EventBenchPoints:   history.PointsOnBench,
			EventRank:          history.Rank,
			OverallPoints:      history.TotalPoints,
			OverallRank:        history.OverallRank,
			TeamValue:          history.Value,
			Bank:               history.Bank,
		}
	}

	if len(envelope.Picks) > 0 {
		out.Picks = make([]entryevent.Pick, 0, len(envelope.Picks))
		for _, pick := range envelope.Picks {
			out.Picks = append(out.Picks, entryevent.Pick{
				Element:       pick.Element,
				Position:      pick.Position,
				Multiplier:    pick.Multiplier,
				IsCaptain:     pick.IsCaptain,
				IsViceCaptain: pick.IsViceCaptain,
			})
		}
	}

	return out
}

func mapStandingsPage(envelope standingsEnvelope) usecase.StandingsPage {
	page := usecase.StandingsPage{HasNext: envelope.Standings.HasNext}
	if len(envelope.Standings.Results) > 0 {
		page.EntryIDs = make([]int64, 0, len(envelope.Standings.Results))
		for _, row := range envelope.Standings.Results {
			page.EntryIDs = append(page.EntryIDs, row.Entry)
		}
	}
	return page
}

func mapCupResponse(envelope cupEnvelope) usecase.CupResponse {
	out := usecase.CupResponse{}
	if len(envelope.CupMatches) == 0 {
		return out
	}
	out.Matches = make([]usecase.CupMatch, 0, len(envelope.CupMatches))
	for _, match := range envelope.CupMatches {
		mapped := usecase.CupMatch{
			Event:            match.Event,
			Entry1ID:         match.Entry1ID,
			Entry1Name:       match.Entry1Name,
			Entry1PlayerName: match.Entry1PlayerName,
			Entry1Points:     match.Entry1Points,
			Entry2ID:         match.Entry2ID,
			Entry2Name:       match.Entry2Name,
			Entry2PlayerName: match.Entry2PlayerName,
			Entry2Points:     match.Entry2Points,
		}
		if match.Winner != nil {
			mapped.Winner = *match.Winner
		}
		out.Matches = append(out.Matches, mapped)
	}
	return out
}
