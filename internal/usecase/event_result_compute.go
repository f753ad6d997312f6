package usecase

import (
	"time"

	"github.com/fpltools/fpl-tournament/internal/domain/entry"
	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
	"github.com/fpltools/fpl-tournament/internal/domain/eventlive"
	"github.com/fpltools/fpl-tournament/internal/domain/leagueresult"
	"github.com/fpltools/fpl-tournament/internal/domain/player"
	"github.com/fpltools/fpl-tournament/internal/domain/tournament"
)

// blankSavesThreshold mirrors the upstream scoring rule where a keeper
// earns a point per three saves; more than three is a scoring return.
const blankSavesThreshold = 3

const (
	skipReasonNoPicks     = "no picks resolved"
	skipReasonNoEntryInfo = "missing entry metadata"
)

type fieldSource string

const (
	fieldSourceStored  fieldSource = "stored"
	fieldSourcePicks   fieldSource = "picks"
	fieldSourceDerived fieldSource = "derived"
)

type intField struct {
	Value  int
	Source fieldSource
}

// resolveIntField prefers the stored authoritative value, then the value
// embedded in the picks response, then a derived default.
func resolveIntField(stored *int, picks *int, derive func() int) intField {
	if stored != nil {
		return intField{Value: *stored, Source: fieldSourceStored}
	}
	if picks != nil {
		return intField{Value: *picks, Source: fieldSourcePicks}
	}
	if derive != nil {
		return intField{Value: derive(), Source: fieldSourceDerived}
	}
	return intField{Source: fieldSourceDerived}
}

type computeInput struct {
	Tournament      tournament.Tournament
	EventID         int
	Entry           entry.Info
	Existing        *entryevent.Result
	Fetched         *EntryPicksResponse
	LiveByElement   map[int64]eventlive.Stat
	ElementTypeByID map[int64]int
	Now             time.Time
}

type resultSkip struct {
	Reason string
}

// computeLeagueEventResult turns one entry's picks, live stats and partial
// stored result into an enriched league result row. It is pure: all inputs
// arrive resolved and no collaborator is touched.
func computeLeagueEventResult(in computeInput) (leagueresult.EventResult, *resultSkip) {
	picks := resolvePicks(in.Existing, in.Fetched)
	if len(picks) == 0 {
		return leagueresult.EventResult{}, &resultSkip{Reason: skipReasonNoPicks}
	}
	autoSubs := resolveAutoSubs(in.Existing, in.Fetched)

	var history *EntryEventHistory
	if in.Fetched != nil {
		history = in.Fetched.History
	}

	stored := storedScalars(in.Existing)
	fromPicks := historyScalars(history)

	eventPoints := resolveIntField(stored.eventPoints, fromPicks.eventPoints, nil).Value
	eventTransfersCost := resolveIntField(stored.eventTransfersCost, fromPicks.eventTransfersCost, nil).Value
	eventNetPoints := resolveIntField(stored.eventNetPoints, nil, func() int {
		return eventPoints - eventTransfersCost
	}).Value
	eventAutoSubPoints := resolveIntField(stored.eventAutoSubPoints, nil, func() int {
		return sumAutoSubPoints(autoSubs, in.LiveByElement)
	}).Value

	row := leagueresult.EventResult{
		LeagueID:   in.Tournament.LeagueID,
		LeagueType: in.Tournament.LeagueType,
		EventID:    in.EventID,
		EntryID:    in.Entry.EntryID,
		EntryName:  in.Entry.EntryName,
		PlayerName: in.Entry.PlayerName,

		OverallPoints: resolveIntField(stored.overallPoints, fromPicks.overallPoints, nil).Value,
		OverallRank:   resolveIntField(stored.overallRank, fromPicks.overallRank, nil).Value,
		TeamValue:     resolveIntField(stored.teamValue, fromPicks.teamValue, nil).Value,
		Bank:          resolveIntField(stored.bank, fromPicks.bank, nil).Value,

		EventPoints:        eventPoints,
		EventTransfers:     resolveIntField(stored.eventTransfers, fromPicks.eventTransfers, nil).Value,
		EventTransfersCost: eventTransfersCost,
		EventNetPoints:     eventNetPoints,
		EventBenchPoints:   resolveIntField(stored.eventBenchPoints, fromPicks.eventBenchPoints, nil).Value,
		EventAutoSubPoints: eventAutoSubPoints,
		EventRank:          resolveIntField(stored.eventRank, fromPicks.eventRank, nil).Value,
		EventChip:          resolveChip(in.Existing, in.Fetched),

		UpdatedAt: in.Now,
	}

	applyCaptaincy(&row, picks, in.LiveByElement, in.ElementTypeByID)
	applyHighestScore(&row, picks, in.LiveByElement, in.ElementTypeByID)

	return row, nil
}

func resolvePicks(existing *entryevent.Result, fetched *EntryPicksResponse) []entryevent.Pick {
	if existing != nil && len(existing.Picks) > 0 {
		return existing.Picks
	}
	if fetched != nil {
		return fetched.Picks
	}
	return nil
}

func resolveAutoSubs(existing *entryevent.Result, fetched *EntryPicksResponse) []entryevent.AutoSub {
	if existing != nil && len(existing.AutoSubs) > 0 {
		return existing.AutoSubs
	}
	if fetched != nil {
		return fetched.AutomaticSubs
	}
	return nil
}

func resolveChip(existing *entryevent.Result, fetched *EntryPicksResponse) string {
	if existing != nil && existing.ActiveChip != "" {
		return existing.ActiveChip
	}
	if fetched != nil {
		return fetched.ActiveChip
	}
	return ""
}

type scalarSet struct {
	eventPoints        *int
	eventTransfers     *int
	eventTransfersCost *int
	eventNetPoints     *int
	eventBenchPoints   *int
	eventAutoSubPoints *int
	eventRank          *int
	overallPoints      *int
	overallRank        *int
	teamValue          *int
	bank               *int
}

func storedScalars(existing *entryevent.Result) scalarSet {
	if existing == nil {
		return scalarSet{}
	}
	e := *existing
	return scalarSet{
		eventPoints:        &e.EventPoints,
		eventTransfers:     &e.EventTransfers,
		eventTransfersCost: &e.EventTransfersCost,
		eventNetPoints:     &e.EventNetPoints,
		eventBenchPoints:   &e.EventBenchPoints,
		eventAutoSubPoints: &e.EventAutoSubPoints,
		eventRank:          &e.EventRank,
		overallPoints:      &e.OverallPoints,
		overallRank:        &e.OverallRank,
		teamValue:          &e.TeamValue,
		bank:               &e.Bank,
	}
}

func historyScalars(history *EntryEventHistory) scalarSet {
	if history == nil {
		return scalarSet{}
	}
	h := *history
	return scalarSet{
		eventPoints:        &h.EventPoints,
		eventTransfers:     &h.EventTransfers,
		eventTransfersCost: &h.EventTransfersCost,
		eventBenchPoints:   &h.EventBenchPoints,
		eventRank:          &h.EventRank,
		overallPoints:      &h.OverallPoints,
		overallRank:        &h.OverallRank,
		teamValue:          &h.TeamValue,
		bank:               &h.Bank,
	}
}

func sumAutoSubPoints(subs []entryevent.AutoSub, live map[int64]eventlive.Stat) int {
	total := 0
	for _, sub := range subs {
		if stat, ok := live[sub.ElementIn]; ok {
			total += stat.TotalPoints
		}
	}
	return total
}

func applyCaptaincy(
	row *leagueresult.EventResult,
	picks []entryevent.Pick,
	live map[int64]eventlive.Stat,
	elementTypes map[int64]int,
) {
	var captain, vice *entryevent.Pick
	for i := range picks {
		if picks[i].IsCaptain && captain == nil {
			captain = &picks[i]
		}
		if picks[i].IsViceCaptain && vice == nil {
			vice = &picks[i]
		}
	}

	row.CaptainBlank = true
	row.ViceCaptainBlank = true

	if captain != nil {
		id := captain.Element
		row.CaptainID = &id
		if stat, ok := live[id]; ok {
			multiplier := captain.Multiplier
			if multiplier == 0 {
				multiplier = 1
			}
			points := stat.TotalPoints * multiplier
			row.CaptainPoints = &points
			row.CaptainBlank = isBlankStat(&stat, elementTypes[id])
		}
	}

	if vice != nil {
		id := vice.Element
		row.ViceCaptainID = &id
		if stat, ok := live[id]; ok {
			points := stat.TotalPoints
			row.ViceCaptainPoints = &points
			row.ViceCaptainBlank = isBlankStat(&stat, elementTypes[id])
		}
	}

	// The vice captain inherits the armband only when the captain did not
	// play at all and the vice did.
	row.PlayedCaptainID = row.CaptainID
	if captain != nil && vice != nil {
		captainMinutes := 0
		if stat, ok := live[captain.Element]; ok {
			captainMinutes = stat.Minutes
		}
		viceMinutes := 0
		if stat, ok := live[vice.Element]; ok {
			viceMinutes = stat.Minutes
		}
		if captainMinutes == 0 && viceMinutes > 0 {
			id := vice.Element
			row.PlayedCaptainID = &id
		}
	}
}

func applyHighestScore(
	row *leagueresult.EventResult,
	picks []entryevent.Pick,
	live map[int64]eventlive.Stat,
	elementTypes map[int64]int,
) {
	var best *int64
	bestPoints := 0
	for i := range picks {
		points := 0
		if stat, ok := live[picks[i].Element]; ok {
			points = stat.TotalPoints
		}
		// Ties keep the earliest-listed pick: only a strictly higher
		// score displaces the current best.
		if best == nil || points > bestPoints {
			id := picks[i].Element
			best = &id
			bestPoints = points
		}
	}

	row.HighestScoreBlank = true
	if best == nil {
		return
	}

	row.HighestScoreElementID = best
	points := bestPoints
	row.HighestScorePoints = &points
	if stat, ok := live[*best]; ok {
		row.HighestScoreBlank = isBlankStat(&stat, elementTypes[*best])
	}
}

// isBlankStat reports whether a player's gameweek contributed no meaningful
// scoring event. A missing live record is always blank.
func isBlankStat(stat *eventlive.Stat, elementType int) bool {
	if stat == nil {
		return true
	}
	if stat.GoalsScored > 0 || stat.Assists > 0 || stat.Bonus > 0 ||
		stat.PenaltiesSaved > 0 || stat.Saves > blankSavesThreshold {
		return false
	}
	if (elementType == player.ElementTypeGoalkeeper || elementType == player.ElementTypeDefender) &&
		stat.CleanSheets > 0 {
		return false
	}
	return true
}
