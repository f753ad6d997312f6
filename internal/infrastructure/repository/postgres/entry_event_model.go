package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/fpltools/fpl-tournament/internal/domain/entryevent"
)

// entryEventResultColumns mirrors entryEventResultTableModel's db tags; the
// table's updated_at stays out of the model, so reads must never select *.
var entryEventResultColumns = []string{
	"entry_id",
	"event_id",
	"picks",
	"auto_subs",
	"active_chip",
	"event_points",
	"event_transfers",
	"event_transfers_cost",
	"event_net_points",
	"event_bench_points",
	"event_auto_sub_points",
	"event_rank",
	"overall_points",
	"overall_rank",
	"team_value",
	"bank",
}

type entryEventResultTableModel struct {
	EntryID            int64          `db:"entry_id"`
	EventID            int            `db:"event_id"`
	Picks              []byte         `db:"picks"`
	AutoSubs           []byte         `db:"auto_subs"`
	ActiveChip         sql.NullString `db:"active_chip"`
	EventPoints        int            `db:"event_points"`
	EventTransfers     int            `db:"event_transfers"`
	EventTransfersCost int            `db:"event_transfers_cost"`
	EventNetPoints     int            `db:"event_net_points"`
	EventBenchPoints   int            `db:"event_bench_points"`
	EventAutoSubPoints int            `db:"event_auto_sub_points"`
	EventRank          int            `db:"event_rank"`
	OverallPoints      int            `db:"overall_points"`
	OverallRank        int            `db:"overall_rank"`
	TeamValue          int            `db:"team_value"`
	Bank               int            `db:"bank"`
}

// pickDoc and autoSubDoc are the JSONB document shapes stored alongside each
// ingested entry event result.
type pickDoc struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}

type autoSubDoc struct {
	ElementIn  int64 `json:"element_in"`
	ElementOut int64 `json:"element_out"`
}

func (m entryEventResultTableModel) toDomain() (entryevent.Result, error) {
	out := entryevent.Result{
		EntryID:            m.EntryID,
		EventID:            m.EventID,
		ActiveChip:         nullStringToString(m.ActiveChip),
		EventPoints:        m.EventPoints,
		EventTransfers:     m.EventTransfers,
		EventTransfersCost: m.EventTransfersCost,
		EventNetPoints:     m.EventNetPoints,
		EventBenchPoints:   m.EventBenchPoints,
		EventAutoSubPoints: m.EventAutoSubPoints,
		EventRank:          m.EventRank,
		OverallPoints:      m.OverallPoints,
		OverallRank:        m.OverallRank,
		TeamValue:          m.TeamValue,
		Bank:               m.Bank,
	}

	if len(m.Picks) > 0 {
		var docs []pickDoc
		if err := sonic.Unmarshal(m.Picks, &docs); err != nil {
			return entryevent.Result{}, fmt.Errorf("decode picks entry_id=%d event_id=%d: %w", m.EntryID, m.EventID, err)
		}
		out.Picks = make([]entryevent.Pick, 0, len(docs))
		for _, doc := range docs {
			out.Picks = append(out.Picks, entryevent.Pick{
				Element:       doc.Element,
				Position:      doc.Position,
				Multiplier:    doc.Multiplier,
				IsCaptain:     doc.IsCaptain,
				IsViceCaptain: doc.IsViceCaptain,
			})
		}
	}

	if len(m.AutoSubs) > 0 {
		var docs []autoSubDoc
		if err := sonic.Unmarshal(m.AutoSubs, &docs); err != nil {
			return entryevent.Result{}, fmt.Errorf("decode auto subs entry_id=%d event_id=%d: %w", m.EntryID, m.EventID, err)
		}
		out.AutoSubs = make([]entryevent.AutoSub, 0, len(docs))
		for _, doc := range docs {
			out.AutoSubs = append(out.AutoSubs, entryevent.AutoSub{
				ElementIn:  doc.ElementIn,
				ElementOut: doc.ElementOut,
			})
		}
	}

	return out, nil
}
