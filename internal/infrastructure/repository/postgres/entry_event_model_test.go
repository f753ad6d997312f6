package postgres

import (
	"database/sql"
	"testing"
)

func TestEntryEventResultTableModel_ToDomain(t *testing.T) {
	t.Parallel()

	model := entryEventResultTableModel{
		EntryID:            111,
		EventID:            5,
		Picks:              []byte(`[{"element":7,"position":1,"multiplier":2,"is_captain":true,"is_vice_captain":false}]`),
		AutoSubs:           []byte(`[{"element_in":12,"element_out":3}]`),
		ActiveChip:         sql.NullString{String: "bboost", Valid: true},
		EventPoints:        60,
		EventTransfersCost: 4,
		EventNetPoints:     56,
	}

	got, err := model.toDomain()
	if err != nil {
		t.Fatalf("toDomain error: %v", err)
	}
	if len(got.Picks) != 1 || got.Picks[0].Element != 7 || !got.Picks[0].IsCaptain || got.Picks[0].Multiplier != 2 {
		t.Fatalf("picks = %+v", got.Picks)
	}
	if len(got.AutoSubs) != 1 || got.AutoSubs[0].ElementIn != 12 || got.AutoSubs[0].ElementOut != 3 {
		t.Fatalf("autoSubs = %+v", got.AutoSubs)
	}
	if got.ActiveChip != "bboost" || got.EventNetPoints != 56 {
		t.Fatalf("scalars = %+v", got)
	}
}

func TestEntryEventResultTableModel_ToDomain_EmptyDocuments(t *testing.T) {
	t.Parallel()

	got, err := entryEventResultTableModel{EntryID: 111, EventID: 5}.toDomain()
	if err != nil {
		t.Fatalf("toDomain error: %v", err)
	}
	if got.Picks != nil || got.AutoSubs != nil || got.ActiveChip != "" {
		t.Fatalf("expected empty documents to stay empty: %+v", got)
	}
}

func TestEntryEventResultTableModel_ToDomain_BadJSON(t *testing.T) {
	t.Parallel()

	_, err := entryEventResultTableModel{
		EntryID: 111,
		EventID: 5,
		Picks:   []byte(`{"not":"a list"`),
	}.toDomain()
	if err == nil {
		t.Fatal("expected a decode error")
	}
}
