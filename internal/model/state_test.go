package model

import (
	"errors"
	"testing"
	"time"
)

func buildState(t *testing.T) *AppState {
	t.Helper()
	st := NewAppState()
	bid := st.AllocID()
	lid := st.AllocID()
	cid := st.AllocID()
	st.Boards[bid] = &Board{ID: bid, Name: "Work", ListIDs: []ID{lid}}
	st.BoardOrder = []ID{bid}
	st.Lists[lid] = &List{ID: lid, Name: "Todo", BoardID: bid, CardIDs: []ID{cid}}
	st.Cards[cid] = &Card{ID: cid, Title: "Write spec", ListID: lid}
	if err := st.CheckIntegrity(); err != nil {
		t.Fatalf("fixture state should be consistent: %v", err)
	}
	return st
}

func TestCheckIntegrityCatchesDanglingCard(t *testing.T) {
	st := buildState(t)
	var lid ID
	for id := range st.Lists {
		lid = id
	}
	st.Lists[lid].CardIDs = append(st.Lists[lid].CardIDs, 999)
	if err := st.CheckIntegrity(); err == nil {
		t.Fatalf("expected dangling card id to fail integrity check")
	}
}

func TestCheckIntegrityCatchesDuplicateBoardOrder(t *testing.T) {
	st := buildState(t)
	st.BoardOrder = append(st.BoardOrder, st.BoardOrder[0])
	if err := st.CheckIntegrity(); err == nil {
		t.Fatalf("expected duplicate board order entry to fail integrity check")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	st := buildState(t)
	cp := st.Clone()
	if !StructuralEqual(st, cp) {
		t.Fatalf("clone should be structurally equal to the original")
	}

	for _, c := range cp.Cards {
		c.Title = "changed"
	}
	for _, c := range st.Cards {
		if c.Title == "changed" {
			t.Fatalf("mutating the clone leaked into the original")
		}
	}
	if StructuralEqual(st, cp) {
		t.Fatalf("states should differ after mutating the clone")
	}
}

func TestStructuralEqualIgnoresIDCounterAndActivity(t *testing.T) {
	a := buildState(t)
	b := a.Clone()
	b.NextID += 17
	b.AppendActivity(time.Now(), true, "noise")
	if !StructuralEqual(a, b) {
		t.Fatalf("id counter and activity log must not affect structural equality")
	}
}

func TestLookupsReturnNotFound(t *testing.T) {
	st := NewAppState()
	if _, err := st.Card(42); err == nil {
		t.Fatalf("expected missing card lookup to fail")
	}
	var nf NotFoundError
	_, err := st.Board(7)
	if err == nil {
		t.Fatalf("expected missing board lookup to fail")
	}
	if !errors.As(err, &nf) || nf.Kind != "board" {
		t.Fatalf("expected a board NotFoundError, got %v", err)
	}
}
