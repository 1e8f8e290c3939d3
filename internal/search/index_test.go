package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kanbo/internal/model"
)

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestSearchSurvivesTypos(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "Write spec", base)
	ix.Upsert(2, KindCard, "Fix flaky test", base)
	ix.Upsert(3, KindCard, "Grocery run", base)

	got := ix.Search("wriet", 10)
	require.NotEmpty(t, got, "a transposed query should still match")
	require.Equal(t, KindCard, got[0].Kind)
	require.EqualValues(t, 1, got[0].ID)
}

func TestSearchRanksCloserMatchesFirst(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "deploy staging", base)
	ix.Upsert(2, KindCard, "deploy production cluster with extra words", base)

	got := ix.Search("deploy staging", 10)
	require.Len(t, got, 2)
	require.EqualValues(t, 1, got[0].ID, "the tighter match should rank first")
	require.Greater(t, got[0].Score, got[1].Score)
}

func TestSearchTieBreaksByRecency(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "identical text", base)
	ix.Upsert(2, KindCard, "identical text", base.Add(time.Hour))

	got := ix.Search("identical", 10)
	require.Len(t, got, 2)
	require.EqualValues(t, 2, got[0].ID, "equal scores resolve to the most recently modified entry")
}

func TestSearchEmptyQueryMatchesNothing(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "anything", base)
	require.Empty(t, ix.Search("", 10))
	require.Empty(t, ix.Search("   ", 10))
}

func TestUpsertReplacesAndRemoveForgets(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "old subject", base)
	ix.Upsert(1, KindCard, "completely new words", base)
	require.Equal(t, 1, ix.Len())

	require.Empty(t, ix.Search("subject", 10), "stale grams must not match after reindex")
	require.NotEmpty(t, ix.Search("completely", 10))

	ix.Remove(1)
	require.Zero(t, ix.Len())
	require.Empty(t, ix.Search("completely", 10))
}

func TestSearchQueryShorterThanGram(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindTag, "go", base)
	require.NotEmpty(t, ix.Search("go", 10), "padding lets short texts match short queries")
}

func TestSearchSingleRuneQueryMatchesBySubstring(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "Write spec", base)
	ix.Upsert(2, KindTag, "w", time.Time{})
	ix.Upsert(3, KindCard, "Deploy", base)

	got := ix.Search("w", 10)
	require.Len(t, got, 2)
	require.EqualValues(t, 2, got[0].ID, "the exact short tag should outrank the longer card")
	require.EqualValues(t, 1, got[1].ID)

	require.Empty(t, ix.Search("z", 10))
}

func TestSearchTagsLoseRecencyTiesAndOrderByID(t *testing.T) {
	ix := New(3, nil)
	ix.Upsert(1, KindCard, "urgent", base)
	ix.Upsert(5, KindTag, "urgent", time.Time{})
	ix.Upsert(3, KindTag, "urgent", time.Time{})

	got := ix.Search("urgent", 10)
	require.Len(t, got, 3)
	require.EqualValues(t, 1, got[0].ID, "the timestamped card wins the recency tie over zero-time tags")
	require.EqualValues(t, 3, got[1].ID, "equal-score tags order by id")
	require.EqualValues(t, 5, got[2].ID)
}

func TestSearchLimit(t *testing.T) {
	ix := New(3, nil)
	for i := 1; i <= 20; i++ {
		ix.Upsert(model.ID(i), KindCard, "shared phrasing", base)
	}
	require.Len(t, ix.Search("shared", 5), 5)
}
