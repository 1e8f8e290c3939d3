// Package search keeps an incremental fuzzy index over card and tag text.
// Matching is approximate: texts are broken into lowercased character
// n-grams and scored by set similarity, so transposed or mistyped letters
// still find their target.
package search

import (
	"sort"
	"strings"
	"time"

	"kanbo/internal/model"
)

type Kind string

const (
	KindCard Kind = "card"
	KindTag  Kind = "tag"
)

type Match struct {
	ID    model.ID
	Kind  Kind
	Score float64
}

// Scorer ranks a query gram set against a document gram set. The concrete
// formula is a replaceable strategy; DiceScorer is the default.
type Scorer interface {
	Score(query, doc map[string]bool) float64
}

// DiceScorer scores by the Sørensen–Dice coefficient over gram sets.
type DiceScorer struct{}

func (DiceScorer) Score(query, doc map[string]bool) float64 {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	shared := 0
	for g := range query {
		if doc[g] {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(query)+len(doc))
}

type entry struct {
	kind       Kind
	grams      map[string]bool
	modifiedAt time.Time
}

type Index struct {
	gram    int
	scorer  Scorer
	entries map[model.ID]*entry
	// Posting lists keep query cost proportional to candidates, not to the
	// total number of entries.
	postings map[string]map[model.ID]bool
}

const DefaultGramSize = 3

func New(gramSize int, scorer Scorer) *Index {
	if gramSize <= 0 {
		gramSize = DefaultGramSize
	}
	if scorer == nil {
		scorer = DiceScorer{}
	}
	return &Index{
		gram:     gramSize,
		scorer:   scorer,
		entries:  map[model.ID]*entry{},
		postings: map[string]map[model.ID]bool{},
	}
}

// Upsert (re)indexes one entity's text. Text from several fields (title plus
// description) is joined by the caller.
func (ix *Index) Upsert(id model.ID, kind Kind, text string, modifiedAt time.Time) {
	ix.Remove(id)
	e := &entry{kind: kind, grams: ix.gramSet(text), modifiedAt: modifiedAt}
	ix.entries[id] = e
	for g := range e.grams {
		posting := ix.postings[g]
		if posting == nil {
			posting = map[model.ID]bool{}
			ix.postings[g] = posting
		}
		posting[id] = true
	}
}

func (ix *Index) Remove(id model.ID) {
	e, ok := ix.entries[id]
	if !ok {
		return
	}
	for g := range e.grams {
		delete(ix.postings[g], id)
		if len(ix.postings[g]) == 0 {
			delete(ix.postings, g)
		}
	}
	delete(ix.entries, id)
}

func (ix *Index) Len() int      { return len(ix.entries) }
func (ix *Index) GramSize() int { return ix.gram }

// Search returns the best matches first. Ties go to the most recently
// modified entity. An empty query matches nothing; a query too short to
// fill a gram falls back to substring selection over the posting grams.
func (ix *Index) Search(text string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return nil
	}

	var matches []Match
	if len([]rune(q))+2 <= ix.gram {
		matches = ix.substringMatches(q)
	} else {
		matches = ix.gramMatches(ix.gramSet(text))
	}

	ix.sortMatches(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (ix *Index) gramMatches(queryGrams map[string]bool) []Match {
	candidates := map[model.ID]bool{}
	for g := range queryGrams {
		for id := range ix.postings[g] {
			candidates[id] = true
		}
	}

	matches := make([]Match, 0, len(candidates))
	for id := range candidates {
		e := ix.entries[id]
		score := ix.scorer.Score(queryGrams, e.grams)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{ID: id, Kind: e.kind, Score: score})
	}
	return matches
}

// substringMatches handles queries shorter than a padded gram, which can
// never equal any gram of a longer document. Score is the share of the
// document's grams containing the query, so a short exact entity outranks
// a long one that merely contains the letter.
func (ix *Index) substringMatches(q string) []Match {
	counts := map[model.ID]int{}
	for g, posting := range ix.postings {
		if !strings.Contains(g, q) {
			continue
		}
		for id := range posting {
			counts[id]++
		}
	}

	matches := make([]Match, 0, len(counts))
	for id, n := range counts {
		e := ix.entries[id]
		matches = append(matches, Match{ID: id, Kind: e.kind, Score: float64(n) / float64(len(e.grams))})
	}
	return matches
}

func (ix *Index) sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		am, bm := ix.entries[a.ID].modifiedAt, ix.entries[b.ID].modifiedAt
		if !am.Equal(bm) {
			return am.After(bm)
		}
		return a.ID < b.ID
	})
}

// gramSet lowercases, then slides an n-gram window over the runes. The text
// is padded with a leading and trailing space so word boundaries produce
// grams; a text shorter than the window becomes a single whole-text gram.
func (ix *Index) gramSet(text string) map[string]bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	runes := []rune(" " + text + " ")
	grams := map[string]bool{}
	if len(runes) <= ix.gram {
		grams[string(runes)] = true
		return grams
	}
	for i := 0; i+ix.gram <= len(runes); i++ {
		grams[string(runes[i:i+ix.gram])] = true
	}
	return grams
}
