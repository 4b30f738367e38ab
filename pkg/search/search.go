// Package search provides keyword search across the whole library: songs,
// playlists, albums, photos, love notes and quiz questions.
//
// Library terms are canonicalized into an Aho-Corasick automaton; a query is
// canonicalized the same way and scanned, and every pattern found in it votes
// for the entries it belongs to.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"
	"go.uber.org/zap"
)

// Kind labels what a search hit points at.
type Kind string

const (
	KindSong         Kind = "song"
	KindPlaylist     Kind = "playlist"
	KindAlbum        Kind = "album"
	KindPhoto        Kind = "photo"
	KindLoveNote     Kind = "loveNote"
	KindQuizQuestion Kind = "quizQuestion"
)

// Entry is one searchable item. Terms are the raw texts to index; short ones
// (titles) also match as whole phrases, long ones (note contents) match by
// token.
type Entry struct {
	ID    string
	Kind  Kind
	Label string
	Terms []string
}

// Result is one search hit.
type Result struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
}

// maxPhraseLen bounds whole-phrase patterns; longer terms are indexed by
// token only.
const maxPhraseLen = 64

// Canonicalize folds text to lowercase, keeps letters, digits, apostrophes
// and hyphens, and collapses every other run of characters into one space.
// Patterns and queries go through the same function so they always agree.
func Canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true
	for _, ch := range s {
		c := unicode.ToLower(ch)
		if c == '’' || c == '‘' {
			c = '\''
		}
		if c == '–' || c == '—' {
			c = '-'
		}

		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c) || c == '\'' || c == '-':
			out.WriteRune(c)
			lastWasSpace = false
		default:
			if !lastWasSpace {
				out.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	return strings.TrimRight(out.String(), " ")
}

// Index is an immutable compiled search index. Compile a fresh one after the
// underlying collections change.
type Index struct {
	ac           *ahocorasick.Automaton
	patterns     []string
	patternIndex map[string]int
	patternToIDs [][]int
	entries      []Result
}

// Compile builds an index from the given entries.
func Compile(entries []Entry, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sw := stopwords.MustGet("en")

	idx := &Index{
		patternIndex: make(map[string]int),
	}

	addPattern := func(key string, entry int) {
		if i, ok := idx.patternIndex[key]; ok {
			for _, e := range idx.patternToIDs[i] {
				if e == entry {
					return
				}
			}
			idx.patternToIDs[i] = append(idx.patternToIDs[i], entry)
			return
		}
		idx.patternIndex[key] = len(idx.patterns)
		idx.patterns = append(idx.patterns, key)
		idx.patternToIDs = append(idx.patternToIDs, []int{entry})
	}

	for _, e := range entries {
		entryIdx := len(idx.entries)
		idx.entries = append(idx.entries, Result{ID: e.ID, Kind: e.Kind, Label: e.Label})

		for _, term := range e.Terms {
			key := Canonicalize(term)
			if key == "" {
				continue
			}
			if len(key) <= maxPhraseLen {
				addPattern(key, entryIdx)
			}
			for _, tok := range strings.Fields(key) {
				if len(tok) < 2 || sw.Contains(tok) {
					continue
				}
				addPattern(tok, entryIdx)
			}
		}
	}

	if len(idx.patterns) == 0 {
		return idx, nil
	}

	ac, err := ahocorasick.NewBuilder().
		AddStrings(idx.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	idx.ac = ac

	log.Debug("search index compiled",
		zap.Int("entries", len(idx.entries)),
		zap.Int("patterns", len(idx.patterns)))
	return idx, nil
}

// Search scans the canonicalized query and returns matched entries, best
// first. Score is the total matched pattern length, so longer and repeated
// matches rank higher.
func (idx *Index) Search(query string) []Result {
	if idx == nil || idx.ac == nil {
		return nil
	}
	q := Canonicalize(query)
	if q == "" {
		return nil
	}

	scores := make(map[int]int)
	for _, m := range idx.ac.FindAllOverlapping([]byte(q)) {
		// Whole words only: "ed" must not match inside "wedding".
		if m.Start > 0 && q[m.Start-1] != ' ' {
			continue
		}
		if m.End < len(q) && q[m.End] != ' ' {
			continue
		}
		for _, entry := range idx.patternToIDs[m.PatternID] {
			scores[entry] += m.End - m.Start
		}
	}
	if len(scores) == 0 {
		return nil
	}

	order := make([]int, 0, len(scores))
	for entry := range scores {
		order = append(order, entry)
	}
	sort.Slice(order, func(i, j int) bool {
		if scores[order[i]] != scores[order[j]] {
			return scores[order[i]] > scores[order[j]]
		}
		return idx.entries[order[i]].Label < idx.entries[order[j]].Label
	})

	out := make([]Result, len(order))
	for i, entry := range order {
		out[i] = idx.entries[entry]
	}
	return out
}
