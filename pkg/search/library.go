package search

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pandalove/gopanda/pkg/gamestore"
	"github.com/pandalove/gopanda/pkg/musicstore"
	"github.com/pandalove/gopanda/pkg/photostore"
)

// Library keeps a compiled Index in sync with the domain stores. Store
// mutations only mark the index dirty; the rebuild happens lazily on the next
// Search, so bulk loads (seeding, imports) do not recompile per mutation.
type Library struct {
	photos *photostore.Store
	music  *musicstore.Store
	games  *gamestore.Store
	log    *zap.Logger

	mu      sync.Mutex
	idx     *Index
	dirty   bool
	cancels []func()
}

// NewLibrary subscribes to the given stores. Any of them may be nil.
func NewLibrary(photos *photostore.Store, music *musicstore.Store, games *gamestore.Store, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Library{
		photos: photos,
		music:  music,
		games:  games,
		log:    log,
		dirty:  true,
	}

	mark := func() {
		l.mu.Lock()
		l.dirty = true
		l.mu.Unlock()
	}
	if photos != nil {
		l.cancels = append(l.cancels, photos.Subscribe(mark))
	}
	if music != nil {
		l.cancels = append(l.cancels, music.Subscribe(mark))
	}
	if games != nil {
		l.cancels = append(l.cancels, games.Subscribe(mark))
	}
	return l
}

// Close detaches from the stores.
func (l *Library) Close() {
	for _, cancel := range l.cancels {
		cancel()
	}
	l.cancels = nil
}

// Search rebuilds the index if needed and runs the query against it.
func (l *Library) Search(query string) []Result {
	l.mu.Lock()
	if l.dirty {
		idx, err := Compile(l.collect(), l.log)
		if err != nil {
			// Keep serving the previous index rather than failing the query.
			l.log.Warn("search index rebuild failed", zap.Error(err))
		} else {
			l.idx = idx
			l.dirty = false
		}
	}
	idx := l.idx
	l.mu.Unlock()

	return idx.Search(query)
}

func (l *Library) collect() []Entry {
	var entries []Entry

	if l.music != nil {
		for _, s := range l.music.Songs() {
			entries = append(entries, Entry{
				ID:    s.ID,
				Kind:  KindSong,
				Label: s.Title,
				Terms: []string{s.Title, s.Artist},
			})
		}
		for _, p := range l.music.Playlists() {
			entries = append(entries, Entry{
				ID:    p.ID,
				Kind:  KindPlaylist,
				Label: p.Title,
				Terms: []string{p.Title},
			})
		}
	}

	if l.photos != nil {
		for _, p := range l.photos.Photos() {
			label := p.Title
			if label == "" {
				label = p.URI
			}
			terms := make([]string, 0, 3)
			for _, t := range []string{p.Title, p.Description, p.Location} {
				if t != "" {
					terms = append(terms, t)
				}
			}
			if len(terms) == 0 {
				continue
			}
			entries = append(entries, Entry{ID: p.ID, Kind: KindPhoto, Label: label, Terms: terms})
		}
		for _, a := range l.photos.Albums() {
			terms := []string{a.Title}
			if a.Description != "" {
				terms = append(terms, a.Description)
			}
			entries = append(entries, Entry{ID: a.ID, Kind: KindAlbum, Label: a.Title, Terms: terms})
		}
	}

	if l.games != nil {
		for _, n := range l.games.LoveNotes() {
			entries = append(entries, Entry{
				ID:    n.ID,
				Kind:  KindLoveNote,
				Label: n.Content,
				Terms: []string{n.Content},
			})
		}
		for _, q := range l.games.QuizQuestions() {
			entries = append(entries, Entry{
				ID:    q.ID,
				Kind:  KindQuizQuestion,
				Label: q.Question,
				Terms: []string{q.Question},
			})
		}
	}

	return entries
}
