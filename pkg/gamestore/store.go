package gamestore

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/pandalove/gopanda/internal/store"
)

// StorageKey is the KV key the game snapshot persists under.
const StorageKey = "game-storage"

type snapshot struct {
	LoveNotes     []LoveNote           `json:"loveNotes"`
	QuizQuestions []MemoryQuizQuestion `json:"quizQuestions"`
	QuizResults   []QuizResult         `json:"quizResults"`
}

// Store owns the game collections. Mutations update memory synchronously,
// enqueue a full-state snapshot save and notify subscribers. Operations on
// absent ids are silent no-ops.
type Store struct {
	mu    sync.RWMutex
	state snapshot

	writer *store.Writer
	log    *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New loads the persisted snapshot (if any) and returns a ready store.
func New(kv store.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		writer: store.NewWriter(kv, StorageKey, log),
		log:    log,
		subs:   make(map[int]func()),
	}

	blob, ok, err := kv.Load(context.Background(), StorageKey)
	if err != nil {
		log.Warn("game snapshot load failed", zap.Error(err))
		return s
	}
	if ok {
		if err := json.Unmarshal(blob, &s.state); err != nil {
			log.Warn("game snapshot corrupt, starting empty", zap.Error(err))
			s.state = snapshot{}
		}
	}
	return s
}

// Close flushes pending saves and stops the background writer.
func (s *Store) Close() { s.writer.Close() }

// Flush blocks until pending snapshot saves complete.
func (s *Store) Flush() { s.writer.Flush() }

// Subscribe registers fn to run synchronously after every mutation.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) snapshotLocked() []byte {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("game snapshot marshal failed", zap.Error(err))
		return nil
	}
	return blob
}

func (s *Store) commit(blob []byte) {
	if blob != nil {
		s.writer.Enqueue(blob)
	}
	s.notify()
}

// AddLoveNote appends a note.
func (s *Store) AddLoveNote(n LoveNote) {
	s.mu.Lock()
	s.state.LoveNotes = append(s.state.LoveNotes, n)
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemoveLoveNote removes the matching note.
func (s *Store) RemoveLoveNote(id string) {
	s.mu.Lock()
	notes := s.state.LoveNotes[:0:0]
	for _, n := range s.state.LoveNotes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	s.state.LoveNotes = notes
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// MarkLoveNoteRead sets the read flag on the matching note. Idempotent.
func (s *Store) MarkLoveNoteRead(id string) {
	s.mu.Lock()
	for i := range s.state.LoveNotes {
		if s.state.LoveNotes[i].ID == id {
			s.state.LoveNotes[i].IsRead = true
			break
		}
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// AddQuizQuestion appends a question.
func (s *Store) AddQuizQuestion(q MemoryQuizQuestion) {
	s.mu.Lock()
	s.state.QuizQuestions = append(s.state.QuizQuestions, q.clone())
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemoveQuizQuestion removes the matching question.
func (s *Store) RemoveQuizQuestion(id string) {
	s.mu.Lock()
	questions := s.state.QuizQuestions[:0:0]
	for _, q := range s.state.QuizQuestions {
		if q.ID != id {
			questions = append(questions, q)
		}
	}
	s.state.QuizQuestions = questions
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// AddQuizResult appends to the result log.
func (s *Store) AddQuizResult(r QuizResult) {
	s.mu.Lock()
	s.state.QuizResults = append(s.state.QuizResults, r)
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// LoveNotes returns the notes in insertion order.
func (s *Store) LoveNotes() []LoveNote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LoveNote(nil), s.state.LoveNotes...)
}

// QuizQuestions returns the questions in insertion order.
func (s *Store) QuizQuestions() []MemoryQuizQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MemoryQuizQuestion, len(s.state.QuizQuestions))
	for i, q := range s.state.QuizQuestions {
		out[i] = q.clone()
	}
	return out
}

// QuizResults returns the full result log, oldest first.
func (s *Store) QuizResults() []QuizResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]QuizResult(nil), s.state.QuizResults...)
}

// LatestQuizResult returns the result with the greatest date.
// Dates are ISO-8601 strings, so lexical order is chronological; the first of
// several tied entries wins.
func (s *Store) LatestQuizResult() (QuizResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.state.QuizResults) == 0 {
		return QuizResult{}, false
	}
	latest := s.state.QuizResults[0]
	for _, r := range s.state.QuizResults[1:] {
		if r.Date > latest.Date {
			latest = r
		}
	}
	return latest, true
}

// UnreadLoveNoteCount counts notes not yet marked read.
func (s *Store) UnreadLoveNoteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, note := range s.state.LoveNotes {
		if !note.IsRead {
			n++
		}
	}
	return n
}
