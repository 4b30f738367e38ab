package gamestore

import (
	"testing"

	"github.com/pandalove/gopanda/internal/store"
)

func newTestStore() *Store {
	return New(store.NewMemory(), nil)
}

func note(id, date string) LoveNote {
	return LoveNote{ID: id, Content: "note " + id, Date: date}
}

func TestLoveNoteLifecycle(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddLoveNote(note("1", "2023-10-15T14:30:00Z"))
	s.AddLoveNote(note("2", "2023-11-02T09:15:00Z"))

	if got := s.UnreadLoveNoteCount(); got != 2 {
		t.Fatalf("unread count = %d, want 2", got)
	}

	s.MarkLoveNoteRead("1")
	s.MarkLoveNoteRead("1") // idempotent
	if got := s.UnreadLoveNoteCount(); got != 1 {
		t.Fatalf("unread count after read = %d, want 1", got)
	}

	s.MarkLoveNoteRead("2")
	if got := s.UnreadLoveNoteCount(); got != 0 {
		t.Fatalf("unread count = %d, want 0 after reading every note", got)
	}

	s.RemoveLoveNote("1")
	if got := len(s.LoveNotes()); got != 1 {
		t.Errorf("notes after remove = %d, want 1", got)
	}

	s.MarkLoveNoteRead("missing") // no-op
	s.RemoveLoveNote("missing")   // no-op
	if got := len(s.LoveNotes()); got != 1 {
		t.Errorf("no-op mutations changed the collection, got %d", got)
	}
}

func TestNewLoveNote(t *testing.T) {
	n := NewLoveNote("miss you")
	if n.ID == "" {
		t.Error("NewLoveNote did not assign an id")
	}
	if n.Content != "miss you" || n.IsRead {
		t.Errorf("unexpected note: %+v", n)
	}
	if n.Date == "" {
		t.Error("NewLoveNote did not date the note")
	}
}

func TestQuizQuestions(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddQuizQuestion(MemoryQuizQuestion{
		ID:            "1",
		Question:      "Where was our first date?",
		Options:       []string{"Cafe Delight", "The Garden Bistro"},
		CorrectAnswer: 1,
	})
	s.AddQuizQuestion(MemoryQuizQuestion{
		ID:            "2",
		Question:      "What's my favorite dessert?",
		Options:       []string{"Chocolate cake", "Tiramisu"},
		CorrectAnswer: 1,
	})

	s.RemoveQuizQuestion("1")
	qs := s.QuizQuestions()
	if len(qs) != 1 || qs[0].ID != "2" {
		t.Errorf("questions = %v, want just question 2", qs)
	}
}

func TestLatestQuizResult(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	if _, ok := s.LatestQuizResult(); ok {
		t.Fatal("empty log should report no result")
	}

	s.AddQuizResult(QuizResult{Date: "2023-01-01", Score: 3, TotalQuestions: 10})
	s.AddQuizResult(QuizResult{Date: "2023-06-01", Score: 8, TotalQuestions: 10})
	s.AddQuizResult(QuizResult{Date: "2023-03-01", Score: 5, TotalQuestions: 10})

	latest, ok := s.LatestQuizResult()
	if !ok || latest.Date != "2023-06-01" {
		t.Errorf("latest = %+v ok=%v, want the 2023-06-01 entry", latest, ok)
	}

	// Ties keep the earliest-appended entry.
	s.AddQuizResult(QuizResult{Date: "2023-06-01", Score: 9, TotalQuestions: 10})
	latest, _ = s.LatestQuizResult()
	if latest.Score != 8 {
		t.Errorf("tie broke to score %d, want the first appended (8)", latest.Score)
	}
}

func TestGameSnapshotReload(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)

	s.AddLoveNote(note("1", "2023-12-05T18:45:00Z"))
	s.AddQuizResult(QuizResult{Date: "2023-06-01", Score: 8, TotalQuestions: 10})
	s.Close()

	s2 := New(kv, nil)
	defer s2.Close()

	if got := len(s2.LoveNotes()); got != 1 {
		t.Errorf("reloaded store has %d notes, want 1", got)
	}
	if _, ok := s2.LatestQuizResult(); !ok {
		t.Error("reloaded store lost quiz results")
	}
}
