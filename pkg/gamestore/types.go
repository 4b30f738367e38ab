// Package gamestore owns the mini-game state: love notes, memory-quiz
// questions and the append-only quiz result log.
package gamestore

import (
	"time"

	"github.com/google/uuid"
)

// LoveNote is a short message left for the partner.
type LoveNote struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
	IsRead  bool   `json:"isRead"`
}

// NewLoveNote builds an unread note with a generated id, dated now.
func NewLoveNote(content string) LoveNote {
	return LoveNote{
		ID:      uuid.NewString(),
		Content: content,
		Date:    time.Now().UTC().Format(time.RFC3339),
	}
}

// MemoryQuizQuestion is one multiple-choice question. CorrectAnswer indexes
// into Options.
type MemoryQuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

func (q MemoryQuizQuestion) clone() MemoryQuizQuestion {
	cp := q
	cp.Options = append([]string(nil), q.Options...)
	return cp
}

// QuizResult is one finished quiz run. Entries are append-only and have no id.
type QuizResult struct {
	Date           string `json:"date"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}
