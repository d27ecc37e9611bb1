package models

import "time"

type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
)

// ReviewSession is one bounded pass over the words due at session start.
// It is never persisted: abandoning a session loses nothing, the words
// stay due and are re-fetched on the next start.
type ReviewSession struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Words     []DueWord    `json:"words"`
	Cursor    int          `json:"cursor"`
	State     SessionState `json:"state"`
	StartedAt time.Time    `json:"started_at"`
}

func (s *ReviewSession) Completed() bool {
	return s.State == SessionCompleted
}

// CurrentWord returns the word at the cursor, or nil when the session
// is completed.
func (s *ReviewSession) CurrentWord() *DueWord {
	if s.Completed() || s.Cursor >= len(s.Words) {
		return nil
	}
	return &s.Words[s.Cursor]
}
