package models

import "time"

// Status tracks how familiar a learner is with a word.
type Status string

const (
	StatusNew       Status = "New"
	StatusLearning  Status = "Learning"
	StatusReviewing Status = "Reviewing"
	StatusMastered  Status = "Mastered"
)

// Rating is the learner's self-assessment after reviewing a word.
type Rating string

const (
	RatingEasy   Rating = "easy"
	RatingHard   Rating = "hard"
	RatingForgot Rating = "forgot"
)

func (r Rating) Valid() bool {
	switch r {
	case RatingEasy, RatingHard, RatingForgot:
		return true
	}
	return false
}

type WordProgress struct {
	ID             int64      `json:"id"`
	UserID         string     `json:"user_id"`
	WordID         int64      `json:"word_id"`
	Status         Status     `json:"status"`
	NextReviewDate time.Time  `json:"next_review_date"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	WrongCount     int        `json:"wrong_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// Consistent reports whether the counters satisfy
// review_count == correct_count + wrong_count with nothing negative.
func (p WordProgress) Consistent() bool {
	if p.ReviewCount < 0 || p.CorrectCount < 0 || p.WrongCount < 0 {
		return false
	}
	return p.ReviewCount == p.CorrectCount+p.WrongCount
}

// DueWord is a word scheduled for review, with the learner's progress
// attached when a progress record exists.
type DueWord struct {
	Word
	Progress *WordProgress `json:"progress,omitempty"`
}

type ReviewHistory struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	WordID     int64     `json:"word_id"`
	Rating     Rating    `json:"rating"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
