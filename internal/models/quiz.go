package models

import "time"

// QuizAnswer carries exactly one of SelectedOptionID (choice questions)
// or AnswerText (free-text questions).
type QuizAnswer struct {
	QuestionID       int64  `json:"question_id"`
	SelectedOptionID *int64 `json:"selected_option_id,omitempty"`
	AnswerText       string `json:"answer_text,omitempty"`
}

type QuizSubmission struct {
	LessonID int64        `json:"lesson_id"`
	Answers  []QuizAnswer `json:"answers"`
}

type QuestionResult struct {
	QuestionID       int64  `json:"question_id"`
	IsCorrect        bool   `json:"is_correct"`
	PointsEarned     int    `json:"points_earned"`
	SelectedOptionID *int64 `json:"selected_option_id,omitempty"`
	Explanation      string `json:"explanation,omitempty"`
}

// QuizResult aggregates per-question results. Score and the completion
// flag are derived from the QuestionResults and the pass threshold,
// never set independently.
type QuizResult struct {
	Score              int              `json:"score"`
	TotalPoints        int              `json:"total_points"`
	TotalQuestions     int              `json:"total_questions"`
	CorrectAnswers     int              `json:"correct_answers"`
	WrongAnswers       int              `json:"wrong_answers"`
	LessonCompleted    bool             `json:"lesson_completed"`
	NextLessonUnlocked bool             `json:"next_lesson_unlocked"`
	NextLessonID       *int64           `json:"next_lesson_id,omitempty"`
	QuestionResults    []QuestionResult `json:"question_results"`
}

// LessonProgress is one recorded quiz attempt.
type LessonProgress struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	LessonID       int64     `json:"lesson_id"`
	Score          int       `json:"score"`
	TotalPoints    int       `json:"total_points"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	WrongAnswers   int       `json:"wrong_answers"`
	CompletedAt    time.Time `json:"completed_at"`
}
