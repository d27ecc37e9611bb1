package models

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	HSKLevel    int       `json:"hsk_level"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Lesson struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	LessonIndex int       `json:"lesson_index"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lesson status values as stored per user.
const (
	LessonNotStarted = "NotStarted"
	LessonInProgress = "InProgress"
	LessonCompleted  = "Completed"
)

// LessonWithStatus is a lesson annotated with one user's standing.
type LessonWithStatus struct {
	Lesson
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`
	Locked          bool   `json:"locked"`
}
