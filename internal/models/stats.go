package models

import "time"

// ReviewStats summarizes one user's vocabulary standing.
type ReviewStats struct {
	TotalWords     int `json:"total_words"`
	NewWords       int `json:"new_words"`
	LearningWords  int `json:"learning_words"`
	ReviewingWords int `json:"reviewing_words"`
	MasteredWords  int `json:"mastered_words"`
	DueToday       int `json:"due_today"`
}

// DailyStats is a per-day snapshot taken by the scheduler.
type DailyStats struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Day            time.Time `json:"day"`
	Reviews        int       `json:"reviews"`
	CorrectReviews int       `json:"correct_reviews"`
	MasteredWords  int       `json:"mastered_words"`
}
