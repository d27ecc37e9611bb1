package models

import "time"

type Word struct {
	ID              int64     `json:"id"`
	LessonID        *int64    `json:"lesson_id,omitempty"`
	Character       string    `json:"character"`
	Pinyin          string    `json:"pinyin"`
	Meaning         string    `json:"meaning"`
	AudioURL        string    `json:"audio_url,omitempty"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	HSKLevel        int       `json:"hsk_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// WordFilter narrows word listings. Zero values mean "no filter".
type WordFilter struct {
	HSKLevel int
	LessonID int64
	Search   string
	Limit    int
	Offset   int
}
