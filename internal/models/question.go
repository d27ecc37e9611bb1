package models

import "time"

type QuestionType string

const (
	QuestionChooseMeaning QuestionType = "CHOOSE_MEANING"
	QuestionReading       QuestionType = "READING"
	QuestionListening     QuestionType = "LISTENING"
	QuestionFillBlank     QuestionType = "FILL_BLANK"
	QuestionWriting       QuestionType = "WRITING"
)

// Choice reports whether the question is answered by picking an option.
func (t QuestionType) Choice() bool {
	switch t {
	case QuestionChooseMeaning, QuestionReading, QuestionListening:
		return true
	}
	return false
}

type Question struct {
	ID           int64            `json:"id"`
	LessonID     int64            `json:"lesson_id"`
	QuestionText string           `json:"question_text"`
	QuestionType QuestionType     `json:"question_type"`
	AudioURL     string           `json:"audio_url,omitempty"`
	Points       int              `json:"points"`
	Explanation  string           `json:"explanation,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	Options      []QuestionOption `json:"options"`
}

type QuestionOption struct {
	ID          int64  `json:"id"`
	QuestionID  int64  `json:"question_id"`
	OptionText  string `json:"option_text"`
	OptionLabel string `json:"option_label"`
	IsCorrect   bool   `json:"is_correct"`
}
