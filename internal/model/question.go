package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionType is the closed set of question kinds a quiz can contain.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeShortAnswer    QuestionType = "SHORT_ANSWER"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	}
	return false
}

// AutoAdvances reports whether answering this kind of question schedules an
// automatic move to the next question. Short answers are typed, not picked,
// so the user navigates manually.
func (t QuestionType) AutoAdvances() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Type          QuestionType   `json:"type" gorm:"not null"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	Options       StringSlice    `json:"options,omitempty" gorm:"type:jsonb"` // only for MULTIPLE_CHOICE
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	OrderInQuiz   int            `json:"order_in_quiz" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
