package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is the immutable result of one finished session. Answers holds
// one entry per answered question; unanswered questions are simply absent.
type QuizAttempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuizID      uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz        Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Answers     AnswerMap      `json:"answers" gorm:"type:jsonb"`
	Score       int            `json:"score" gorm:"not null"`
	Percentage  int            `json:"percentage" gorm:"not null"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
