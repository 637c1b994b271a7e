package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz is a named, ordered, immutable sequence of generated questions.
// Only Score is ever mutated after creation (last completed attempt wins).
type Quiz struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	SourceFileName string         `json:"source_file_name" gorm:"not null"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	Score          *int           `json:"score,omitempty"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
