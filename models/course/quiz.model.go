package course

import "gorm.io/gorm"

// Question type values.
const (
	QuestionSingle   = "SINGLE"
	QuestionMultiple = "MULTIPLE"
)

// Quiz belongs to exactly one QUIZ-type section. Required quizzes gate course
// completion regardless of the completion percentage.
type Quiz struct {
	gorm.Model
	SectionID    uint    `json:"section_id" gorm:"index;not null"`
	Title        string  `json:"title"`
	PassingScore float64 `json:"passing_score" gorm:"default:70"` // percent
	Required     bool    `json:"required" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}

// QuizQuestion is one ordered question within a quiz. SINGLE questions have
// exactly one correct option; MULTIPLE any subset.
type QuizQuestion struct {
	gorm.Model
	QuizID       uint   `json:"quiz_id" gorm:"index;not null"`
	Text         string `json:"text" gorm:"type:text"`
	QuestionType string `json:"question_type" gorm:"default:'SINGLE'"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizOption is one ordered answer option for a question.
type QuizOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
