package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"educonnect/progress"
)

// Enrollment ties a student to a course and owns the authoritative progress
// document. The document lives in the Progress JSON column and is only ever
// mutated through progress.Tracker commands applied under a row lock; the
// denormalized columns exist for cheap listings and admin queries.
type Enrollment struct {
	gorm.Model
	UserID               uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID             uint           `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	Status               string         `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED, DROPPED, SUSPENDED
	Progress             datatypes.JSON `json:"progress"`
	CompletionPercentage float64        `json:"completion_percentage" gorm:"default:0"`
	CompletedSections    int            `json:"completed_sections" gorm:"default:0"`
	TotalSections        int            `json:"total_sections" gorm:"default:0"`
	CompletedAt          *time.Time     `json:"completed_at"`
	IsDeleted            bool           `gorm:"default:false"`
}

// Document decodes the progress JSON column. A missing column yields a fresh
// document so old rows keep working.
func (e *Enrollment) Document() (*progress.Document, error) {
	if len(e.Progress) == 0 {
		return progress.NewDocument(), nil
	}
	doc := new(progress.Document)
	if err := json.Unmarshal(e.Progress, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ApplyDocument writes the document back to the JSON column and refreshes
// the denormalized columns from it.
func (e *Enrollment) ApplyDocument(doc progress.Document, totalSections int) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	e.Progress = datatypes.JSON(raw)
	e.Status = doc.Status
	e.CompletionPercentage = doc.CompletionPercentage
	e.CompletedSections = doc.CompletedSections()
	e.TotalSections = totalSections
	e.CompletedAt = doc.CompletedAt
	return nil
}
