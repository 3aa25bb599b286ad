package progress

import "time"

// Enrollment status values. A document never moves back to ENROLLED once it
// reaches IN_PROGRESS, and COMPLETED is terminal for the tracker.
const (
	StatusEnrolled   = "ENROLLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusDropped    = "DROPPED"
	StatusSuspended  = "SUSPENDED"
)

// Per-module and per-section step status values.
const (
	StepNotStarted = "NOT_STARTED"
	StepStarted    = "STARTED"
	StepCompleted  = "COMPLETED"
)

// Document is the authoritative progress aggregate for one enrollment. It is
// stored as a JSON column on the enrollment row and mutated only through a
// Tracker.
type Document struct {
	Status               string               `json:"status"`
	Modules              []ModuleProgress     `json:"modules"`
	Assessments          []AssessmentProgress `json:"assessments"`
	CompletionPercentage float64              `json:"completion_percentage"`
	Certification        Certification        `json:"certification"`
	StartedAt            *time.Time           `json:"started_at,omitempty"`
	CompletedAt          *time.Time           `json:"completed_at,omitempty"`
	LastAccessed         *time.Time           `json:"last_accessed,omitempty"`
}

// ModuleProgress tracks one module the student has touched.
type ModuleProgress struct {
	ModuleID     uint              `json:"module_id"`
	Status       string            `json:"status"`
	TimeSpent    int64             `json:"time_spent"` // seconds, accumulates only
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	LastAccessed time.Time         `json:"last_accessed"`
	Sections     []SectionProgress `json:"sections"`
}

// SectionProgress tracks one section within a touched module. A section entry
// is only ever created under an existing module entry.
type SectionProgress struct {
	SectionID    uint       `json:"section_id"`
	Status       string     `json:"status"`
	TimeSpent    int64      `json:"time_spent"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	LastAccessed time.Time  `json:"last_accessed"`
	Notes        []Note     `json:"notes,omitempty"`
}

// Note is an append-only timestamped free-text entry on a section.
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AssessmentProgress holds all attempts for one (section, quiz) pair.
// BestScore and Passed are derived as max/OR over the attempts.
type AssessmentProgress struct {
	SectionID uint      `json:"section_id"`
	QuizID    uint      `json:"quiz_id"`
	Attempts  []Attempt `json:"attempts"`
	BestScore float64   `json:"best_score"`
	Passed    bool      `json:"passed"`
}

// Attempt is one scored quiz submission. AttemptNumber is sequential from 1
// with no gaps per (section, quiz) pair.
type Attempt struct {
	AttemptNumber int           `json:"attempt_number"`
	Score         float64       `json:"score"`
	PassingScore  float64       `json:"passing_score"`
	Passed        bool          `json:"passed"`
	Answers       map[int][]int `json:"answers"`
	SubmittedAt   time.Time     `json:"submitted_at"`
}

// Certification carries eligibility and issuance flags. Issued implies
// Eligible, which implies the document is COMPLETED.
type Certification struct {
	Eligible bool       `json:"eligible"`
	Issued   bool       `json:"issued"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
}

// NewDocument returns a fresh progress document for a new enrollment.
func NewDocument() *Document {
	return &Document{
		Status:      StatusEnrolled,
		Modules:     []ModuleProgress{},
		Assessments: []AssessmentProgress{},
	}
}

// CompletedSections counts sections marked completed across the document.
func (d *Document) CompletedSections() int {
	count := 0
	for i := range d.Modules {
		for j := range d.Modules[i].Sections {
			if d.Modules[i].Sections[j].Status == StepCompleted {
				count++
			}
		}
	}
	return count
}

func (d *Document) module(moduleID uint) *ModuleProgress {
	for i := range d.Modules {
		if d.Modules[i].ModuleID == moduleID {
			return &d.Modules[i]
		}
	}
	return nil
}

func (m *ModuleProgress) section(sectionID uint) *SectionProgress {
	for i := range m.Sections {
		if m.Sections[i].SectionID == sectionID {
			return &m.Sections[i]
		}
	}
	return nil
}

func (d *Document) assessment(sectionID, quizID uint) *AssessmentProgress {
	for i := range d.Assessments {
		if d.Assessments[i].SectionID == sectionID && d.Assessments[i].QuizID == quizID {
			return &d.Assessments[i]
		}
	}
	return nil
}
