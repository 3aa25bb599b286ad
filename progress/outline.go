package progress

// Section type values, mirrored from the course models.
const (
	SectionText  = "TEXT"
	SectionVideo = "VIDEO"
	SectionPdf   = "PDF"
	SectionQuiz  = "QUIZ"
)

// Question type values.
const (
	QuestionSingle   = "SINGLE"
	QuestionMultiple = "MULTIPLE"
)

// CourseOutline is a read-only snapshot of a course's structure, used by the
// tracker to validate references and compute section-weighted totals.
type CourseOutline struct {
	CourseID uint
	Modules  []ModuleOutline
}

// ModuleOutline lists a module's sections in course order.
type ModuleOutline struct {
	ID       uint
	Sections []SectionOutline
}

// SectionOutline describes one section. Quiz is populated only for QUIZ
// sections.
type SectionOutline struct {
	ID   uint
	Type string
	Quiz *QuizOutline
}

// QuizOutline carries everything needed to score a submission: the passing
// score, whether the quiz gates course completion, and per-question option
// counts and correctness sets.
type QuizOutline struct {
	ID           uint
	PassingScore float64
	Required     bool
	Questions    []QuestionOutline
}

// QuestionOutline describes one question. Correct holds the indexes of the
// correct options in option order.
type QuestionOutline struct {
	Type    string
	Options int
	Correct []int
}

// TotalSections counts sections across the entire course. Completion is
// weighted by section count, never by module count.
func (o CourseOutline) TotalSections() int {
	total := 0
	for i := range o.Modules {
		total += len(o.Modules[i].Sections)
	}
	return total
}

func (o CourseOutline) moduleByID(moduleID uint) *ModuleOutline {
	for i := range o.Modules {
		if o.Modules[i].ID == moduleID {
			return &o.Modules[i]
		}
	}
	return nil
}

func (m *ModuleOutline) sectionByID(sectionID uint) *SectionOutline {
	for i := range m.Sections {
		if m.Sections[i].ID == sectionID {
			return &m.Sections[i]
		}
	}
	return nil
}

// findSection locates a section anywhere in the course, returning the owning
// module as well.
func (o CourseOutline) findSection(sectionID uint) (*ModuleOutline, *SectionOutline) {
	for i := range o.Modules {
		if s := o.Modules[i].sectionByID(sectionID); s != nil {
			return &o.Modules[i], s
		}
	}
	return nil, nil
}

// requiredQuizzes returns (sectionID, quiz) pairs for every required quiz in
// the course.
func (o CourseOutline) requiredQuizzes() []SectionOutline {
	var out []SectionOutline
	for i := range o.Modules {
		for j := range o.Modules[i].Sections {
			s := o.Modules[i].Sections[j]
			if s.Type == SectionQuiz && s.Quiz != nil && s.Quiz.Required {
				out = append(out, s)
			}
		}
	}
	return out
}
