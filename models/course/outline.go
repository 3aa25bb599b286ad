package course

import (
	"gorm.io/gorm"

	"educonnect/progress"
)

// LoadOutline builds the structure snapshot the progress tracker works
// against: every module and section of the course in order, with quiz
// passing scores and per-question correctness sets. Only live rows count;
// soft-deleted structure never appears in totals.
func LoadOutline(db *gorm.DB, courseID uint) (progress.CourseOutline, error) {
	outline := progress.CourseOutline{CourseID: courseID}

	var modules []Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return outline, err
	}

	for _, mod := range modules {
		mo := progress.ModuleOutline{ID: mod.ID}

		var sections []Section
		if err := db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).
			Order("order_index asc").Find(&sections).Error; err != nil {
			return outline, err
		}

		for _, sec := range sections {
			so := progress.SectionOutline{ID: sec.ID, Type: sec.SectionType}
			if sec.SectionType == SectionQuiz {
				quiz, err := loadQuizOutline(db, sec.ID)
				if err != nil {
					return outline, err
				}
				so.Quiz = quiz
			}
			mo.Sections = append(mo.Sections, so)
		}
		outline.Modules = append(outline.Modules, mo)
	}

	return outline, nil
}

func loadQuizOutline(db *gorm.DB, sectionID uint) (*progress.QuizOutline, error) {
	var quiz Quiz
	if err := db.Where("section_id = ? AND is_deleted = ?", sectionID, false).First(&quiz).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	qo := &progress.QuizOutline{
		ID:           quiz.ID,
		PassingScore: quiz.PassingScore,
		Required:     quiz.Required,
	}

	var questions []QuizQuestion
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	for _, q := range questions {
		var options []QuizOption
		if err := db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options).Error; err != nil {
			return nil, err
		}
		question := progress.QuestionOutline{Type: q.QuestionType, Options: len(options)}
		for i, opt := range options {
			if opt.IsCorrect {
				question.Correct = append(question.Correct, i)
			}
		}
		qo.Questions = append(qo.Questions, question)
	}

	return qo, nil
}
