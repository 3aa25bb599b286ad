package controllers

import (
	"github.com/gofiber/fiber/v2"

	"educonnect/database"
	"educonnect/middleware"
	"educonnect/models"
	courseModels "educonnect/models/course"
)

// SectionView is a section as shown to students: the payload of its variant,
// never the quiz answers.
type SectionView struct {
	courseModels.Section
	Quiz *QuizView `json:"quiz,omitempty"`
}

// QuizView strips correctness flags from a quiz for student consumption.
type QuizView struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	PassingScore float64        `json:"passing_score"`
	Required     bool           `json:"required"`
	Questions    []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID           uint     `json:"id"`
	Text         string   `json:"text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options"`
}

// GetAllCourses lists published courses for the catalog
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Category string `json:"category"`
		Level    string `json:"level"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	if reqData != nil && reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData != nil && reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("rating desc, created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one course with its full module/section outline.
// Quiz questions are included without correctness flags.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var tutor models.User
	database.Database.Db.Select("id, name, headline, profile_image").
		Where("id = ?", course.TutorID).First(&tutor)

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules)

	type ModuleWithSections struct {
		courseModels.Module
		Sections []SectionView `json:"sections"`
	}

	result := make([]ModuleWithSections, len(modules))
	for i, mod := range modules {
		result[i] = ModuleWithSections{Module: mod}

		var sections []courseModels.Section
		database.Database.Db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).
			Order("order_index asc").Find(&sections)

		for _, sec := range sections {
			view := SectionView{Section: sec}
			if sec.SectionType == courseModels.SectionQuiz {
				view.Quiz = loadQuizView(sec.ID)
			}
			result[i].Sections = append(result[i].Sections, view)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"tutor":   tutor,
		"modules": result,
	})
}

// loadQuizView loads a quiz for students with answers stripped
func loadQuizView(sectionID uint) *QuizView {
	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("section_id = ? AND is_deleted = ?", sectionID, false).
		First(&quiz).Error; err != nil {
		return nil
	}

	view := &QuizView{
		ID:           quiz.ID,
		Title:        quiz.Title,
		PassingScore: quiz.PassingScore,
		Required:     quiz.Required,
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions)

	for _, q := range questions {
		var options []courseModels.QuizOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options)

		qv := QuestionView{ID: q.ID, Text: q.Text, QuestionType: q.QuestionType}
		for _, opt := range options {
			qv.Options = append(qv.Options, opt.Text)
		}
		view.Questions = append(view.Questions, qv)
	}

	return view
}
