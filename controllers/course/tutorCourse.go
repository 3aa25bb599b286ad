package controllers

import (
	"github.com/gofiber/fiber/v2"

	"educonnect/database"
	"educonnect/middleware"
	courseModels "educonnect/models/course"
)

// ownedCourse loads a course and verifies the caller is its tutor. Writes
// the error response itself when the check fails.
func ownedCourse(c *fiber.Ctx, tutorID uint, courseID int) (*courseModels.Course, bool) {
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil, false
	}
	if course.TutorID != tutorID {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
		return nil, false
	}
	return &course, true
}

// TutorCreateCourse creates a new draft course owned by the caller
func TutorCreateCourse(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateCourse").(*struct {
		Title       string `json:"title" validate:"required,min=3,max=200"`
		Description string `json:"description" validate:"max=10000"`
		Category    string `json:"category" validate:"max=100"`
		Level       string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		TutorID:     tutorID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Category:    reqData.Category,
		Status:      "DRAFT",
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// TutorUpdateCourse edits content fields; structural identity is untouched
func TutorUpdateCourse(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedUpdateCourse").(*struct {
		Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
		Description *string `json:"description" validate:"omitempty,max=10000"`
		Category    *string `json:"category" validate:"omitempty,max=100"`
		Level       *string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.Level != nil {
		updates["level"] = *reqData.Level
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(course).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// TutorPublishCourse makes a course live. Publishing freezes module/section
// structure; only content fields stay editable afterwards.
func TutorPublishCourse(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}

	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already published!", nil)
	}

	// A course must have at least one section to go live
	var sectionCount int64
	database.Database.Db.Model(&courseModels.Section{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&sectionCount)
	if sectionCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish a course without sections!", nil)
	}

	if err := database.Database.Db.Model(course).
		Updates(map[string]interface{}{"is_published": true, "status": "ACTIVE"}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// TutorListCourses lists the caller's own courses, drafts included
func TutorListCourses(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("tutor_id = ? AND is_deleted = ?", tutorID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// TutorCreateModule adds a module to an unpublished course
func TutorCreateModule(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}
	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot change the structure of a published course!", nil)
	}

	reqData, ok := c.Locals("validatedCreateModule").(*struct {
		Title       string `json:"title" validate:"required,min=2,max=200"`
		Description string `json:"description" validate:"max=5000"`
		OrderIndex  int    `json:"order_index" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := courseModels.Module{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// TutorDeleteModule soft-deletes a module of an unpublished course
func TutorDeleteModule(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}
	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot change the structure of a published course!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Model(&module).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if err := tx.Model(&courseModels.Section{}).Where("module_id = ?", moduleID).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// TutorCreateSection adds a section as a tagged variant: exactly one payload
// among text content, video URL, pdf URL or quiz definition, matching the
// declared type. The validator enforces the variant shape.
func TutorCreateSection(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}
	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot change the structure of a published course!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedCreateSection").(*SectionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := courseModels.Section{
		CourseID:    uint(courseID),
		ModuleID:    uint(moduleID),
		Title:       reqData.Title,
		SectionType: reqData.SectionType,
		OrderIndex:  reqData.OrderIndex,
	}
	switch reqData.SectionType {
	case courseModels.SectionText:
		section.TextContent = reqData.TextContent
	case courseModels.SectionVideo:
		section.VideoURL = reqData.VideoURL
	case courseModels.SectionPdf:
		section.PdfURL = reqData.PdfURL
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&section).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	if reqData.SectionType == courseModels.SectionQuiz {
		quiz := courseModels.Quiz{
			SectionID:    section.ID,
			Title:        reqData.Quiz.Title,
			PassingScore: reqData.Quiz.PassingScore,
			Required:     reqData.Quiz.Required,
		}
		if err := tx.Create(&quiz).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// SectionPayload is the validated body for section creation
type SectionPayload struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	SectionType string `json:"section_type" validate:"required,oneof=TEXT VIDEO PDF QUIZ"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	PdfURL      string `json:"pdf_url" validate:"omitempty,url"`
	Quiz        *struct {
		Title        string  `json:"title" validate:"required,min=2,max=200"`
		PassingScore float64 `json:"passing_score" validate:"gte=0,lte=100"`
		Required     bool    `json:"required"`
	} `json:"quiz"`
}

// TutorAddQuizQuestion appends a question with its options to a quiz section
func TutorAddQuizQuestion(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	course, ok := ownedCourse(c, tutorID, courseID)
	if !ok {
		return nil
	}
	if course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot change the structure of a published course!", nil)
	}

	var section courseModels.Section
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		sectionID, courseID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}
	if section.SectionType != courseModels.SectionQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Section is not a quiz!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("section_id = ? AND is_deleted = ?", sectionID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedAddQuestion").(*QuestionPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question := courseModels.QuizQuestion{
		QuizID:       quiz.ID,
		Text:         reqData.Text,
		QuestionType: reqData.QuestionType,
		OrderIndex:   reqData.OrderIndex,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	for i, opt := range reqData.Options {
		option := courseModels.QuizOption{
			QuestionID: question.ID,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// QuestionPayload is the validated body for adding a quiz question
type QuestionPayload struct {
	Text         string `json:"text" validate:"required,min=2"`
	QuestionType string `json:"question_type" validate:"required,oneof=SINGLE MULTIPLE"`
	OrderIndex   int    `json:"order_index" validate:"gte=0"`
	Options      []struct {
		Text      string `json:"text" validate:"required"`
		IsCorrect bool   `json:"is_correct"`
	} `json:"options" validate:"required,min=2,dive"`
}

// TutorCourseEnrollments lists enrollments for a course the caller owns
func TutorCourseEnrollments(c *fiber.Ctx) error {
	tutorID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	if _, ok := ownedCourse(c, tutorID, courseID); !ok {
		return nil
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
