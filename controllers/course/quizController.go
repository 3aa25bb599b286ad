package controllers

import (
	"github.com/gofiber/fiber/v2"

	"educonnect/middleware"
	"educonnect/progress"
)

// SubmitQuizAttempt scores a quiz submission through the enrollment command
// path. Scoring itself lives in the progress package; this handler only
// shapes the request and the response.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedQuizSubmit").(*struct {
		SectionID uint          `json:"section_id" validate:"required"`
		QuizID    uint          `json:"quiz_id" validate:"required"`
		Answers   map[int][]int `json:"answers" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var attempt progress.Attempt
	enrollment, snapshot, ok := runEnrollmentCommand(c, userID, courseID, func(t *progress.Tracker) error {
		var submitErr error
		attempt, submitErr = t.SubmitQuizAttempt(reqData.SectionID, reqData.QuizID, reqData.Answers)
		return submitErr
	})
	if !ok {
		return nil
	}

	var best *progress.AssessmentProgress
	for i := range snapshot.Assessments {
		if snapshot.Assessments[i].SectionID == reqData.SectionID && snapshot.Assessments[i].QuizID == reqData.QuizID {
			best = &snapshot.Assessments[i]
			break
		}
	}

	data := fiber.Map{
		"attempt":    attempt,
		"enrollment": enrollment,
	}
	if best != nil {
		data["best_score"] = best.BestScore
		data["passed"] = best.Passed
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", data)
}
