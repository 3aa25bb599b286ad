package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	"educonnect/middleware"
)

// RecordActivity validator middleware for the time tracking endpoint
func RecordActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID  uint  `json:"module_id" validate:"required"`
			SectionID uint  `json:"section_id" validate:"required"`
			Seconds   int64 `json:"seconds" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedActivity", reqData)
		return c.Next()
	}
}

// CompleteSection validator middleware
func CompleteSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID  uint   `json:"module_id" validate:"required"`
			SectionID uint   `json:"section_id" validate:"required"`
			Note      string `json:"note" validate:"max=2000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCompleteSection", reqData)
		return c.Next()
	}
}

// SubmitQuiz validator middleware. Answer shape checks (question indexes,
// option ranges, single vs multiple selection) belong to the tracker, not
// here; this only enforces the request envelope.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SectionID uint          `json:"section_id" validate:"required"`
			QuizID    uint          `json:"quiz_id" validate:"required"`
			Answers   map[int][]int `json:"answers" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}
