package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	controllers "educonnect/controllers/course"
	"educonnect/middleware"
	courseModels "educonnect/models/course"
)

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3,max=200"`
			Description string `json:"description" validate:"max=10000"`
			Category    string `json:"category" validate:"max=100"`
			Level       string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware. All fields are optional; only the ones
// present in the body are applied.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
			Description *string `json:"description" validate:"omitempty,max=10000"`
			Category    *string `json:"category" validate:"omitempty,max=100"`
			Level       *string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedUpdateCourse", reqData)
		return c.Next()
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2,max=200"`
			Description string `json:"description" validate:"max=5000"`
			OrderIndex  int    `json:"order_index" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCreateModule", reqData)
		return c.Next()
	}
}

// CreateSection validator middleware. On top of the tag checks it enforces
// the per-type content rules: TEXT needs text_content, VIDEO a video_url,
// PDF a pdf_url, and QUIZ an embedded quiz definition.
func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.SectionPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		errors := make(map[string]string)
		switch reqData.SectionType {
		case courseModels.SectionText:
			if reqData.TextContent == "" {
				errors["text_content"] = "Text content is required for TEXT sections!"
			}
		case courseModels.SectionVideo:
			if reqData.VideoURL == "" {
				errors["video_url"] = "Video URL is required for VIDEO sections!"
			}
		case courseModels.SectionPdf:
			if reqData.PdfURL == "" {
				errors["pdf_url"] = "PDF URL is required for PDF sections!"
			}
		case courseModels.SectionQuiz:
			if reqData.Quiz == nil {
				errors["quiz"] = "Quiz definition is required for QUIZ sections!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateSection", reqData)
		return c.Next()
	}
}

// AddQuestion validator middleware. SINGLE questions must carry exactly one
// correct option, MULTIPLE at least one.
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuestionPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		correct := 0
		for _, opt := range reqData.Options {
			if opt.IsCorrect {
				correct++
			}
		}

		errors := make(map[string]string)
		if reqData.QuestionType == courseModels.QuestionSingle && correct != 1 {
			errors["options"] = "SINGLE questions must have exactly one correct option!"
		}
		if reqData.QuestionType == courseModels.QuestionMultiple && correct == 0 {
			errors["options"] = "MULTIPLE questions must have at least one correct option!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddQuestion", reqData)
		return c.Next()
	}
}
