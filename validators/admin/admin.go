package adminValidator

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"educonnect/middleware"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation on '" + fe.Tag() + "'!"
		}
	} else {
		errors["request"] = "Invalid request data!"
	}
	return errors
}

func paramID(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}
		c.Locals(key, id)
		return c.Next()
	}
}

// EnrollmentID parses the :enrollmentId route parameter
func EnrollmentID() fiber.Handler {
	return paramID("enrollmentId", "enrollmentID")
}

// RequestID parses the :requestId route parameter
func RequestID() fiber.Handler {
	return paramID("requestId", "requestID")
}

// UserID parses the :userId route parameter for moderation endpoints
func UserID() fiber.Handler {
	return paramID("userId", "targetUserID")
}

// RejectCertificate validator middleware
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason" validate:"required,min=3,max=1000"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedRejectCertificate", reqData)
		return c.Next()
	}
}
