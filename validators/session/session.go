package sessionValidator

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	sessionController "educonnect/controllers/session"
	"educonnect/middleware"
	"educonnect/scheduling"
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

// SessionID parses the :sessionId route parameter
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("sessionId"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sessionId!", nil)
		}
		c.Locals("sessionID", id)
		return c.Next()
	}
}

// ScheduleSession validator middleware. Parses the calendar date and the
// wall clock times up front so the controller only deals with resolved
// values. Dates are interpreted in UTC.
func ScheduleSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(sessionController.SessionPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.MaxAttendees == 0 {
			reqData.MaxAttendees = 20
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		errors := make(map[string]string)

		day, err := time.ParseInLocation("2006-01-02", reqData.Date, time.UTC)
		if err != nil {
			errors["date"] = "Date must be in YYYY-MM-DD format!"
		}

		startMin, err := scheduling.ParseTimeOfDay(reqData.StartTime)
		if err != nil {
			errors["start_time"] = "Start time must be in HH:MM format!"
		}
		endMin, err := scheduling.ParseTimeOfDay(reqData.EndTime)
		if err != nil {
			errors["end_time"] = "End time must be in HH:MM format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Day = day
		reqData.StartMin = startMin
		reqData.EndMin = endMin

		c.Locals("validatedScheduleSession", reqData)
		return c.Next()
	}
}
