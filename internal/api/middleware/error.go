package middleware

import (
	"encoding/json"
	"errors"

	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": constants.GetErrorMessage(constants.ErrCodeInternalError),
			"code":  constants.ErrCodeInternalError,
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status := constants.GetHTTPStatus(err.Code)

	body := fiber.Map{
		"error": constants.GetErrorMessage(err.Code),
		"code":  err.Code,
	}

	var pushErr *daraja.PushError
	if errors.As(err.Cause, &pushErr) && len(pushErr.Details) > 0 {
		body["details"] = json.RawMessage(pushErr.Details)
	}

	return c.Status(status).JSON(body)
}
