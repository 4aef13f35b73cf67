package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/services"
)

// writeServiceError maps a service failure to the status its kind
// implies, passing the message through verbatim.
func writeServiceError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case services.IsValidation(err):
		status = http.StatusBadRequest
	case services.IsConflict(err):
		status = http.StatusConflict
	case services.IsNotFound(err):
		status = http.StatusNotFound
	}
	return c.Status(status).JSON(map[string]interface{}{"error": err.Error()})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, &services.ValidationError{Message: "invalid id"}
	}
	return uint(id), nil
}
