package http

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ReadAndValidateRequest binds the request body into req, applies struct
// defaults and runs validator tags. Any failure is returned as a single
// error; callers decide the response shape.
func ReadAndValidateRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := defaults.Set(req); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
