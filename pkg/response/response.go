package response

import "github.com/labstack/echo/v4"

// Envelope is the uniform body every endpoint returns.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Error      any    `json:"error,omitempty"`
}

func OK(c echo.Context, statusCode int, message string, data any) error {
	return c.JSON(statusCode, Envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func Fail(c echo.Context, statusCode int, message string, errDetail any) error {
	return c.JSON(statusCode, Envelope{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Error:      errDetail,
	})
}
