package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every successful response.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func Success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Status: status, Message: message, Data: data})
}

func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Status: status, Error: message})
}

// HTTPErrorHandler renders errors that escape handlers (unknown routes, bind
// failures, panics caught by Recover) in the same shape as Error.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(status)
		return
	}
	Error(c, status, message)
}
