package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError represents an API error response
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchView is a scheduled match as served by the API.
type MatchView struct {
	Number   int       `json:"number"`
	Home     string    `json:"home"`
	Away     string    `json:"away"`
	Venue    string    `json:"venue,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	Winners  []string  `json:"winners"`
}

func (s *Server) ok(c *fiber.Ctx, data any) error {
	return c.JSON(APIResponse{Success: true, Data: data, Timestamp: s.deps.Now().UTC()})
}

// errorHandler renders every error as an APIResponse.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(APIResponse{
		Error:     &APIError{Code: code, Message: message},
		Timestamp: s.deps.Now().UTC(),
	})
}
