package routes

import (
	"net/http"

	"meety/cmd/internal/lambdahttp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Routes struct {
	Meetings  *DefaultMeetingRoute
	Chat      *DefaultChatRoute
	Booking   *DefaultLexRoute
	Assistant *DefaultLexRoute
}

// Register mounts every route on e. Lex routes are only added when their
// fulfiller is configured.
func Register(e *echo.Echo, r *Routes) {
	e.Pre(preflight)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodOptions, http.MethodPost, http.MethodGet},
		AllowHeaders: []string{
			echo.HeaderContentType, echo.HeaderAuthorization, "X-Amz-Date", "X-Api-Key",
			"X-Amz-Security-Token", echo.HeaderAccept, echo.HeaderOrigin,
		},
		MaxAge: 300,
	}))

	// Meetings
	e.GET("/api/meetings", r.Meetings.GetMeetings)
	e.GET("/api/meetings/pending", r.Meetings.GetPendingMeetings)
	e.POST("/api/meetings/status", r.Meetings.UpdateStatus)

	// Chat
	if r.Chat != nil {
		e.POST("/api/chat", r.Chat.SendMessage)
	}

	// Lex code hooks
	if r.Booking != nil {
		e.POST("/api/lex/booking", r.Booking.Fulfill)
	}
	if r.Assistant != nil {
		e.POST("/api/lex/assistant", r.Assistant.Fulfill)
	}
}

// preflight answers every OPTIONS request with 200, the CORS headers and an
// empty body, the same as the Lambda handlers.
func preflight(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method != http.MethodOptions {
			return next(c)
		}
		header := c.Response().Header()
		for k, v := range lambdahttp.Headers() {
			header.Set(k, v)
		}
		return c.NoContent(http.StatusOK)
	}
}
