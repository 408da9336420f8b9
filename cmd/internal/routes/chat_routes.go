package routes

import (
	"context"
	"net/http"

	"meety/cmd/internal/lexv2"
	"meety/cmd/internal/service"
	"meety/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ChatService interface {
	Send(ctx context.Context, req *service.ChatRequest) (*service.ChatResponse, apierror.ErrorResponse)
}

type DefaultChatRoute struct {
	ChatService ChatService
}

func NewChatDefault(chatService ChatService) *DefaultChatRoute {
	return &DefaultChatRoute{ChatService: chatService}
}

func (r *DefaultChatRoute) SendMessage(c echo.Context) error {
	var req service.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := r.ChatService.Send(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// DefaultLexRoute lets a local client post raw Lex V2 code-hook events to a
// fulfillment service without deploying the Lambdas.
type DefaultLexRoute struct {
	Fulfiller lexv2.Fulfiller
}

func NewLexDefault(fulfiller lexv2.Fulfiller) *DefaultLexRoute {
	return &DefaultLexRoute{Fulfiller: fulfiller}
}

func (r *DefaultLexRoute) Fulfill(c echo.Context) error {
	var ev lexv2.Event
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}
	return c.JSON(http.StatusOK, r.Fulfiller.Handle(c.Request().Context(), &ev))
}
