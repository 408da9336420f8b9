package lambdahttp

import (
	"context"
	"net/http"

	"meety/cmd/internal/service"
	"meety/cmd/internal/utils/apierror"
)

type ChatService interface {
	Send(ctx context.Context, req *service.ChatRequest) (*service.ChatResponse, apierror.ErrorResponse)
}

type ChatHandler struct {
	ChatService ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{ChatService: svc}
}

func (h *ChatHandler) Send(ctx context.Context, req Request) (Response, error) {
	if IsPreflight(req) {
		return Preflight(), nil
	}

	var body service.ChatRequest
	if err := decodeBody(req, &body); err != nil {
		return Error(apierror.MalformedBodyError), nil
	}

	resp, apierr := h.ChatService.Send(ctx, &body)
	if apierr != nil {
		return Error(apierr), nil
	}
	return JSON(http.StatusOK, resp), nil
}

// PreflightOnly backs the catch-all OPTIONS route.
func PreflightOnly(_ context.Context, _ Request) (Response, error) {
	return Preflight(), nil
}
