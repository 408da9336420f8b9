package service

import (
	"context"
	"errors"
	"net/http"

	"meety/cmd/internal/integration/aws/lex"
	"meety/cmd/internal/utils"
	"meety/cmd/internal/utils/apierror"

	"github.com/aws/smithy-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const defaultChatUser = "default-user"

type ChatRequest struct {
	UserID            string            `json:"userId" validate:"max=100"`
	Message           string            `json:"message" validate:"required,max=1024"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
}

type ChatResponse struct {
	Message           string            `json:"message"`
	DialogState       string            `json:"dialogState"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	Slots             map[string]string `json:"slots"`
}

// DefaultChatService relays web chat messages to the Lex bot.
type DefaultChatService struct {
	Lex      lex.LexInterface
	Validate *validator.Validate
}

func NewChatService(lexClient lex.LexInterface, validate *validator.Validate) *DefaultChatService {
	return &DefaultChatService{Lex: lexClient, Validate: validate}
}

func (c *DefaultChatService) Send(ctx context.Context, req *ChatRequest) (*ChatResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := c.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	userID := req.UserID
	if userID == "" {
		userID = defaultChatUser
	}

	reply, err := c.Lex.RecognizeText(ctx, &lex.Utterance{
		SessionID:         userID,
		Text:              req.Message,
		SessionAttributes: req.SessionAttributes,
	})
	if err != nil {
		return nil, handleRecognizeError(userID, err)
	}

	return &ChatResponse{
		Message:           reply.Message,
		DialogState:       reply.DialogState,
		SessionAttributes: reply.SessionAttributes,
		Slots:             reply.Slots,
	}, nil
}

func handleRecognizeError(userID string, err error) apierror.ErrorResponse {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "DependencyFailedException", "BadGatewayException":
			log.Warnf("lex unavailable for session %s: %s - %s", userID, apiErr.ErrorCode(), apiErr.ErrorMessage())
			return apierror.UpstreamUnavailableError
		case "ValidationException", "BadRequestException":
			return apierror.NewSimple(http.StatusBadRequest, apiErr.ErrorMessage())
		default:
			log.Errorf("recognize text failed for session %s: %s - %s", userID, apiErr.ErrorCode(), apiErr.ErrorMessage())
			return apierror.InternalServerError
		}
	}

	log.Errorf("failed to recognize text for session %s: %v", userID, err)
	return apierror.InternalServerError
}
