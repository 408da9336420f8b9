package lambdahttp

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"meety/cmd/internal/calendar"
	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/service"
	"meety/cmd/internal/utils"
	"meety/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type MeetingService interface {
	ListPending(ctx context.Context) ([]*entity.Meeting, apierror.ErrorResponse)
	ListApproved(ctx context.Context, startDate, endDate string) ([]*entity.Meeting, apierror.ErrorResponse)
	UpdateStatus(ctx context.Context, req *service.StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse)
}

type MeetingHandler struct {
	MeetingService MeetingService
	// OperatorSecret turns on bearer-token checks for status changes when set.
	OperatorSecret string

	now func() time.Time
}

func NewMeetingHandler(svc MeetingService, operatorSecret string) *MeetingHandler {
	return &MeetingHandler{MeetingService: svc, OperatorSecret: operatorSecret, now: time.Now}
}

func (h *MeetingHandler) ListApproved(ctx context.Context, req Request) (Response, error) {
	if IsPreflight(req) {
		return Preflight(), nil
	}

	q := req.QueryStringParameters
	meetings, apierr := h.MeetingService.ListApproved(ctx, q["startDate"], q["endDate"])
	if apierr != nil {
		return Error(apierr), nil
	}

	if q["format"] == "ics" {
		var buf bytes.Buffer
		if err := calendar.Encode(&buf, meetings, h.now()); err != nil {
			log.Errorf("failed to export meetings as calendar: %v", err)
			return Error(apierror.InternalServerError), nil
		}
		return Raw(http.StatusOK, calendar.ContentType, buf.String()), nil
	}
	return JSON(http.StatusOK, orEmpty(meetings)), nil
}

func (h *MeetingHandler) ListPending(ctx context.Context, req Request) (Response, error) {
	if IsPreflight(req) {
		return Preflight(), nil
	}

	meetings, apierr := h.MeetingService.ListPending(ctx)
	if apierr != nil {
		return Error(apierr), nil
	}
	return JSON(http.StatusOK, orEmpty(meetings)), nil
}

func (h *MeetingHandler) UpdateStatus(ctx context.Context, req Request) (Response, error) {
	if IsPreflight(req) {
		return Preflight(), nil
	}

	operator := ""
	if h.OperatorSecret != "" {
		data, err := utils.ParseBearer(header(req, "Authorization"), h.OperatorSecret)
		if err != nil {
			if !errors.Is(err, utils.ErrMissingToken) {
				log.Warnf("rejected operator token: %v", err)
			}
			return Error(apierror.InvalidAuthTokenError), nil
		}
		operator = data.Sub
	}

	var body service.StatusUpdateRequest
	if err := decodeBody(req, &body); err != nil {
		return Error(apierror.MalformedBodyError), nil
	}

	meeting, apierr := h.MeetingService.UpdateStatus(ctx, &body, operator)
	if apierr != nil {
		return Error(apierr), nil
	}
	return JSON(http.StatusOK, meeting), nil
}

// orEmpty keeps an empty result rendering as [] rather than null.
func orEmpty(meetings []*entity.Meeting) []*entity.Meeting {
	if meetings == nil {
		return []*entity.Meeting{}
	}
	return meetings
}
