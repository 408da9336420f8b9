package routes

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

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type MeetingService interface {
	ListPending(ctx context.Context) ([]*entity.Meeting, apierror.ErrorResponse)
	ListApproved(ctx context.Context, startDate, endDate string) ([]*entity.Meeting, apierror.ErrorResponse)
	UpdateStatus(ctx context.Context, req *service.StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse)
}

type DefaultMeetingRoute struct {
	MeetingService MeetingService
	OperatorSecret string
}

func NewMeetingDefault(meetingService MeetingService, operatorSecret string) *DefaultMeetingRoute {
	return &DefaultMeetingRoute{MeetingService: meetingService, OperatorSecret: operatorSecret}
}

func (m *DefaultMeetingRoute) GetMeetings(c echo.Context) error {
	ctx := c.Request().Context()
	meetings, apierr := m.MeetingService.ListApproved(ctx, c.QueryParam("startDate"), c.QueryParam("endDate"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if c.QueryParam("format") == "ics" {
		var buf bytes.Buffer
		if err := calendar.Encode(&buf, meetings, time.Now()); err != nil {
			log.Errorf("failed to export meetings as calendar: %v", err)
			return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
		}
		return c.Blob(http.StatusOK, calendar.ContentType, buf.Bytes())
	}

	if meetings == nil {
		meetings = []*entity.Meeting{}
	}
	return c.JSON(http.StatusOK, meetings)
}

func (m *DefaultMeetingRoute) GetPendingMeetings(c echo.Context) error {
	meetings, apierr := m.MeetingService.ListPending(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if meetings == nil {
		meetings = []*entity.Meeting{}
	}
	return c.JSON(http.StatusOK, meetings)
}

func (m *DefaultMeetingRoute) UpdateStatus(c echo.Context) error {
	operator := ""
	if m.OperatorSecret != "" {
		data, err := utils.ParseTokenDataCtx(c, m.OperatorSecret)
		if err != nil {
			if !errors.Is(err, utils.ErrMissingToken) {
				log.Warnf("rejected operator token: %v", err)
			}
			return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
		}
		operator = data.Sub
	}

	var req service.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	meeting, apierr := m.MeetingService.UpdateStatus(c.Request().Context(), &req, operator)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, meeting)
}
