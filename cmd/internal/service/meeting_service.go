package service

import (
	"context"
	"errors"
	"time"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/lock"
	"meety/cmd/internal/schedule"
	"meety/cmd/internal/utils"
	"meety/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type MeetingRepository interface {
	Create(ctx context.Context, meeting *entity.Meeting) error
	FindByID(ctx context.Context, id string) (*entity.Meeting, error)
	FindByStatus(ctx context.Context, status entity.Status) ([]*entity.Meeting, error)
	FindByStatusAndDate(ctx context.Context, status entity.Status, date string) ([]*entity.Meeting, error)
	FindByStatusBetween(ctx context.Context, status entity.Status, from, to string) ([]*entity.Meeting, error)
	UpdateStatus(ctx context.Context, id string, status entity.Status) (*entity.Meeting, error)
}

type StatusUpdateRequest struct {
	MeetingID string `json:"meetingId" validate:"required,max=64"`
	NewStatus string `json:"newStatus" validate:"required,meetingstatus"`
}

type DefaultMeetingService struct {
	MeetingRepo MeetingRepository
	Validate    *validator.Validate
	Locker      lock.Locker

	now   func() string
	newID func() string
}

func NewMeetingService(repo MeetingRepository, validate *validator.Validate, locker lock.Locker) *DefaultMeetingService {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &DefaultMeetingService{
		MeetingRepo: repo,
		Validate:    validate,
		Locker:      locker,
		now:         utils.NowUTC,
		newID:       uuid.NewString,
	}
}

func (s *DefaultMeetingService) ListPending(ctx context.Context) ([]*entity.Meeting, apierror.ErrorResponse) {
	meetings, err := s.MeetingRepo.FindByStatus(ctx, entity.StatusPending)
	if err != nil {
		log.Errorf("failed to list pending meetings: %v", err)
		return nil, apierror.InternalServerError
	}
	return meetings, nil
}

// ListApproved returns approved meetings dated in [startDate, endDate]. The
// lower bound is pulled back one day so callers east of UTC still see
// meetings stored under the previous calendar date.
func (s *DefaultMeetingService) ListApproved(ctx context.Context, startDate, endDate string) ([]*entity.Meeting, apierror.ErrorResponse) {
	if startDate == "" {
		return nil, apierror.NewMissingParamError("startDate")
	}
	if endDate == "" {
		return nil, apierror.NewMissingParamError("endDate")
	}

	start, err := parseDay(startDate)
	if err != nil {
		return nil, apierror.NewInvalidParamError("startDate", "expected YYYY-MM-DD")
	}
	end, err := parseDay(endDate)
	if err != nil {
		return nil, apierror.NewInvalidParamError("endDate", "expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apierror.NewInvalidParamError("endDate", "must not be before startDate")
	}

	from := start.AddDate(0, 0, -1).Format(time.DateOnly)
	to := end.Format(time.DateOnly)

	meetings, err := s.MeetingRepo.FindByStatusBetween(ctx, entity.StatusApproved, from, to)
	if err != nil {
		log.Errorf("failed to list approved meetings [%s - %s]: %v", from, to, err)
		return nil, apierror.InternalServerError
	}
	return meetings, nil
}

func (s *DefaultMeetingService) ListApprovedOn(ctx context.Context, date string) ([]*entity.Meeting, apierror.ErrorResponse) {
	if _, err := parseDay(date); err != nil {
		return nil, apierror.NewInvalidParamError("date", "expected YYYY-MM-DD")
	}

	meetings, err := s.MeetingRepo.FindByStatusAndDate(ctx, entity.StatusApproved, date)
	if err != nil {
		log.Errorf("failed to list approved meetings on %s: %v", date, err)
		return nil, apierror.InternalServerError
	}
	return meetings, nil
}

// UpdateStatus changes only the status of an existing meeting. Approvals are
// serialized per day and refused when they would overlap another approved
// meeting.
func (s *DefaultMeetingService) UpdateStatus(ctx context.Context, req *StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	status, err := entity.ParseStatus(req.NewStatus)
	if err != nil {
		return nil, apierror.InvalidStatusError
	}

	if status == entity.StatusApproved {
		unlock, apierr := s.guardApproval(ctx, req.MeetingID)
		if apierr != nil {
			return nil, apierr
		}
		defer unlock()
	}

	meeting, err := s.MeetingRepo.UpdateStatus(ctx, req.MeetingID, status)
	if errors.Is(err, entity.ErrMeetingNotFound) {
		return nil, apierror.MeetingNotFoundError
	}
	if err != nil {
		log.Errorf("failed to update meeting %s to %s: %v", req.MeetingID, status, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("meeting %s set to %s by %s", meeting.MeetingID, status, operatorName(operator))
	return meeting, nil
}

// guardApproval holds the day lock and checks the meeting against the other
// approved meetings of its day with Interval.Overlaps. The returned func
// releases the lock.
func (s *DefaultMeetingService) guardApproval(ctx context.Context, id string) (func(), apierror.ErrorResponse) {
	meeting, err := s.MeetingRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch meeting %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if meeting == nil {
		return nil, apierror.MeetingNotFoundError
	}

	unlock, err := s.Locker.Lock(ctx, "day:"+meeting.Date)
	if err != nil {
		log.Errorf("failed to lock day %s for meeting %s: %v", meeting.Date, id, err)
		return nil, apierror.UpstreamUnavailableError
	}

	// Approval uses the plain overlap test so that no two approved meetings
	// share a minute, including one that sits inside another.
	proposed := schedule.Interval{Start: meeting.StartTime, End: meeting.EndTime}
	conflict, err := s.anyApproved(ctx, meeting.Date, meeting.MeetingID, proposed.Overlaps)
	if err != nil {
		unlock()
		log.Errorf("failed to check conflicts for meeting %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if conflict {
		unlock()
		return nil, apierror.MeetingConflictError
	}
	return unlock, nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func operatorName(operator string) string {
	if operator == "" {
		return "anonymous operator"
	}
	return operator
}
