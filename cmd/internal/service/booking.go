package service

import (
	"context"
	"errors"
	"fmt"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/schedule"
	"meety/cmd/internal/utils"
	"meety/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// BookingMode decides what a detected overlap does to a booking.
type BookingMode int

const (
	// RecordConflict stores the meeting anyway with IsConflict set, leaving
	// the decision to whoever approves it.
	RecordConflict BookingMode = iota
	// RejectConflict refuses the booking with MeetingConflictError.
	RejectConflict
)

type BookingRequest struct {
	AttendeeName string `json:"attendeeName" validate:"required,max=128"`
	Email        string `json:"email" validate:"required,email"`
	Date         string `json:"date" validate:"required,isodate"`
	StartTime    string `json:"startTime" validate:"required,clock"`
	Duration     string `json:"duration"`
	Title        string `json:"title" validate:"max=128"`
}

// IsSlotFree reports whether no approved meeting on date collides with the
// proposed start and length.
func (s *DefaultMeetingService) IsSlotFree(ctx context.Context, date, start string, minutes int) (bool, error) {
	proposed, ok := schedule.NewInterval(start, minutes)
	if !ok {
		return false, fmt.Errorf("unreadable start time %q", start)
	}
	conflict, err := s.hasConflict(ctx, date, proposed, "")
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *DefaultMeetingService) hasConflict(ctx context.Context, date string, proposed schedule.Interval, exclude string) (bool, error) {
	return s.anyApproved(ctx, date, exclude, proposed.ConflictsWith)
}

// anyApproved reports whether collides holds for any approved meeting on
// date other than exclude.
func (s *DefaultMeetingService) anyApproved(ctx context.Context, date, exclude string, collides func(schedule.Interval) bool) (bool, error) {
	approved, err := s.MeetingRepo.FindByStatusAndDate(ctx, entity.StatusApproved, date)
	if err != nil {
		return false, err
	}
	for _, m := range approved {
		if m.MeetingID == exclude {
			continue
		}
		if collides(schedule.Interval{Start: m.StartTime, End: m.EndTime}) {
			return true, nil
		}
	}
	return false, nil
}

// Book stores a new pending meeting. The conflict read and the write are
// not atomic; two bookings for one slot can both land as pending, and the
// approval step is where overlaps are finally refused.
func (s *DefaultMeetingService) Book(ctx context.Context, req *BookingRequest, mode BookingMode) (*entity.Meeting, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	minutes := schedule.ParseDuration(req.Duration)
	proposed, ok := schedule.NewInterval(req.StartTime, minutes)
	if !ok {
		return nil, apierror.NewInvalidParamError("startTime", "expected a time like 09:30 or 9am")
	}

	conflict, err := s.hasConflict(ctx, req.Date, proposed, "")
	if err != nil {
		log.Errorf("failed to check availability on %s at %s: %v", req.Date, proposed.Start, err)
		return nil, apierror.InternalServerError
	}
	if conflict && mode == RejectConflict {
		return nil, apierror.MeetingConflictError
	}

	title := req.Title
	if title == "" {
		title = entity.DefaultTitle
	}

	meeting := &entity.Meeting{
		MeetingID:    s.newID(),
		AttendeeName: req.AttendeeName,
		Email:        req.Email,
		Date:         req.Date,
		StartTime:    proposed.Start,
		EndTime:      proposed.End,
		Duration:     entity.Minutes(minutes),
		Title:        title,
		Status:       entity.StatusPending,
		IsConflict:   conflict,
		CreatedAt:    s.now(),
	}

	err = s.MeetingRepo.Create(ctx, meeting)
	if errors.Is(err, entity.ErrMeetingExists) {
		log.Errorf("generated meeting id %s already exists", meeting.MeetingID)
		return nil, apierror.InternalServerError
	}
	if err != nil {
		log.Errorf("failed to save meeting for %s on %s: %v", req.Email, req.Date, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("booked meeting %s on %s %s-%s (conflict=%t)", meeting.MeetingID, meeting.Date, meeting.StartTime, meeting.EndTime, conflict)
	return meeting, nil
}
