package service

import (
	"context"
	"fmt"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/lexv2"
	"meety/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

const IntentBookMeeting = "BookMeeting"

type MeetingBooker interface {
	Book(ctx context.Context, req *BookingRequest, mode BookingMode) (*entity.Meeting, apierror.ErrorResponse)
}

var slotQuestions = map[string]string{
	lexv2.SlotFullName:        "What is your full name?",
	lexv2.SlotMeetingDuration: "How long should the meeting be?",
	lexv2.SlotMeetingDate:     "Which date would you like to meet?",
	lexv2.SlotMeetingTime:     "What time should the meeting start?",
	lexv2.SlotAttendeeEmail:   "What email address should we use to reach you?",
}

// DefaultDialogueService fulfills the slot-filling BookMeeting intent.
type DefaultDialogueService struct {
	Booker MeetingBooker
}

func NewDialogueService(booker MeetingBooker) *DefaultDialogueService {
	return &DefaultDialogueService{Booker: booker}
}

func (d *DefaultDialogueService) Handle(ctx context.Context, ev *lexv2.Event) *lexv2.Response {
	if ev.IntentName() != IntentBookMeeting {
		log.Warnf("session %s: unsupported intent %q", ev.SessionID, ev.IntentName())
		return lexv2.Close(ev, lexv2.StateFailed, "Sorry, I can only help you book meetings.")
	}

	slots := lexv2.ExtractBooking(ev)
	dialog := ev.InvocationSource == lexv2.InvocationDialogCodeHook

	if missing := slots.Missing(); len(missing) > 0 {
		if dialog {
			return lexv2.Delegate(ev)
		}
		return lexv2.ElicitSlot(ev, missing[0], slotQuestions[missing[0]], nil)
	}

	if slots.Denied() {
		return lexv2.Close(ev, lexv2.StateFailed, "Okay, I won't schedule the meeting.")
	}

	if dialog {
		return lexv2.Delegate(ev)
	}

	req := &BookingRequest{
		AttendeeName: slots.FullName.Value,
		Email:        slots.Email.Value,
		Date:         slots.Date.Value,
		StartTime:    slots.Time.Value,
		Duration:     slots.Duration.Value,
		Title:        slots.Title.Value,
	}

	meeting, apierr := d.Booker.Book(ctx, req, RecordConflict)
	if apierr != nil {
		log.Errorf("session %s: booking failed: %v", ev.SessionID, apierr)
		if apierr.Code() < 500 {
			return lexv2.Close(ev, lexv2.StateFailed, fmt.Sprintf("I couldn't book that meeting: %s.", apierr.Error()))
		}
		return lexv2.Close(ev, lexv2.StateFailed, "There was an error scheduling the meeting. Please try again later.")
	}

	text := fmt.Sprintf("Thank you %s. Your meeting request for %s from %s to %s has been created. Have a nice day!",
		meeting.AttendeeName, meeting.Date, meeting.StartTime, meeting.EndTime)
	return lexv2.Close(ev, lexv2.StateFulfilled, text)
}
