package lexv2

import "strings"

const (
	SlotFullName        = "FullName"
	SlotMeetingDuration = "MeetingDuration"
	SlotMeetingDate     = "MeetingDate"
	SlotMeetingTime     = "MeetingTime"
	SlotAttendeeEmail   = "AttendeeEmail"
	SlotMeetingTitle    = "MeetingTitle"
	SlotConfirm         = "confirm"
)

// Field is an extracted slot. Set is false when the user has not given it yet.
type Field struct {
	Value string
	Set   bool
}

type BookingSlots struct {
	FullName  Field
	Duration  Field
	Date      Field
	Time      Field
	Email     Field
	Title     Field
	Confirm   Field
	Confirmed string
}

func field(ev *Event, name string) Field {
	v, ok := ev.Slot(name)
	return Field{Value: v, Set: ok}
}

func ExtractBooking(ev *Event) BookingSlots {
	slots := BookingSlots{
		FullName: field(ev, SlotFullName),
		Duration: field(ev, SlotMeetingDuration),
		Date:     field(ev, SlotMeetingDate),
		Time:     field(ev, SlotMeetingTime),
		Email:    field(ev, SlotAttendeeEmail),
		Title:    field(ev, SlotMeetingTitle),
		Confirm:  field(ev, SlotConfirm),
	}
	if ev.SessionState.Intent != nil {
		slots.Confirmed = ev.SessionState.Intent.ConfirmationState
	}
	return slots
}

// Missing lists required slot names that are still empty, in the order the
// bot asks for them.
func (b BookingSlots) Missing() []string {
	var missing []string
	required := []struct {
		name string
		f    Field
	}{
		{SlotFullName, b.FullName},
		{SlotMeetingDuration, b.Duration},
		{SlotMeetingDate, b.Date},
		{SlotMeetingTime, b.Time},
		{SlotAttendeeEmail, b.Email},
	}
	for _, r := range required {
		if !r.f.Set {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// Denied is true when the user said anything other than yes, either through
// the intent confirmation prompt or the explicit confirm slot.
func (b BookingSlots) Denied() bool {
	if b.Confirmed == ConfirmationDenied {
		return true
	}
	return b.Confirm.Set && !strings.EqualFold(b.Confirm.Value, "yes")
}
