// Package calendar renders meetings as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"time"

	"meety/cmd/internal/domain/entity"

	"github.com/emersion/go-ical"
	"github.com/labstack/gommon/log"
)

const (
	ContentType = "text/calendar; charset=utf-8"
	productID   = "-//meety//meetings//EN"
	layout      = "2006-01-02 15:04"
)

var eventStatus = map[entity.Status]string{
	entity.StatusPending:   "TENTATIVE",
	entity.StatusApproved:  "CONFIRMED",
	entity.StatusConfirmed: "CONFIRMED",
	entity.StatusCancelled: "CANCELLED",
}

// Encode writes one VEVENT per meeting. Meetings whose date or times cannot
// be read are skipped. Dates and times are taken as UTC.
func Encode(w io.Writer, meetings []*entity.Meeting, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, m := range meetings {
		event, err := toEvent(m, stamp)
		if err != nil {
			log.Warnf("skipping meeting %s in calendar export: %v", m.MeetingID, err)
			continue
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toEvent(m *entity.Meeting, stamp time.Time) (*ical.Event, error) {
	start, err := time.ParseInLocation(layout, m.Date+" "+m.StartTime, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.ParseInLocation(layout, m.Date+" "+m.EndTime, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	// stored end times wrap at midnight
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	summary := m.Title
	if summary == "" {
		summary = entity.DefaultTitle
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, m.MeetingID+"@meety")
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	event.Props.SetText(ical.PropSummary, summary)
	if m.AttendeeName != "" {
		event.Props.SetText(ical.PropDescription, fmt.Sprintf("With %s <%s>", m.AttendeeName, m.Email))
	}
	if status, ok := eventStatus[m.Status]; ok {
		event.Props.SetText(ical.PropStatus, status)
	}
	return event, nil
}
