package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/integration/aws/bedrock"
	"meety/cmd/internal/lexv2"
	"meety/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	IntentWelcome           = "WelcomeIntent"
	IntentMeetingManagement = "MeetingManagement"

	ActionSchedule = "schedule"
	ActionCheck    = "check"
	ActionUpdate   = "update"
	ActionUnclear  = "unclear"

	attrMeetingInfo = "meeting_info"
	attrAskingFor   = "asking_for"

	maxListed = 5
)

type AssistantMeetings interface {
	MeetingBooker
	ListPending(ctx context.Context) ([]*entity.Meeting, apierror.ErrorResponse)
	ListApprovedOn(ctx context.Context, date string) ([]*entity.Meeting, apierror.ErrorResponse)
	UpdateStatus(ctx context.Context, req *StatusUpdateRequest, operator string) (*entity.Meeting, apierror.ErrorResponse)
}

// MeetingInfo is what the model extracts from a free-text request.
type MeetingInfo struct {
	Action        string      `json:"action"`
	Date          string      `json:"date,omitempty"`
	Time          string      `json:"time,omitempty"`
	Duration      looseString `json:"duration,omitempty"`
	AttendeeName  string      `json:"attendee_name,omitempty"`
	AttendeeEmail string      `json:"attendee_email,omitempty"`
	MeetingTitle  string      `json:"meeting_title,omitempty"`
	MeetingID     string      `json:"meeting_id,omitempty"`
	NewStatus     string      `json:"new_status,omitempty"`
	MissingInfo   []string    `json:"missing_info,omitempty"`
}

// looseString accepts a JSON string, number or null.
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = looseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = looseString(n.String())
	return nil
}

var infoQuestions = map[string]string{
	"date":           "What date would you like to schedule the meeting?",
	"time":           "What time works best for you?",
	"duration":       "How long should the meeting be? (in minutes)",
	"attendee_name":  "What's the name of the person you're meeting with?",
	"attendee_email": "What's their email address?",
	"meeting_title":  "What would you like to call this meeting?",
	"meeting_id":     "Which meeting should I update? Please give me its meeting ID.",
	"new_status":     "What should the new status be: approved, cancelled or confirmed?",
}

const welcomeMessage = `Hello! I'm Meety, your AI-powered meeting assistant.

I can help you with:
• Scheduling new meetings
• Checking your upcoming meetings
• Managing meeting status
• Finding available time slots

How can I assist you today?`

const clarificationMessage = `I want to make sure I understand correctly. It sounds like you want help with meetings, but I need a bit more information.

Are you looking to:
• Schedule a new meeting
• Check your existing meetings
• Update or cancel a meeting

Could you please clarify what you'd like to do?`

const fallbackMessage = `I'm not sure I understand what you're asking for. I'm specialized in helping with meeting management.

I can help you:
• Schedule new meetings
• Check your existing meetings
• Update meeting details

Could you please rephrase your request?`

const extractionPrompt = `You are a meeting scheduling assistant. Analyze the following user request and extract structured information.

User request: %q
Previous context: %s

Please respond with a JSON object containing:
- action: "schedule", "check", "update", or "unclear"
- date: extracted date (YYYY-MM-DD format) or null
- time: extracted time (HH:MM format) or null
- duration: extracted duration in minutes or null
- attendee_name: extracted name or null
- attendee_email: extracted email or null
- meeting_title: extracted meeting title or null
- meeting_id: the meeting ID the user refers to or null
- new_status: "approved", "cancelled" or "confirmed" when updating, otherwise null
- missing_info: array of missing required information

Only return the JSON object, no other text.`

// DefaultAssistantService fulfills the generative MeetingManagement intent.
type DefaultAssistantService struct {
	Meetings AssistantMeetings
	Model    bedrock.BedrockInterface
}

func NewAssistantService(meetings AssistantMeetings, model bedrock.BedrockInterface) *DefaultAssistantService {
	return &DefaultAssistantService{Meetings: meetings, Model: model}
}

func (a *DefaultAssistantService) Handle(ctx context.Context, ev *lexv2.Event) *lexv2.Response {
	switch ev.IntentName() {
	case IntentWelcome:
		return lexv2.Close(ev, lexv2.StateFulfilled, welcomeMessage)
	case IntentMeetingManagement:
		return a.handleMeetingManagement(ctx, ev)
	default:
		return lexv2.ElicitIntent(ev, fallbackMessage)
	}
}

func (a *DefaultAssistantService) handleMeetingManagement(ctx context.Context, ev *lexv2.Event) *lexv2.Response {
	attrs := ev.SessionAttributes()
	info := a.extractMeetingInfo(ctx, ev.InputTranscript, attrs)

	if prev, ok := previousInfo(attrs); ok {
		info.fillFrom(prev)
	}

	switch info.Action {
	case ActionSchedule:
		return a.scheduleMeeting(ctx, ev, info)
	case ActionCheck:
		return a.checkMeetings(ctx, ev, info)
	case ActionUpdate:
		return a.updateMeeting(ctx, ev, info)
	default:
		return lexv2.ElicitIntent(ev, clarificationMessage)
	}
}

func (a *DefaultAssistantService) extractMeetingInfo(ctx context.Context, transcript string, attrs map[string]string) *MeetingInfo {
	prior, _ := json.Marshal(attrs)
	answer, err := a.Model.Complete(ctx, fmt.Sprintf(extractionPrompt, transcript, prior))
	if err != nil {
		log.Errorf("failed to call model: %v", err)
		return &MeetingInfo{Action: ActionUnclear, MissingInfo: []string{"all"}}
	}

	info, err := parseMeetingInfo(answer)
	if err != nil {
		log.Errorf("model answered with unusable JSON: %v", err)
		return &MeetingInfo{Action: ActionUnclear, MissingInfo: []string{"all"}}
	}
	return info
}

// parseMeetingInfo tolerates prose or code fences around the JSON object.
func parseMeetingInfo(answer string) (*MeetingInfo, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in %q", answer)
	}

	var info MeetingInfo
	if err := json.Unmarshal([]byte(answer[start:end+1]), &info); err != nil {
		return nil, err
	}
	info.Action = strings.ToLower(strings.TrimSpace(info.Action))
	return &info, nil
}

func previousInfo(attrs map[string]string) (*MeetingInfo, bool) {
	raw, ok := attrs[attrMeetingInfo]
	if !ok || raw == "" {
		return nil, false
	}
	var prev MeetingInfo
	if err := json.Unmarshal([]byte(raw), &prev); err != nil {
		return nil, false
	}
	return &prev, true
}

// fillFrom carries over answers from earlier turns of the same request.
func (m *MeetingInfo) fillFrom(prev *MeetingInfo) {
	if m.Action == ActionUnclear || m.Action == "" {
		m.Action = prev.Action
	}
	if m.Action != prev.Action {
		return
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&m.Date, prev.Date)
	fill(&m.Time, prev.Time)
	fill(&m.AttendeeName, prev.AttendeeName)
	fill(&m.AttendeeEmail, prev.AttendeeEmail)
	fill(&m.MeetingTitle, prev.MeetingTitle)
	fill(&m.MeetingID, prev.MeetingID)
	fill(&m.NewStatus, prev.NewStatus)
	if m.Duration == "" {
		m.Duration = prev.Duration
	}
}

func (m *MeetingInfo) value(field string) string {
	switch field {
	case "date":
		return m.Date
	case "time":
		return m.Time
	case "duration":
		return string(m.Duration)
	case "attendee_name":
		return m.AttendeeName
	case "attendee_email":
		return m.AttendeeEmail
	case "meeting_title":
		return m.MeetingTitle
	case "meeting_id":
		return m.MeetingID
	case "new_status":
		return m.NewStatus
	}
	return ""
}

// missing lists the required fields still empty, followed by any other
// field the model flagged that is still empty.
func (m *MeetingInfo) missing(required ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range append(required, m.MissingInfo...) {
		if seen[f] {
			continue
		}
		seen[f] = true
		if _, known := infoQuestions[f]; known && m.value(f) == "" {
			out = append(out, f)
		}
	}
	return out
}

func askFor(ev *lexv2.Event, field string, info *MeetingInfo) *lexv2.Response {
	raw, _ := json.Marshal(info)
	attrs := map[string]string{
		attrMeetingInfo: string(raw),
		attrAskingFor:   field,
	}
	return lexv2.ElicitSlot(ev, field, infoQuestions[field], attrs)
}

func (a *DefaultAssistantService) scheduleMeeting(ctx context.Context, ev *lexv2.Event, info *MeetingInfo) *lexv2.Response {
	if missing := info.missing("date", "time", "attendee_name", "attendee_email"); len(missing) > 0 {
		return askFor(ev, missing[0], info)
	}

	req := &BookingRequest{
		AttendeeName: info.AttendeeName,
		Email:        info.AttendeeEmail,
		Date:         info.Date,
		StartTime:    info.Time,
		Duration:     string(info.Duration),
		Title:        info.MeetingTitle,
	}

	meeting, apierr := a.Meetings.Book(ctx, req, RejectConflict)
	switch {
	case apierr == apierror.MeetingConflictError:
		msg := fmt.Sprintf("I found a scheduling conflict for %s at %s. Would you like to try a different time?", info.Date, info.Time)
		info.Time = ""
		raw, _ := json.Marshal(info)
		return lexv2.ElicitSlot(ev, "time", msg, map[string]string{attrMeetingInfo: string(raw), attrAskingFor: "time"})
	case apierr != nil && apierr.Code() == http.StatusBadRequest:
		return lexv2.Close(ev, lexv2.StateFailed, fmt.Sprintf("I couldn't schedule that meeting: %s.", apierr.Error()))
	case apierr != nil:
		return lexv2.Close(ev, lexv2.StateFailed, "I encountered an error while scheduling your meeting. Please try again.")
	}

	msg := fmt.Sprintf(`Perfect! I've scheduled your meeting:

📅 Date: %s
🕐 Time: %s - %s
👤 Attendee: %s
📧 Email: %s

Your meeting ID is: %s
Status: Pending confirmation

Is there anything else I can help you with?`,
		meeting.Date, meeting.StartTime, meeting.EndTime, meeting.AttendeeName, meeting.Email, meeting.MeetingID)
	return closeClean(ev, lexv2.StateFulfilled, msg)
}

func (a *DefaultAssistantService) checkMeetings(ctx context.Context, ev *lexv2.Event, info *MeetingInfo) *lexv2.Response {
	var (
		meetings []*entity.Meeting
		apierr   apierror.ErrorResponse
	)
	if info.Date != "" {
		meetings, apierr = a.Meetings.ListApprovedOn(ctx, info.Date)
	} else {
		meetings, apierr = a.Meetings.ListPending(ctx)
	}
	if apierr != nil {
		return lexv2.Close(ev, lexv2.StateFailed, "I encountered an error while checking your meetings. Please try again.")
	}

	if len(meetings) == 0 {
		return closeClean(ev, lexv2.StateFulfilled, "You don't have any meetings scheduled for the requested time period.")
	}
	return closeClean(ev, lexv2.StateFulfilled, FormatMeetingList(meetings))
}

func (a *DefaultAssistantService) updateMeeting(ctx context.Context, ev *lexv2.Event, info *MeetingInfo) *lexv2.Response {
	if missing := info.missing("meeting_id", "new_status"); len(missing) > 0 {
		return askFor(ev, missing[0], info)
	}

	req := &StatusUpdateRequest{MeetingID: info.MeetingID, NewStatus: strings.ToLower(info.NewStatus)}
	meeting, apierr := a.Meetings.UpdateStatus(ctx, req, "assistant:"+ev.SessionID)
	switch {
	case apierr == nil:
		return closeClean(ev, lexv2.StateFulfilled, fmt.Sprintf("Done! Meeting %s on %s is now %s.", meeting.MeetingID, meeting.Date, meeting.Status))
	case apierr.Code() == http.StatusNotFound:
		return closeClean(ev, lexv2.StateFailed, fmt.Sprintf("I couldn't find a meeting with ID %s.", info.MeetingID))
	case apierr.Code() == http.StatusConflict:
		return closeClean(ev, lexv2.StateFailed, "That meeting overlaps an approved meeting, so I can't approve it.")
	case apierr.Code() == http.StatusBadRequest:
		return closeClean(ev, lexv2.StateFailed, fmt.Sprintf("I can't set that status: %s.", apierr.Error()))
	default:
		return lexv2.Close(ev, lexv2.StateFailed, "I encountered an error while updating your meeting. Please try again.")
	}
}

// closeClean ends the request and drops the partial request state carried
// between turns.
func closeClean(ev *lexv2.Event, state, msg string) *lexv2.Response {
	resp := lexv2.Close(ev, state, msg)
	attrs := make(map[string]string, len(resp.SessionState.SessionAttributes))
	for k, v := range resp.SessionState.SessionAttributes {
		if k != attrMeetingInfo && k != attrAskingFor {
			attrs[k] = v
		}
	}
	resp.SessionState.SessionAttributes = attrs
	return resp
}

func FormatMeetingList(meetings []*entity.Meeting) string {
	if len(meetings) == 0 {
		return "No meetings found."
	}

	// a Caser keeps state between calls and must not be shared
	caser := cases.Title(language.English)

	var sb strings.Builder
	sb.WriteString("Here are your meetings:\n\n")
	for _, m := range meetings[:min(len(meetings), maxListed)] {
		fmt.Fprintf(&sb, "📅 %s\n", orDefault(m.Date, "Unknown date"))
		fmt.Fprintf(&sb, "🕐 %s - %s\n", orDefault(m.StartTime, "Unknown time"), orDefault(m.EndTime, "Unknown end"))
		fmt.Fprintf(&sb, "👤 %s\n", orDefault(m.AttendeeName, "Unknown attendee"))
		fmt.Fprintf(&sb, "📋 Status: %s\n\n", caser.String(orDefault(string(m.Status), "unknown")))
	}
	if len(meetings) > maxListed {
		fmt.Fprintf(&sb, "... and %d more meetings.", len(meetings)-maxListed)
	}
	return sb.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
