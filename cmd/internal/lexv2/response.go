package lexv2

const (
	ActionClose        = "Close"
	ActionDelegate     = "Delegate"
	ActionElicitSlot   = "ElicitSlot"
	ActionElicitIntent = "ElicitIntent"

	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
	StateInProg    = "InProgress"

	ContentPlainText = "PlainText"
)

type Response struct {
	SessionState      SessionState      `json:"sessionState"`
	Messages          []Message         `json:"messages,omitempty"`
	SessionID         string            `json:"sessionId,omitempty"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

func PlainText(content string) Message {
	return Message{ContentType: ContentPlainText, Content: content}
}

func respond(ev *Event, action *DialogAction, intent *Intent, attrs map[string]string, messages ...Message) *Response {
	if attrs == nil {
		attrs = ev.SessionAttributes()
	}
	return &Response{
		SessionState: SessionState{
			SessionAttributes: attrs,
			DialogAction:      action,
			Intent:            intent,
		},
		Messages:          messages,
		SessionID:         ev.SessionID,
		RequestAttributes: ev.RequestAttributes,
	}
}

func currentIntent(ev *Event, state string) *Intent {
	intent := Intent{Name: ev.IntentName()}
	if ev.SessionState.Intent != nil {
		intent = *ev.SessionState.Intent
	}
	if state != "" {
		intent.State = state
	}
	return &intent
}

// Close ends the conversation with a final fulfillment state.
func Close(ev *Event, state, message string) *Response {
	return respond(ev, &DialogAction{Type: ActionClose}, currentIntent(ev, state), nil, PlainText(message))
}

// Delegate hands control back to Lex to keep eliciting slots.
func Delegate(ev *Event) *Response {
	return respond(ev, &DialogAction{Type: ActionDelegate}, currentIntent(ev, ""), nil)
}

func ElicitSlot(ev *Event, slot, message string, attrs map[string]string) *Response {
	return respond(ev, &DialogAction{Type: ActionElicitSlot, SlotToElicit: slot}, currentIntent(ev, StateInProg), attrs, PlainText(message))
}

func ElicitIntent(ev *Event, message string) *Response {
	return respond(ev, &DialogAction{Type: ActionElicitIntent}, nil, nil, PlainText(message))
}
