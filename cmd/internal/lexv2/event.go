// Package lexv2 holds the typed Lex V2 code-hook payloads exchanged with
// the fulfillment Lambdas.
package lexv2

import "strings"

const (
	InvocationDialogCodeHook      = "DialogCodeHook"
	InvocationFulfillmentCodeHook = "FulfillmentCodeHook"

	ConfirmationConfirmed = "Confirmed"
	ConfirmationDenied    = "Denied"
	ConfirmationNone      = "None"
)

type Event struct {
	MessageVersion    string            `json:"messageVersion,omitempty"`
	InvocationSource  string            `json:"invocationSource,omitempty"`
	InputMode         string            `json:"inputMode,omitempty"`
	ResponseType      string            `json:"responseContentType,omitempty"`
	SessionID         string            `json:"sessionId"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	Bot               *Bot              `json:"bot,omitempty"`
	SessionState      SessionState      `json:"sessionState"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

type Bot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	AliasID  string `json:"aliasId,omitempty"`
	LocaleID string `json:"localeId"`
	Version  string `json:"version"`
}

type SessionState struct {
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            *Intent           `json:"intent,omitempty"`
}

type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

type Intent struct {
	Name              string           `json:"name"`
	State             string           `json:"state,omitempty"`
	ConfirmationState string           `json:"confirmationState,omitempty"`
	Slots             map[string]*Slot `json:"slots,omitempty"`
}

type Slot struct {
	Shape string     `json:"shape,omitempty"`
	Value *SlotValue `json:"value,omitempty"`
}

type SlotValue struct {
	OriginalValue    string   `json:"originalValue,omitempty"`
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

func (e *Event) IntentName() string {
	if e.SessionState.Intent == nil {
		return ""
	}
	return e.SessionState.Intent.Name
}

// Slot returns the interpreted value of a slot. Anything missing along the
// way reports false.
func (e *Event) Slot(name string) (string, bool) {
	intent := e.SessionState.Intent
	if intent == nil || intent.Slots == nil {
		return "", false
	}
	slot, ok := intent.Slots[name]
	if !ok || slot == nil || slot.Value == nil {
		return "", false
	}
	v := strings.TrimSpace(slot.Value.InterpretedValue)
	if v == "" {
		return "", false
	}
	return v, true
}

func (e *Event) SessionAttributes() map[string]string {
	if e.SessionState.SessionAttributes == nil {
		return map[string]string{}
	}
	return e.SessionState.SessionAttributes
}
