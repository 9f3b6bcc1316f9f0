package model

// Control identifies an interactive control the core enables or disables
type Control string

const (
	ControlSubmit             Control = "submit-button"
	ControlSuggestTitle       Control = "suggest-button"
	ControlSuggestDescription Control = "suggest-description-button"
	ControlStartDownload      Control = "start-download-button"
	ControlStartProcessing    Control = "start-processing-button"
)

// MessageStyle is the emphasis of a status message
type MessageStyle string

const (
	StyleSuccess MessageStyle = "success"
	StylePrimary MessageStyle = "primary"
	StyleWarning MessageStyle = "warning"
	StyleDanger  MessageStyle = "danger"
)

// EventKind enumerates presentation events emitted by the core
type EventKind string

const (
	// EventControlDisabled disables Control and shows Text as its busy label
	EventControlDisabled EventKind = "control_disabled"
	// EventControlRestored enables Control; Text overrides the label, empty restores the previous one
	EventControlRestored EventKind = "control_restored"
	EventControlHidden   EventKind = "control_hidden"
	EventControlShown    EventKind = "control_shown"
	// EventControlShaken flags Control visually after a rejected request
	EventControlShaken EventKind = "control_shaken"

	EventMessageShown   EventKind = "message_shown"
	EventMessageCleared EventKind = "message_cleared"

	// EventFormReset resets the free-text fields and choices of the link form
	EventFormReset EventKind = "form_reset"

	// EventProgressShown replaces the job progress text
	EventProgressShown EventKind = "progress_shown"

	EventFieldSuggested EventKind = "field_suggested"
	EventFieldInvalid   EventKind = "field_invalid"
	EventFieldValid     EventKind = "field_valid"

	// EventNavigate leaves the current page for the path in Text
	EventNavigate EventKind = "navigate"
	// EventReload reloads the current page in place
	EventReload EventKind = "reload"
)

// Event is a single notification from the core to the presentation layer
type Event struct {
	Kind    EventKind
	Control Control
	Field   string
	Text    string
	Style   MessageStyle
}

// Notifier receives presentation events. The core holds no other reference
// to the presentation layer.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

// Notify calls f(ev)
func (f NotifierFunc) Notify(ev Event) {
	f(ev)
}

// Discard is a Notifier that drops every event
var Discard Notifier = NotifierFunc(func(Event) {})
