package model

// ControlState is the visible state of one control
type ControlState struct {
	Disabled bool
	Hidden   bool
	Label    string
	Shaken   bool

	savedLabel string
}

// UIState is the presentation state the core's events fold into. The core
// writes it only through events and never reads it back.
type UIState struct {
	Controls     map[Control]ControlState
	Message      string
	MessageStyle MessageStyle
	ProgressText string
	Fields       map[string]string
	Invalid      map[string]string
	NavigatedTo  string
	Navigations  int
	Reloads      int
}

// NewUIState returns an empty state with the given control labels
func NewUIState(labels map[Control]string) *UIState {
	s := &UIState{
		Controls: make(map[Control]ControlState),
		Fields:   make(map[string]string),
		Invalid:  make(map[string]string),
	}
	for c, label := range labels {
		s.Controls[c] = ControlState{Label: label}
	}
	return s
}

// Apply folds one event into the state
func (s *UIState) Apply(ev Event) {
	switch ev.Kind {
	case EventControlDisabled:
		cs := s.Controls[ev.Control]
		if !cs.Disabled {
			cs.savedLabel = cs.Label
		}
		cs.Disabled = true
		cs.Shaken = false
		if ev.Text != "" {
			cs.Label = ev.Text
		}
		s.Controls[ev.Control] = cs
	case EventControlRestored:
		cs := s.Controls[ev.Control]
		cs.Disabled = false
		if ev.Text != "" {
			cs.Label = ev.Text
		} else if cs.savedLabel != "" {
			cs.Label = cs.savedLabel
		}
		cs.savedLabel = ""
		s.Controls[ev.Control] = cs
	case EventControlHidden:
		cs := s.Controls[ev.Control]
		cs.Hidden = true
		s.Controls[ev.Control] = cs
	case EventControlShown:
		cs := s.Controls[ev.Control]
		cs.Hidden = false
		s.Controls[ev.Control] = cs
	case EventControlShaken:
		cs := s.Controls[ev.Control]
		cs.Shaken = true
		s.Controls[ev.Control] = cs
	case EventMessageShown:
		s.Message = ev.Text
		s.MessageStyle = ev.Style
	case EventMessageCleared:
		s.Message = ""
		s.MessageStyle = ""
	case EventFormReset:
		s.Fields[FieldTitle] = ""
		s.Fields[FieldURL] = ""
		s.Fields[FieldContentWarning] = DefaultChoice
		s.Fields[FieldCategory] = DefaultChoice
	case EventProgressShown:
		s.ProgressText = ev.Text
	case EventFieldSuggested:
		s.Fields[ev.Field] = ev.Text
	case EventFieldInvalid:
		if ev.Text == "" {
			delete(s.Invalid, ev.Field)
			break
		}
		s.Invalid[ev.Field] = ev.Text
	case EventFieldValid:
		delete(s.Invalid, ev.Field)
	case EventNavigate:
		s.NavigatedTo = ev.Text
		s.Navigations++
	case EventReload:
		s.Reloads++
	}
}

// Enabled reports whether a control is enabled and visible
func (s *UIState) Enabled(c Control) bool {
	cs := s.Controls[c]
	return !cs.Disabled && !cs.Hidden
}
