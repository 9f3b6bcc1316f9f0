package progress

import (
	"time"

	"github.com/ytget/posterity/internal/model"
)

// Poll delays
const (
	DefaultNotFoundDelay = 500 * time.Millisecond
	DefaultPollInterval  = 1000 * time.Millisecond
)

// Mode selects what a terminal state does
type Mode int

const (
	// ModeRedirect is used right after submission: it navigates to the job
	// page as soon as any definitive status is known.
	ModeRedirect Mode = iota
	// ModeWatch is used on a page already showing a job: it renders progress
	// until completion and then reloads in place.
	ModeWatch
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeRedirect:
		return "redirect"
	case ModeWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Terminal is the action that ends a session
type Terminal int

const (
	TerminalNone Terminal = iota
	TerminalNavigate
	TerminalReload
	TerminalFail
)

// String returns the string representation of Terminal
func (t Terminal) String() string {
	switch t {
	case TerminalNone:
		return "none"
	case TerminalNavigate:
		return "navigate"
	case TerminalReload:
		return "reload"
	case TerminalFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Step is the decision taken for one classified response
type Step struct {
	Terminal Terminal
	Delay    time.Duration // wait before the next poll, only if Terminal is TerminalNone
	ShowText bool
	Text     string
}

// Reschedule reports whether another poll follows
func (s Step) Reschedule() bool {
	return s.Terminal == TerminalNone
}

// Config parameterises the state machine
type Config struct {
	Mode          Mode
	NotFoundDelay time.Duration
	PollInterval  time.Duration

	// Control is restored with RestoreLabel when a session fails
	Control      model.Control
	RestoreLabel string
}

// DefaultConfig returns the configuration for a mode
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:          mode,
		NotFoundDelay: DefaultNotFoundDelay,
		PollInterval:  DefaultPollInterval,
		Control:       model.ControlSubmit,
		RestoreLabel:  model.LabelSaveForPosterity,
	}
}

func (c Config) withDefaults() Config {
	if c.NotFoundDelay <= 0 {
		c.NotFoundDelay = DefaultNotFoundDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Control == "" {
		c.Control = model.ControlSubmit
	}
	return c
}

// Decide maps a classified status onto the next step
func (c Config) Decide(st model.JobStatus) Step {
	c = c.withDefaults()

	switch st.Kind {
	case model.StatusNotFoundYet:
		return Step{Delay: c.NotFoundDelay}
	case model.StatusProcessing:
		if c.Mode == ModeRedirect {
			return Step{Terminal: c.finish()}
		}
		return Step{Delay: c.PollInterval, ShowText: true, Text: FormatProgress(st)}
	case model.StatusAcknowledged:
		if c.Mode == ModeRedirect {
			return Step{Delay: c.PollInterval}
		}
		return Step{Delay: c.PollInterval, ShowText: true, Text: model.ProgressChecking}
	case model.StatusCompleted, model.StatusCreated, model.StatusUnsupported:
		return Step{Terminal: c.finish()}
	default:
		return Step{Terminal: TerminalFail}
	}
}

func (c Config) finish() Terminal {
	if c.Mode == ModeWatch {
		return TerminalReload
	}
	return TerminalNavigate
}
