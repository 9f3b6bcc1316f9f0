package download

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// Message length limits
const (
	DefaultMaxMessageLength = 1000
	MinMaxMessageLength     = 1
	MaxMaxMessageLength     = 100000
)

// ErrAlreadyStarting is returned when the same control is already waiting for
// a start request
var ErrAlreadyStarting = errors.New("task start already in flight")

// StartOptions selects how the trigger control behaves
type StartOptions struct {
	Control     model.Control
	HideControl bool // hide the control instead of disabling it
	Redirect    bool // navigate to the job once the task is created
}

// DownloadOptions returns the options of the job page download button
func DownloadOptions() StartOptions {
	return StartOptions{Control: model.ControlStartDownload, Redirect: true}
}

// ProcessingOptions returns the options of the job page processing button
func ProcessingOptions() StartOptions {
	return StartOptions{Control: model.ControlStartProcessing, Redirect: true}
}

// task describes one start endpoint
type task struct {
	name string
	call func(context.Context, model.JobHandle) api.Result
	// rejected reports whether a status carries a message meant for the user
	rejected func(status int) bool
}

// Service handles task start operations
type Service struct {
	client   JobStarter
	notifier model.Notifier
	logger   *slog.Logger

	mu               sync.Mutex
	maxMessageLength int
	starting         map[model.Control]bool
}

// NewService creates a new job starter service
func NewService(client JobStarter, notifier model.Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = model.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:           client,
		notifier:         notifier,
		logger:           logger,
		maxMessageLength: DefaultMaxMessageLength,
		starting:         make(map[model.Control]bool),
	}
}

// SetMaxMessageLength sets the longest server message that is shown
func (s *Service) SetMaxMessageLength(max int) {
	if max < MinMaxMessageLength {
		max = MinMaxMessageLength
	}
	if max > MaxMaxMessageLength {
		max = MaxMaxMessageLength
	}
	s.mu.Lock()
	s.maxMessageLength = max
	s.mu.Unlock()
}

// StartDownload asks the server to download the job's source
func (s *Service) StartDownload(ctx context.Context, h model.JobHandle, opts StartOptions) error {
	return s.start(ctx, h, opts, task{
		name: "download",
		call: s.client.StartDownload,
		rejected: func(status int) bool {
			return status >= 400 && status < 500
		},
	})
}

// StartProcessing asks the server to process an already downloaded job
func (s *Service) StartProcessing(ctx context.Context, h model.JobHandle, opts StartOptions) error {
	return s.start(ctx, h, opts, task{
		name: "processing",
		call: s.client.StartProcessing,
		rejected: func(status int) bool {
			return status >= 400
		},
	})
}

func (s *Service) start(ctx context.Context, h model.JobHandle, opts StartOptions, t task) error {
	if opts.Control == "" {
		opts.Control = model.ControlStartDownload
	}
	if !s.acquire(opts.Control) {
		return ErrAlreadyStarting
	}
	defer s.release(opts.Control)

	if opts.HideControl {
		s.notifier.Notify(model.Event{Kind: model.EventControlHidden, Control: opts.Control})
	} else {
		s.notifier.Notify(model.Event{Kind: model.EventControlDisabled, Control: opts.Control, Text: model.LabelStartingTask})
	}
	s.notifier.Notify(model.Event{Kind: model.EventMessageCleared})

	res := t.call(ctx, h)
	if res.Failed() {
		s.logger.Error("download.start.transport_error", "task", t.name, "job_id", h.String(), "error", res.Err)
		s.restore(opts)
		s.show(model.StyleDanger, model.MsgContactError)
		return api.TransportError(res.Err)
	}

	switch {
	case res.Status == http.StatusCreated:
		s.logger.Info("download.start.created", "task", t.name, "job_id", h.String())
		if opts.Redirect {
			s.notifier.Notify(model.Event{Kind: model.EventNavigate, Text: h.Path()})
		}
		return nil

	case t.rejected(res.Status):
		s.logger.Info("download.start.rejected", "task", t.name, "job_id", h.String(), "status", res.Status, "body", res.Body)
		s.restore(opts)
		if len(res.Body) < s.messageLimit() {
			s.show(model.StyleDanger, res.Body)
		}
		return api.RejectedError(res.Status, res.Body)

	default:
		s.logger.Warn("download.start.unexpected_status", "task", t.name, "job_id", h.String(), "status", res.Status)
		s.restore(opts)
		s.show(model.StyleWarning, model.MsgTaskServerError)
		return api.ServerFault(res.Status)
	}
}

func (s *Service) restore(opts StartOptions) {
	if opts.HideControl {
		s.notifier.Notify(model.Event{Kind: model.EventControlShown, Control: opts.Control})
		return
	}
	s.notifier.Notify(model.Event{Kind: model.EventControlRestored, Control: opts.Control})
}

func (s *Service) show(style model.MessageStyle, text string) {
	s.notifier.Notify(model.Event{Kind: model.EventMessageShown, Text: text, Style: style})
}

func (s *Service) messageLimit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxMessageLength
}

func (s *Service) acquire(c model.Control) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.starting[c] {
		return false
	}
	s.starting[c] = true
	return true
}

func (s *Service) release(c model.Control) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.starting, c)
}

