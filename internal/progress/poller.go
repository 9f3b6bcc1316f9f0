package progress

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// ErrAlreadyPolling is returned when a session for the handle is still active
var ErrAlreadyPolling = errors.New("job is already being polled")

// WaitFunc blocks for d or until ctx is done
type WaitFunc func(ctx context.Context, d time.Duration) error

// Poller runs poll sessions. At most one session per job handle is active.
type Poller struct {
	client   ProgressChecker
	notifier model.Notifier
	logger   *slog.Logger
	cfg      Config
	wait     WaitFunc

	mu     sync.Mutex
	active map[model.JobHandle]struct{}
}

// Option configures a Poller
type Option func(*Poller)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWaitFunc replaces the timer used between polls
func WithWaitFunc(wait WaitFunc) Option {
	return func(p *Poller) {
		if wait != nil {
			p.wait = wait
		}
	}
}

// NewPoller creates a poller
func NewPoller(client ProgressChecker, notifier model.Notifier, cfg Config, opts ...Option) *Poller {
	if notifier == nil {
		notifier = model.Discard
	}
	p := &Poller{
		client:   client,
		notifier: notifier,
		logger:   slog.Default(),
		cfg:      cfg.withDefaults(),
		wait:     sleep,
		active:   make(map[model.JobHandle]struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Config returns the poller configuration
func (p *Poller) Config() Config {
	return p.cfg
}

// Run polls h until a terminal state or until ctx is done. It returns the
// terminal status; the error is non-nil for failures and cancellation.
func (p *Poller) Run(ctx context.Context, h model.JobHandle) (model.JobStatus, error) {
	if err := p.acquire(h); err != nil {
		return model.JobStatus{}, err
	}
	defer p.release(h)

	return p.run(ctx, h, uuid.New().String())
}

// Start runs a session in the background
func (p *Poller) Start(ctx context.Context, h model.JobHandle) (*Session, error) {
	if err := p.acquire(h); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:     uuid.New().String(),
		Handle: h,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer p.release(h)
		defer cancel()
		s.status, s.err = p.run(ctx, h, s.ID)
	}()

	return s, nil
}

// Active reports whether a session for h is running
func (p *Poller) Active(h model.JobHandle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[h]
	return ok
}

func (p *Poller) acquire(h model.JobHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.active[h]; ok {
		return ErrAlreadyPolling
	}
	p.active[h] = struct{}{}
	return nil
}

func (p *Poller) release(h model.JobHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, h)
}

func (p *Poller) run(ctx context.Context, h model.JobHandle, sessionID string) (model.JobStatus, error) {
	logger := p.logger.With("session_id", sessionID, "job_id", h.String(), "mode", p.cfg.Mode.String())
	logger.Info("progress.session.started")

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			logger.Info("progress.session.stopped", "attempt", attempt)
			return model.JobStatus{}, err
		}

		res := p.client.CheckProgress(ctx, h)

		// A response that arrives after Stop is dropped
		if err := ctx.Err(); err != nil {
			logger.Info("progress.session.stopped", "attempt", attempt)
			return model.JobStatus{}, err
		}

		st := Classify(res)
		step := p.cfg.Decide(st)
		logger.Debug("progress.poll", "attempt", attempt, "status", st.Code, "kind", st.Kind.String(), "next", step.Terminal.String())

		if step.ShowText {
			p.notifier.Notify(model.Event{Kind: model.EventProgressShown, Text: step.Text})
		}

		switch step.Terminal {
		case TerminalNavigate:
			logger.Info("progress.session.finished", "status", st.Code, "kind", st.Kind.String())
			p.notifier.Notify(model.Event{Kind: model.EventNavigate, Text: h.Path()})
			return st, nil
		case TerminalReload:
			logger.Info("progress.session.finished", "status", st.Code, "kind", st.Kind.String())
			p.notifier.Notify(model.Event{Kind: model.EventReload})
			return st, nil
		case TerminalFail:
			logger.Error("progress.poll.failed", "status", st.Code, "kind", st.Kind.String(), "body", res.Body, "error", res.Err)
			p.notifier.Notify(model.Event{Kind: model.EventControlRestored, Control: p.cfg.Control, Text: p.cfg.RestoreLabel})
			return st, failure(res, st)
		}

		if err := p.wait(ctx, step.Delay); err != nil {
			logger.Info("progress.session.stopped", "attempt", attempt)
			return st, err
		}
	}
}

func failure(res api.Result, st model.JobStatus) error {
	switch {
	case res.Failed():
		return api.TransportError(res.Err)
	case st.Kind == model.StatusClientError:
		return api.RejectedError(res.Status, res.Body)
	default:
		return api.ServerFault(res.Status)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Session is a background poll. Stop cancels it deterministically.
type Session struct {
	ID     string
	Handle model.JobHandle

	cancel context.CancelFunc
	done   chan struct{}
	status model.JobStatus
	err    error
}

// Stop cancels the session and waits for it to exit
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// Done is closed when the session has exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session exits and returns its outcome
func (s *Session) Wait() (model.JobStatus, error) {
	<-s.done
	return s.status, s.err
}
