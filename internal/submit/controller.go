package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// ErrSubmissionInFlight is returned when Submit is called before the previous
// submission reached a terminal outcome
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Controller submits links one at a time
type Controller struct {
	client   LinkPoster
	poller   Redirector
	notifier model.Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewController creates a submission controller
func NewController(client LinkPoster, poller Redirector, notifier model.Notifier, logger *slog.Logger) *Controller {
	if notifier == nil {
		notifier = model.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:   client,
		poller:   poller,
		notifier: notifier,
		logger:   logger,
	}
}

// InFlight reports whether a submission is running
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submit posts the form and, once the job is created, polls it until the job
// page can be opened. It blocks until a terminal outcome; every outcome other
// than navigation leaves the submit control enabled again.
func (c *Controller) Submit(ctx context.Context, form url.Values) error {
	if !c.begin() {
		return ErrSubmissionInFlight
	}
	defer c.end()

	req := model.NewJobRequest(form)
	c.notify(model.Event{Kind: model.EventControlDisabled, Control: model.ControlSubmit, Text: model.LabelSubmitting})
	c.notify(model.Event{Kind: model.EventMessageCleared})

	res := c.client.PostLink(ctx, req)
	if res.Failed() {
		c.logger.Error("submit.post_link.transport_error", "url", req.Value(model.FieldURL), "error", res.Err)
		c.fail(model.StyleDanger, model.MsgContactError)
		return api.TransportError(res.Err)
	}

	switch {
	case res.Status == http.StatusCreated:
		return c.follow(ctx, res)

	case res.Status == http.StatusAccepted:
		c.logger.Info("submit.post_link.accepted", "url", req.Value(model.FieldURL), "body", res.Body)
		c.restore()
		c.notify(model.Event{Kind: model.EventFormReset})
		c.notify(model.Event{Kind: model.EventMessageShown, Text: res.Body, Style: model.StyleSuccess})
		return nil

	case res.Status < 200:
		c.logger.Error("submit.post_link.unexpected_status", "status", res.Status, "body", res.Body)
		c.fail(model.StyleDanger, model.MsgContactError)
		return api.TransportError(fmt.Errorf("informational status %d", res.Status))

	case res.Status > 203 && res.Status < 500:
		c.logger.Info("submit.post_link.rejected", "status", res.Status, "body", res.Body)
		c.fail(model.StylePrimary, res.Body)
		return api.RejectedError(res.Status, res.Body)

	default:
		c.logger.Error("submit.post_link.server_fault", "status", res.Status, "body", res.Body)
		c.fail(model.StyleDanger, model.MsgUnknownServerError)
		return api.ServerFault(res.Status)
	}
}

// follow hands a created job to the poller
func (c *Controller) follow(ctx context.Context, res api.Result) error {
	h, err := model.ParseJobHandle(res.Body)
	if err != nil {
		c.logger.Error("submit.post_link.bad_location", "body", res.Body, "error", err)
		c.fail(model.StyleDanger, model.MsgContactError)
		return api.ProtocolError(res.Status, err)
	}

	c.logger.Info("submit.post_link.created", "job_id", h.String())

	_, err = c.poller.Run(ctx, h)
	if err == nil {
		return nil
	}

	// The poller restores the control itself on classified failures
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		c.logger.Warn("submit.poll.interrupted", "job_id", h.String(), "error", err)
		c.restore()
	}
	return err
}

func (c *Controller) fail(style model.MessageStyle, text string) {
	c.restore()
	c.notify(model.Event{Kind: model.EventMessageShown, Text: text, Style: style})
}

func (c *Controller) restore() {
	c.notify(model.Event{Kind: model.EventControlRestored, Control: model.ControlSubmit})
}

func (c *Controller) notify(ev model.Event) {
	c.notifier.Notify(ev)
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}
