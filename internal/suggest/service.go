package suggest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// Service requests field suggestions
type Service struct {
	source   SuggestionSource
	notifier model.Notifier
	logger   *slog.Logger
}

// NewService creates a new suggestion service
func NewService(source SuggestionSource, notifier model.Notifier, logger *slog.Logger) *Service {
	if notifier == nil {
		notifier = model.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, notifier: notifier, logger: logger}
}

// SuggestTitle asks the server for the title of the video at rawURL. The
// server also validates the URL: 406 and 418 mark the URL field invalid with
// the server's explanation. An empty URL does nothing.
func (s *Service) SuggestTitle(ctx context.Context, rawURL, currentTitle string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil
	}

	s.await(model.ControlSuggestTitle)
	res := s.source.TitleSuggestion(ctx, rawURL)
	s.restore(model.ControlSuggestTitle)

	if res.Failed() {
		s.logger.Error("suggest.title.transport_error", "url", rawURL, "error", res.Err)
		return api.TransportError(res.Err)
	}

	switch {
	case res.Status == http.StatusOK:
		s.valid(model.FieldURL)
		if res.Body != "" {
			s.suggest(model.FieldTitle, res.Body)
		} else if currentTitle == "" {
			s.suggest(model.FieldTitle, model.MsgNoTitleFound)
		}
		return nil

	case res.Status == http.StatusTeapot || res.Status == http.StatusNotAcceptable:
		s.logger.Info("suggest.title.invalid_url", "url", rawURL, "status", res.Status, "body", res.Body)
		s.notifier.Notify(model.Event{Kind: model.EventFieldInvalid, Field: model.FieldURL, Text: res.Body})
		return api.RejectedError(res.Status, res.Body)

	case res.Status >= 400 && res.Status < 500:
		s.logger.Info("suggest.title.rejected", "url", rawURL, "status", res.Status, "body", res.Body)
		s.shake(model.ControlSuggestTitle)
		s.valid(model.FieldURL)
		return api.RejectedError(res.Status, res.Body)

	default:
		s.logger.Warn("suggest.title.unexpected_status", "url", rawURL, "status", res.Status)
		s.valid(model.FieldURL)
		return api.ServerFault(res.Status)
	}
}

// SuggestDescription asks the server for a description taken from the job's
// source
func (s *Service) SuggestDescription(ctx context.Context, h model.JobHandle, currentDescription string) error {
	if h == "" {
		return nil
	}

	s.await(model.ControlSuggestDescription)
	res := s.source.DescriptionFromSource(ctx, h)
	s.restore(model.ControlSuggestDescription)

	if res.Failed() {
		s.logger.Error("suggest.description.transport_error", "job_id", h.String(), "error", res.Err)
		return api.TransportError(res.Err)
	}

	switch {
	case res.Status == http.StatusOK:
		if res.Body != "" {
			s.suggest(model.FieldDescription, res.Body)
		} else if currentDescription == "" {
			s.suggest(model.FieldDescription, model.MsgNoDescriptionFound)
		}
		return nil

	case res.Status >= 400 && res.Status < 500:
		s.logger.Info("suggest.description.rejected", "job_id", h.String(), "status", res.Status, "body", res.Body)
		s.shake(model.ControlSuggestDescription)
		return api.RejectedError(res.Status, res.Body)

	default:
		s.logger.Warn("suggest.description.unexpected_status", "job_id", h.String(), "status", res.Status)
		return api.ServerFault(res.Status)
	}
}

func (s *Service) await(c model.Control) {
	s.notifier.Notify(model.Event{Kind: model.EventControlDisabled, Control: c, Text: model.LabelAwaitingSuggestion})
}

func (s *Service) restore(c model.Control) {
	s.notifier.Notify(model.Event{Kind: model.EventControlRestored, Control: c})
}

func (s *Service) shake(c model.Control) {
	s.notifier.Notify(model.Event{Kind: model.EventControlShaken, Control: c})
}

func (s *Service) valid(field string) {
	s.notifier.Notify(model.Event{Kind: model.EventFieldValid, Field: field})
}

func (s *Service) suggest(field, text string) {
	s.notifier.Notify(model.Event{Kind: model.EventFieldSuggested, Field: field, Text: text})
}
