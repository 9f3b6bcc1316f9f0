package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/api/apitest"
	"github.com/ytget/posterity/internal/model"
)

type recorder struct {
	events []model.Event
	state  *model.UIState
}

func newRecorder() *recorder {
	return &recorder{state: model.NewUIState(map[model.Control]string{
		model.ControlSuggestTitle:       "Suggest",
		model.ControlSuggestDescription: "Suggest description",
	})}
}

func (r *recorder) Notify(ev model.Event) {
	r.events = append(r.events, ev)
	r.state.Apply(ev)
}

type stubSource struct {
	title       api.Result
	description api.Result
	urls        []string
}

func (s *stubSource) TitleSuggestion(ctx context.Context, videoURL string) api.Result {
	s.urls = append(s.urls, videoURL)
	return s.title
}

func (s *stubSource) DescriptionFromSource(ctx context.Context, h model.JobHandle) api.Result {
	return s.description
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSuggestTitle_EmptyURLIsNoop(t *testing.T) {
	rec := newRecorder()
	source := &stubSource{}
	service := NewService(source, rec, quietLogger())

	if err := service.SuggestTitle(context.Background(), "   ", ""); err != nil {
		t.Errorf("SuggestTitle returned %v, expected nil", err)
	}
	if len(rec.events) != 0 || len(source.urls) != 0 {
		t.Errorf("events = %d, requests = %d, expected none", len(rec.events), len(source.urls))
	}
}

func TestSuggestTitle_Outcomes(t *testing.T) {
	tests := []struct {
		name         string
		result       api.Result
		currentTitle string
		kind         error
		title        string
		invalid      string
		shaken       bool
	}{
		{"suggested", api.Result{Status: http.StatusOK, Body: "Cats"}, "", nil, "Cats", "", false},
		{"overwrites title", api.Result{Status: http.StatusOK, Body: "Cats"}, "Mine", nil, "Cats", "", false},
		{"empty suggestion", api.Result{Status: http.StatusOK}, "", nil, model.MsgNoTitleFound, "", false},
		{"empty suggestion keeps title", api.Result{Status: http.StatusOK}, "Mine", nil, "", "", false},
		{"teapot", api.Result{Status: http.StatusTeapot, Body: "Not a video site"}, "", api.ErrRejected, "", "Not a video site", false},
		{"not acceptable", api.Result{Status: http.StatusNotAcceptable, Body: "Blocked"}, "", api.ErrRejected, "", "Blocked", false},
		{"other client error", api.Result{Status: http.StatusNotFound}, "", api.ErrRejected, "", "", true},
		{"server error", api.Result{Status: http.StatusBadGateway}, "", api.ErrServerFault, "", "", false},
		{"transport", api.Result{Err: errors.New("refused")}, "", api.ErrTransport, "", "", false},
	}

	for _, test := range tests {
		rec := newRecorder()
		// A previous invalid mark must be cleared by every non-validation outcome
		rec.Notify(model.Event{Kind: model.EventFieldInvalid, Field: model.FieldURL, Text: "stale"})
		service := NewService(&stubSource{title: test.result}, rec, quietLogger())

		err := service.SuggestTitle(context.Background(), "https://youtube.com/watch?v=1", test.currentTitle)
		if test.kind == nil && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if test.kind != nil && !errors.Is(err, test.kind) {
			t.Errorf("%s: error = %v, expected %v", test.name, err, test.kind)
		}

		if got := rec.state.Fields[model.FieldTitle]; got != test.title {
			t.Errorf("%s: title = %q, expected %q", test.name, got, test.title)
		}

		invalid := rec.state.Invalid[model.FieldURL]
		if test.name == "transport" {
			if invalid != "stale" {
				t.Errorf("%s: url validity changed to %q", test.name, invalid)
			}
		} else if invalid != test.invalid {
			t.Errorf("%s: url invalid = %q, expected %q", test.name, invalid, test.invalid)
		}

		cs := rec.state.Controls[model.ControlSuggestTitle]
		if cs.Disabled || cs.Label != "Suggest" {
			t.Errorf("%s: control = %+v, expected restored", test.name, cs)
		}
		if cs.Shaken != test.shaken {
			t.Errorf("%s: Shaken = %t, expected %t", test.name, cs.Shaken, test.shaken)
		}
	}
}

func TestSuggestTitle_DisablesControlFirst(t *testing.T) {
	rec := newRecorder()
	service := NewService(&stubSource{title: api.Result{Status: http.StatusOK, Body: "Cats"}}, rec, quietLogger())

	if err := service.SuggestTitle(context.Background(), "https://youtube.com/watch?v=1", ""); err != nil {
		t.Fatalf("SuggestTitle failed: %v", err)
	}

	first := rec.events[0]
	if first.Kind != model.EventControlDisabled || first.Control != model.ControlSuggestTitle || first.Text != model.LabelAwaitingSuggestion {
		t.Errorf("first event = %+v, expected disabled suggest control", first)
	}
}

func TestSuggestDescription_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		result      api.Result
		current     string
		kind        error
		description string
		shaken      bool
	}{
		{"suggested", api.Result{Status: http.StatusOK, Body: "About cats"}, "", nil, "About cats", false},
		{"empty suggestion", api.Result{Status: http.StatusOK}, "", nil, model.MsgNoDescriptionFound, false},
		{"empty suggestion keeps description", api.Result{Status: http.StatusOK}, "Mine", nil, "", false},
		{"client error", api.Result{Status: http.StatusNotFound}, "", api.ErrRejected, "", true},
		{"server error", api.Result{Status: http.StatusInternalServerError}, "", api.ErrServerFault, "", false},
		{"transport", api.Result{Err: errors.New("refused")}, "", api.ErrTransport, "", false},
	}

	for _, test := range tests {
		rec := newRecorder()
		service := NewService(&stubSource{description: test.result}, rec, quietLogger())

		err := service.SuggestDescription(context.Background(), "abc123", test.current)
		if test.kind == nil && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if test.kind != nil && !errors.Is(err, test.kind) {
			t.Errorf("%s: error = %v, expected %v", test.name, err, test.kind)
		}
		if got := rec.state.Fields[model.FieldDescription]; got != test.description {
			t.Errorf("%s: description = %q, expected %q", test.name, got, test.description)
		}
		if _, ok := rec.state.Fields[model.FieldTitle]; ok {
			t.Errorf("%s: title field touched", test.name)
		}
		cs := rec.state.Controls[model.ControlSuggestDescription]
		if cs.Disabled {
			t.Errorf("%s: control left disabled", test.name)
		}
		if cs.Shaken != test.shaken {
			t.Errorf("%s: Shaken = %t, expected %t", test.name, cs.Shaken, test.shaken)
		}
	}
}

func TestSuggestDescription_EmptyHandleIsNoop(t *testing.T) {
	rec := newRecorder()
	service := NewService(&stubSource{}, rec, quietLogger())

	if err := service.SuggestDescription(context.Background(), "", ""); err != nil {
		t.Errorf("SuggestDescription returned %v, expected nil", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %d, expected none", len(rec.events))
	}
}

func TestSuggest_AgainstServer(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Enqueue(http.MethodPost, api.PathTitleSuggestion, apitest.Response{Status: http.StatusOK, Body: "Cats"})
	srv.Enqueue(http.MethodGet, api.PathDescFromSource+"abc123", apitest.Response{Status: http.StatusOK, Body: "About cats"})

	client, err := api.NewClient(srv.URL, api.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	rec := newRecorder()
	service := NewService(client, rec, quietLogger())

	if err := service.SuggestTitle(context.Background(), "https://youtube.com/watch?v=1", ""); err != nil {
		t.Errorf("SuggestTitle failed: %v", err)
	}
	if err := service.SuggestDescription(context.Background(), "abc123", ""); err != nil {
		t.Errorf("SuggestDescription failed: %v", err)
	}

	if rec.state.Fields[model.FieldTitle] != "Cats" || rec.state.Fields[model.FieldDescription] != "About cats" {
		t.Errorf("fields = %v, expected suggested title and description", rec.state.Fields)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, expected 2", len(reqs))
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil {
		t.Fatalf("title request body is not JSON: %v", err)
	}
	if body["url"] != "https://youtube.com/watch?v=1" {
		t.Errorf("url = %q, expected the video URL", body["url"])
	}
}
