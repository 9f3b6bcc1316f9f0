package download

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
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
		model.ControlStartDownload:   "Download",
		model.ControlStartProcessing: "Process",
	})}
}

func (r *recorder) Notify(ev model.Event) {
	r.events = append(r.events, ev)
	r.state.Apply(ev)
}

type stubStarter struct {
	download   api.Result
	processing api.Result
	calls      []string
	onCall     func()
}

func (s *stubStarter) StartDownload(ctx context.Context, h model.JobHandle) api.Result {
	s.calls = append(s.calls, "download:"+h.String())
	if s.onCall != nil {
		s.onCall()
	}
	return s.download
}

func (s *stubStarter) StartProcessing(ctx context.Context, h model.JobHandle) api.Result {
	s.calls = append(s.calls, "processing:"+h.String())
	if s.onCall != nil {
		s.onCall()
	}
	return s.processing
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewService(t *testing.T) {
	service := NewService(&stubStarter{}, nil, nil)

	if service.maxMessageLength != DefaultMaxMessageLength {
		t.Errorf("maxMessageLength = %d, expected %d", service.maxMessageLength, DefaultMaxMessageLength)
	}
	if service.notifier == nil || service.logger == nil {
		t.Error("Expected notifier and logger defaults")
	}
}

func TestSetMaxMessageLength(t *testing.T) {
	service := NewService(&stubStarter{}, nil, quietLogger())

	tests := []struct {
		in       int
		expected int
	}{
		{0, MinMaxMessageLength},
		{-5, MinMaxMessageLength},
		{200, 200},
		{MaxMaxMessageLength + 1, MaxMaxMessageLength},
	}

	for _, test := range tests {
		service.SetMaxMessageLength(test.in)
		if got := service.messageLimit(); got != test.expected {
			t.Errorf("SetMaxMessageLength(%d) = %d, expected %d", test.in, got, test.expected)
		}
	}
}

func TestStartDownload_Outcomes(t *testing.T) {
	long := strings.Repeat("x", DefaultMaxMessageLength)

	tests := []struct {
		name     string
		result   api.Result
		kind     error
		message  string
		style    model.MessageStyle
		navigate string
	}{
		{"created", api.Result{Status: http.StatusCreated}, nil, "", "", "/abc123"},
		{"rejected", api.Result{Status: http.StatusConflict, Body: "Already downloading"}, api.ErrRejected, "Already downloading", model.StyleDanger, ""},
		{"rejected long body", api.Result{Status: http.StatusBadRequest, Body: long}, api.ErrRejected, "", "", ""},
		{"server error", api.Result{Status: http.StatusInternalServerError, Body: "boom"}, api.ErrServerFault, model.MsgTaskServerError, model.StyleWarning, ""},
		{"plain ok", api.Result{Status: http.StatusOK}, api.ErrServerFault, model.MsgTaskServerError, model.StyleWarning, ""},
		{"transport", api.Result{Err: errors.New("connection reset")}, api.ErrTransport, model.MsgContactError, model.StyleDanger, ""},
	}

	for _, test := range tests {
		rec := newRecorder()
		service := NewService(&stubStarter{download: test.result}, rec, quietLogger())

		err := service.StartDownload(context.Background(), "abc123", DownloadOptions())
		if test.kind == nil && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if test.kind != nil && !errors.Is(err, test.kind) {
			t.Errorf("%s: error = %v, expected %v", test.name, err, test.kind)
		}
		if rec.state.Message != test.message || rec.state.MessageStyle != test.style {
			t.Errorf("%s: message = %q (%s), expected %q (%s)", test.name, rec.state.Message, rec.state.MessageStyle, test.message, test.style)
		}
		if rec.state.NavigatedTo != test.navigate {
			t.Errorf("%s: NavigatedTo = %q, expected %q", test.name, rec.state.NavigatedTo, test.navigate)
		}
		if test.kind != nil {
			cs := rec.state.Controls[model.ControlStartDownload]
			if cs.Disabled || cs.Label != "Download" {
				t.Errorf("%s: control = %+v, expected restored", test.name, cs)
			}
		}
	}
}

func TestStartDownload_DisablesControlWhileWaiting(t *testing.T) {
	rec := newRecorder()
	starter := &stubStarter{download: api.Result{Status: http.StatusCreated}}
	starter.onCall = func() {
		cs := rec.state.Controls[model.ControlStartDownload]
		if !cs.Disabled || cs.Label != model.LabelStartingTask {
			t.Errorf("control during request = %+v, expected disabled with %q", cs, model.LabelStartingTask)
		}
	}
	service := NewService(starter, rec, quietLogger())

	if err := service.StartDownload(context.Background(), "abc123", DownloadOptions()); err != nil {
		t.Fatalf("StartDownload failed: %v", err)
	}
}

func TestStartDownload_HiddenControlIsShownAgain(t *testing.T) {
	rec := newRecorder()
	starter := &stubStarter{download: api.Result{Status: http.StatusBadRequest, Body: "No source"}}
	starter.onCall = func() {
		if !rec.state.Controls[model.ControlStartDownload].Hidden {
			t.Error("Expected control hidden during request")
		}
	}
	service := NewService(starter, rec, quietLogger())

	opts := StartOptions{Control: model.ControlStartDownload, HideControl: true}
	if err := service.StartDownload(context.Background(), "abc123", opts); !errors.Is(err, api.ErrRejected) {
		t.Errorf("error = %v, expected ErrRejected", err)
	}
	if !rec.state.Enabled(model.ControlStartDownload) {
		t.Error("Expected control to be shown again")
	}
}

func TestStartDownload_NoRedirect(t *testing.T) {
	rec := newRecorder()
	service := NewService(&stubStarter{download: api.Result{Status: http.StatusCreated}}, rec, quietLogger())

	opts := DownloadOptions()
	opts.Redirect = false
	if err := service.StartDownload(context.Background(), "abc123", opts); err != nil {
		t.Fatalf("StartDownload failed: %v", err)
	}
	if rec.state.Navigations != 0 {
		t.Errorf("Navigations = %d, expected 0", rec.state.Navigations)
	}
}

func TestStartProcessing_ServerErrorsCarryMessage(t *testing.T) {
	rec := newRecorder()
	service := NewService(&stubStarter{processing: api.Result{Status: http.StatusInternalServerError, Body: "Source missing"}}, rec, quietLogger())

	err := service.StartProcessing(context.Background(), "abc123", ProcessingOptions())
	if !errors.Is(err, api.ErrRejected) {
		t.Errorf("error = %v, expected ErrRejected", err)
	}
	if rec.state.Message != "Source missing" || rec.state.MessageStyle != model.StyleDanger {
		t.Errorf("message = %q (%s), expected danger 'Source missing'", rec.state.Message, rec.state.MessageStyle)
	}
	if !rec.state.Enabled(model.ControlStartProcessing) {
		t.Error("Expected processing control to be restored")
	}
}

func TestStart_RejectsConcurrentStartOnSameControl(t *testing.T) {
	rec := newRecorder()
	starter := &stubStarter{download: api.Result{Status: http.StatusCreated}}
	service := NewService(starter, rec, quietLogger())

	var nested error
	starter.onCall = func() {
		starter.onCall = nil
		nested = service.StartDownload(context.Background(), "abc123", DownloadOptions())
	}

	if err := service.StartDownload(context.Background(), "abc123", DownloadOptions()); err != nil {
		t.Fatalf("StartDownload failed: %v", err)
	}
	if !errors.Is(nested, ErrAlreadyStarting) {
		t.Errorf("nested error = %v, expected ErrAlreadyStarting", nested)
	}
	if len(starter.calls) != 1 {
		t.Errorf("calls = %v, expected one request", starter.calls)
	}
}

func TestStart_AgainstServer(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Enqueue(http.MethodPost, api.PathStartDownload+"abc123", apitest.Response{Status: http.StatusCreated})
	srv.Enqueue(http.MethodPost, api.PathStartProcessing+"abc123", apitest.Response{Status: http.StatusAccepted})

	client, err := api.NewClient(srv.URL, api.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	rec := newRecorder()
	service := NewService(client, rec, quietLogger())

	if err := service.StartDownload(context.Background(), "abc123", DownloadOptions()); err != nil {
		t.Errorf("StartDownload failed: %v", err)
	}
	if rec.state.NavigatedTo != "/abc123" {
		t.Errorf("NavigatedTo = %q, expected /abc123", rec.state.NavigatedTo)
	}

	if err := service.StartProcessing(context.Background(), "abc123", ProcessingOptions()); !errors.Is(err, api.ErrServerFault) {
		t.Errorf("StartProcessing error = %v, expected ErrServerFault", err)
	}
	if rec.state.MessageStyle != model.StyleWarning {
		t.Errorf("MessageStyle = %s, expected warning", rec.state.MessageStyle)
	}

	if n := srv.Count(http.MethodPost, api.PathStartDownload+"abc123"); n != 1 {
		t.Errorf("download requests = %d, expected 1", n)
	}
}
