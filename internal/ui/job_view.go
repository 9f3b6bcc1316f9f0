package ui

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/config"
	"github.com/ytget/posterity/internal/download"
	"github.com/ytget/posterity/internal/model"
	"github.com/ytget/posterity/internal/progress"
	"github.com/ytget/posterity/internal/suggest"
)

// JobView is the page of one saved job. While open it watches the job's
// progress until the server reports a final state.
type JobView struct {
	handle       model.JobHandle
	localization *Localization
	logger       *slog.Logger

	presenter *Presenter
	poller    *progress.Poller
	starter   download.Starter
	suggester *suggest.Service

	ctx     context.Context
	cancel  context.CancelFunc
	session *progress.Session

	progressLabel    *widget.Label
	statusLabel      *widget.Label
	descriptionEntry *widget.Entry
	downloadBtn      *widget.Button
	processingBtn    *widget.Button
	suggestBtn       *widget.Button
	content          fyne.CanvasObject

	onBack     func()
	onNavigate func(path string)
}

// NewJobView creates the page of a job. onNavigate is called when the server
// sends the user to a job page, onBack when the user leaves the page.
func NewJobView(h model.JobHandle, client *api.Client, settings *config.Settings, localization *Localization, logger *slog.Logger, onNavigate func(path string), onBack func()) *JobView {
	v := &JobView{
		handle:       h,
		localization: localization,
		logger:       logger.With("job_id", h.String()),
		presenter:    NewPresenter(),
		onBack:       onBack,
		onNavigate:   onNavigate,
	}

	cfg := progress.Config{
		Mode:          progress.ModeWatch,
		NotFoundDelay: settings.GetNotFoundDelay(),
		PollInterval:  settings.GetPollInterval(),
		Control:       model.ControlStartDownload,
		RestoreLabel:  localization.GetText(KeyStartDownload),
	}
	v.poller = progress.NewPoller(client, v.presenter, cfg, progress.WithLogger(logger))

	starter := download.NewService(client, v.presenter, logger)
	starter.SetMaxMessageLength(settings.GetMaxMessageLength())
	v.starter = starter
	v.suggester = suggest.NewService(client, v.presenter, logger)

	v.setupUI()
	return v
}

// Content returns the page's root object
func (v *JobView) Content() fyne.CanvasObject {
	return v.content
}

// Handle returns the job shown by the page
func (v *JobView) Handle() model.JobHandle {
	return v.handle
}

// setupUI creates and arranges all UI components
func (v *JobView) setupUI() {
	backBtn := widget.NewButton(IconBack+" "+v.localization.GetText(KeyBack), v.onBackClick)
	backBtn.Importance = widget.LowImportance

	heading := widget.NewLabelWithStyle(v.localization.GetText(KeyJob)+" "+v.handle.String(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.progressLabel = widget.NewLabel(model.ProgressWaiting)
	v.statusLabel = widget.NewLabel("")
	v.statusLabel.Wrapping = fyne.TextWrapWord

	v.downloadBtn = widget.NewButton(v.localization.GetText(KeyStartDownload), v.onStartDownload)
	v.processingBtn = widget.NewButton(v.localization.GetText(KeyStartProcessing), v.onStartProcessing)

	v.descriptionEntry = widget.NewMultiLineEntry()
	v.descriptionEntry.SetMinRowsVisible(DescriptionLines)
	v.descriptionEntry.Wrapping = fyne.TextWrapWord
	v.suggestBtn = widget.NewButton(v.localization.GetText(KeySuggestDescription), v.onSuggestDescription)

	v.presenter.BindButton(model.ControlStartDownload, v.downloadBtn)
	v.presenter.BindButton(model.ControlStartProcessing, v.processingBtn)
	v.presenter.BindButton(model.ControlSuggestDescription, v.suggestBtn)
	v.presenter.BindEntry(model.FieldDescription, v.descriptionEntry)
	v.presenter.BindStatus(v.statusLabel)
	v.presenter.BindProgress(v.progressLabel)
	v.presenter.SetNavigationCallbacks(v.onNavigate, v.onFinished)

	v.content = container.NewVBox(
		container.NewBorder(nil, nil, backBtn, nil, heading),
		widget.NewSeparator(),
		v.progressLabel,
		container.NewHBox(v.downloadBtn, v.processingBtn),
		v.statusLabel,
		widget.NewSeparator(),
		widget.NewLabel(v.localization.GetText(KeyDescription)),
		v.descriptionEntry,
		container.NewHBox(v.suggestBtn),
	)
}

// Open starts watching the job's progress
func (v *JobView) Open(parent context.Context) {
	v.ctx, v.cancel = context.WithCancel(parent)

	session, err := v.poller.Start(v.ctx, v.handle)
	if err != nil {
		v.logger.Warn("ui.job.watch_not_started", "error", err)
		return
	}
	v.session = session

	go func() {
		st, err := session.Wait()
		switch {
		case err == nil:
			v.logger.Info("ui.job.watch_finished", "status", st.Kind.String())
		case errors.Is(err, context.Canceled):
			v.logger.Debug("ui.job.watch_stopped")
		default:
			v.logger.Warn("ui.job.watch_failed", "status", st.Kind.String(), "error", err)
		}
	}()
}

// Close stops the page's session and pending requests
func (v *JobView) Close() {
	if v.session != nil {
		v.session.Stop()
		v.session = nil
	}
	if v.cancel != nil {
		v.cancel()
	}
}

// onFinished handles the poller's reload: the job reached a final state
func (v *JobView) onFinished() {
	v.progressLabel.SetText(v.localization.GetText(KeyJobFinished))
}

func (v *JobView) onBackClick() {
	v.Close()
	if v.onBack != nil {
		v.onBack()
	}
}

func (v *JobView) onStartDownload() {
	ctx := v.requestContext()
	go func() {
		if err := v.starter.StartDownload(ctx, v.handle, download.DownloadOptions()); err != nil {
			v.logger.Info("ui.job.start_download_failed", "error", err)
		}
	}()
}

func (v *JobView) onStartProcessing() {
	ctx := v.requestContext()
	go func() {
		if err := v.starter.StartProcessing(ctx, v.handle, download.ProcessingOptions()); err != nil {
			v.logger.Info("ui.job.start_processing_failed", "error", err)
		}
	}()
}

func (v *JobView) onSuggestDescription() {
	ctx := v.requestContext()
	current := v.descriptionEntry.Text
	go func() {
		if err := v.suggester.SuggestDescription(ctx, v.handle, current); err != nil {
			v.logger.Info("ui.job.suggest_description_failed", "error", err)
		}
	}()
}

// requestContext returns the page's context, or a background one before Open
func (v *JobView) requestContext() context.Context {
	if v.ctx == nil {
		return context.Background()
	}
	return v.ctx
}
