package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/config"
	"github.com/ytget/posterity/internal/model"
	"github.com/ytget/posterity/internal/progress"
	"github.com/ytget/posterity/internal/submit"
	"github.com/ytget/posterity/internal/suggest"
)

// RootUI represents the main UI structure: the link form and, after a
// successful submission, the page of the saved job
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	client       *api.Client
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger

	presenter  *Presenter
	controller *submit.Controller
	suggester  *suggest.Service

	urlEntry      *widget.Entry
	titleEntry    *widget.Entry
	categoryGroup *widget.CheckGroup
	warningGroup  *widget.CheckGroup
	suggestBtn    *widget.Button
	submitBtn     *widget.Button
	statusLabel   *widget.Label
	urlLabel      *widget.Label
	titleLabel    *widget.Label
	categoryLabel *widget.Label
	warningLabel  *widget.Label
	form          fyne.CanvasObject

	jobView      *JobView
	suggestTimer *time.Timer
}

// NewRootUI creates and initializes the main UI. Requests are bound to ctx.
func NewRootUI(ctx context.Context, window fyne.Window, settings *config.Settings, client *api.Client, logger *slog.Logger) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		client:       client,
		settings:     settings,
		localization: localization,
		logger:       logger,
		presenter:    NewPresenter(),
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.buildServices()
	ui.setupUI()

	logger.Info("ui.root.initialized", "server", client.BaseURL().String())
	return ui
}

// buildServices creates the services driving the form from current settings
func (ui *RootUI) buildServices() {
	cfg := progress.DefaultConfig(progress.ModeRedirect)
	cfg.NotFoundDelay = ui.settings.GetNotFoundDelay()
	cfg.PollInterval = ui.settings.GetPollInterval()
	cfg.RestoreLabel = ui.localization.GetText(KeySaveForPosterity)

	poller := progress.NewPoller(ui.client, ui.presenter, cfg, progress.WithLogger(ui.logger))
	ui.controller = submit.NewController(ui.client, poller, ui.presenter, ui.logger)
	ui.suggester = suggest.NewService(ui.client, ui.presenter, ui.logger)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Create URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnChanged = ui.onURLChanged
	// Submit when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onSubmitClick()
	}

	ui.titleEntry = widget.NewEntry()
	ui.titleEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTitle))

	ui.suggestBtn = widget.NewButton(ui.localization.GetText(KeySuggestTitle), ui.onSuggestTitleClick)

	ui.categoryGroup = widget.NewCheckGroup(CategoryOptions, nil)
	ui.categoryGroup.Horizontal = true
	ui.categoryGroup.SetSelected([]string{model.DefaultChoice})

	ui.warningGroup = widget.NewCheckGroup(ContentWarningOptions, nil)
	ui.warningGroup.Horizontal = true
	ui.warningGroup.SetSelected([]string{model.DefaultChoice})

	ui.submitBtn = widget.NewButton(ui.localization.GetText(KeySaveForPosterity), ui.onSubmitClick)
	ui.submitBtn.Importance = widget.HighImportance

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.presenter.BindEntry(model.FieldURL, ui.urlEntry)
	ui.presenter.BindEntry(model.FieldTitle, ui.titleEntry)
	ui.presenter.BindChoices(model.FieldCategory, ui.categoryGroup)
	ui.presenter.BindChoices(model.FieldContentWarning, ui.warningGroup)
	ui.presenter.BindButton(model.ControlSuggestTitle, ui.suggestBtn)
	ui.presenter.BindButton(model.ControlSubmit, ui.submitBtn)
	ui.presenter.BindStatus(ui.statusLabel)
	ui.presenter.SetNavigationCallbacks(ui.navigate, nil)

	ui.urlLabel = widget.NewLabel(ui.localization.GetText(KeyEnterURL))
	ui.titleLabel = widget.NewLabel(ui.localization.GetText(KeyTitle))
	ui.categoryLabel = widget.NewLabel(ui.localization.GetText(KeyCategory))
	ui.warningLabel = widget.NewLabel(ui.localization.GetText(KeyContentWarning))

	ui.form = container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, ui.urlLabel),
		ui.urlEntry,
		ui.titleLabel,
		container.NewBorder(nil, nil, nil, ui.suggestBtn, ui.titleEntry),
		ui.categoryLabel,
		ui.categoryGroup,
		ui.warningLabel,
		ui.warningGroup,
		widget.NewSeparator(),
		ui.submitBtn,
		ui.statusLabel,
	)

	ui.window.SetContent(ui.form)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.titleEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTitle))
	ui.urlLabel.SetText(ui.localization.GetText(KeyEnterURL))
	ui.titleLabel.SetText(ui.localization.GetText(KeyTitle))
	ui.categoryLabel.SetText(ui.localization.GetText(KeyCategory))
	ui.warningLabel.SetText(ui.localization.GetText(KeyContentWarning))

	// Busy triggers keep their progress label until restored
	if !ui.suggestBtn.Disabled() {
		ui.suggestBtn.SetText(ui.localization.GetText(KeySuggestTitle))
	}
	if !ui.submitBtn.Disabled() {
		ui.submitBtn.SetText(ui.localization.GetText(KeySaveForPosterity))
	}
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// formValues reads the form the way a browser serializes it
func (ui *RootUI) formValues() url.Values {
	form := url.Values{}
	form.Set(model.FieldURL, strings.TrimSpace(ui.urlEntry.Text))
	form.Set(model.FieldTitle, strings.TrimSpace(ui.titleEntry.Text))
	for _, c := range ui.categoryGroup.Selected {
		form.Add(model.FieldCategory, c)
	}
	for _, w := range ui.warningGroup.Selected {
		form.Add(model.FieldContentWarning, w)
	}
	return form
}

// onSubmitClick handles the submit button click
func (ui *RootUI) onSubmitClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.presenter.apply(model.Event{Kind: model.EventMessageShown, Text: ui.localization.GetText(KeyPleaseEnterURL), Style: model.StyleWarning})
		return
	}
	if err := ui.validateURL(urlText); err != nil {
		ui.presenter.apply(model.Event{Kind: model.EventMessageShown, Text: ui.localization.GetText(KeyInvalidURL) + ": " + err.Error(), Style: model.StyleWarning})
		return
	}

	form := ui.formValues()
	controller := ui.controller

	go func() {
		err := controller.Submit(ui.ctx, form)
		switch {
		case err == nil:
		case errors.Is(err, submit.ErrSubmissionInFlight):
			ui.logger.Debug("ui.root.submit_ignored", "url", urlText)
		default:
			ui.logger.Info("ui.root.submit_failed", "url", urlText, "error", err)
		}
	}()
}

// onSuggestTitleClick asks the server for a title of the entered video
func (ui *RootUI) onSuggestTitleClick() {
	rawURL := ui.urlEntry.Text
	currentTitle := ui.titleEntry.Text
	suggester := ui.suggester

	go func() {
		if err := suggester.SuggestTitle(ui.ctx, rawURL, currentTitle); err != nil {
			ui.logger.Info("ui.root.suggest_title_failed", "url", rawURL, "error", err)
		}
	}()
}

// onURLChanged clears the server's verdict and, when enabled, suggests a
// title once the user stops typing
func (ui *RootUI) onURLChanged(string) {
	ui.presenter.ClearInvalid(model.FieldURL)

	if !ui.settings.GetAutoSuggestTitle() {
		return
	}
	if ui.suggestTimer != nil {
		ui.suggestTimer.Stop()
	}
	ui.suggestTimer = time.AfterFunc(SuggestDebounce, func() {
		fyne.Do(ui.autoSuggestTitle)
	})
}

func (ui *RootUI) autoSuggestTitle() {
	rawURL := strings.TrimSpace(ui.urlEntry.Text)
	if rawURL == "" || strings.TrimSpace(ui.titleEntry.Text) != "" {
		return
	}
	if ui.validateURL(rawURL) != nil || ui.suggestBtn.Disabled() {
		return
	}
	ui.onSuggestTitleClick()
}

// navigate opens the page of a job. It runs on the Fyne goroutine.
func (ui *RootUI) navigate(path string) {
	h, err := model.ParseJobHandle(path)
	if err != nil {
		ui.logger.Error("ui.root.bad_navigation", "path", path, "error", err)
		return
	}

	// The form is left behind like a page the browser navigated away from
	ui.presenter.apply(model.Event{Kind: model.EventFormReset})
	ui.presenter.apply(model.Event{Kind: model.EventControlRestored, Control: model.ControlSubmit})
	ui.presenter.apply(model.Event{Kind: model.EventMessageCleared})

	ui.showJob(h)
}

// showJob replaces the current page with the page of a job
func (ui *RootUI) showJob(h model.JobHandle) {
	if ui.jobView != nil {
		ui.jobView.Close()
	}

	ui.logger.Info("ui.root.show_job", "job_id", h.String())
	ui.jobView = NewJobView(h, ui.client, ui.settings, ui.localization, ui.logger, ui.navigate, ui.showForm)
	ui.window.SetContent(ui.jobView.Content())
	ui.jobView.Open(ui.ctx)
}

// showForm returns to the link form
func (ui *RootUI) showForm() {
	if ui.jobView != nil {
		ui.jobView.Close()
		ui.jobView = nil
	}
	ui.window.SetContent(ui.form)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies settings that do not need a restart
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	// A running submission keeps the services it started with
	if !ui.controller.InFlight() {
		ui.buildServices()
	}
}
