package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/posterity/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	serverURLEntry     *widget.Entry
	timeoutEntry       *widget.Entry
	notFoundDelayEntry *widget.Entry
	pollIntervalEntry  *widget.Entry
	maxMessageEntry    *widget.Entry
	logLevelSelect     *widget.Select
	languageSelect     *widget.Select
	autoSuggestCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// settings were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.serverURLEntry = widget.NewEntry()
	sd.serverURLEntry.SetPlaceHolder(config.DefaultServerURL)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(text(KeyMilliseconds))
	sd.notFoundDelayEntry = widget.NewEntry()
	sd.notFoundDelayEntry.SetPlaceHolder(text(KeyMilliseconds))
	sd.pollIntervalEntry = widget.NewEntry()
	sd.pollIntervalEntry.SetPlaceHolder(text(KeyMilliseconds))

	sd.maxMessageEntry = widget.NewEntry()
	sd.maxMessageEntry.SetPlaceHolder(strconv.Itoa(config.DefaultMaxMessageLength))

	levelOptions := []string{}
	for _, level := range sd.settings.GetLogLevelOptions() {
		levelOptions = append(levelOptions, string(level))
	}
	sd.logLevelSelect = widget.NewSelect(levelOptions, nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	sd.autoSuggestCheck = widget.NewCheck(text(KeyAutoSuggestTitle), nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel(text(KeyConnectionSettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyServerURL)+":"),
		sd.serverURLEntry,

		widget.NewLabel(text(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewLabel(text(KeyNotFoundDelay)+":"),
		sd.notFoundDelayEntry,

		widget.NewLabel(text(KeyPollInterval)+":"),
		sd.pollIntervalEntry,

		widget.NewLabel(text(KeyMaxMessageLength)+":"),
		sd.maxMessageEntry,

		widget.NewSeparator(),
		widget.NewLabel(text(KeyInterfaceSettings)),
		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,

		widget.NewLabel(text(KeyLogLevel)+":"),
		sd.logLevelSelect,

		sd.autoSuggestCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 520))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverURLEntry.SetText(sd.settings.GetServerURL())
	sd.timeoutEntry.SetText(formatMillis(sd.settings.GetRequestTimeout()))
	sd.notFoundDelayEntry.SetText(formatMillis(sd.settings.GetNotFoundDelay()))
	sd.pollIntervalEntry.SetText(formatMillis(sd.settings.GetPollInterval()))
	sd.maxMessageEntry.SetText(strconv.Itoa(sd.settings.GetMaxMessageLength()))
	sd.logLevelSelect.SetSelected(string(sd.settings.GetLogLevel()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.autoSuggestCheck.SetChecked(sd.settings.GetAutoSuggestTitle())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	restart := sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}

	// Show confirmation
	message := sd.localization.GetText(KeySettingsSaved)
	if restart {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)
}

// save stores the entered values and reports whether a connection setting
// changed
func (sd *SettingsDialog) save() bool {
	restart := false

	// Validate and save server URL
	if serverURL := sd.serverURLEntry.Text; serverURL != "" && serverURL != sd.settings.GetServerURL() {
		if sd.settings.SetServerURL(serverURL) {
			restart = true
		} else {
			dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeyInvalidServerURL), sd.window)
		}
	}

	if d, ok := parseMillis(sd.timeoutEntry.Text); ok && d != sd.settings.GetRequestTimeout() {
		sd.settings.SetRequestTimeout(d)
		restart = true
	}
	if d, ok := parseMillis(sd.notFoundDelayEntry.Text); ok {
		sd.settings.SetNotFoundDelay(d)
	}
	if d, ok := parseMillis(sd.pollIntervalEntry.Text); ok {
		sd.settings.SetPollInterval(d)
	}

	// Validate and save max message length
	if n, err := strconv.Atoi(sd.maxMessageEntry.Text); err == nil {
		sd.settings.SetMaxMessageLength(n)
	}

	if sd.logLevelSelect.Selected != "" && config.LogLevel(sd.logLevelSelect.Selected) != sd.settings.GetLogLevel() {
		sd.settings.SetLogLevel(config.LogLevel(sd.logLevelSelect.Selected))
		restart = true
	}

	// Save language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	sd.settings.SetAutoSuggestTitle(sd.autoSuggestCheck.Checked)
	return restart
}

func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// parseMillis reads a positive number of milliseconds
func parseMillis(s string) (time.Duration, bool) {
	ms, err := strconv.Atoi(s)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
