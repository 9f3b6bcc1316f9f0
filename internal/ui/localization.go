package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBack               = "back"
	KeyEnterURL           = "enter_url"
	KeyTitle              = "title"
	KeyEnterTitle         = "enter_title"
	KeyCategory           = "category"
	KeyContentWarning     = "content_warning"
	KeySuggestTitle       = "suggest_title"
	KeySaveForPosterity   = "save_for_posterity"
	KeyJob                = "job"
	KeyDescription        = "description"
	KeySuggestDescription = "suggest_description"
	KeyStartDownload      = "start_download"
	KeyStartProcessing    = "start_processing"
	KeyJobFinished        = "job_finished"
	KeyServerURL          = "server_url"
	KeyRequestTimeout     = "request_timeout"
	KeyNotFoundDelay      = "not_found_delay"
	KeyPollInterval       = "poll_interval"
	KeyMaxMessageLength   = "max_message_length"
	KeyLogLevel           = "log_level"
	KeyAutoSuggestTitle   = "auto_suggest_title"
	KeySettingsSaved      = "settings_saved"
	KeyInvalidServerURL   = "invalid_server_url"
	KeyRestartRequired    = "restart_required"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeySubmissionInFlight = "submission_in_flight"
	KeyConnectionSettings = "connection_settings"
	KeyInterfaceSettings  = "interface_settings"
	KeyMilliseconds       = "milliseconds"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Posterity",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBack:               "Back",
		KeyEnterURL:           "Video URL (https://...)",
		KeyTitle:              "Title",
		KeyEnterTitle:         "Title of the video",
		KeyCategory:           "Category",
		KeyContentWarning:     "Content warning",
		KeySuggestTitle:       "Suggest title",
		KeySaveForPosterity:   "Save for posterity",
		KeyJob:                "Job",
		KeyDescription:        "Description",
		KeySuggestDescription: "Description from source",
		KeyStartDownload:      "Start download",
		KeyStartProcessing:    "Start processing",
		KeyJobFinished:        "Finished",
		KeyServerURL:          "Server URL",
		KeyRequestTimeout:     "Request timeout (ms)",
		KeyNotFoundDelay:      "Retry delay for unknown jobs (ms)",
		KeyPollInterval:       "Progress poll interval (ms)",
		KeyMaxMessageLength:   "Longest server message shown",
		KeyLogLevel:           "Log level",
		KeyAutoSuggestTitle:   "Suggest a title when a URL is entered",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyInvalidServerURL:   "Server URL must be an absolute http(s) URL",
		KeyRestartRequired:    "Connection settings apply after restart",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyInvalidURL:         "Invalid URL",
		KeySubmissionInFlight: "A link is already being submitted",
		KeyConnectionSettings: "Connection",
		KeyInterfaceSettings:  "Interface",
		KeyMilliseconds:       "milliseconds",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Posterity",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBack:               "Назад",
		KeyEnterURL:           "URL видео (https://...)",
		KeyTitle:              "Название",
		KeyEnterTitle:         "Название видео",
		KeyCategory:           "Категория",
		KeyContentWarning:     "Предупреждение о содержимом",
		KeySuggestTitle:       "Предложить название",
		KeySaveForPosterity:   "Сохранить для потомков",
		KeyJob:                "Задача",
		KeyDescription:        "Описание",
		KeySuggestDescription: "Описание из источника",
		KeyStartDownload:      "Начать загрузку",
		KeyStartProcessing:    "Начать обработку",
		KeyJobFinished:        "Готово",
		KeyServerURL:          "URL сервера",
		KeyRequestTimeout:     "Таймаут запроса (мс)",
		KeyNotFoundDelay:      "Повтор для неизвестных задач (мс)",
		KeyPollInterval:       "Интервал опроса прогресса (мс)",
		KeyMaxMessageLength:   "Макс. длина сообщения сервера",
		KeyLogLevel:           "Уровень логирования",
		KeyAutoSuggestTitle:   "Предлагать название после ввода URL",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyInvalidServerURL:   "URL сервера должен быть абсолютным http(s) URL",
		KeyRestartRequired:    "Настройки соединения применятся после перезапуска",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyInvalidURL:         "Неверный URL",
		KeySubmissionInFlight: "Ссылка уже отправляется",
		KeyConnectionSettings: "Соединение",
		KeyInterfaceSettings:  "Интерфейс",
		KeyMilliseconds:       "миллисекунды",
	}
}
