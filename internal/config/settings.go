package config

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// Log levels
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL        = "server_url"
	KeyRequestTimeout   = "request_timeout_ms"
	KeyNotFoundDelay    = "not_found_delay_ms"
	KeyPollInterval     = "poll_interval_ms"
	KeyMaxMessageLength = "max_message_length"
	KeyLanguage         = "app_language"
	KeyLogLevel         = "log_level"
	KeyAutoSuggestTitle = "auto_suggest_title"
)

// Default values
const (
	DefaultServerURL        = "http://localhost:5000"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultNotFoundDelay    = 500 * time.Millisecond
	DefaultPollInterval     = 1000 * time.Millisecond
	DefaultMaxMessageLength = 1000
	DefaultLanguage         = "system"
	DefaultLogLevel         = LogInfo
	DefaultAutoSuggestTitle = true
)

// Limits
const (
	MinRequestTimeout   = time.Second
	MaxRequestTimeout   = 5 * time.Minute
	MinPollDelay        = 100 * time.Millisecond
	MaxPollDelay        = time.Minute
	MinMaxMessageLength = 1
	MaxMaxMessageLength = 100000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the base URL of the posterity server
func (s *Settings) GetServerURL() string {
	raw := s.app.Preferences().String(KeyServerURL)
	if raw == "" {
		s.app.Preferences().SetString(KeyServerURL, DefaultServerURL)
		return DefaultServerURL
	}
	return raw
}

// SetServerURL sets the server URL. Anything that is not an absolute http(s)
// URL is ignored and false is returned.
func (s *Settings) SetServerURL(raw string) bool {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	s.app.Preferences().SetString(KeyServerURL, raw)
	return true
}

// GetRequestTimeout returns the timeout of one HTTP request
func (s *Settings) GetRequestTimeout() time.Duration {
	return s.duration(KeyRequestTimeout, DefaultRequestTimeout)
}

// SetRequestTimeout sets the timeout of one HTTP request
func (s *Settings) SetRequestTimeout(d time.Duration) {
	s.setDuration(KeyRequestTimeout, clampDuration(d, MinRequestTimeout, MaxRequestTimeout))
}

// GetNotFoundDelay returns the poll delay used while a job is not known yet
func (s *Settings) GetNotFoundDelay() time.Duration {
	return s.duration(KeyNotFoundDelay, DefaultNotFoundDelay)
}

// SetNotFoundDelay sets the poll delay used while a job is not known yet
func (s *Settings) SetNotFoundDelay(d time.Duration) {
	s.setDuration(KeyNotFoundDelay, clampDuration(d, MinPollDelay, MaxPollDelay))
}

// GetPollInterval returns the poll delay used while a job is running
func (s *Settings) GetPollInterval() time.Duration {
	return s.duration(KeyPollInterval, DefaultPollInterval)
}

// SetPollInterval sets the poll delay used while a job is running
func (s *Settings) SetPollInterval(d time.Duration) {
	s.setDuration(KeyPollInterval, clampDuration(d, MinPollDelay, MaxPollDelay))
}

// GetMaxMessageLength returns the longest server message shown to the user
func (s *Settings) GetMaxMessageLength() int {
	value := s.app.Preferences().Int(KeyMaxMessageLength)
	if value <= 0 {
		s.SetMaxMessageLength(DefaultMaxMessageLength)
		return DefaultMaxMessageLength
	}
	return value
}

// SetMaxMessageLength sets the longest server message shown to the user
func (s *Settings) SetMaxMessageLength(n int) {
	if n < MinMaxMessageLength {
		n = MinMaxMessageLength
	}
	if n > MaxMaxMessageLength {
		n = MaxMaxMessageLength
	}
	s.app.Preferences().SetInt(KeyMaxMessageLength, n)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() LogLevel {
	level := LogLevel(s.app.Preferences().String(KeyLogLevel))
	switch level {
	case LogDebug, LogInfo, LogWarn, LogError:
		return level
	default:
		s.SetLogLevel(DefaultLogLevel)
		return DefaultLogLevel
	}
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level LogLevel) {
	s.app.Preferences().SetString(KeyLogLevel, string(level))
}

// GetLogLevelOptions returns available log levels
func (s *Settings) GetLogLevelOptions() []LogLevel {
	return []LogLevel{LogDebug, LogInfo, LogWarn, LogError}
}

// SlogLevel converts the level for log/slog
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetAutoSuggestTitle returns whether a title is suggested when a URL is entered
func (s *Settings) GetAutoSuggestTitle() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoSuggestTitle, DefaultAutoSuggestTitle)
}

// SetAutoSuggestTitle sets whether a title is suggested when a URL is entered
func (s *Settings) SetAutoSuggestTitle(auto bool) {
	s.app.Preferences().SetBool(KeyAutoSuggestTitle, auto)
}

// durations are stored as milliseconds
func (s *Settings) duration(key string, def time.Duration) time.Duration {
	ms := s.app.Preferences().Int(key)
	if ms <= 0 {
		s.setDuration(key, def)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Settings) setDuration(key string, d time.Duration) {
	s.app.Preferences().SetInt(key, int(d/time.Millisecond))
}

func clampDuration(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
