package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconBack     = "←"
	IconLanguage = "🌐"
)

// Form choices. The first option of each group is the server's default value.
var (
	CategoryOptions       = []string{"default", "news", "politics", "music", "documentary", "other"}
	ContentWarningOptions = []string{"default", "violence", "sexual", "disturbing"}
)

// Layout sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 480
)

// DescriptionLines is the visible height of the description entry
const DescriptionLines = 6

// Shake animation of a rejected trigger
const (
	ShakeDuration  = 400 * time.Millisecond
	ShakeAmplitude = 6
	ShakeCycles    = 3
)


// Debounce durations
const (
	SuggestDebounce = 800 * time.Millisecond
)
