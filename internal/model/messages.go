package model

// User-facing texts emitted by the core
const (
	MsgContactError       = "Unknown error when contacting server."
	MsgUnknownServerError = "Unknown server error."
	MsgTaskServerError    = "Unknown server error :("
	MsgNoTitleFound       = "No title found"
	MsgNoDescriptionFound = "No description found"

	ProgressWaiting  = "Waiting…"
	ProgressChecking = "Checking…"
)

// Busy and idle control labels
const (
	LabelSubmitting         = "Submitting link..."
	LabelSaveForPosterity   = "Save for posterity"
	LabelStartingTask       = "Starting task..."
	LabelAwaitingSuggestion = "Awaiting suggestion"
)
