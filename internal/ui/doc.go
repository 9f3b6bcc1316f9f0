package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the link form and the job page, and maps the core's events onto
// widgets through Presenter. All UI strings are localized via Localization.
