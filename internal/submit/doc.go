package submit

// Package submit implements the link submission controller. It posts the
// link form as a job request, hands accepted jobs to the progress poller and
// restores the form on every other outcome.
