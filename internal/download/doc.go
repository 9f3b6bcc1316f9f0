package download

// Package download starts server-side download and processing tasks for a
// saved job. It drives the trigger control of the job page through
// model.Notifier and navigates back to the job once the task is accepted.
