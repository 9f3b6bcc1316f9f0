package model

// Package model defines domain data structures shared by the core: job
// requests and handles, classified job statuses, presentation events and the
// UI state they fold into. Structures are plain values with explicit
// transitions so the state machine can run headless.
