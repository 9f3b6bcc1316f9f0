package suggest

// Package suggest fills the title and description fields of a job from what
// the server can extract from the video's source.
