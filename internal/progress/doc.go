package progress

// Package progress implements the job progress poller: it queries a job's
// progress endpoint on a timer, classifies each response into a
// model.JobStatus and either reschedules, reports progress, or ends the
// session by navigating, reloading or restoring the originating control.
// Both operating modes share one classification table and differ only in
// what a terminal state does and whether intermediate states render text.
