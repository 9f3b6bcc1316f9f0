package download

import (
	"context"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// JobStarter is the part of the server API the service talks to
type JobStarter interface {
	StartDownload(ctx context.Context, h model.JobHandle) api.Result
	StartProcessing(ctx context.Context, h model.JobHandle) api.Result
}

// Starter defines the interface for the job starter service.
type Starter interface {
	StartDownload(ctx context.Context, h model.JobHandle, opts StartOptions) error
	StartProcessing(ctx context.Context, h model.JobHandle, opts StartOptions) error

	// SetMaxMessageLength limits the length of server messages shown to the user
	SetMaxMessageLength(max int)
}
