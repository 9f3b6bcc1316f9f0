package progress

import (
	"context"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// ProgressChecker queries the progress endpoint of a job
type ProgressChecker interface {
	CheckProgress(ctx context.Context, h model.JobHandle) api.Result
}

// Starter starts poll sessions. The submission controller hands job handles
// to it.
type Starter interface {
	Run(ctx context.Context, h model.JobHandle) (model.JobStatus, error)
	Start(ctx context.Context, h model.JobHandle) (*Session, error)
}
