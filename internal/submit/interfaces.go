package submit

import (
	"context"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// LinkPoster sends job creation requests
type LinkPoster interface {
	PostLink(ctx context.Context, req model.JobRequest) api.Result
}

// Redirector polls a created job until it can be navigated to
type Redirector interface {
	Run(ctx context.Context, h model.JobHandle) (model.JobStatus, error)
}
