package suggest

import (
	"context"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// SuggestionSource is the part of the server API the service talks to
type SuggestionSource interface {
	TitleSuggestion(ctx context.Context, videoURL string) api.Result
	DescriptionFromSource(ctx context.Context, h model.JobHandle) api.Result
}
