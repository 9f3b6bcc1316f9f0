package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ytget/posterity/internal/model"
)

// Server paths
const (
	PathPostLink        = "/api/v1/core/post_link"
	PathStartDownload   = "/api/v1/core/start_download/"
	PathStartProcessing = "/api/v1/core/start_processing/"
	PathCheckProgress   = "/check_progress/"
	PathTitleSuggestion = "/api/v1/core/title_suggestion"
	PathDescFromSource  = "/api/v1/core/desc_from_source/"
)

// PostLink submits a job request
func (c *Client) PostLink(ctx context.Context, req model.JobRequest) Result {
	return c.Do(ctx, http.MethodPost, PathPostLink, req)
}

// StartDownload asks the server to start downloading an existing job
func (c *Client) StartDownload(ctx context.Context, h model.JobHandle) Result {
	return c.Do(ctx, http.MethodPost, PathStartDownload+url.PathEscape(h.String()), nil)
}

// StartProcessing asks the server to start processing an existing job
func (c *Client) StartProcessing(ctx context.Context, h model.JobHandle) Result {
	return c.Do(ctx, http.MethodPost, PathStartProcessing+url.PathEscape(h.String()), nil)
}

// CheckProgress queries the progress store for a job
func (c *Client) CheckProgress(ctx context.Context, h model.JobHandle) Result {
	return c.Do(ctx, http.MethodGet, PathCheckProgress+url.PathEscape(h.String()), nil)
}

// TitleSuggestion asks for a title for a video URL
func (c *Client) TitleSuggestion(ctx context.Context, videoURL string) Result {
	return c.Do(ctx, http.MethodPost, PathTitleSuggestion, map[string]string{"url": videoURL})
}

// DescriptionFromSource asks for a description taken from the job's source
func (c *Client) DescriptionFromSource(ctx context.Context, h model.JobHandle) Result {
	return c.Do(ctx, http.MethodGet, PathDescFromSource+url.PathEscape(h.String()), nil)
}
