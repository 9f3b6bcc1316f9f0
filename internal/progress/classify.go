package progress

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/posterity/internal/api"
	"github.com/ytget/posterity/internal/model"
)

// leadingNumber matches the numeric prefix of a progress body
var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Classify maps one progress response onto a JobStatus
func Classify(res api.Result) model.JobStatus {
	if res.Failed() {
		return model.JobStatus{Kind: model.StatusServerError}
	}

	st := model.JobStatus{Code: res.Status}
	switch {
	case res.Status == http.StatusNotFound:
		st.Kind = model.StatusNotFoundYet
	case res.Status == http.StatusOK:
		st.Kind = model.StatusCompleted
	case res.Status == http.StatusCreated:
		st.Kind = model.StatusCreated
	case res.Status == http.StatusPartialContent:
		st.Kind = model.StatusProcessing
		st.Progress, st.ProgressKnown = ParseProgress(res.Body)
	case res.Status == http.StatusAccepted:
		st.Kind = model.StatusAcknowledged
	case res.Status == http.StatusUnsupportedMediaType:
		st.Kind = model.StatusUnsupported
	case res.Status >= 400 && res.Status < 500:
		st.Kind = model.StatusClientError
		st.Message = res.Body
	default:
		st.Kind = model.StatusServerError
	}
	return st
}

// ParseProgress reads the leading decimal number of body. Trailing garbage is
// ignored; a body without a leading number is unknown.
func ParseProgress(body string) (float64, bool) {
	m := leadingNumber.FindString(body)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatProgress renders a processing status. Unknown, zero and negative
// fractions render as waiting; the rest round half up to whole percent.
func FormatProgress(st model.JobStatus) string {
	if !st.ProgressKnown || st.Progress <= 0 {
		return model.ProgressWaiting
	}
	v := math.Min(st.Progress, 1)
	return fmt.Sprintf("%d%%", int(math.Floor(v*100+0.5)))
}
