package model

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
)

// Form field names understood by the post_link endpoint
const (
	FieldURL            = "url"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldContentWarning = "content_warning"
)

// DefaultChoice is the value select-like fields are reset to
const DefaultChoice = "default"

// multiValued lists the fields that are always encoded as arrays
var multiValued = map[string]bool{
	FieldCategory:       true,
	FieldContentWarning: true,
}

// ErrEmptyHandle is returned when a creation response carries no job handle
var ErrEmptyHandle = errors.New("empty job handle")

// JobRequest is the immutable set of submitted form fields. Multi-valued
// fields keep their submission order; scalar fields keep the last value.
type JobRequest struct {
	scalars map[string]string
	multi   map[string][]string
}

// NewJobRequest builds a request from form values. The form is copied, so
// later changes to it do not affect the request.
func NewJobRequest(form url.Values) JobRequest {
	req := JobRequest{
		scalars: make(map[string]string),
		multi:   make(map[string][]string),
	}

	for name := range multiValued {
		req.multi[name] = []string{}
	}

	for name, values := range form {
		if multiValued[name] {
			req.multi[name] = append([]string{}, values...)
			continue
		}
		if len(values) > 0 {
			req.scalars[name] = values[len(values)-1]
		}
	}

	return req
}

// Value returns a scalar field, or the first value of a multi-valued field
func (r JobRequest) Value(name string) string {
	if values, ok := r.multi[name]; ok {
		if len(values) > 0 {
			return values[0]
		}
		return ""
	}
	return r.scalars[name]
}

// Values returns a copy of a multi-valued field
func (r JobRequest) Values(name string) []string {
	if values, ok := r.multi[name]; ok {
		return append([]string{}, values...)
	}
	if v, ok := r.scalars[name]; ok {
		return []string{v}
	}
	return nil
}

// Fields returns a deep copy of the request as a JSON-ready map
func (r JobRequest) Fields() map[string]any {
	fields := make(map[string]any, len(r.scalars)+len(r.multi))
	for name, v := range r.scalars {
		fields[name] = v
	}
	for name, values := range r.multi {
		fields[name] = append([]string{}, values...)
	}
	return fields
}

// MarshalJSON encodes the request as the post_link body
func (r JobRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// JobHandle is the opaque identifier of a submitted job
type JobHandle string

// String returns the string representation of JobHandle
func (h JobHandle) String() string {
	return string(h)
}

// Path returns the job's result page path
func (h JobHandle) Path() string {
	return "/" + string(h)
}

// ParseJobHandle extracts the handle from a creation response body, which is
// a slash-delimited path or URL whose last segment is the handle.
func ParseJobHandle(body string) (JobHandle, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(body), "/")
	if trimmed == "" {
		return "", ErrEmptyHandle
	}

	segments := strings.Split(trimmed, "/")
	last := strings.TrimSpace(segments[len(segments)-1])
	if last == "" {
		return "", ErrEmptyHandle
	}

	return JobHandle(last), nil
}
