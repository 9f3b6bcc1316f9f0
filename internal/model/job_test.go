package model

import (
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"testing"
)

func TestParseJobHandle(t *testing.T) {
	tests := []struct {
		body     string
		expected JobHandle
		wantErr  bool
	}{
		{"https://posterity.no/abc123", "abc123", false},
		{"/abc123", "abc123", false},
		{"abc123", "abc123", false},
		{"https://posterity.no/abc123/\n", "abc123", false},
		{"", "", true},
		{"   ", "", true},
		{"///", "", true},
	}

	for _, test := range tests {
		result, err := ParseJobHandle(test.body)
		if test.wantErr {
			if !errors.Is(err, ErrEmptyHandle) {
				t.Errorf("ParseJobHandle(%q) error = %v, expected ErrEmptyHandle", test.body, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseJobHandle(%q) unexpected error: %v", test.body, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseJobHandle(%q) = %s, expected %s", test.body, result, test.expected)
		}
	}
}

func TestJobHandle_Path(t *testing.T) {
	if got := JobHandle("abc123").Path(); got != "/abc123" {
		t.Errorf("Path() = %s, expected /abc123", got)
	}
}

func TestNewJobRequest_MultiValuedFields(t *testing.T) {
	form := url.Values{}
	form.Add(FieldURL, "https://youtube.com/watch?v=1")
	form.Add(FieldTitle, "first")
	form.Add(FieldTitle, "second")
	form.Add(FieldCategory, "news")
	form.Add(FieldCategory, "war")

	req := NewJobRequest(form)

	if got := req.Value(FieldTitle); got != "second" {
		t.Errorf("Value(title) = %s, expected last submitted value 'second'", got)
	}

	if got := req.Values(FieldCategory); !reflect.DeepEqual(got, []string{"news", "war"}) {
		t.Errorf("Values(category) = %v, expected [news war]", got)
	}

	if got := req.Values(FieldContentWarning); got == nil || len(got) != 0 {
		t.Errorf("Values(content_warning) = %v, expected empty non-nil slice", got)
	}
}

func TestNewJobRequest_IsImmutable(t *testing.T) {
	form := url.Values{}
	form.Add(FieldCategory, "news")
	req := NewJobRequest(form)

	form.Add(FieldCategory, "sports")
	form.Set(FieldURL, "changed")

	values := req.Values(FieldCategory)
	values[0] = "mutated"

	if got := req.Values(FieldCategory); !reflect.DeepEqual(got, []string{"news"}) {
		t.Errorf("request changed after construction: %v", got)
	}
	if got := req.Value(FieldURL); got != "" {
		t.Errorf("request picked up later form change: %q", got)
	}
}

func TestJobRequest_MarshalJSON(t *testing.T) {
	form := url.Values{}
	form.Add(FieldURL, "https://youtube.com/watch?v=1")
	form.Add(FieldContentWarning, "violence")

	data, err := json.Marshal(NewJobRequest(form))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded[FieldURL] != "https://youtube.com/watch?v=1" {
		t.Errorf("url = %v, expected scalar string", decoded[FieldURL])
	}

	cw, ok := decoded[FieldContentWarning].([]any)
	if !ok || len(cw) != 1 || cw[0] != "violence" {
		t.Errorf("content_warning = %v, expected [violence]", decoded[FieldContentWarning])
	}

	category, ok := decoded[FieldCategory].([]any)
	if !ok || len(category) != 0 {
		t.Errorf("category = %v, expected empty array", decoded[FieldCategory])
	}
}
