package api

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{TransportError(context.DeadlineExceeded), ErrTransport},
		{ProtocolError(201, errors.New("empty")), ErrProtocol},
		{RejectedError(400, "No valid url."), ErrRejected},
		{ServerFault(503), ErrServerFault},
	}

	for _, test := range tests {
		if !errors.Is(test.err, test.kind) {
			t.Errorf("errors.Is(%v, %v) = false, expected true", test.err, test.kind)
		}
	}
}

func TestError_IsCause(t *testing.T) {
	err := TransportError(context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Expected cause to be reachable through errors.Is")
	}
}

func TestError_Message(t *testing.T) {
	err := RejectedError(400, "No valid url.")
	msg := err.Error()

	if !strings.Contains(msg, "status 400") || !strings.Contains(msg, "No valid url.") {
		t.Errorf("Error() = %q, expected status and message", msg)
	}
}
