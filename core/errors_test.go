package core

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestFlatten(t *testing.T) {
	inner := io.ErrUnexpectedEOF
	cases := map[string]error{
		"plain":       inner,
		"url error":   &url.Error{Op: "Post", URL: "https://x", Err: inner},
		"joined":      errors.Join(nil, inner, errors.New("other")),
		"nested":      errors.Join(&url.Error{Op: "Get", URL: "https://x", Err: inner}),
		"wrapped url": fmt.Errorf("send: %w", &url.Error{Op: "Get", URL: "https://x", Err: inner}),
	}
	for name, err := range cases {
		if got := Flatten(err); got != inner {
			t.Fatalf("%s: expected inner cause, got %v", name, got)
		}
	}
	if Flatten(nil) != nil {
		t.Fatalf("expected nil for nil")
	}
}

func TestFaultKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want FaultKind
	}{
		{err: nil, want: FaultNone},
		{err: NewArgumentFault("audio"), want: FaultArgument},
		{err: BadInputFault("bad", nil), want: FaultArgument},
		{err: TransportFault(errors.New("dial"), nil), want: FaultTransport},
		{err: ProtocolFault(http.StatusConflict, nil, nil), want: FaultProtocol},
		{err: DeserializationFault(errors.New("eof"), nil), want: FaultDeserialization},
		{err: errors.New("foreign"), want: FaultInternal},
	}
	for _, tc := range cases {
		if got := FaultKindOf(tc.err); got != tc.want {
			t.Fatalf("FaultKindOf(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}

func TestProtocolFaultEnvelope(t *testing.T) {
	fault := ProtocolFault(http.StatusUnauthorized, &ServiceError{Code: 401, Error: "Unauthorized"}, map[string]any{"request_id": "r"})
	if fault.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %q", fault.Category)
	}
	if fault.Code != http.StatusUnauthorized || fault.TextCode != WatsonErrorProtocol {
		t.Fatalf("unexpected envelope code=%d text=%q", fault.Code, fault.TextCode)
	}
	if fault.Message != "watson: service responded with status 401: Unauthorized" {
		t.Fatalf("unexpected message %q", fault.Message)
	}
	if StatusCodeOf(fault) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", StatusCodeOf(fault))
	}
	if StatusCodeOf(TransportFault(errors.New("x"), nil)) != 0 {
		t.Fatalf("transport faults carry no protocol status")
	}
}

func TestDefaultErrorMapper(t *testing.T) {
	if DefaultErrorMapper(nil) != nil {
		t.Fatalf("expected nil for nil")
	}
	mapped := DefaultErrorMapper(errors.New("socket closed"))
	if mapped.TextCode != WatsonErrorInternal || mapped.Code != http.StatusInternalServerError {
		t.Fatalf("expected internal envelope, got %+v", mapped)
	}
	bare := goerrors.New("bad payload", goerrors.CategoryBadInput)
	mapped = DefaultErrorMapper(bare)
	if mapped.TextCode != WatsonErrorBadInput || mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected bad input envelope, got %+v", mapped)
	}
}
