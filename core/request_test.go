package core

import (
	"net/http"
	"testing"
)

func TestRequest_WithQueryKeepsKeysUnique(t *testing.T) {
	req := NewRequest(http.MethodGet, "/v1/models").
		WithQuery("language", "en-US").
		WithQuery("base_model_name", "en-US_BroadbandModel").
		WithQuery("language", "es-ES")
	if len(req.Query) != 2 {
		t.Fatalf("expected 2 params, got %+v", req.Query)
	}
	if req.Query[0] != (QueryParam{Key: "language", Value: "es-ES"}) {
		t.Fatalf("expected last value in first position, got %+v", req.Query[0])
	}
}

func TestRequest_ResolvedPathEscapesParams(t *testing.T) {
	path, err := NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/words/{word_name}").
		WithPathParam("customization_id", "abc").
		WithPathParam("word_name", "IEEE 802/11").
		ResolvedPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "/v1/customizations/abc/words/IEEE%20802%2F11" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestRequest_ResolvedPathRejectsUnknownParam(t *testing.T) {
	_, err := NewRequest(http.MethodGet, "/v1/models").WithPathParam("model_id", "x").ResolvedPath()
	if FaultKindOf(err) != FaultInternal {
		t.Fatalf("expected internal fault, got %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	enabled := true
	name := ""
	cases := []struct {
		value any
		want  string
		ok    bool
	}{
		{value: nil, ok: false},
		{value: "", ok: false},
		{value: &name, ok: false},
		{value: []string{}, ok: false},
		{value: []string{"", ""}, ok: false},
		{value: &enabled, want: "true", ok: true},
		{value: []string{"alpha", "beta"}, want: "alpha,beta", ok: true},
		{value: []int{1, 2}, want: "1,2", ok: true},
		{value: 0.5, want: "0.5", ok: true},
		{value: int64(7), want: "7", ok: true},
		{value: AuthKindIAM, want: "iam", ok: true},
	}
	for _, tc := range cases {
		got, ok := FormatValue(tc.value)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("FormatValue(%#v): expected (%q,%v), got (%q,%v)", tc.value, tc.want, tc.ok, got, ok)
		}
	}
}
