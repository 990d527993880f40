package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"svindex/internal/position"
)

func TestURIToPath(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{"file uri", "file:///work/rtl/top.sv", "/work/rtl/top.sv", false},
		{"uri with dot segments", "file:///work/rtl/../top.sv", "/work/top.sv", false},
		{"escaped space", "file:///work/my%20rtl/top.sv", "/work/my rtl/top.sv", false},
		{"bare path", "/work/top.sv", "/work/top.sv", false},
		{"http scheme", "http://example.com/top.sv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uriToPath(protocol.DocumentUri(tt.uri))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %q, want an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("uriToPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestPathURIRoundTrip(t *testing.T) {
	path := "/work/rtl/top.sv"
	got, err := uriToPath(pathToURI(path))
	if err != nil {
		t.Fatalf("uriToPath: %v", err)
	}
	if got != path {
		t.Errorf("round trip = %q, want %q", got, path)
	}
}

func TestToProtocolRange(t *testing.T) {
	r := position.Range{
		Begin: position.Position{Row: 1, Col: 2},
		End:   position.Position{Row: 3, Col: 4},
	}
	got := toProtocolRange(r)
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 3, Character: 4},
	}
	if got != want {
		t.Errorf("toProtocolRange = %+v, want %+v", got, want)
	}
}
