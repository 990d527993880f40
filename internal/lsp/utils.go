package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"svindex/internal/position"
)

// uriToPath converts a file URI into a cleaned filesystem path.
func uriToPath(uri protocol.DocumentUri) (string, error) {
	parsed, err := url.Parse(string(uri))
	if err != nil {
		return "", fmt.Errorf("invalid document uri %q: %w", uri, err)
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", parsed.Scheme)
	}
	path := parsed.Path
	if path == "" {
		path = string(uri)
	}
	return filepath.Clean(path), nil
}

// pathToURI converts a filesystem path into a file URI.
func pathToURI(path string) protocol.DocumentUri {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return protocol.DocumentUri(u.String())
}

func toProtocolRange(r position.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: r.Begin.Row, Character: r.Begin.Col},
		End:   protocol.Position{Line: r.End.Row, Character: r.End.Col},
	}
}
