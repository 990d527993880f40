package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"svindex/internal/position"
)

func (ls *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	contents := []byte(params.TextDocument.Text)

	ls.mu.Lock()
	ls.docs[path] = contents
	ls.mu.Unlock()

	return ls.indexFile(path, contents)
}

func (ls *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	for _, change := range params.ContentChanges {
		whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
		if !ok {
			// full sync is negotiated at initialize
			log.Printf("ignoring partial change for %s", path)
			continue
		}
		contents := []byte(whole.Text)

		ls.mu.Lock()
		ls.docs[path] = contents
		ls.mu.Unlock()

		if err := ls.indexFile(path, contents); err != nil {
			return err
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	delete(ls.docs, path)
	ls.mu.Unlock()
	return nil
}

func (ls *Server) textDocumentDefinition(
	context *glsp.Context,
	params *protocol.DefinitionParams,
) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	request := position.DocumentPosition{
		Document: path,
		Position: position.Position{
			Row: params.Position.Line,
			Col: params.Position.Character,
		},
	}

	ls.mu.Lock()
	target, ok := ls.db.GotoDefinition(request)
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	return protocol.Location{
		URI:   pathToURI(target.Document),
		Range: toProtocolRange(target.Range),
	}, nil
}
