// Package lsp is the editor-facing host: it receives protocol
// requests, parses source text, and translates both into calls
// against the index database.
package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"svindex/internal/catalog"
	"svindex/internal/database"
	"svindex/internal/scheduler"
)

const lsName = "svindex"

var version = "0.1.0"

// Options configures the host.
type Options struct {
	// Root is the workspace root used when the client does not supply
	// one in initialize.
	Root string
	// CatalogPath locates the persistent module catalog; empty
	// disables persistence.
	CatalogPath string
}

// Server owns the index database. The database itself is single-owner
// synchronous state, so every access goes through mu.
type Server struct {
	handler *protocol.Handler
	opts    Options

	mu    sync.Mutex
	db    *database.Database
	docs  map[string][]byte
	root  string
	store *catalog.Store
	sched *scheduler.Scheduler
}

// NewServer wires the protocol handler.
func NewServer(opts Options) (*server.Server, error) {
	ls := &Server{
		opts:  opts,
		db:    database.New(),
		docs:  make(map[string][]byte),
		sched: scheduler.New(64),
	}

	ls.handler = &protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDefinition: ls.textDocumentDefinition,
	}

	return server.NewServer(ls.handler, lsName, false), nil
}
