package lsp

import (
	"log"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"svindex/internal/catalog"
	"svindex/internal/scanner"
	"svindex/internal/scheduler"
	"svindex/internal/svparse"
)

func (ls *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	ls.root = ls.opts.Root
	if params.RootURI != nil {
		if path, err := uriToPath(*params.RootURI); err == nil {
			ls.root = path
		}
	}

	if ls.opts.CatalogPath != "" {
		store, err := catalog.Open(ls.opts.CatalogPath)
		if err != nil {
			log.Printf("catalog disabled: %v", err)
		} else {
			ls.store = store
		}
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Println("server initialized")
	ls.sched.Run()
	if ls.root != "" {
		go ls.scanWorkspace()
	}
	return nil
}

// scanWorkspace indexes every HDL source under the root, one queued
// task per file so updates stay serialized.
func (ls *Server) scanWorkspace() {
	scanner.Scan(ls.root, nil, func(path string, contents []byte) {
		ls.sched.Enqueue(scheduler.Task{
			Name:    "index " + path,
			Execute: func() error { return ls.indexFile(path, contents) },
		})
	})
}

// indexFile parses and indexes one file. Index errors are per-file
// and recoverable: the file keeps its previous index and everything
// else stays queryable, so they are logged, not returned.
func (ls *Server) indexFile(path string, contents []byte) error {
	tree, err := svparse.Parse(contents)
	if err != nil {
		log.Printf("parse failed for %s: %v", path, err)
		return nil
	}

	ls.mu.Lock()
	id, err := ls.db.Update(path, tree)
	var modules []catalog.ModuleRecord
	if err == nil {
		if file, ok := ls.db.Data(id); ok {
			for name, itemID := range file.DeclaredNames() {
				if item, ok := file.Item(itemID); ok {
					modules = append(modules, catalog.ModuleRecord{
						File: path, Name: name, Decl: item.Location,
					})
				}
			}
		}
	}
	ls.mu.Unlock()

	if err != nil {
		log.Printf("index failed for %s: %v", path, err)
		return nil
	}

	if ls.store != nil {
		err := ls.store.WithTx(func(tx *catalog.Tx) error {
			record := &catalog.FileRecord{Path: path, LastModified: time.Now().Unix()}
			if err := tx.UpsertFile(record); err != nil {
				return err
			}
			return tx.ReplaceModules(path, modules)
		})
		if err != nil {
			log.Printf("catalog write failed for %s: %v", path, err)
		}
	}
	return nil
}

func (ls *Server) shutdown(context *glsp.Context) error {
	log.Println("server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)
	ls.sched.Stop()
	if ls.store != nil {
		if err := ls.store.Close(); err != nil {
			log.Printf("closing catalog: %v", err)
		}
	}
	return nil
}

func (ls *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
