package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"svindex/internal/lsp"
)

// Version is set during the build via ldflags.
var Version = "(dev) v0.0.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print the version and exit")
	logfileFlag := flag.String("logfile", "", "Path to log file")
	rootFlag := flag.String("root", "", "Workspace root when the client supplies none")
	catalogFlag := flag.String("catalog", defaultCatalogPath(), "Path to the module catalog (empty disables it)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("svindex language server %s\n", Version)
		return
	}

	commonlog.Configure(1, nil)

	if *logfileFlag != "" {
		logFile, err := os.OpenFile(*logfileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Println("Starting svindex language server...")

	server, err := lsp.NewServer(lsp.Options{
		Root:        *rootFlag,
		CatalogPath: *catalogFlag,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.RunStdio(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func defaultCatalogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "svindex")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "catalog.db")
}
