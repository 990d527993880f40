// Package scanner walks a workspace for HDL source files.
package scanner

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// sourceExtensions are the file suffixes treated as HDL sources.
var sourceExtensions = map[string]bool{
	".sv":  true,
	".svh": true,
	".v":   true,
	".vh":  true,
}

// IsHDLSource reports whether a path looks like an indexable source
// file.
func IsHDLSource(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// Scan walks the subtree under root. Dot-directories are skipped
// entirely; every remaining file passing the skip predicate is read
// and handed to callback. Scan returns once all callbacks completed.
func Scan(
	root string,
	skip func(path string, info fs.FileInfo) bool,
	callback func(path string, contents []byte),
) {
	fileCh := make(chan string, 100)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range fileCh {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Println("scanner: read error:", path, err)
				continue
			}
			callback(path, data)
		}
	}()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Println("scanner: walk error:", err)
			return nil
		}

		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}

		if !IsHDLSource(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if skip != nil && skip(path, info) {
			return nil
		}

		fileCh <- path
		return nil
	})
	if err != nil {
		log.Println("scanner: walk failed:", err)
	}

	close(fileCh)
	wg.Wait()
}
