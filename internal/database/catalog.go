// Package database owns the project-wide state: the path catalog, one
// per-file index per known file, and the global module name table.
package database

// FileID identifies one distinct path for the lifetime of a Database.
// IDs are assigned densely in first-seen order and never recycled.
type FileID int32

// FileCatalog is a bijective path/FileID map.
type FileCatalog struct {
	byPath map[string]FileID
	byID   map[FileID]string
}

// NewFileCatalog creates an empty catalog.
func NewFileCatalog() *FileCatalog {
	return &FileCatalog{
		byPath: make(map[string]FileID),
		byID:   make(map[FileID]string),
	}
}

// Lookup returns the id of a known path.
func (c *FileCatalog) Lookup(path string) (FileID, bool) {
	id, ok := c.byPath[path]
	return id, ok
}

// Path returns the path of a known id.
func (c *FileCatalog) Path(id FileID) (string, bool) {
	path, ok := c.byID[id]
	return path, ok
}

// ResolveOrCreate returns the path's id, assigning the next unused one
// on first sight. Nothing ever removes an entry.
func (c *FileCatalog) ResolveOrCreate(path string) FileID {
	if id, ok := c.byPath[path]; ok {
		return id
	}
	id := FileID(len(c.byPath))
	c.byPath[path] = id
	c.byID[id] = path
	return id
}

// Len reports the number of known paths.
func (c *FileCatalog) Len() int { return len(c.byPath) }
