// Package directory caches Discord display names locally so results pages
// never need live API calls.
package directory

import (
	"sync"

	"goty/backend/internal/storage"
)

// Directory is a flat-file user id -> display name cache. Upserts are
// last-write-wins; display names rarely change.
type Directory struct {
	mu   sync.Mutex
	path string
}

// New returns a directory backed by the YAML file at path.
func New(path string) *Directory {
	return &Directory{path: path}
}

// Upsert records the display name for a user id, replacing any previous
// entry.
func (d *Directory) Upsert(userID, displayName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := map[string]string{}
	if err := storage.Load(d.path, &names); err != nil {
		return err
	}
	names[userID] = displayName
	return storage.Save(d.path, names)
}

// DisplayName resolves a user id, falling back to the raw id when the user
// has never been seen.
func (d *Directory) DisplayName(userID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := map[string]string{}
	if err := storage.Load(d.path, &names); err != nil {
		return userID
	}
	if name, ok := names[userID]; ok {
		return name
	}
	return userID
}
