// Package store defines the page storage used to persist scene documents.
// A page is one named scene document; the autosave page holds the last
// settled state of the running session.
package store

import (
	"context"
	"errors"
)

// AutosaveName is the page written at every settle point.
const AutosaveName = "autosave"

// ErrPageNotFound is returned when a named page does not exist.
var ErrPageNotFound = errors.New("page not found")

// PageStore saves and loads scene documents by name. Implementations are
// safe for concurrent use.
type PageStore interface {
	// Save creates or replaces the page name.
	Save(ctx context.Context, name string, data []byte) error
	// Load returns the page name or ErrPageNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
	// List returns page names in ascending order.
	List(ctx context.Context) ([]string, error)
	// Delete removes the page name or returns ErrPageNotFound.
	Delete(ctx context.Context, name string) error
	// Close releases the underlying database.
	Close() error
}

// ValidateName rejects names that cannot be stored.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("page name is empty")
	}
	return nil
}
