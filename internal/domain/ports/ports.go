// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions; adapters implement them.
package ports

import (
	"context"
	"errors"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
)

// ErrTransport marks a failure of the remote vocabulary service call.
// Adapters wrap it so callers can test with errors.Is.
var ErrTransport = errors.New("vocabulary service request failed")

// Editor is the live view of the note being edited.
type Editor interface {
	// Selection returns the currently selected text.
	Selection() string

	// SelectionRange returns the ordered start and end of the selection.
	SelectionRange() (from, to entities.Position)

	// Line returns the full text of line n, or "" when out of range.
	Line(n int) string

	// ReplaceSelection swaps the selected text for text.
	ReplaceSelection(text string)
}

// WordLookupService asks the remote service about a word or phrase.
type WordLookupService interface {
	// LookUp sends inputText to the vocabulary endpoint.
	LookUp(ctx context.Context, inputText string) (string, error)
}

// StoryService asks the remote service for a story built from words.
type StoryService interface {
	// GenerateStory sends the joined word sample to the story endpoint.
	GenerateStory(ctx context.Context, words string) (string, error)
}

// Vault reads and writes notes. Paths are vault-relative, slash separated.
type Vault interface {
	// ListMarkdown returns the markdown files directly inside folder.
	ListMarkdown(ctx context.Context, folder string) ([]string, error)

	Exists(ctx context.Context, path string) (bool, error)
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error

	// Create writes a new note and fails if one already exists.
	Create(ctx context.Context, path, content string) error
}

// Notifier surfaces short user-visible notices.
type Notifier interface {
	Notify(message string)
}

// LookupHistory journals requests sent to the remote service.
type LookupHistory interface {
	Record(ctx context.Context, record entities.LookupRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]entities.LookupRecord, error)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
