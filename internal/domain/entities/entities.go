// Package entities contains core business entities.
// Plain domain values with no knowledge of editors, vaults or HTTP.
package entities

import "time"

// Position is a cursor location inside a note: zero-based line and
// zero-based character (rune) offset within that line.
type Position struct {
	Line int `json:"line"`
	Ch   int `json:"ch"`
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Ch < o.Ch
}

// Annotation is the outcome of deciding whether a selection becomes a
// wikilink.
type Annotation struct {
	Query       string // Text forwarded to the lookup service
	Replacement string // Bracketed selection; empty when Modified is false
	Modified    bool   // Whether the document selection must be replaced
}

// LookupResult is what a lookup command hands back to its caller.
type LookupResult struct {
	Query    string
	Response string
	Marked   bool
}

// Story is a generated story note.
type Story struct {
	Path    string // Vault-relative path of the note
	Words   string // Joined sample sent to the story service
	Content string // Story text as returned by the service
	Created bool   // False when a note already existed at Path
}

// RequestKind tells lookups and story requests apart in the journal.
type RequestKind string

const (
	KindLookup RequestKind = "lookup"
	KindStory  RequestKind = "story"
)

// LookupRecord is one journal entry of a request sent to the remote service.
type LookupRecord struct {
	ID        int64       `json:"id"`
	Kind      RequestKind `json:"kind"`
	Query     string      `json:"query"`
	Response  string      `json:"response"`
	CreatedAt time.Time   `json:"created_at"`
}
