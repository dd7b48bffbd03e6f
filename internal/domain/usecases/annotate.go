// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

// DefaultShortSelectionLimit is the rune count below which a selection
// is treated as a word or phrase worth linking.
const DefaultShortSelectionLimit = 30

// Annotator decides whether a selection becomes a wikilink.
type Annotator struct {
	shortLimit int
}

// NewAnnotator creates an Annotator. A non-positive limit falls back to
// DefaultShortSelectionLimit.
func NewAnnotator(shortLimit int) *Annotator {
	if shortLimit <= 0 {
		shortLimit = DefaultShortSelectionLimit
	}
	return &Annotator{shortLimit: shortLimit}
}

// Annotate computes the annotation for the selection running from..to.
// first and last are the document lines holding from and to; they are the
// same line for a single-line selection. A marked selection yields the
// context lines as they read after the replacement is applied. Callers
// must reject blank selections first.
func (a *Annotator) Annotate(selected, first, last string, from, to entities.Position) entities.Annotation {
	contextLines := first
	if from.Line != to.Line {
		contextLines += last
	}

	trimmed := strings.TrimSpace(selected)
	if utf8.RuneCountInString(trimmed) >= a.shortLimit ||
		hasLinkBrackets(contextLines) || hasLinkBrackets(selected) {
		return entities.Annotation{Query: selected}
	}

	// Surrounding whitespace stays outside the brackets as selected.
	rest := strings.TrimLeftFunc(selected, unicode.IsSpace)
	leading := selected[:len(selected)-len(rest)]
	trailing := rest[len(strings.TrimRightFunc(rest, unicode.IsSpace)):]
	wrapped := leading + "[[" + trimmed + "]]" + trailing

	return entities.Annotation{
		Query:       editedContext(first, last, from.Ch, to.Ch, wrapped),
		Replacement: wrapped,
		Modified:    true,
	}
}

// editedContext splices replacement between first[:fromCh] and
// last[toCh:] and returns the first and last resulting lines joined.
func editedContext(first, last string, fromCh, toCh int, replacement string) string {
	edited := runePrefix(first, fromCh) + replacement + runeSuffix(last, toCh)
	lines := strings.Split(edited, "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	return lines[0] + lines[len(lines)-1]
}

func runePrefix(s string, n int) string {
	r := []rune(s)
	return string(r[:max(0, min(n, len(r)))])
}

func runeSuffix(s string, n int) string {
	r := []rune(s)
	return string(r[max(0, min(n, len(r))):])
}

// AnnotateSelection annotates the editor's current selection without
// modifying the editor.
func (a *Annotator) AnnotateSelection(editor ports.Editor) entities.Annotation {
	from, to := editor.SelectionRange()
	return a.Annotate(editor.Selection(), editor.Line(from.Line), editor.Line(to.Line), from, to)
}

// ContextLines returns the text of the line holding the selection. A
// selection spanning lines yields the first and last line concatenated;
// lines in between are not included.
func ContextLines(editor ports.Editor) string {
	from, to := editor.SelectionRange()
	if from.Line == to.Line {
		return editor.Line(from.Line)
	}
	return editor.Line(from.Line) + editor.Line(to.Line)
}

func hasLinkBrackets(s string) bool {
	return strings.Contains(s, "[[") && strings.Contains(s, "]]")
}
