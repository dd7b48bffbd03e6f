// Package usecases - lookup.go handles the word lookup commands.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

// ErrEmptySelection is returned when there is no text to look up.
var ErrEmptySelection = errors.New("no word selected")

// LookupUseCase sends selections to the vocabulary service.
type LookupUseCase struct {
	service   ports.WordLookupService
	annotator *Annotator
	notifier  ports.Notifier
	history   ports.LookupHistory
	logger    *zap.Logger
	now       func() time.Time
}

// NewLookupUseCase creates a LookupUseCase with injected dependencies.
// history may be nil.
func NewLookupUseCase(
	service ports.WordLookupService,
	annotator *Annotator,
	notifier ports.Notifier,
	history ports.LookupHistory,
	logger *zap.Logger,
) *LookupUseCase {
	if annotator == nil {
		annotator = NewAnnotator(DefaultShortSelectionLimit)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupUseCase{
		service:   service,
		annotator: annotator,
		notifier:  notifier,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// Lookup sends text as is to the vocabulary service.
func (uc *LookupUseCase) Lookup(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		uc.notifier.Notify("No word selected!")
		return "", ErrEmptySelection
	}

	uc.notifier.Notify("Looking up the selected word(s)")
	response, err := uc.service.LookUp(ctx, text)
	if err != nil {
		uc.notifier.Notify(fmt.Sprintf("Error: %v", err))
		return "", fmt.Errorf("looking up %q: %w", text, err)
	}
	uc.notifier.Notify("Received response for the selected word(s)")

	uc.record(ctx, entities.KindLookup, text, response)
	return response, nil
}

// QueryWithContext looks up the raw selection without touching the note.
func (uc *LookupUseCase) QueryWithContext(ctx context.Context, editor ports.Editor) (*entities.LookupResult, error) {
	selected := editor.Selection()
	if strings.TrimSpace(selected) == "" {
		uc.notifier.Notify("No word selected!")
		return nil, ErrEmptySelection
	}

	response, err := uc.Lookup(ctx, selected)
	if err != nil {
		return nil, err
	}
	return &entities.LookupResult{Query: selected, Response: response}, nil
}

// MarkAndQuery links short selections as [[wikilinks]] and looks them up
// together with their surrounding line(s). Long or already linked
// selections are looked up on their own.
func (uc *LookupUseCase) MarkAndQuery(ctx context.Context, editor ports.Editor) (*entities.LookupResult, error) {
	selected := editor.Selection()
	if strings.TrimSpace(selected) == "" {
		uc.notifier.Notify("No word selected!")
		return nil, ErrEmptySelection
	}

	annotation := uc.annotator.AnnotateSelection(editor)
	if annotation.Modified {
		editor.ReplaceSelection(annotation.Replacement)
		uc.logger.Debug("selection marked",
			zap.String("selection", selected),
			zap.String("replacement", annotation.Replacement))
	}

	response, err := uc.Lookup(ctx, annotation.Query)
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify("Successfully marked and looked up!")

	return &entities.LookupResult{
		Query:    annotation.Query,
		Response: response,
		Marked:   annotation.Modified,
	}, nil
}

// record journals a request. Journal failures never fail the request.
func (uc *LookupUseCase) record(ctx context.Context, kind entities.RequestKind, query, response string) {
	recordRequest(ctx, uc.history, uc.logger, entities.LookupRecord{
		Kind:      kind,
		Query:     query,
		Response:  response,
		CreatedAt: uc.now(),
	})
}

func recordRequest(ctx context.Context, history ports.LookupHistory, logger *zap.Logger, rec entities.LookupRecord) {
	if history == nil {
		return
	}
	if err := history.Record(ctx, rec); err != nil {
		logger.Warn("recording request failed",
			zap.String("kind", string(rec.Kind)),
			zap.Error(err))
	}
}
