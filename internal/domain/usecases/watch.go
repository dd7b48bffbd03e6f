package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

// WatchUseCase looks up vocabulary entries as they are added to the vault.
type WatchUseCase struct {
	lookup   *LookupUseCase
	notifier ports.Notifier
	logger   *zap.Logger
}

// NewWatchUseCase creates a WatchUseCase.
func NewWatchUseCase(lookup *LookupUseCase, notifier ports.Notifier, logger *zap.Logger) *WatchUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchUseCase{lookup: lookup, notifier: notifier, logger: logger}
}

// Run consumes events until ctx is done or the channel closes. Created
// entries are looked up; lookup failures are reported and skipped.
func (uc *WatchUseCase) Run(ctx context.Context, events <-chan ports.FileEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			uc.handle(ctx, event)
		}
	}
}

func (uc *WatchUseCase) handle(ctx context.Context, event ports.FileEvent) {
	entry := EntryName(event.Path)
	uc.logger.Debug("vocabulary event",
		zap.String("entry", entry),
		zap.Stringer("op", event.Operation))

	if event.Operation != ports.FileCreated {
		uc.notifier.Notify(fmt.Sprintf("Vocabulary entry %s: %s", event.Operation, entry))
		return
	}

	uc.notifier.Notify(fmt.Sprintf("New vocabulary entry: %s", entry))
	response, err := uc.lookup.Lookup(ctx, entry)
	if err != nil {
		uc.logger.Warn("auto lookup failed", zap.String("entry", entry), zap.Error(err))
		return
	}
	uc.notifier.Notify(fmt.Sprintf("%s: %s", entry, response))
}
