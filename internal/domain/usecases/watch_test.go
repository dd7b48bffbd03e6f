package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

func TestWatchUseCase_LooksUpCreatedEntries(t *testing.T) {
	service := &mockService{response: "meaning"}
	lookup, _ := newLookup(service, nil)
	notifier := &mockNotifier{}
	uc := NewWatchUseCase(lookup, notifier, nil)

	events := make(chan ports.FileEvent, 3)
	events <- ports.FileEvent{Path: "/vault/English/Vocabulary/cat.md", Operation: ports.FileCreated}
	events <- ports.FileEvent{Path: "/vault/English/Vocabulary/dog.md", Operation: ports.FileModified}
	events <- ports.FileEvent{Path: "/vault/English/Vocabulary/eel.md", Operation: ports.FileDeleted}
	close(events)

	if err := uc.Run(context.Background(), events); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(service.lookups) != 1 || service.lookups[0] != "cat" {
		t.Errorf("only created entries should be looked up, got %v", service.lookups)
	}

	want := []string{
		"New vocabulary entry: cat",
		"cat: meaning",
		"Vocabulary entry modified: dog",
		"Vocabulary entry deleted: eel",
	}
	got := notifier.all()
	if len(got) != len(want) {
		t.Fatalf("expected %d notices, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notice %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWatchUseCase_ContinuesAfterLookupFailure(t *testing.T) {
	service := &mockService{err: errors.New("down")}
	lookup, _ := newLookup(service, nil)
	uc := NewWatchUseCase(lookup, &mockNotifier{}, nil)

	events := make(chan ports.FileEvent, 2)
	events <- ports.FileEvent{Path: "a.md", Operation: ports.FileCreated}
	events <- ports.FileEvent{Path: "b.md", Operation: ports.FileCreated}
	close(events)

	if err := uc.Run(context.Background(), events); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(service.lookups) != 2 {
		t.Errorf("expected both entries attempted, got %v", service.lookups)
	}
}

func TestWatchUseCase_StopsOnCancel(t *testing.T) {
	lookup, _ := newLookup(&mockService{}, nil)
	uc := NewWatchUseCase(lookup, &mockNotifier{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := uc.Run(ctx, make(chan ports.FileEvent))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
}
