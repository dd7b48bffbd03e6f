// Package usecases - story.go generates story notes from vocabulary entries.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

var (
	// ErrNoVocabulary is returned when the vocabulary folder has no entries.
	ErrNoVocabulary = errors.New("no vocabulary files found")

	// ErrEmptyStory is returned when the service answers with no story.
	ErrEmptyStory = errors.New("no story generated")
)

// DefaultStoryWordCount is how many entries go into one story request.
const DefaultStoryWordCount = 10

const storyHeader = "# Story \n\n #generated_story \n\n"

// StoryConfig locates vocabulary entries and story notes in the vault.
type StoryConfig struct {
	VocabularyFolder string
	StoriesFolder    string
	WordCount        int
}

// StoryUseCase samples vocabulary entries and writes a generated story.
type StoryUseCase struct {
	vault    ports.Vault
	service  ports.StoryService
	notifier ports.Notifier
	history  ports.LookupHistory
	logger   *zap.Logger
	cfg      StoryConfig
	rng      *rand.Rand
	now      func() time.Time
}

// NewStoryUseCase creates a StoryUseCase. rng may be nil for a time-seeded
// source; history may be nil.
func NewStoryUseCase(
	vault ports.Vault,
	service ports.StoryService,
	notifier ports.Notifier,
	history ports.LookupHistory,
	logger *zap.Logger,
	cfg StoryConfig,
	rng *rand.Rand,
) *StoryUseCase {
	if cfg.WordCount <= 0 {
		cfg.WordCount = DefaultStoryWordCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoryUseCase{
		vault:    vault,
		service:  service,
		notifier: notifier,
		history:  history,
		logger:   logger,
		cfg:      cfg,
		rng:      rng,
		now:      time.Now,
	}
}

// VocabularyPool lists the vocabulary entry names, without extension.
// The pool is rebuilt from the folder on every call.
func (uc *StoryUseCase) VocabularyPool(ctx context.Context) ([]string, error) {
	files, err := uc.vault.ListMarkdown(ctx, uc.cfg.VocabularyFolder)
	if err != nil {
		return nil, fmt.Errorf("listing vocabulary: %w", err)
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = EntryName(f)
	}
	return names, nil
}

// Generate requests a story for a random sample of vocabulary entries and
// stores it as a new note.
func (uc *StoryUseCase) Generate(ctx context.Context) (*entities.Story, error) {
	pool, err := uc.VocabularyPool(ctx)
	if err != nil {
		return nil, err
	}

	words := Sample(pool, uc.cfg.WordCount, uc.rng)
	if words == "" {
		uc.notifier.Notify("No vocabulary files found in the specified folder!")
		return nil, ErrNoVocabulary
	}

	uc.notifier.Notify("Starting story generation")
	text, err := uc.service.GenerateStory(ctx, words)
	if err != nil {
		uc.notifier.Notify(fmt.Sprintf("Error: %v", err))
		return nil, fmt.Errorf("generating story: %w", err)
	}
	uc.notifier.Notify(fmt.Sprintf("Received response for the selected words: %s", words))

	recordRequest(ctx, uc.history, uc.logger, entities.LookupRecord{
		Kind:      entities.KindStory,
		Query:     words,
		Response:  text,
		CreatedAt: uc.now(),
	})

	if strings.TrimSpace(text) == "" {
		uc.notifier.Notify("No story generated.")
		return nil, ErrEmptyStory
	}

	story := &entities.Story{
		Path:    path.Join(uc.cfg.StoriesFolder, StoryFileName(uc.now())),
		Words:   words,
		Content: text,
	}

	exists, err := uc.vault.Exists(ctx, story.Path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", story.Path, err)
	}
	if exists {
		uc.logger.Info("story note already exists", zap.String("path", story.Path))
		uc.notifier.Notify(fmt.Sprintf("File already exists: %s", story.Path))
		return story, nil
	}

	if err := uc.vault.Create(ctx, story.Path, storyHeader+text); err != nil {
		return nil, fmt.Errorf("creating %s: %w", story.Path, err)
	}
	story.Created = true
	uc.notifier.Notify(fmt.Sprintf("Created new file: %s", story.Path))

	return story, nil
}

// StoryFileName names a story note after its creation time, e.g.
// Story-2024-05-01T10-20-30-123Z.md.
func StoryFileName(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "Story-" + stamp + ".md"
}

// EntryName turns a vocabulary note path into the entry it names.
func EntryName(p string) string {
	return strings.TrimSuffix(path.Base(p), ".md")
}
