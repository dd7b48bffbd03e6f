package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/adapters/history"
	"github.com/0xcro3dile/wordlookup-go/internal/adapters/notifier"
	"github.com/0xcro3dile/wordlookup-go/internal/adapters/vault"
	"github.com/0xcro3dile/wordlookup-go/internal/adapters/vocabapi"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/usecases"
	"github.com/0xcro3dile/wordlookup-go/internal/infrastructure/config"
	"github.com/0xcro3dile/wordlookup-go/internal/infrastructure/logger"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	vault    *vault.FSVault
	history  ports.LookupHistory
	notifier ports.Notifier
	lookup   *usecases.LookupUseCase
	story    *usecases.StoryUseCase
	closers  []func() error
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogFilePath, cfg.IsProduction())
	a := &app{cfg: cfg, logger: log}
	a.closers = append(a.closers, func() error { log.Sync(); return nil })

	a.vault, err = vault.NewFSVault(cfg.VaultPath)
	if err != nil {
		a.close()
		return nil, err
	}

	if p := cfg.HistoryPath(); p != "" {
		store, err := history.NewSQLiteStore(p)
		if err != nil {
			a.close()
			return nil, err
		}
		a.history = store
		a.closers = append(a.closers, store.Close)
	} else {
		a.history = history.NewMemoryStore()
	}

	a.notifier = notifier.NewConsole(os.Stderr, log)
	client := vocabapi.NewClient(cfg.ServerURL, cfg.HTTPTimeout)

	a.lookup = usecases.NewLookupUseCase(
		client,
		usecases.NewAnnotator(cfg.ShortSelectionLimit),
		a.notifier,
		a.history,
		log,
	)
	a.story = usecases.NewStoryUseCase(
		a.vault,
		client,
		a.notifier,
		a.history,
		log,
		usecases.StoryConfig{
			VocabularyFolder: cfg.VocabularyFolder,
			StoriesFolder:    cfg.StoriesFolder,
			WordCount:        cfg.StoryWordCount,
		},
		nil,
	)

	log.Debug("configured",
		zap.String("server_url", cfg.ServerURL),
		zap.String("vault", a.vault.Root()))

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
