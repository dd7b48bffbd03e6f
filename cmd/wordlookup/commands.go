package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/0xcro3dile/wordlookup-go/internal/adapters/editor"
	"github.com/0xcro3dile/wordlookup-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/wordlookup-go/internal/infrastructure/http"
)

type command func(a *app, args []string) error

var commands = map[string]command{
	"lookup":  runLookup,
	"mark":    runMark,
	"story":   runStory,
	"serve":   runServe,
	"watch":   runWatch,
	"history": runHistory,
}

func sortedNames(names []string) []string {
	sort.Strings(names)
	return names
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runLookup(a *app, args []string) error {
	flagSet := pflag.NewFlagSet("lookup", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	response, err := a.lookup.Lookup(context.Background(), strings.Join(flagSet.Args(), " "))
	if err != nil {
		return err
	}
	fmt.Println(response)
	return nil
}

func runMark(a *app, args []string) error {
	var file, from, to string
	var queryOnly bool

	flagSet := pflag.NewFlagSet("mark", pflag.ContinueOnError)
	flagSet.StringVarP(&file, "file", "f", "", "vault-relative path of the note")
	flagSet.StringVar(&from, "from", "", "selection start as LINE:CH (zero-based)")
	flagSet.StringVar(&to, "to", "", "selection end as LINE:CH (zero-based)")
	flagSet.BoolVar(&queryOnly, "query-only", false, "look up the raw selection without linking it")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if file == "" || from == "" || to == "" {
		return fmt.Errorf("--file, --from and --to are required")
	}

	start, err := parsePosition(from)
	if err != nil {
		return err
	}
	end, err := parsePosition(to)
	if err != nil {
		return err
	}

	ctx := context.Background()
	content, err := a.vault.Read(ctx, file)
	if err != nil {
		return fmt.Errorf("reading note: %w", err)
	}

	buf := editor.NewBuffer(content, start, end)

	var result *entities.LookupResult
	if queryOnly {
		result, err = a.lookup.QueryWithContext(ctx, buf)
	} else {
		result, err = a.lookup.MarkAndQuery(ctx, buf)
	}
	if err != nil {
		return err
	}

	if result.Marked {
		if err := a.vault.Write(ctx, file, buf.Text()); err != nil {
			return fmt.Errorf("saving note: %w", err)
		}
		a.logger.Info("note updated", zap.String("file", file))
	}

	fmt.Println(result.Response)
	return nil
}

func runStory(a *app, args []string) error {
	flagSet := pflag.NewFlagSet("story", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	story, err := a.story.Generate(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(story.Path)
	return nil
}

func runServe(a *app, args []string) error {
	addr := a.cfg.ServerAddr

	flagSet := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", addr, "listen address")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	srv := httpserver.NewServer(a.lookup, a.story, a.history, a.vault, a.cfg.StoriesFolder, a.logger, addr)
	return srv.Start(ctx)
}

func runWatch(a *app, args []string) error {
	flagSet := pflag.NewFlagSet("watch", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	watcher, err := filewatcher.NewFSNotifyWatcher([]string{".md"}, a.logger)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, stop := signalContext()
	defer stop()

	dir := filepath.Join(a.vault.Root(), filepath.FromSlash(a.cfg.VocabularyFolder))
	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	a.notifier.Notify(fmt.Sprintf("Watching %s for new vocabulary", a.cfg.VocabularyFolder))

	err = usecases.NewWatchUseCase(a.lookup, a.notifier, a.logger).Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHistory(a *app, args []string) error {
	var limit int

	flagSet := pflag.NewFlagSet("history", pflag.ContinueOnError)
	flagSet.IntVarP(&limit, "limit", "n", 10, "number of entries to show")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	records, err := a.history.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tQUERY\tRESPONSE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format(time.DateTime), r.Kind, oneLine(r.Query, 40), oneLine(r.Response, 60))
	}
	return tw.Flush()
}

// parsePosition parses "LINE:CH".
func parsePosition(s string) (entities.Position, error) {
	lineStr, chStr, ok := strings.Cut(s, ":")
	if !ok {
		return entities.Position{}, fmt.Errorf("position %q: expected LINE:CH", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 0 {
		return entities.Position{}, fmt.Errorf("position %q: bad line", s)
	}
	ch, err := strconv.Atoi(chStr)
	if err != nil || ch < 0 {
		return entities.Position{}, fmt.Errorf("position %q: bad character offset", s)
	}
	return entities.Position{Line: line, Ch: ch}, nil
}

// oneLine flattens s and cuts it to at most n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
