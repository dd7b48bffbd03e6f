package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/entities"
	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

// mockEditor implements ports.Editor over a slice of lines.
type mockEditor struct {
	lines    []string
	from, to entities.Position
	replaced []string
}

func newMockEditor(lines []string, from, to entities.Position) *mockEditor {
	return &mockEditor{lines: append([]string(nil), lines...), from: from, to: to}
}

// offset converts a position into an index into the joined document.
func (m *mockEditor) offset(p entities.Position) int {
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len([]rune(m.lines[i])) + 1
	}
	return off + p.Ch
}

func (m *mockEditor) Text() string { return strings.Join(m.lines, "\n") }

func (m *mockEditor) Selection() string {
	doc := []rune(m.Text())
	return string(doc[m.offset(m.from):m.offset(m.to)])
}

func (m *mockEditor) SelectionRange() (entities.Position, entities.Position) {
	return m.from, m.to
}

func (m *mockEditor) Line(n int) string {
	if n < 0 || n >= len(m.lines) {
		return ""
	}
	return m.lines[n]
}

func (m *mockEditor) ReplaceSelection(text string) {
	doc := []rune(m.Text())
	updated := string(doc[:m.offset(m.from)]) + text + string(doc[m.offset(m.to):])
	m.lines = strings.Split(updated, "\n")
	m.replaced = append(m.replaced, text)
}

// mockService implements ports.WordLookupService and ports.StoryService.
type mockService struct {
	lookups  []string
	stories  []string
	response string
	err      error
}

func (m *mockService) LookUp(ctx context.Context, inputText string) (string, error) {
	m.lookups = append(m.lookups, inputText)
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "definition of " + inputText, nil
}

func (m *mockService) GenerateStory(ctx context.Context, words string) (string, error) {
	m.stories = append(m.stories, words)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// mockNotifier implements ports.Notifier.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Notify(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

func (m *mockNotifier) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// mockHistory implements ports.LookupHistory.
type mockHistory struct {
	records []entities.LookupRecord
	err     error
}

func (m *mockHistory) Record(ctx context.Context, rec entities.LookupRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistory) Recent(ctx context.Context, limit int) ([]entities.LookupRecord, error) {
	return m.records, nil
}

// mockVault implements ports.Vault over a map of path -> content.
type mockVault struct {
	files   map[string]string
	listErr error
}

func newMockVault(files map[string]string) *mockVault {
	if files == nil {
		files = map[string]string{}
	}
	return &mockVault{files: files}
}

func (m *mockVault) ListMarkdown(ctx context.Context, folder string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []string
	for p := range m.files {
		if strings.HasPrefix(p, folder+"/") && strings.HasSuffix(p, ".md") &&
			!strings.Contains(strings.TrimPrefix(p, folder+"/"), "/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockVault) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *mockVault) Read(ctx context.Context, path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("%s: not found", path)
	}
	return content, nil
}

func (m *mockVault) Write(ctx context.Context, path, content string) error {
	m.files[path] = content
	return nil
}

func (m *mockVault) Create(ctx context.Context, path, content string) error {
	if _, ok := m.files[path]; ok {
		return errors.New("exists")
	}
	m.files[path] = content
	return nil
}

var (
	_ ports.Editor            = (*mockEditor)(nil)
	_ ports.WordLookupService = (*mockService)(nil)
	_ ports.StoryService      = (*mockService)(nil)
	_ ports.Vault             = (*mockVault)(nil)
)
