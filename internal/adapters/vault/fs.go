// Package vault provides the directory-backed note vault adapter.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrOutsideVault is returned for paths that would escape the vault root.
var ErrOutsideVault = errors.New("path escapes vault")

// FSVault implements ports.Vault on a directory tree.
type FSVault struct {
	root string
}

// NewFSVault creates a vault rooted at dir.
func NewFSVault(dir string) (*FSVault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault: %s is not a directory", abs)
	}
	return &FSVault{root: abs}, nil
}

// Root returns the absolute vault directory.
func (v *FSVault) Root() string {
	return v.root
}

// Abs maps a vault-relative path onto the file system.
func (v *FSVault) Abs(rel string) (string, error) {
	slashed := filepath.ToSlash(rel)
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrOutsideVault, rel)
		}
	}
	return filepath.Join(v.root, filepath.FromSlash(path.Clean("/"+slashed))), nil
}

// ListMarkdown returns vault-relative paths of the .md files directly
// inside folder, sorted. A missing folder yields an empty list.
func (v *FSVault) ListMarkdown(ctx context.Context, folder string) ([]string, error) {
	dir, err := v.Abs(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", folder, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".md" {
			continue
		}
		files = append(files, path.Join(strings.Trim(filepath.ToSlash(folder), "/"), e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether a file exists at rel.
func (v *FSVault) Exists(ctx context.Context, rel string) (bool, error) {
	p, err := v.Abs(rel)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Read returns the content of the note at rel.
func (v *FSVault) Read(ctx context.Context, rel string) (string, error) {
	p, err := v.Abs(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the note at rel, creating parent folders as needed.
func (v *FSVault) Write(ctx context.Context, rel, content string) error {
	p, err := v.Abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}
	return os.WriteFile(p, []byte(content), 0o644)
}

// Create writes a new note at rel and fails if it already exists.
func (v *FSVault) Create(ctx context.Context, rel, content string) error {
	p, err := v.Abs(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
