// Package folder lists, reads and writes spreadsheet files in a local directory.
package folder

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/javajack/xlmerge"
	"github.com/natefinch/atomic"
)

// ErrInvalidName indicates a file name that is not a plain name inside the folder.
var ErrInvalidName = errors.New("invalid file name")

// Folder is a flat directory of spreadsheet files.
type Folder struct {
	Root string
}

// New returns a Folder rooted at dir.
func New(dir string) *Folder {
	return &Folder{Root: dir}
}

// List returns the names of regular files matching any of patterns, sorted
// bytewise. Names listed in exclude and Office lock files ("~$...") are left out.
func (f *Folder) List(patterns []string, exclude ...string) ([]string, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	entries, err := os.ReadDir(f.Root)
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", f.Root, err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || skip[name] || strings.HasPrefix(name, "~$") {
			continue
		}
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of the named file.
func (f *Folder) Read(name string) ([]byte, error) {
	path, err := f.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}

// ReadAll reads the named files as merge sources, in order.
func (f *Folder) ReadAll(names []string) ([]xlmerge.SourceFile, error) {
	sources := make([]xlmerge.SourceFile, 0, len(names))
	for _, name := range names {
		data, err := f.Read(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, xlmerge.SourceFile{Name: name, Content: data})
	}
	return sources, nil
}

// Write replaces the named file atomically: readers see either the old or
// the new content, never a partial file.
func (f *Folder) Write(name string, data []byte) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}

func (f *Folder) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return filepath.Join(f.Root, name), nil
}
