// Package manifest implements an introspection source backed by symbol
// manifests: JSON fact documents that extractor tooling writes alongside
// a codebase. The source scans a root directory for files matching glob
// patterns, indexes every symbol fact it finds, and serves Describe calls
// from that index. Reload rescans and reports which symbols changed, so a
// watcher can invalidate cached descriptors.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
	"github.com/mvp-joe/project-lexicon/internal/introspect"
)

// compiledPattern holds the pattern string and its compiled globs.
// rootGlob covers files directly under the root: "**/" requires at least
// one separator, so "**/*.symbols.json" alone would miss them.
type compiledPattern struct {
	pattern  string
	glob     glob.Glob
	rootGlob glob.Glob
}

// Source indexes symbol manifests under a root directory. It is safe for
// concurrent use; Reload swaps the index atomically.
type Source struct {
	root     string
	patterns []compiledPattern

	mu      sync.RWMutex
	symbols map[string]*indexedSymbol
}

// indexedSymbol is one symbol in the index: the fact it was parsed from,
// the symbol built from that fact at load time, and the manifest file it
// came from for duplicate reporting. The built symbol serves lookups and
// generation diffs; Describe rebuilds from the fact so every caller gets
// its own descriptor graph.
type indexedSymbol struct {
	fact symbolFact
	sym  *descriptor.Symbol
	file string
}

// New creates a source over the manifest files matching the glob patterns
// under root, and performs the initial scan.
func New(root string, patterns []string) (*Source, error) {
	if root == "" {
		return nil, fmt.Errorf("manifest root must not be empty")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one manifest pattern is required")
	}

	s := &Source{root: root}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if rg, err := glob.Compile(simplified, '/'); err == nil {
				cp.rootGlob = rg
			}
		}
		s.patterns = append(s.patterns, cp)
	}

	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the directory the source scans.
func (s *Source) Root() string {
	return s.root
}

// Diff reports how one reload changed the index. Changed holds symbols
// that are new or structurally different; Removed holds symbols that
// disappeared. Both use as-declared identifiers.
type Diff struct {
	Changed []string
	Removed []string
}

// Empty reports whether the reload found no differences.
func (d Diff) Empty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}

// Reload rescans the manifest tree and swaps in the fresh index. Files
// that fail to parse and facts that fail to validate are logged and
// skipped; a broken manifest must not take down the symbols served by
// intact ones.
func (s *Source) Reload() (Diff, error) {
	files, err := s.discover()
	if err != nil {
		return Diff{}, err
	}

	fresh := make(map[string]*indexedSymbol)
	for _, file := range files {
		s.loadFile(file, fresh)
	}

	s.mu.Lock()
	previous := s.symbols
	s.symbols = fresh
	s.mu.Unlock()

	return diffIndexes(previous, fresh), nil
}

// Describe implements introspect.Source against the current index.
func (s *Source) Describe(ctx context.Context, kind descriptor.Kind, identifier string) (*descriptor.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	indexed := s.symbols[descriptor.CanonicalName(identifier)]
	s.mu.RUnlock()

	if indexed == nil {
		return nil, fmt.Errorf("%w: %s", introspect.ErrNotFound, identifier)
	}
	if kind != "" && indexed.sym.Kind() != kind {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s",
			introspect.ErrKindMismatch, identifier, indexed.sym.Kind(), kind)
	}
	// Rebuild from the fact so every caller owns a distinct descriptor
	// graph. The fact already built once at load time, so this cannot
	// fail for a well-formed index.
	sym, err := indexed.fact.symbol()
	if err != nil {
		return nil, fmt.Errorf("rebuilding %s: %w", identifier, err)
	}
	return sym, nil
}

// Identifiers returns every indexed symbol name, sorted.
func (s *Source) Identifiers() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.symbols))
	for _, indexed := range s.symbols {
		names = append(names, indexed.sym.Name())
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of indexed symbols.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

// matches reports whether a path, relative to the source root, names a
// manifest file.
func (s *Source) matches(path string) bool {
	relPath, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	atRoot := !strings.Contains(relPath, "/")
	for _, cp := range s.patterns {
		if cp.glob.Match(relPath) {
			return true
		}
		if atRoot && cp.rootGlob != nil && cp.rootGlob.Match(relPath) {
			return true
		}
	}
	return false
}

// discover walks the root and returns matching manifest files in walk
// order, which is lexical and therefore stable across reloads.
func (s *Source) discover() ([]string, error) {
	files := []string{}
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if s.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan manifest root: %w", err)
	}
	return files, nil
}

// loadFile parses one manifest file into the index being built. Later
// files win on duplicate identifiers, with a warning.
func (s *Source) loadFile(path string, index map[string]*indexedSymbol) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: failed to read manifest %s: %v", path, err)
		return
	}
	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Warning: failed to parse manifest %s: %v", path, err)
		return
	}
	for _, fact := range file.Symbols {
		sym, err := fact.symbol()
		if err != nil {
			log.Printf("Warning: skipping invalid fact in %s: %v", path, err)
			continue
		}
		canonical := descriptor.CanonicalName(sym.Name())
		if existing, ok := index[canonical]; ok {
			log.Printf("Warning: %s redefines %s (first seen in %s)", path, sym.Name(), existing.file)
		}
		index[canonical] = &indexedSymbol{fact: fact, sym: sym, file: path}
	}
}

// diffIndexes compares two index generations by canonical identifier.
func diffIndexes(previous, fresh map[string]*indexedSymbol) Diff {
	var diff Diff
	for canonical, indexed := range fresh {
		old, existed := previous[canonical]
		if !existed || !old.sym.Equal(indexed.sym) {
			diff.Changed = append(diff.Changed, indexed.sym.Name())
		}
	}
	for canonical, indexed := range previous {
		if _, still := fresh[canonical]; !still {
			diff.Removed = append(diff.Removed, indexed.sym.Name())
		}
	}
	sort.Strings(diff.Changed)
	sort.Strings(diff.Removed)
	return diff
}
