// Package loader implements tiered symbol resolution: an in-memory map in
// front of the snapshot store in front of the live introspection source.
// The memory tier hands out the same descriptor instance for repeated
// lookups until a refresh or clear replaces it.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
	"github.com/mvp-joe/project-lexicon/internal/introspect"
	"github.com/mvp-joe/project-lexicon/internal/snapshot"
	"github.com/mvp-joe/project-lexicon/internal/store"
)

// ErrClosed is returned by operations on a closed loader.
var ErrClosed = errors.New("loader is closed")

// Loader resolves symbol descriptors through the cache tiers. It is safe
// for concurrent use. Duplicate concurrent resolves of the same
// identifier may each do the full computation; no per-identifier lock is
// held across the slow path, the results are equivalent, and the last
// snapshot write wins.
type Loader struct {
	source introspect.Source
	disk   *store.Store

	mu     sync.RWMutex
	memory map[string]*descriptor.Symbol
	closed bool

	memoryHits       atomic.Int64
	snapshotHits     atomic.Int64
	sourceLoads      atomic.Int64
	corruptSnapshots atomic.Int64
}

// New creates a loader over an introspection source and a snapshot store.
func New(source introspect.Source, disk *store.Store) *Loader {
	return &Loader{
		source: source,
		disk:   disk,
		memory: make(map[string]*descriptor.Symbol),
	}
}

// Store exposes the underlying snapshot store.
func (l *Loader) Store() *store.Store {
	return l.disk
}

// Resolve returns the descriptor for an identifier.
//
// Resolution order under a non-refreshing policy: the memory map, then
// the persisted snapshot, then the live source. A snapshot that fails to
// decode is discarded with a warning and treated like a miss. A result
// computed by the source is persisted first and published to the memory
// map second; when persisting fails the error surfaces and nothing is
// published. A source ErrNotFound propagates to the caller and writes
// nothing.
func (l *Loader) Resolve(ctx context.Context, kind descriptor.Kind, identifier string, policy RefreshPolicy) (*descriptor.Symbol, error) {
	canonical := descriptor.CanonicalName(identifier)
	refresh := policy.needsRefresh(canonical)

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil, ErrClosed
	}
	var cached *descriptor.Symbol
	if !refresh {
		cached = l.memory[canonical]
	}
	l.mu.RUnlock()

	if cached != nil {
		l.memoryHits.Add(1)
		return cached, nil
	}

	if !refresh {
		data, found, err := l.disk.Read(identifier)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot for %s: %w", identifier, err)
		}
		if found {
			sym, err := snapshot.Decode(data)
			if err == nil {
				l.snapshotHits.Add(1)
				return l.publish(canonical, sym, false), nil
			}
			// A snapshot that fails the version or checksum guard is
			// treated like a missing one: recompute and overwrite.
			log.Printf("Warning: discarding snapshot for %s: %v", identifier, err)
			l.corruptSnapshots.Add(1)
		}
	}

	sym, err := l.source.Describe(ctx, kind, identifier)
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", identifier, err)
	}

	data, err := snapshot.Encode(sym)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot for %s: %w", identifier, err)
	}
	if err := l.disk.Write(identifier, data); err != nil {
		return nil, fmt.Errorf("writing snapshot for %s: %w", identifier, err)
	}

	l.sourceLoads.Add(1)
	return l.publish(canonical, sym, refresh), nil
}

// ResolveClass resolves an identifier expected to name a class.
func (l *Loader) ResolveClass(ctx context.Context, identifier string, policy RefreshPolicy) (*descriptor.Symbol, error) {
	return l.Resolve(ctx, descriptor.KindClass, identifier, policy)
}

// ResolveInterface resolves an identifier expected to name an interface.
func (l *Loader) ResolveInterface(ctx context.Context, identifier string, policy RefreshPolicy) (*descriptor.Symbol, error) {
	return l.Resolve(ctx, descriptor.KindInterface, identifier, policy)
}

// ResolveTrait resolves an identifier expected to name a trait.
func (l *Loader) ResolveTrait(ctx context.Context, identifier string, policy RefreshPolicy) (*descriptor.Symbol, error) {
	return l.Resolve(ctx, descriptor.KindTrait, identifier, policy)
}

// publish stores a symbol in the memory map. On the non-refresh path a
// concurrently published instance wins, keeping references stable for
// callers that already hold it; a refresh always replaces.
func (l *Loader) publish(canonical string, sym *descriptor.Symbol, replace bool) *descriptor.Symbol {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return sym
	}
	if !replace {
		if existing, ok := l.memory[canonical]; ok {
			return existing
		}
	}
	l.memory[canonical] = sym
	return sym
}

// Evict removes one identifier from both tiers: the persisted snapshot
// (best effort, already-absent is fine) and the memory map.
func (l *Loader) Evict(identifier string) error {
	canonical := descriptor.CanonicalName(identifier)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	delete(l.memory, canonical)
	l.mu.Unlock()

	return l.disk.Delete(identifier)
}

// Clear empties both tiers: every persisted snapshot file is removed and
// the memory map is reset.
func (l *Loader) Clear() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.memory = make(map[string]*descriptor.Symbol)
	l.mu.Unlock()

	return l.disk.Clear()
}

// ClearMemory empties the memory map only. Persisted snapshots stay on
// disk, so the next resolve of a previously cached identifier rebuilds a
// structurally equal but distinct instance from its snapshot.
func (l *Loader) ClearMemory() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.memory = make(map[string]*descriptor.Symbol)
	return nil
}

// EvictStale applies an eviction policy to the snapshot store. The memory
// map is untouched; a memory-resident symbol whose snapshot was evicted
// is simply re-persisted on its next refresh.
func (l *Loader) EvictStale(policy store.EvictionPolicy) (*store.EvictionResult, error) {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return l.disk.EvictStale(policy)
}

// Stats is a point-in-time snapshot of loader activity.
type Stats struct {
	MemorySymbols    int   // Symbols currently in the memory map
	MemoryHits       int64 // Resolves served from the memory map
	SnapshotHits     int64 // Resolves served from persisted snapshots
	SourceLoads      int64 // Resolves that ran the introspection source
	CorruptSnapshots int64 // Snapshots discarded by the integrity guard
}

// Stats reports resolution counters and the memory tier size.
func (l *Loader) Stats() Stats {
	l.mu.RLock()
	size := len(l.memory)
	l.mu.RUnlock()

	return Stats{
		MemorySymbols:    size,
		MemoryHits:       l.memoryHits.Load(),
		SnapshotHits:     l.snapshotHits.Load(),
		SourceLoads:      l.sourceLoads.Load(),
		CorruptSnapshots: l.corruptSnapshots.Load(),
	}
}

// Close shuts the loader down. Further operations return ErrClosed;
// resolves already in flight may still complete. Closing twice is fine.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.memory = make(map[string]*descriptor.Symbol)
	return nil
}
