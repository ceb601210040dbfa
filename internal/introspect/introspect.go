// Package introspect defines the contract for the expensive metadata
// computation sitting behind the cache: given a symbol identifier,
// produce its full structural description.
package introspect

import (
	"context"
	"errors"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
)

var (
	// ErrNotFound reports that the source has no definition for the
	// requested identifier. Resolution surfaces it to the caller
	// unchanged and writes nothing to any cache tier.
	ErrNotFound = errors.New("symbol not found")

	// ErrKindMismatch reports that the identifier exists but describes a
	// different kind of symbol than the caller asked for.
	ErrKindMismatch = errors.New("symbol kind mismatch")
)

// Source computes symbol descriptions. Implementations are expensive by
// assumption; the cache in front of them exists because of that.
// Implementations must be safe for concurrent use.
//
// Describe returns ErrNotFound for an unknown identifier. When kind is
// non-empty and the symbol exists as a different kind, it returns
// ErrKindMismatch.
type Source interface {
	Describe(ctx context.Context, kind descriptor.Kind, identifier string) (*descriptor.Symbol, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, kind descriptor.Kind, identifier string) (*descriptor.Symbol, error)

// Describe implements Source.
func (f SourceFunc) Describe(ctx context.Context, kind descriptor.Kind, identifier string) (*descriptor.Symbol, error) {
	return f(ctx, kind, identifier)
}
