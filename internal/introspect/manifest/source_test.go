package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
	"github.com/mvp-joe/project-lexicon/internal/introspect"
)

// Test Plan for the manifest source:
//
// 1. New scans matching files and Describe serves fully built symbols:
//    members, auto-positioned arguments, attribute argument keying
// 2. Lookup is case-insensitive and every Describe returns its own graph;
//    unknown identifiers are ErrNotFound, kind conflicts ErrKindMismatch
// 3. Only files matching the patterns are indexed
// 4. Broken manifest files and invalid facts are skipped, not fatal
// 5. Duplicate identifiers: the lexically later file wins
// 6. Reload diffs generations: added/modified symbols are Changed,
//    vanished ones are Removed

const widgetManifest = `{
  "symbols": [
    {
      "name": "Acme\\Widget",
      "kind": "class",
      "parent": "Acme\\Base",
      "interfaces": ["Acme\\Drawable"],
      "traits": ["Acme\\Loggable"],
      "modifiers": ["final"],
      "properties": [
        {"name": "price", "type": "float", "modifiers": ["private"], "default": {"t": "float", "v": 9.5}},
        {"name": "note", "default": {"t": "null"}}
      ],
      "constants": [
        {"name": "MAX_SIZE", "value": {"t": "int", "v": 512}, "modifiers": ["public", "final"]}
      ],
      "methods": [
        {
          "name": "render",
          "return_type": "string",
          "modifiers": ["public"],
          "arguments": [
            {"name": "target", "type": "string"},
            {"name": "indent", "type": "int", "optional": true, "default": {"t": "int", "v": 0}}
          ],
          "attributes": [
            {"name": "Acme\\Route", "args": [
              {"value": {"t": "string", "v": "/widgets"}},
              {"name": "methods", "value": {"t": "list", "v": [{"t": "string", "v": "GET"}]}}
            ]}
          ]
        }
      ]
    },
    {
      "name": "Acme\\Drawable",
      "kind": "interface",
      "methods": [{"name": "draw"}]
    }
  ]
}`

// writeManifest writes a manifest file under dir, creating parents.
func writeManifest(t *testing.T, dir, relPath, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newSource(t *testing.T, dir string) *Source {
	t.Helper()
	s, err := New(dir, []string{"**/*.symbols.json"})
	require.NoError(t, err)
	return s
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "src/widget.symbols.json", widgetManifest)
	s := newSource(t, dir)
	ctx := context.Background()

	sym, err := s.Describe(ctx, descriptor.KindClass, `Acme\Widget`)
	require.NoError(t, err)

	assert.Equal(t, `Acme\Widget`, sym.Name())
	assert.Equal(t, "Acme", sym.Namespace())
	assert.Equal(t, `Acme\Base`, sym.Parent())
	assert.Equal(t, []string{`Acme\Drawable`}, sym.Interfaces())
	assert.Equal(t, []string{`Acme\Loggable`}, sym.Traits())
	assert.True(t, sym.Modifiers().IsFinal())

	price := sym.Property("price")
	require.NotNil(t, price)
	assert.Equal(t, "float", price.TypeName())
	assert.True(t, price.Modifiers().IsPrivate())
	assert.True(t, price.Default().Equal(descriptor.Float(9.5)))

	note := sym.Property("note")
	require.NotNil(t, note)
	assert.True(t, note.Default().IsNull())

	maxSize := sym.Constant("MAX_SIZE")
	require.NotNil(t, maxSize)
	assert.Equal(t, "any", maxSize.TypeName(), "untyped constant defaults to any")
	assert.True(t, maxSize.Value().Equal(descriptor.Int(512)))

	render := sym.Method("render")
	require.NotNil(t, render)
	assert.Equal(t, "string", render.ReturnType())
	args := render.Args()
	require.Len(t, args, 2)
	assert.Equal(t, 0, args[0].Position())
	assert.Equal(t, 1, args[1].Position())
	assert.True(t, args[1].Optional())

	attrs := render.Attributes()
	require.Len(t, attrs, 1)
	attrArgs := attrs[0].Args()
	require.Len(t, attrArgs, 2)
	assert.False(t, attrArgs[0].Named())
	assert.Equal(t, 0, attrArgs[0].Index())
	assert.True(t, attrArgs[1].Named())
	assert.Equal(t, "methods", attrArgs[1].Name())
}

func TestDescribeLookupSemantics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)
	ctx := context.Background()

	// Spelling doesn't matter.
	sym, err := s.Describe(ctx, descriptor.KindClass, `\ACME\widget`)
	require.NoError(t, err)
	assert.Equal(t, `Acme\Widget`, sym.Name())

	// Each call rebuilds, so callers never share a descriptor graph.
	again, err := s.Describe(ctx, descriptor.KindClass, `Acme\Widget`)
	require.NoError(t, err)
	assert.NotSame(t, sym, again)
	assert.True(t, sym.Equal(again))

	// An empty kind skips the kind check.
	_, err = s.Describe(ctx, "", `Acme\Widget`)
	require.NoError(t, err)

	_, err = s.Describe(ctx, descriptor.KindClass, `Acme\Nope`)
	assert.ErrorIs(t, err, introspect.ErrNotFound)

	_, err = s.Describe(ctx, descriptor.KindTrait, `Acme\Widget`)
	assert.ErrorIs(t, err, introspect.ErrKindMismatch)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Describe(canceled, descriptor.KindClass, `Acme\Widget`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "deep/nested/widget.symbols.json", widgetManifest)
	// Right extension, wrong suffix: not a manifest.
	writeManifest(t, dir, "config.json", `{"symbols": [{"name": "Acme\\Ghost", "kind": "class"}]}`)

	s := newSource(t, dir)
	assert.Equal(t, 2, s.Len())

	_, err := s.Describe(context.Background(), "", `Acme\Ghost`)
	assert.ErrorIs(t, err, introspect.ErrNotFound)
}

func TestBrokenManifestTolerance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "good.symbols.json", widgetManifest)
	writeManifest(t, dir, "broken.symbols.json", "{ not json at all")
	writeManifest(t, dir, "mixed.symbols.json", `{
  "symbols": [
    {"name": "Acme\\BadKind", "kind": "enum"},
    {"name": "Acme\\Survivor", "kind": "trait"}
  ]
}`)

	s := newSource(t, dir)

	// The widget, the drawable interface, and the survivor made it; the
	// broken file and the bad fact did not.
	assert.Equal(t, 3, s.Len())
	_, err := s.Describe(context.Background(), descriptor.KindTrait, `Acme\Survivor`)
	assert.NoError(t, err)
	_, err = s.Describe(context.Background(), "", `Acme\BadKind`)
	assert.ErrorIs(t, err, introspect.ErrNotFound)
}

func TestDuplicateIdentifierLastFileWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "a.symbols.json", `{
  "symbols": [{"name": "Acme\\Widget", "kind": "class", "properties": [{"name": "fromA"}]}]
}`)
	writeManifest(t, dir, "b.symbols.json", `{
  "symbols": [{"name": "Acme\\Widget", "kind": "class", "properties": [{"name": "fromB"}]}]
}`)

	s := newSource(t, dir)
	sym, err := s.Describe(context.Background(), descriptor.KindClass, `Acme\Widget`)
	require.NoError(t, err)
	assert.NotNil(t, sym.Property("fromB"))
	assert.Nil(t, sym.Property("fromA"))
}

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)

	assert.Equal(t, []string{`Acme\Drawable`, `Acme\Widget`}, s.Identifiers())
}

func TestReloadDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "widget.symbols.json", widgetManifest)
	s := newSource(t, dir)

	// Nothing changed: empty diff.
	diff, err := s.Reload()
	require.NoError(t, err)
	assert.True(t, diff.Empty())

	// A new file adds a symbol.
	writeManifest(t, dir, "gadget.symbols.json", `{
  "symbols": [{"name": "Acme\\Gadget", "kind": "class"}]
}`)
	diff, err = s.Reload()
	require.NoError(t, err)
	assert.Equal(t, []string{`Acme\Gadget`}, diff.Changed)
	assert.Empty(t, diff.Removed)

	// Rewriting a symbol with different structure marks it changed.
	writeManifest(t, dir, "gadget.symbols.json", `{
  "symbols": [{"name": "Acme\\Gadget", "kind": "class", "methods": [{"name": "spin"}]}]
}`)
	diff, err = s.Reload()
	require.NoError(t, err)
	assert.Equal(t, []string{`Acme\Gadget`}, diff.Changed)

	// Deleting the file removes its symbols.
	require.NoError(t, os.Remove(filepath.Join(dir, "gadget.symbols.json")))
	diff, err = s.Reload()
	require.NoError(t, err)
	assert.Empty(t, diff.Changed)
	assert.Equal(t, []string{`Acme\Gadget`}, diff.Removed)

	// The untouched widget never shows up in any diff.
	for _, name := range append(diff.Changed, diff.Removed...) {
		assert.NotEqual(t, `Acme\Widget`, name)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New("", []string{"**/*.symbols.json"})
	require.Error(t, err)

	_, err = New(t.TempDir(), nil)
	require.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), []string{"**/*.symbols.json"})
	require.Error(t, err, "a missing root fails the initial scan")

	_, err = New(t.TempDir(), []string{"[bad"})
	require.Error(t, err)
}
