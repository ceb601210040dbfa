package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/project-lexicon/internal/config"
	"github.com/mvp-joe/project-lexicon/internal/introspect/manifest"
	"github.com/mvp-joe/project-lexicon/internal/loader"
	"github.com/mvp-joe/project-lexicon/internal/store"
)

// loadConfigFrom loads configuration for the given project root.
func loadConfigFrom(root string) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openSnapshotStore opens the snapshot store at the configured cache location.
func openSnapshotStore(cfg *config.Config) (*store.Store, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return st, nil
}

// manifestRoot resolves the configured manifest root against the project root.
func manifestRoot(root string, cfg *config.Config) string {
	dir := cfg.Manifests.Root
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

// openLoader wires the manifest source and the snapshot store into a
// loader. The caller owns Close.
func openLoader(root string, cfg *config.Config) (*loader.Loader, *manifest.Source, error) {
	src, err := manifest.New(manifestRoot(root, cfg), cfg.Manifests.Paths)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	st, err := openSnapshotStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return loader.New(src, st), src, nil
}
