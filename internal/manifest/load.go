// Package manifest loads the required-parts manifest at process start.
//
// Three sources are supported: the built-in reference list, a config file
// read with viper, and a PostgreSQL table. Whatever the source, the parts go
// through core.NewManifest so the same validation rules apply.
package manifest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/acparts/internal/config"
	"github.com/JonMunkholm/acparts/internal/core"
)

// Load returns the manifest selected by cfg.Source.
func Load(ctx context.Context, cfg config.ManifestConfig) (*core.Manifest, error) {
	var (
		parts []core.RequiredPart
		err   error
	)

	switch cfg.Source {
	case config.ManifestBuiltin, "":
		parts = core.ReferenceParts
	case config.ManifestFile:
		parts, err = FromFile(cfg.Path)
	case config.ManifestPostgres:
		parts, err = FromPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", core.ErrInvalidManifest, cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	m, err := core.NewManifest(parts)
	if err != nil {
		return nil, fmt.Errorf("manifest from %s: %w", sourceName(cfg), err)
	}

	slog.Info("manifest loaded", "source", sourceName(cfg), "parts", m.Len())
	return m, nil
}

func sourceName(cfg config.ManifestConfig) string {
	switch cfg.Source {
	case config.ManifestFile:
		return "file " + cfg.Path
	case config.ManifestPostgres:
		return "table " + cfg.Table
	default:
		return config.ManifestBuiltin
	}
}
