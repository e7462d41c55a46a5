package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JonMunkholm/acparts/internal/config"
	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FromPostgres reads parts from cfg.Table ordered by its position column.
// The database may still be starting when the service boots, so connecting
// is retried with exponential backoff for up to cfg.ConnectTimeout.
func FromPostgres(ctx context.Context, cfg config.ManifestConfig) ([]core.RequiredPart, error) {
	query, err := manifestQuery(cfg.Table)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse manifest database url: %w", err)
	}
	poolConfig.MaxConns = 2

	pool, err := connect(ctx, poolConfig, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query manifest table %s: %w", cfg.Table, err)
	}
	parts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.RequiredPart, error) {
		var p core.RequiredPart
		err := row.Scan(&p.Description, &p.Required)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("read manifest table %s: %w", cfg.Table, err)
	}
	return parts, nil
}

func connect(ctx context.Context, poolConfig *pgxpool.Config, timeout time.Duration) (*pgxpool.Pool, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout

	var pool *pgxpool.Pool
	op := func() error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			// Config errors are permanent.
			return backoff.Permanent(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}
	notify := func(err error, next time.Duration) {
		slog.Warn("manifest database not ready, retrying", "error", err, "retry_in", next)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("connect to manifest database: %w", err)
	}

	slog.Info("connected to manifest database", "host", poolConfig.ConnConfig.Host, "database", poolConfig.ConnConfig.Database)
	return pool, nil
}

// manifestQuery builds the select for table, which may be schema-qualified.
func manifestQuery(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("%w: no manifest table", core.ErrInvalidManifest)
	}

	ident := pgx.Identifier(strings.Split(table, "."))
	for _, part := range ident {
		if part == "" {
			return "", fmt.Errorf("%w: bad table name %q", core.ErrInvalidManifest, table)
		}
	}
	return fmt.Sprintf("SELECT description, required FROM %s ORDER BY position", ident.Sanitize()), nil
}
