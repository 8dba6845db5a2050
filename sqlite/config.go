package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/filmcard"
)

// Compile-time interface verification.
var _ filmcard.ConfigService = (*ConfigService)(nil)

// ConfigService implements filmcard.ConfigService using SQLite.
type ConfigService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewConfigService creates a new ConfigService.
func NewConfigService(db *DB) *ConfigService {
	return &ConfigService{db: db, Now: time.Now}
}

// Snapshot reads the global and destination settings in one read
// transaction and resolves them over the built-in defaults.
func (s *ConfigService) Snapshot(ctx context.Context, destination string) (*filmcard.OutputConfig, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT destination, key, value, updated_at
		FROM settings
		WHERE destination IN (?, ?)
	`, filmcard.GlobalDestination, destination)
	if err != nil {
		return nil, err
	}
	settings, err := scanSettings(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	cfg := filmcard.ResolveConfig(destination, settings)
	cfg.Version = version(cfg)
	return cfg, nil
}

// SetFormat stores a template format for destination.
func (s *ConfigService) SetFormat(ctx context.Context, destination, name, format string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return filmcard.Errorf(filmcard.EINVALID, "format name required")
	}
	if strings.ContainsAny(name, ",;") {
		return filmcard.Errorf(filmcard.EINVALID, "format name %q must not contain ',' or ';'", name)
	}
	if err := filmcard.ValidateFormat(format); err != nil {
		return err
	}
	return s.put(ctx, destination, filmcard.FormatKeyPrefix+name, format)
}

// DeleteFormat removes a template format from destination.
func (s *ConfigService) DeleteFormat(ctx context.Context, destination, name string) error {
	return s.delete(ctx, destination, filmcard.FormatKeyPrefix+strings.TrimSpace(name))
}

// SetOrder stores the line specification for destination.
func (s *ConfigService) SetOrder(ctx context.Context, destination string, spec filmcard.LineSpec) error {
	if len(spec) == 0 {
		return filmcard.Errorf(filmcard.EINVALID, "order must name at least one template")
	}
	return s.put(ctx, destination, filmcard.SettingOrder, spec.String())
}

// DeleteOrder removes the line specification from destination.
func (s *ConfigService) DeleteOrder(ctx context.Context, destination string) error {
	return s.delete(ctx, destination, filmcard.SettingOrder)
}

// FindSettings retrieves stored settings matching the filter, ordered by
// destination and key.
func (s *ConfigService) FindSettings(ctx context.Context, filter filmcard.SettingFilter) ([]*filmcard.Setting, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT destination, key, value, updated_at FROM settings WHERE 1=1")

	if filter.Destination != nil {
		query.WriteString(" AND destination = ?")
		args = append(args, *filter.Destination)
	}
	if filter.Key != nil {
		query.WriteString(" AND key = ?")
		args = append(args, *filter.Key)
	}

	query.WriteString(" ORDER BY destination, key")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	return scanSettings(rows)
}

func (s *ConfigService) put(ctx context.Context, destination, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (destination, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (destination, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, destination, key, value, s.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *ConfigService) delete(ctx context.Context, destination, key string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM settings WHERE destination = ? AND key = ?
	`, destination, key)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return filmcard.Errorf(filmcard.ENOTFOUND, "setting %q not found", key)
	}
	return nil
}

// scanSettings reads and closes rows.
func scanSettings(rows *sql.Rows) ([]*filmcard.Setting, error) {
	defer rows.Close()

	var settings []*filmcard.Setting
	for rows.Next() {
		var setting filmcard.Setting
		var updatedAt string
		if err := rows.Scan(&setting.Destination, &setting.Key, &setting.Value, &updatedAt); err != nil {
			return nil, err
		}
		t, err := parseRFC3339(updatedAt, "updated_at")
		if err != nil {
			return nil, err
		}
		setting.UpdatedAt = t
		settings = append(settings, &setting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

// version hashes the resolved order and formats. Equal configurations get
// equal versions regardless of which layer supplied each value.
func version(cfg *filmcard.OutputConfig) uint64 {
	names := make([]string, 0, len(cfg.Formats))
	for name := range cfg.Formats {
		names = append(names, name)
	}
	sort.Strings(names)

	h := xxhash.New()
	_, _ = h.WriteString(cfg.Order.String())
	for _, name := range names {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(cfg.Formats[name])
	}
	return h.Sum64()
}

