package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/satangdev/satang/internal/model"
)

// settingsKey is the single row under which settings are stored as JSON.
const settingsKey = "app"

// LoadSettings returns the stored settings, or nil if none were ever saved.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM settings WHERE k = ?`, settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings upserts the settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	return s.saveWholesale(ctx, func(tx *sqliteTx) error {
		return tx.SaveSettings(ctx, settings)
	})
}

// SaveSettings upserts the settings row within the transaction.
func (t *sqliteTx) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO settings (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		settingsKey, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
