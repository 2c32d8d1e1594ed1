package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/satangdev/satang/internal/cli"
	"github.com/satangdev/satang/internal/common"
	"github.com/satangdev/satang/internal/config"
	"github.com/satangdev/satang/internal/ledger"
	"github.com/satangdev/satang/internal/model"
	"github.com/satangdev/satang/internal/service"
	"github.com/satangdev/satang/internal/storage"
)

// initStorage opens the configured database and brings the schema up to
// date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/satang/satang.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		common.LogError(err, "migration failed", common.Fields{"path": dbPath})
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger opens storage and loads the full state. The caller closes the
// returned storage.
func openLedger(ctx context.Context) (*ledger.Ledger, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	led, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return led, store, nil
}

// today returns the current calendar date.
func today() model.Date {
	return model.DateOf(time.Now())
}

// newMoneyFormatter builds a formatter from the ledger's locale and
// currency settings.
func newMoneyFormatter(led *ledger.Ledger) *cli.MoneyFormatter {
	return cli.NewMoneyFormatter(led.Settings())
}

// parseAmount parses a user-supplied money amount.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return amount, nil
}

// parseDateArg parses a user-supplied YYYY-MM-DD flag value.
func parseDateArg(s string) (model.Date, error) {
	date, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", common.ErrInvalidDate, s)
	}
	return date, nil
}
