package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"atelier/config"
	"atelier/internal/domain/entity"
	"atelier/internal/infra/store"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "atelier.db"), "123456", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func defaultConfig() *config.Config {
	cfg := new(config.Config)
	cfg.Auth.DefaultPIN = "123456"
	cfg.Tax.ServiceRate = 0.22
	cfg.Tax.SalesRate = 0.124
	cfg.Loyalty.RewardEvery = 10
	cfg.GiftCards.CodePrefix = "GC-"
	cfg.GiftCards.CodeLength = 6

	return cfg
}

// stubMessenger stands in for the AI client; usecases only forward text.
type stubMessenger struct{}

func (stubMessenger) DraftClientMessage(_ context.Context, client *entity.Client) (string, error) {
	return "draft for " + client.Name, nil
}

func (stubMessenger) AnalyzeRevenue(_ context.Context, transactions []entity.Transaction) (string, error) {
	return fmt.Sprintf("%d ledger entries analyzed", len(transactions)), nil
}

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()

	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
