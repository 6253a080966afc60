package sqlite

import (
	"io"
	"time"

	"log/slog"

	"github.com/sponnect/sponnect/internal/db"
	"github.com/sponnect/sponnect/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.AdminRepo = (*SQLiteRepo)(nil)
var _ repository.SponsorRepo = (*SQLiteRepo)(nil)
var _ repository.InfluencerRepo = (*SQLiteRepo)(nil)
var _ repository.CampaignRepo = (*SQLiteRepo)(nil)
var _ repository.AdRequestRepo = (*SQLiteRepo)(nil)
var _ repository.FlagRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
