package mcp

import (
	"context"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySessions(ctx context.Context, start, end time.Time, userID int, exercise string) ([]models.SessionRow, error)
	GetSession(ctx context.Context, sessionID uuid.UUID, userID int) (*storage.SessionDetail, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetRepStats(ctx context.Context, exercise string, start, end time.Time, userID int) (*storage.RepStats, error)
	GetDailyReps(ctx context.Context, start, end time.Time, userID int) ([]storage.DailyReps, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
