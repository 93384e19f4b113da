package scoutreport

import "context"

// Repository describes scout report persistence needs from use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Report, error)
	// LatestByPlayers returns, for each player id that has at least one
	// report, the report with the greatest CreatedAt.
	LatestByPlayers(ctx context.Context, playerIDs []string) (map[string]Report, error)
	GetByID(ctx context.Context, id string) (Report, bool, error)
	Create(ctx context.Context, r Report) (Report, error)
	Update(ctx context.Context, r Report) error
	Delete(ctx context.Context, id string) error
	// DeleteByPlayer removes every report referencing playerID and reports
	// how many were deleted. Used by the player-delete cascade.
	DeleteByPlayer(ctx context.Context, playerID string) (int64, error)
	// CountReportedPlayers counts distinct players having at least one report.
	CountReportedPlayers(ctx context.Context) (int64, error)
}
