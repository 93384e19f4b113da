package player

import "context"

type Sort string

const (
	SortOverallDesc Sort = "overall_desc"
	SortValueDesc   Sort = "value_desc"
	SortAgeAsc      Sort = "age_asc"
	SortNameAsc     Sort = "name_asc"
)

// Filter narrows player listings. NameQuery is a case-insensitive substring
// match over the player name; OverallMin/OverallMax bound the rating when
// non-nil.
type Filter struct {
	NameQuery  string
	LeagueID   string
	TeamID     string
	OverallMin *int
	OverallMax *int
	Sort       Sort
	Offset     int64
	Limit      int64
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Player, error)
	Count(ctx context.Context, f Filter) (int64, error)
	// ListLatest returns the most recently created players first.
	ListLatest(ctx context.Context, limit int64) ([]Player, error)
	// ListByTeam returns a team roster ordered by overall rating descending.
	ListByTeam(ctx context.Context, teamID string, limit int64) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	Create(ctx context.Context, p Player) (Player, error)
	Update(ctx context.Context, p Player) error
	// Upsert writes p keyed by (TeamID, Slug) as a single atomic operation:
	// every field is overwritten, CreatedAt only on first insert.
	Upsert(ctx context.Context, p Player) error
	Delete(ctx context.Context, id string) error
	CountByTeam(ctx context.Context, teamID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
