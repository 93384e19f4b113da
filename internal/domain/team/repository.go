package team

import "context"

type Sort string

const (
	SortNameAsc    Sort = "name_asc"
	SortRatingDesc Sort = "rating_desc"
	SortBudgetDesc Sort = "budget_desc"
)

// Filter narrows team listings. NameQuery is a case-insensitive substring
// match over the club name.
type Filter struct {
	NameQuery string
	LeagueID  string
	Sort      Sort
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Team, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	// FindByNameOrSlug resolves a team inside a league by exact name match
	// or by its derived slug. No fuzzy matching.
	FindByNameOrSlug(ctx context.Context, leagueID, name, slug string) (Team, bool, error)
	Create(ctx context.Context, t Team) (Team, error)
	Update(ctx context.Context, t Team) error
	// Upsert writes t keyed by (LeagueID, Slug) as a single atomic
	// operation: every field is overwritten, CreatedAt only on first insert.
	Upsert(ctx context.Context, t Team) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByLeague(ctx context.Context, leagueID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
