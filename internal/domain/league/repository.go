package league

import "context"

// Sort names a fixed field order for league listings.
type Sort string

const (
	SortCodeAsc  Sort = "code_asc"
	SortNameAsc  Sort = "name_asc"
	SortLevelAsc Sort = "level_asc"
)

// Filter narrows league listings. Query is a case-insensitive substring
// match over code, name and country.
type Filter struct {
	Query string
	Sort  Sort
}

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, f Filter) ([]League, error)
	GetByID(ctx context.Context, id string) (League, bool, error)
	GetByCode(ctx context.Context, code string) (League, bool, error)
	Create(ctx context.Context, l League) (League, error)
	Update(ctx context.Context, l League) error
	Delete(ctx context.Context, id string) error
	// SeedUpsert inserts l keyed by code when absent and leaves an existing
	// document untouched. Reports whether a new document was created.
	SeedUpsert(ctx context.Context, l League) (bool, error)
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
