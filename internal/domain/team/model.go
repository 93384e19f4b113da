package team

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Team is a football club inside a league. Slug is derived from the name
// and unique within the league; (LeagueID, Slug) is the natural key the
// importer upserts on.
type Team struct {
	ID       string
	LeagueID string `validate:"required"`
	Name     string `validate:"required"`
	Slug     string `validate:"required"`

	Rating   int
	Att      int
	Mid      int
	Def      int
	Budget   int64
	AvgAge   float64
	YouthDev int

	CreatedAt time.Time
}

func (t Team) Validate() error {
	return validate.Struct(t)
}
