package player

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Player is an athlete under contract with a team. Team carries the
// denormalized club name alongside the TeamID reference; (TeamID, Slug) is
// the natural key the importer upserts on.
type Player struct {
	ID       string
	LeagueID string `validate:"required"`
	TeamID   string `validate:"required"`
	Team     string

	PlayerName string `validate:"required"`
	Slug       string `validate:"required"`
	Positions  string

	Overall  int `validate:"gte=0"`
	Age      int `validate:"gte=0"`
	Pac      int
	Sho      int
	Pas      int
	Dri      int
	Def      int
	Phy      int
	HeightCm int

	PreferredFoot string

	// Contract bounds in epoch milliseconds; nil means no value.
	ContractStart *int64
	ContractEnd   *int64

	MarketValue int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	return validate.Struct(p)
}
