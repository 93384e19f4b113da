package scoutreport

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Report is one scout's assessment of a player. A player can carry several
// reports; the latest is the one with the greatest CreatedAt.
type Report struct {
	ID         string
	PlayerID   string `validate:"required"`
	Rating     int    `validate:"gte=1,lte=10"`
	Strengths  []string
	Weaknesses []string
	Notes      string
	CreatedAt  time.Time
}

func (r Report) Validate() error {
	return validate.Struct(r)
}
