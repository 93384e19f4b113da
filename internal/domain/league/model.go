package league

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

var validate = validator.New()

// League is a national competition teams belong to. Code is the natural
// business key (ANG1, ESP1, ...) and drives the import file layout.
type League struct {
	ID        string
	Code      string `validate:"required"`
	Name      string `validate:"required"`
	Country   string
	Level     int `validate:"gte=1"`
	CreatedAt time.Time
}

func (l League) Validate() error {
	if err := validate.Struct(l); err != nil {
		return err
	}
	if !codePattern.MatchString(l.Code) {
		return fmt.Errorf("league code %q must be 3-10 uppercase alphanumerics", l.Code)
	}

	return nil
}
