package model

import (
	"fmt"
	"unicode/utf8"
)

// Column widths of the relational schema.
const (
	MaxTitleLen    = 25
	MaxBodyLen     = 25
	MaxUsernameLen = 50
	MaxPasswordLen = 255
	MaxImageLen    = 255
	MaxContentLen  = 255
)

// CheckLen fails when value is longer than max characters. A nil value
// is an omitted field and always passes.
func CheckLen(field string, value *string, max int) error {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return fmt.Errorf("%s must be at most %d characters", field, max)
	}

	return nil
}
