package bsdate

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty      = errors.New("bsdate: empty value")
	ErrFormat     = errors.New("bsdate: value must be in YYYY-MM-DD format")
	ErrMonthRange = errors.New("bsdate: month must be between 1 and 12")
	ErrDayRange   = errors.New("bsdate: day must be between 1 and 32")
)

// YearRangeError сообщает о годе вне допустимого диапазона.
type YearRangeError struct {
	Year  int
	Range Range
}

func (e *YearRangeError) Error() string {
	return fmt.Sprintf("bsdate: year %d outside %d..%d", e.Year, e.Range.MinYear, e.Range.MaxYear)
}
