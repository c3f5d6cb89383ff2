// Package bsdate provides input masking and range validation for Bikram Sambat (BS) calendar
// dates entered as free text in the YYYY-MM-DD layout.
//
// The package is pure: it holds no state and never touches any UI toolkit, so the same functions
// back the desktop form, the command-line adapter and the tests.
//
// Example Usage:
//
//	v := bsdate.Format("20780115") // "2078-01-15"
//	if !bsdate.Validate(v, bsdate.DefaultRange) {
//	    // mark the field invalid
//	}
//
// Day-of-month validation is intentionally loose (1..32): BS month lengths vary by year and are
// not tabulated here.
package bsdate
