// Package schedule parses finecron schedule expressions.
//
// An expression names a recurring moment with millisecond precision:
//
//	[YYYY.MM.DD ][DOW ]HH:MM:SS[.fff]
//
// Each field is a comma-separated list of intervals: "*", a single value,
// or an inclusive range, each optionally stepped ("1-10/2"). The date and
// day-of-week sections are optional and default to wildcards; the time
// section is mandatory.
//
// Parsing validates field bounds and returns an immutable Format value.
// Deciding when a parsed schedule actually fires is the trigger engine's
// job, not this package's.
package schedule
