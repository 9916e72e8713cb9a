// Package statement implements the keyword-prefix allow-list applied to submitted SQL and the
// rendering of result rows.
package statement

import (
	"errors"
	"regexp"
)

// ErrNotAllowed is returned for statements whose leading keyword is not on the allow-list.
var ErrNotAllowed = errors.New("Invalid or potentially dangerous SQL query provided.")

// Category is the coarse classification of a statement by its leading keyword.
type Category string

const (
	// CategoryRead is a SELECT statement.
	CategoryRead Category = "read"

	// CategoryMutation is an INSERT, UPDATE or DELETE statement.
	CategoryMutation Category = "mutation"
)

// leadingSpace matches any run of Unicode whitespace. \s alone is ASCII only and misses \v and
// spaces such as U+00A0.
const leadingSpace = `^[\s\v\x1c-\x1f\x{85}\p{Z}]*`

var (
	allowed  = regexp.MustCompile(`(?i)` + leadingSpace + `(SELECT|INSERT|UPDATE|DELETE)\b`)
	mutation = regexp.MustCompile(`(?i)` + leadingSpace + `(INSERT|DELETE|UPDATE)`)
)

// Validate checks the leading keyword of the query against the allow-list.
//
// This is a prefix check only. It does not detect secondary statements, comments or
// multi-statement payloads.
func Validate(query string) error {
	if !allowed.MatchString(query) {
		return ErrNotAllowed
	}

	return nil
}

// Classify returns whether the query should be committed as a mutation or fetched as a read.
// Anything not starting with INSERT, UPDATE or DELETE is treated as a read.
func Classify(query string) Category {
	if mutation.MatchString(query) {
		return CategoryMutation
	}

	return CategoryRead
}
