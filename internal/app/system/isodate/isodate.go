// Package isodate validates and formats the ISO-8601 timestamp strings
// stored on announcements.
//
// Dates are persisted as strings and compared lexicographically inside
// Mongo, so everything this service writes uses one fixed UTC layout with
// microsecond precision. Client-supplied dates are validated for
// parseability only and stored verbatim; no timezone conversion happens at
// this layer.
package isodate

import (
	"errors"
	"strings"
	"time"
)

// Layout is the fixed format for server-assigned timestamps (created_at
// and the per-query "now"). Lexicographic order of strings in this layout
// equals chronological order.
const Layout = "2006-01-02T15:04:05.000000"

// Accepted layouts for client-supplied dates. Seconds may be omitted,
// a space may stand in for the T separator, and fractional seconds are
// accepted after the seconds field in any of them.
var parseLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ErrInvalid is returned by Validate for anything that is not an ISO-8601
// timestamp.
var ErrInvalid = errors.New("invalid ISO-8601 date")

// Now returns the current instant in Layout, in UTC.
func Now() string {
	return time.Now().UTC().Format(Layout)
}

// Validate checks that s parses as an ISO-8601 timestamp. A trailing "Z"
// is accepted as shorthand for a +00:00 offset.
func Validate(s string) error {
	if s == "" {
		return ErrInvalid
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range parseLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return ErrInvalid
}
