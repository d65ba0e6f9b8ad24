package webhook

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query holds optional filter parameters. Empty values are never encoded.
type Query map[string]string

// Values returns the non-empty parameters as url.Values.
func (q Query) Values() url.Values {
	values := url.Values{}
	for key, value := range q {
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// Encode renders the query string without the leading '?'.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// Int formats positive identifiers; zero means "not set".
func Int(v int64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

// Date formats a calendar date as YYYY-MM-DD; the zero time means "not set".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
